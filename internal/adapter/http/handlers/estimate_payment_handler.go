package handlers

import (
	"errors"
	"net/http"

	"furniture_estimates/internal/adapter/http/dto/request"
	"furniture_estimates/internal/adapter/http/dto/response"
	"furniture_estimates/internal/adapter/http/middleware"
	"furniture_estimates/internal/usecase"
	"furniture_estimates/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EstimatePaymentHandler handles deposits for approved estimates.
type EstimatePaymentHandler struct {
	usecase usecase.IEstimatePaymentUseCase
	log     *zap.Logger
}

func NewEstimatePaymentHandler(uc usecase.IEstimatePaymentUseCase, log *zap.Logger) *EstimatePaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &EstimatePaymentHandler{usecase: uc, log: log}
}

// CreateDeposit charges the estimate price. The body is a Mercado Pago payment
// request, optionally wrapped in {"mp_payload": ...}.
//
// @Summary      Pay the deposit of an approved estimate
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Estimate ID"
// @Param        payload  body      request.EstimatePaymentRequest  true  "Mercado Pago payment request"
// @Success      201      {object}  response.EstimatePaymentResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /estimates/{id}/payments [post]
func (h *EstimatePaymentHandler) CreateDeposit(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	estimateID := c.Param("id")
	log := h.log.With(zap.String("estimate_id", estimateID), zap.String("user_id", id.UserID))

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	payload, err := request.ResolvePayload(raw)
	if err != nil {
		log.Info("[payment][handler] invalid payload", zap.Error(err))
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateDeposit(c.Request.Context(), estimateID, id.UserID, payload)
	if err != nil {
		log.Warn("[payment][handler] create failed", zap.Error(err))
		appErr := mapEstimatePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("[payment][handler] create success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusCreated, response.FromEstimatePayment(created))
}

// ListByEstimate returns the deposits of one estimate, newest first.
//
// @Summary      List deposits of an estimate
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "Estimate ID"
// @Success      200  {array}  response.EstimatePaymentResponse
// @Router       /estimates/{id}/payments [get]
func (h *EstimatePaymentHandler) ListByEstimate(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	payments, err := h.usecase.ListByEstimate(c.Request.Context(), c.Param("id"), id.UserID)
	if err != nil {
		appErr := mapEstimatePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimatePayments(payments))
}

func mapEstimatePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID), errors.Is(err, usecase.ErrInvalidPaymentPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago account", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEstimateForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Estimate belongs to another user", http.StatusForbidden)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateNotApproved):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_APPROVED", "Estimate not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider rejected the credentials", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payments are not available", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
