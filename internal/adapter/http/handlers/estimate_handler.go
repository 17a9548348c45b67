package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"furniture_estimates/internal/adapter/http/dto/request"
	"furniture_estimates/internal/adapter/http/dto/response"
	"furniture_estimates/internal/adapter/http/middleware"
	"furniture_estimates/internal/infrastructure/realtime"
	"furniture_estimates/internal/usecase"
	"furniture_estimates/internal/usecase/interfaces"
	"furniture_estimates/pkg"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMaxImageBytes int64 = 5 << 20

	// multipart framing and the requirements field on top of the image
	formOverheadBytes int64 = 1 << 20
)

var allowedImageExt = regexp.MustCompile(`(?i)^\.(jpe?g|png|gif)$`)

var (
	errUnauthenticated     = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errMissingImage        = pkg.NewDomainErrorSimple("INVALID_IMAGE", "An image file is required", http.StatusBadRequest)
	errUnsupportedImage    = pkg.NewDomainErrorSimple("INVALID_IMAGE", "Only jpg, jpeg, png and gif images are allowed", http.StatusBadRequest)
	errImageTooLarge       = pkg.NewDomainErrorSimple("IMAGE_TOO_LARGE", "Image exceeds the maximum allowed size", http.StatusBadRequest)
	errMissingRequirements = pkg.NewDomainErrorSimple("INVALID_REQUIREMENTS", "Requirements are required", http.StatusBadRequest)
	errInvalidRequest      = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

type EstimateHandlerOptions struct {
	// AsyncIntake answers 202 and runs the pipeline in the background for
	// every request. Clients can opt in per request with "Prefer: respond-async".
	AsyncIntake   bool
	MaxImageBytes int64
	// JobTimeout bounds one background run.
	JobTimeout time.Duration
}

// EstimateHandler handles HTTP requests for furniture estimates.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
	storage interfaces.IImageStorage
	log     *zap.Logger
	opts    EstimateHandlerOptions
	jobs    sync.WaitGroup
}

func NewEstimateHandler(uc usecase.IEstimateUseCase, storage interfaces.IImageStorage, log *zap.Logger, opts EstimateHandlerOptions) *EstimateHandler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 2 * usecase.DefaultModelTimeout
	}
	return &EstimateHandler{usecase: uc, storage: storage, log: log, opts: opts}
}

// CreateEstimate accepts a multipart upload with an "image" file and a
// "requirements" field.
//
// @Summary      Price a furniture request from an image and requirements
// @Tags         estimates
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image         formData  file    true   "jpg, jpeg, png or gif"
// @Param        requirements  formData  string  true   "Customer requirements"
// @Param        Prefer        header    string  false  "respond-async to answer 202 and deliver the result on the event stream"
// @Success      201  {object}  response.EstimateResponse
// @Success      202  {object}  response.AsyncAcceptedResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}
	log := h.log.With(zap.String("user_id", id.UserID))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxImageBytes+formOverheadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(errImageTooLarge.HTTPStatus, errImageTooLarge.ToHTTPError())
			return
		}
		c.JSON(errMissingImage.HTTPStatus, errMissingImage.ToHTTPError())
		return
	}
	if !allowedImageExt.MatchString(filepath.Ext(fh.Filename)) {
		log.Info("[estimate][handler] rejected upload extension", zap.String("filename", fh.Filename))
		c.JSON(errUnsupportedImage.HTTPStatus, errUnsupportedImage.ToHTTPError())
		return
	}
	if fh.Size > h.opts.MaxImageBytes {
		c.JSON(errImageTooLarge.HTTPStatus, errImageTooLarge.ToHTTPError())
		return
	}

	requirements := strings.TrimSpace(c.PostForm("requirements"))
	if requirements == "" {
		c.JSON(errMissingRequirements.HTTPStatus, errMissingRequirements.ToHTTPError())
		return
	}

	data, err := readUpload(fh, h.opts.MaxImageBytes)
	if err != nil {
		log.Warn("[estimate][handler] could not read upload", zap.Error(err))
		c.JSON(errMissingImage.HTTPStatus, errMissingImage.ToHTTPError())
		return
	}

	imageURL, err := h.storage.Save(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		log.Error("[estimate][handler] storing upload failed", zap.Error(err))
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	cmd := usecase.CreateEstimateCommand{
		UserID:       id.UserID,
		ImageURL:     imageURL,
		Image:        data,
		Requirements: requirements,
	}

	if h.opts.AsyncIntake || prefersAsync(c.GetHeader("Prefer")) {
		requestID := uuid.NewString()
		h.jobs.Add(1)
		go func() {
			defer h.jobs.Done()
			h.runDetached(c.Request.Context(), requestID, cmd)
		}()
		c.JSON(http.StatusAccepted, response.AsyncAcceptedResponse{
			RequestID:   requestID,
			Status:      usecase.NotifyStatusProcessing,
			StatusTopic: realtime.StatusTopic(id.UserID),
			ResultTopic: realtime.ResultTopic(id.UserID),
		})
		return
	}

	estimate, err := h.usecase.CreateEstimate(c.Request.Context(), cmd)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// runDetached outlives the request; the outcome reaches the client on its
// status and result topics.
func (h *EstimateHandler) runDetached(parent context.Context, requestID string, cmd usecase.CreateEstimateCommand) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), h.opts.JobTimeout)
	defer cancel()

	log := h.log.With(zap.String("request_id", requestID), zap.String("user_id", cmd.UserID))
	estimate, err := h.usecase.CreateEstimate(ctx, cmd)
	if err != nil {
		log.Warn("[estimate][handler] background estimate failed", zap.Error(err))
		return
	}
	log.Info("[estimate][handler] background estimate done", zap.String("estimate_id", estimate.ID))
}

// Wait blocks until every background run has finished or ctx is done.
func (h *EstimateHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListMine returns the caller's estimates, newest first.
//
// @Summary      List the caller's estimates, newest first
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   response.EstimateResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /estimates [get]
func (h *EstimateHandler) ListMine(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	list, err := h.usecase.ListByUser(c.Request.Context(), id.UserID)
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// @Summary      Get one estimate
// @Tags         estimates
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Estimate ID"
// @Success      200  {object}  response.EstimateResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetByID(c *gin.Context) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
		return
	}

	estimate, err := h.usecase.GetForUser(c.Request.Context(), c.Param("id"), id.UserID, id.IsAdmin())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// @Summary      List every estimate
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   response.EstimateResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /admin/estimates [get]
func (h *EstimateHandler) AdminList(c *gin.Context) {
	list, err := h.usecase.ListAll(c.Request.Context())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

// @Summary      Approve or reject a pending estimate
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path      string                               true  "Estimate ID"
// @Param        payload  body      request.UpdateEstimateStatusRequest  true  "New status"
// @Success      200      {object}  response.EstimateResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /admin/estimates/{id} [patch]
func (h *EstimateHandler) AdminUpdateStatus(c *gin.Context) {
	var payload request.UpdateEstimateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		appErr := mapEstimateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.New("upload exceeds limit")
	}
	return data, nil
}

func prefersAsync(prefer string) bool {
	for _, pref := range strings.Split(prefer, ",") {
		if strings.EqualFold(strings.TrimSpace(pref), "respond-async") {
			return true
		}
	}
	return false
}

func mapEstimateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequirements):
		return pkg.NewDomainErrorSimple("INVALID_REQUIREMENTS", "Requirements are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidImage):
		return pkg.NewDomainErrorSimple("INVALID_IMAGE", "The image could not be processed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEstimateID), errors.Is(err, usecase.ErrInvalidEstimateStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEstimateForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Estimate belongs to another user", http.StatusForbidden)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEstimateTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Only pending estimates can be approved or rejected", http.StatusConflict)
	case errors.Is(err, usecase.ErrModelUnavailable):
		return pkg.NewDomainError("MODEL_UNAVAILABLE", "The pricing model is unavailable", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrInvalidModelResponse):
		return pkg.NewDomainError("INVALID_MODEL_RESPONSE", "The pricing model returned an invalid response", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
