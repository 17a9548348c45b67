package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentPayload          = errors.New("invalid payment payload")
	ErrEstimateNotApproved            = errors.New("estimate not approved")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
)

// IEstimatePaymentUseCase charges a deposit for an approved estimate.
//
//   - POST /v1/estimates/:id/payments => CreateDeposit()
//   - GET /v1/estimates/:id/payments => ListByEstimate()
type IEstimatePaymentUseCase interface {
	CreateDeposit(ctx context.Context, estimateID, userID string, payload json.RawMessage) (entities.EstimatePayment, error)
	ListByEstimate(ctx context.Context, estimateID, userID string) ([]entities.EstimatePayment, error)
}

type EstimatePaymentUseCase struct {
	repo         interfaces.IEstimatePaymentRepository
	estimateRepo interfaces.IEstimateRepository
	gateway      interfaces.IPaymentGateway
	mockMode     bool
	log          *zap.Logger
}

var _ IEstimatePaymentUseCase = (*EstimatePaymentUseCase)(nil)

// NewEstimatePaymentUseCase builds the use case. With mockMode set the
// gateway is never called and an approved provider response is synthesized.
func NewEstimatePaymentUseCase(
	repo interfaces.IEstimatePaymentRepository,
	estimateRepo interfaces.IEstimateRepository,
	gateway interfaces.IPaymentGateway,
	mockMode bool,
	log *zap.Logger,
) *EstimatePaymentUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &EstimatePaymentUseCase{repo: repo, estimateRepo: estimateRepo, gateway: gateway, mockMode: mockMode, log: log}
}

func (u *EstimatePaymentUseCase) CreateDeposit(ctx context.Context, estimateID, userID string, payload json.RawMessage) (entities.EstimatePayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.EstimatePayment{}, ErrInvalidEstimateID
	}
	if strings.TrimSpace(userID) == "" {
		return entities.EstimatePayment{}, ErrUnauthenticated
	}
	log := u.log.With(zap.String("estimate_id", estimateID), zap.String("user_id", userID))

	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		log.Warn("[payment][usecase] payload is not a json object")
		return entities.EstimatePayment{}, ErrInvalidPaymentPayload
	}
	if !u.mockMode {
		if u.gateway == nil {
			return entities.EstimatePayment{}, ErrPaymentGatewayNotConfigured
		}
		if !hasNonEmptyString(reqMap, "payment_method_id") || !hasPayer(reqMap) {
			log.Warn("[payment][usecase] missing payment_method_id or payer")
			return entities.EstimatePayment{}, ErrInvalidPaymentPayload
		}
	}

	est, err := u.ownedEstimate(ctx, estimateID, userID)
	if err != nil {
		return entities.EstimatePayment{}, err
	}
	if est.Status != entities.EstimateStatusApproved {
		log.Info("[payment][usecase] estimate not approved", zap.String("status", string(est.Status)))
		return entities.EstimatePayment{}, ErrEstimateNotApproved
	}

	// The amount always comes from the stored estimate.
	reqMap["transaction_amount"] = est.Price
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = estimateID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Furniture estimate %s", estimateID)
	}
	body, err := json.Marshal(reqMap)
	if err != nil {
		return entities.EstimatePayment{}, err
	}

	var providerID, providerStatus string
	var providerResp json.RawMessage
	if u.mockMode {
		log.Info("[payment][usecase] mock mode enabled; skipping payment gateway")
		providerID, providerStatus, providerResp, err = mockProviderResponse(reqMap)
	} else {
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, body)
		err = classifyGatewayError(err)
	}
	if err != nil {
		log.Error("[payment][usecase] payment gateway failed", zap.Error(err))
		return entities.EstimatePayment{}, err
	}

	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response is not json", zap.Error(err))
	}

	p := entities.EstimatePayment{
		ID:                 providerID,
		EstimateID:         estimateID,
		UserID:             est.UserID,
		Amount:             est.Price,
		Date:               time.Now().UTC(),
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.EstimatePayment{}, err
	}
	log.Info("[payment][usecase] deposit created", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *EstimatePaymentUseCase) ListByEstimate(ctx context.Context, estimateID, userID string) ([]entities.EstimatePayment, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidEstimateID
	}
	if _, err := u.ownedEstimate(ctx, estimateID, userID); err != nil {
		return nil, err
	}
	return u.repo.ListByEstimateID(ctx, estimateID)
}

func (u *EstimatePaymentUseCase) ownedEstimate(ctx context.Context, estimateID, userID string) (entities.Estimate, error) {
	est, err := u.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if est.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if est.UserID != userID {
		return entities.Estimate{}, ErrEstimateForbidden
	}
	return est, nil
}

func mockProviderResponse(req map[string]any) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func paymentStatusFromProvider(s string) entities.PaymentStatus {
	switch strings.ToLower(s) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusRejected
	default:
		return entities.PaymentStatusPending
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	if hasNonEmptyString(payer, "email") {
		return true
	}
	id, ok := payer["id"]
	return ok && id != nil && strings.TrimSpace(fmt.Sprintf("%v", id)) != ""
}

// classifyGatewayError maps Mercado Pago error bodies to sentinels.
func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	default:
		return err
	}
}
