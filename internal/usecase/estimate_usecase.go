package usecase

import (
	"context"
	"errors"
	"fmt"
	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/infrastructure/metrics"
	"furniture_estimates/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated       = errors.New("user not authenticated")
	ErrInvalidRequirements   = errors.New("invalid requirements")
	ErrInvalidImage          = errors.New("invalid image")
	ErrEstimateNotFound      = errors.New("estimate not found")
	ErrInvalidEstimateID     = errors.New("invalid estimate id")
	ErrInvalidEstimateStatus = errors.New("invalid estimate status")
	ErrEstimateTransition    = errors.New("estimate status transition not allowed")
	ErrEstimateForbidden     = errors.New("estimate belongs to another user")

	ErrModelUnavailable     = interfaces.ErrModelUnavailable
	ErrInvalidModelResponse = interfaces.ErrInvalidModelResponse
)

// Notification statuses and messages published on the user's status topic.
const (
	NotifyStatusProcessing = "processing"
	NotifyStatusError      = "error"

	notifyMsgProcessing = "Analyzing your image and requirements..."
	notifyMsgFailed     = "Failed to create estimate. Please try again."
)

const DefaultModelTimeout = 60 * time.Second

type CreateEstimateCommand struct {
	UserID       string
	ImageURL     string
	Image        []byte
	Requirements string
}

// IEstimateUseCase exposes the estimate pipeline plus the read and review
// operations around it.
//
//   - POST /v1/estimates => CreateEstimate()
//   - GET /v1/estimates => ListByUser()
//   - GET /v1/estimates/:id => GetForUser()
//   - GET /v1/admin/estimates => ListAll()
//   - PATCH /v1/admin/estimates/:id => UpdateStatus()
type IEstimateUseCase interface {
	CreateEstimate(ctx context.Context, cmd CreateEstimateCommand) (entities.Estimate, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Estimate, error)
	GetForUser(ctx context.Context, id, userID string, admin bool) (entities.Estimate, error)
	ListAll(ctx context.Context) ([]entities.Estimate, error)
	UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.Estimate, error)
}

type EstimateUseCase struct {
	repo         interfaces.IEstimateRepository
	estimator    interfaces.IPriceEstimator
	normalizer   interfaces.IImageNormalizer
	notifier     interfaces.IEstimateNotifier
	log          *zap.Logger
	modelTimeout time.Duration
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	estimator interfaces.IPriceEstimator,
	normalizer interfaces.IImageNormalizer,
	notifier interfaces.IEstimateNotifier,
	log *zap.Logger,
	modelTimeout time.Duration,
) *EstimateUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	if modelTimeout <= 0 {
		modelTimeout = DefaultModelTimeout
	}
	return &EstimateUseCase{
		repo:         repo,
		estimator:    estimator,
		normalizer:   normalizer,
		notifier:     notifier,
		log:          log,
		modelTimeout: modelTimeout,
	}
}

type pipelineFailure struct {
	stage  string
	fields []zap.Field
	err    error
}

// CreateEstimate runs normalize -> prompt -> model -> parse -> persist for
// one upload. Every failure is logged once, mirrored to the user's status
// topic and returned; nothing is retried.
func (u *EstimateUseCase) CreateEstimate(ctx context.Context, cmd CreateEstimateCommand) (entities.Estimate, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return entities.Estimate{}, ErrUnauthenticated
	}
	if strings.TrimSpace(cmd.Requirements) == "" {
		return entities.Estimate{}, ErrInvalidRequirements
	}
	if len(cmd.Image) == 0 {
		return entities.Estimate{}, ErrInvalidImage
	}

	log := u.log.With(zap.String("user_id", userID))
	log.Info("[estimate][usecase] create start", zap.String("image_url", cmd.ImageURL), zap.Int("image_bytes", len(cmd.Image)))
	u.notifier.PublishStatus(ctx, userID, NotifyStatusProcessing, notifyMsgProcessing)

	est, fail := u.run(ctx, userID, cmd)
	if fail != nil {
		fields := append([]zap.Field{zap.String("stage", fail.stage), zap.Error(fail.err)}, fail.fields...)
		log.Error("[estimate][usecase] create failed", fields...)
		metrics.EstimatesFailed.WithLabelValues(fail.stage).Inc()
		u.notifier.PublishStatus(ctx, userID, NotifyStatusError, notifyMsgFailed)
		return entities.Estimate{}, fail.err
	}

	metrics.EstimatesCreated.Inc()
	log.Info("[estimate][usecase] create success", zap.String("estimate_id", est.ID), zap.Float64("price", est.Price))
	u.notifier.PublishResult(ctx, userID, est)
	return est, nil
}

func (u *EstimateUseCase) run(ctx context.Context, userID string, cmd CreateEstimateCommand) (entities.Estimate, *pipelineFailure) {
	img, err := u.normalizer.Normalize(cmd.Image)
	if err != nil {
		return entities.Estimate{}, &pipelineFailure{stage: metrics.StageNormalize, err: fmt.Errorf("%w: %v", ErrInvalidImage, err)}
	}

	raw, err := u.callModel(ctx, interfaces.ModelRequest{
		ImageBase64: img.Base64,
		MIME:        img.MIME,
		Prompt:      BuildPrompt(cmd.Requirements),
	})
	if err != nil {
		return entities.Estimate{}, &pipelineFailure{stage: metrics.StageModel, err: err}
	}

	assessment, err := ParseAssessment(raw)
	if err != nil {
		return entities.Estimate{}, &pipelineFailure{stage: metrics.StageParse, err: err}
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:           uuid.NewString(),
		UserID:       userID,
		ImageURL:     cmd.ImageURL,
		Requirements: cmd.Requirements,
		Price:        assessment.Price,
		Complexity:   assessment.Complexity,
		Materials:    assessment.Materials,
		LaborHours:   assessment.LaborHours,
		Explanation:  assessment.Explanation,
		Status:       entities.EstimateStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		// The assessment is only recoverable from this log line.
		return entities.Estimate{}, &pipelineFailure{
			stage: metrics.StagePersist,
			err:   fmt.Errorf("persist estimate: %w", err),
			fields: []zap.Field{
				zap.String("estimate_id", e.ID),
				zap.String("image_url", e.ImageURL),
				zap.Float64("price", e.Price),
				zap.String("complexity", string(e.Complexity)),
				zap.Strings("materials", e.Materials),
				zap.Float64("labor_hours", e.LaborHours),
				zap.String("explanation", e.Explanation),
			},
		}
	}
	return created, nil
}

func (u *EstimateUseCase) callModel(ctx context.Context, req interfaces.ModelRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.modelTimeout)
	defer cancel()

	provider := u.estimator.Provider()
	start := time.Now()
	raw, err := u.estimator.Estimate(ctx, req)
	metrics.ModelCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err == nil {
		return raw, nil
	}
	if errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrInvalidModelResponse) {
		return "", err
	}
	return "", &interfaces.ModelCallError{Provider: provider, Cause: err}
}

func (u *EstimateUseCase) ListByUser(ctx context.Context, userID string) ([]entities.Estimate, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return u.repo.ListByUserID(ctx, userID)
}

// GetForUser returns the estimate when userID owns it or admin is set.
func (u *EstimateUseCase) GetForUser(ctx context.Context, id, userID string, admin bool) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if strings.TrimSpace(userID) == "" {
		return entities.Estimate{}, ErrUnauthenticated
	}

	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if !admin && e.UserID != userID {
		return entities.Estimate{}, ErrEstimateForbidden
	}
	return e, nil
}

func (u *EstimateUseCase) ListAll(ctx context.Context) ([]entities.Estimate, error) {
	return u.repo.ListAll(ctx)
}

// UpdateStatus performs the admin review transition pending -> approved|rejected.
func (u *EstimateUseCase) UpdateStatus(ctx context.Context, id string, status entities.EstimateStatus) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if !status.Valid() || status == entities.EstimateStatusPending {
		return entities.Estimate{}, ErrInvalidEstimateStatus
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if current.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if !current.Status.CanTransitionTo(status) {
		return entities.Estimate{}, ErrEstimateTransition
	}

	updated, err := u.repo.UpdateStatusByID(ctx, id, status)
	if err != nil {
		return entities.Estimate{}, err
	}
	if updated.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	u.log.Info("[estimate][usecase] status updated", zap.String("estimate_id", id), zap.String("from", string(current.Status)), zap.String("to", string(status)))
	return updated, nil
}
