package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/usecase/interfaces"
	mock_interfaces "furniture_estimates/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

const validModelJSON = `{"price":350,"complexity":"medium","materials":["walnut","brass hardware"],"laborHours":24,"explanation":"walnut chair without arms"}`

type pipelineMocks struct {
	repo       *mock_interfaces.MockIEstimateRepository
	estimator  *mock_interfaces.MockIPriceEstimator
	normalizer *mock_interfaces.MockIImageNormalizer
	notifier   *mock_interfaces.MockIEstimateNotifier
}

func newPipeline(t *testing.T, timeout time.Duration) (*EstimateUseCase, pipelineMocks) {
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		repo:       mock_interfaces.NewMockIEstimateRepository(ctrl),
		estimator:  mock_interfaces.NewMockIPriceEstimator(ctrl),
		normalizer: mock_interfaces.NewMockIImageNormalizer(ctrl),
		notifier:   mock_interfaces.NewMockIEstimateNotifier(ctrl),
	}
	m.estimator.EXPECT().Provider().Return("groq").AnyTimes()
	uc := NewEstimateUseCase(m.repo, m.estimator, m.normalizer, m.notifier, zaptest.NewLogger(t), timeout)
	return uc, m
}

func chairCommand() CreateEstimateCommand {
	return CreateEstimateCommand{
		UserID:       "U",
		ImageURL:     "uploads/chair.jpg",
		Image:        []byte("raw-image"),
		Requirements: "walnut finish, no arms",
	}
}

func TestEstimateUseCase_CreateEstimate(t *testing.T) {
	t.Run("unauthenticated fails before any io", func(t *testing.T) {
		uc, _ := newPipeline(t, time.Second)
		cmd := chairCommand()
		cmd.UserID = "  "
		_, err := uc.CreateEstimate(context.Background(), cmd)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("blank requirements", func(t *testing.T) {
		uc, _ := newPipeline(t, time.Second)
		cmd := chairCommand()
		cmd.Requirements = " \n "
		_, err := uc.CreateEstimate(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidRequirements) {
			t.Fatalf("expected ErrInvalidRequirements, got %v", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		uc, _ := newPipeline(t, time.Second)
		cmd := chairCommand()
		cmd.Image = nil
		_, err := uc.CreateEstimate(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("expected ErrInvalidImage, got %v", err)
		}
	})

	t.Run("success persists the model answer verbatim", func(t *testing.T) {
		uc, m := newPipeline(t, time.Second)

		gomock.InOrder(
			m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, "Analyzing your image and requirements..."),
			m.normalizer.EXPECT().Normalize([]byte("raw-image")).Return(interfaces.NormalizedImage{Base64: "b64", MIME: "image/jpeg"}, nil),
			m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.ModelRequest) (string, error) {
				if req.ImageBase64 != "b64" || req.MIME != "image/jpeg" {
					t.Fatalf("unexpected image in request: %+v", req)
				}
				if !strings.HasSuffix(req.Prompt, "Customer Requirements: walnut finish, no arms") {
					t.Fatalf("prompt does not carry requirements")
				}
				return validModelJSON, nil
			}),
			m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Estimate{})).DoAndReturn(func(_ context.Context, e entities.Estimate) (entities.Estimate, error) {
				return e, nil
			}),
			m.notifier.EXPECT().PublishResult(gomock.Any(), "U", gomock.AssignableToTypeOf(entities.Estimate{})),
		)

		got, err := uc.CreateEstimate(context.Background(), chairCommand())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.ID == "" || got.UserID != "U" || got.Status != entities.EstimateStatusPending {
			t.Fatalf("unexpected estimate: %+v", got)
		}
		if got.Price != 350 || got.Complexity != entities.EstimateComplexityMedium || got.LaborHours != 24 {
			t.Fatalf("unexpected result fields: %+v", got)
		}
		if len(got.Materials) != 2 || got.Materials[0] != "walnut" || got.Explanation != "walnut chair without arms" {
			t.Fatalf("unexpected result fields: %+v", got)
		}
		if got.ImageURL != "uploads/chair.jpg" || got.Requirements != "walnut finish, no arms" {
			t.Fatalf("unexpected source fields: %+v", got)
		}
		if !got.CreatedAt.Equal(got.UpdatedAt) {
			t.Fatalf("expected created_at == updated_at")
		}
	})

	t.Run("model error publishes error and persists nothing", func(t *testing.T) {
		uc, m := newPipeline(t, time.Second)

		gomock.InOrder(
			m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, gomock.Any()),
			m.normalizer.EXPECT().Normalize(gomock.Any()).Return(interfaces.NormalizedImage{Base64: "b64", MIME: "image/jpeg"}, nil),
			m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return("", &interfaces.ModelCallError{Provider: "groq", Status: 500}),
			m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusError, "Failed to create estimate. Please try again."),
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		m.notifier.EXPECT().PublishResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.CreateEstimate(context.Background(), chairCommand())
		if !errors.Is(err, ErrModelUnavailable) {
			t.Fatalf("expected ErrModelUnavailable, got %v", err)
		}
	})

	t.Run("model timeout is bounded", func(t *testing.T) {
		uc, m := newPipeline(t, 20*time.Millisecond)

		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, gomock.Any())
		m.normalizer.EXPECT().Normalize(gomock.Any()).Return(interfaces.NormalizedImage{Base64: "b64", MIME: "image/jpeg"}, nil)
		m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ interfaces.ModelRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusError, gomock.Any())

		_, err := uc.CreateEstimate(context.Background(), chairCommand())
		if !errors.Is(err, ErrModelUnavailable) || !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline wrapped as model error, got %v", err)
		}
	})

	t.Run("malformed model content", func(t *testing.T) {
		uc, m := newPipeline(t, time.Second)

		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, gomock.Any())
		m.normalizer.EXPECT().Normalize(gomock.Any()).Return(interfaces.NormalizedImage{Base64: "b64", MIME: "image/jpeg"}, nil)
		m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(`{"price":350,"complexity":"medium"}`, nil)
		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusError, gomock.Any())
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.CreateEstimate(context.Background(), chairCommand())
		if !errors.Is(err, ErrInvalidModelResponse) {
			t.Fatalf("expected ErrInvalidModelResponse, got %v", err)
		}
	})

	t.Run("normalize failure", func(t *testing.T) {
		uc, m := newPipeline(t, time.Second)

		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, gomock.Any())
		m.normalizer.EXPECT().Normalize(gomock.Any()).Return(interfaces.NormalizedImage{}, errors.New("unknown format"))
		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusError, gomock.Any())

		_, err := uc.CreateEstimate(context.Background(), chairCommand())
		if !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("expected ErrInvalidImage, got %v", err)
		}
	})

	t.Run("persistence failure", func(t *testing.T) {
		uc, m := newPipeline(t, time.Second)

		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusProcessing, gomock.Any())
		m.normalizer.EXPECT().Normalize(gomock.Any()).Return(interfaces.NormalizedImage{Base64: "b64", MIME: "image/jpeg"}, nil)
		m.estimator.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validModelJSON, nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, errors.New("db"))
		m.notifier.EXPECT().PublishStatus(gomock.Any(), "U", NotifyStatusError, gomock.Any())
		m.notifier.EXPECT().PublishResult(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.CreateEstimate(context.Background(), chairCommand())
		if err == nil || !strings.Contains(err.Error(), "db") {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestEstimateUseCase_GetForUser(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil, 0)
		_, err := uc.GetForUser(context.Background(), " ", "U", false)
		if !errors.Is(err, ErrInvalidEstimateID) {
			t.Fatalf("expected ErrInvalidEstimateID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Estimate{}, nil)

		_, err := uc.GetForUser(context.Background(), "e-1", "U", false)
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("other user forbidden, admin allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Estimate{ID: "e-1", UserID: "owner"}, nil).Times(2)

		if _, err := uc.GetForUser(context.Background(), "e-1", "intruder", false); !errors.Is(err, ErrEstimateForbidden) {
			t.Fatalf("expected ErrEstimateForbidden, got %v", err)
		}
		got, err := uc.GetForUser(context.Background(), "e-1", "admin-1", true)
		if err != nil || got.ID != "e-1" {
			t.Fatalf("expected admin read, got %+v %v", got, err)
		}
	})
}

func TestEstimateUseCase_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
	uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

	if _, err := uc.ListByUser(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	repo.EXPECT().ListByUserID(gomock.Any(), "U").Return([]entities.Estimate{{ID: "b"}, {ID: "a"}}, nil)
	got, err := uc.ListByUser(context.Background(), "U")
	if err != nil || len(got) != 2 || got[0].ID != "b" {
		t.Fatalf("unexpected list: %+v %v", got, err)
	}
}

func TestEstimateUseCase_UpdateStatus(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		uc := NewEstimateUseCase(nil, nil, nil, nil, nil, 0)
		for _, s := range []entities.EstimateStatus{"", "failed", entities.EstimateStatusPending} {
			if _, err := uc.UpdateStatus(context.Background(), "e-1", s); !errors.Is(err, ErrInvalidEstimateStatus) {
				t.Fatalf("status %q: expected ErrInvalidEstimateStatus, got %v", s, err)
			}
		}
	})

	t.Run("already reviewed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Estimate{ID: "e-1", Status: entities.EstimateStatusApproved}, nil)
		repo.EXPECT().UpdateStatusByID(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.UpdateStatus(context.Background(), "e-1", entities.EstimateStatusRejected)
		if !errors.Is(err, ErrEstimateTransition) {
			t.Fatalf("expected ErrEstimateTransition, got %v", err)
		}
	})

	t.Run("approve pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Estimate{ID: "e-1", Status: entities.EstimateStatusPending}, nil)
		repo.EXPECT().UpdateStatusByID(gomock.Any(), "e-1", entities.EstimateStatusApproved).
			Return(entities.Estimate{ID: "e-1", Status: entities.EstimateStatusApproved}, nil)

		got, err := uc.UpdateStatus(context.Background(), "e-1", entities.EstimateStatusApproved)
		if err != nil || got.Status != entities.EstimateStatusApproved {
			t.Fatalf("unexpected result: %+v %v", got, err)
		}
	})

	t.Run("vanished between read and update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := NewEstimateUseCase(repo, nil, nil, nil, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Estimate{ID: "e-1", Status: entities.EstimateStatusPending}, nil)
		repo.EXPECT().UpdateStatusByID(gomock.Any(), "e-1", entities.EstimateStatusRejected).Return(entities.Estimate{}, nil)

		_, err := uc.UpdateStatus(context.Background(), "e-1", entities.EstimateStatusRejected)
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}
