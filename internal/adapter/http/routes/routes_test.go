package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furniture_estimates/internal/adapter/http/handlers"
	"furniture_estimates/internal/adapter/http/handlers/mocks"
	"furniture_estimates/internal/domain/entities"
	"furniture_estimates/internal/infrastructure/config"
	"furniture_estimates/internal/infrastructure/llm"
	"furniture_estimates/internal/infrastructure/realtime"
	mock_interfaces "furniture_estimates/internal/usecase/interfaces/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const testSecret = "routes-secret"

func token(t *testing.T, sub, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockIEstimateUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	estimates := mocks.NewMockIEstimateUseCase(ctrl)
	payments := mocks.NewMockIEstimatePaymentUseCase(ctrl)
	store := mock_interfaces.NewMockIImageStorage(ctrl)

	log := zap.NewNop()
	h := Handlers{
		Estimates: handlers.NewEstimateHandler(estimates, store, log, handlers.EstimateHandlerOptions{}),
		Payments:  handlers.NewEstimatePaymentHandler(payments, log),
		Events:    handlers.NewEventsHandler(realtime.NewHub(log, 0), log),
	}
	cfg := &config.Config{JWTSecret: testSecret, FrontendURL: "http://localhost:3000"}
	return NewRouter(cfg, log, h), estimates
}

func serve(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	t.Run("ping is public", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := serve(r, http.MethodGet, "/v1/ping", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := serve(r, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "realtime_connections_active")
	})

	t.Run("estimates require a token", func(t *testing.T) {
		r, _ := newTestRouter(t)
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/v1/estimates", "").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/v1/estimates", "").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/v1/estimates/events", "").Code)
	})

	t.Run("event stream accepts a query token", func(t *testing.T) {
		r, _ := newTestRouter(t)
		srv := httptest.NewServer(r)
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/estimates/events?access_token="+token(t, "U", "customer"), nil)
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		other := serve(r, http.MethodGet, "/v1/estimates?access_token="+token(t, "U", "customer"), "")
		assert.Equal(t, http.StatusUnauthorized, other.Code)
	})

	t.Run("own estimates", func(t *testing.T) {
		r, uc := newTestRouter(t)
		uc.EXPECT().ListByUser(gomock.Any(), "U").Return([]entities.Estimate{{ID: "e-1"}}, nil)
		w := serve(r, http.MethodGet, "/v1/estimates", token(t, "U", "customer"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin routes need the admin role", func(t *testing.T) {
		r, uc := newTestRouter(t)
		assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/v1/admin/estimates", token(t, "U", "customer")).Code)

		uc.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
		w := serve(r, http.MethodGet, "/v1/admin/estimates", token(t, "A", "admin"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestProviders(t *testing.T) {
	log := zap.NewNop()

	t.Run("local storage", func(t *testing.T) {
		cfg := &config.Config{StorageBackend: "local", UploadsDir: t.TempDir()}
		s, err := newImageStorage(cfg, aws.Config{})
		require.NoError(t, err)
		ref, err := s.Save(context.Background(), "a.png", "image/png", []byte("x"))
		require.NoError(t, err)
		assert.NotEmpty(t, ref)
	})

	t.Run("groq estimator", func(t *testing.T) {
		cfg := &config.Config{ModelProvider: llm.ProviderGroq, GroqBaseURL: llm.DefaultGroqBaseURL, GroqModel: llm.DefaultGroqModel}
		est, err := newEstimator(context.Background(), cfg, log, &dependencies{})
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderGroq, est.Provider())
	})

	t.Run("gemini without key", func(t *testing.T) {
		cfg := &config.Config{ModelProvider: llm.ProviderGemini}
		_, err := newEstimator(context.Background(), cfg, log, &dependencies{})
		assert.Error(t, err)
	})

	t.Run("hub notifier", func(t *testing.T) {
		n, err := newNotifier(context.Background(), &config.Config{NotifierBackend: "hub"}, realtime.NewHub(log, 0), log, &dependencies{})
		require.NoError(t, err)
		assert.IsType(t, &realtime.HubNotifier{}, n)
	})

	t.Run("redis notifier relays into the hub", func(t *testing.T) {
		mr := miniredis.RunT(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := realtime.NewHub(log, 0)
		deps := &dependencies{}
		defer deps.Close()
		n, err := newNotifier(ctx, &config.Config{NotifierBackend: "redis", RedisAddr: mr.Addr()}, hub, log, deps)
		require.NoError(t, err)
		assert.IsType(t, &realtime.RedisNotifier{}, n)
		require.Len(t, deps.closers, 1)

		sub := hub.Subscribe("U")
		defer hub.Unsubscribe(sub)
		require.Eventually(t, func() bool { return mr.PubSubNumPat() == 1 }, 2*time.Second, 10*time.Millisecond)

		n.PublishStatus(ctx, "U", "processing", "Analyzing your image and requirements...")
		select {
		case ev := <-sub.Events():
			assert.Equal(t, realtime.StatusTopic("U"), ev.Topic)
		case <-time.After(2 * time.Second):
			t.Fatalf("relay did not deliver the event")
		}
	})
}
