package routes

import (
	"context"
	"fmt"
	"net/http"

	"furniture_estimates/internal/infrastructure/awsclient"
	"furniture_estimates/internal/infrastructure/config"
	"furniture_estimates/internal/infrastructure/llm"
	"furniture_estimates/internal/infrastructure/realtime"
	"furniture_estimates/internal/infrastructure/redisclient"
	"furniture_estimates/internal/infrastructure/storage"
	"furniture_estimates/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/zap"
)

func newImageStorage(cfg *config.Config, awsCfg aws.Config) (interfaces.IImageStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3Storage(awsclient.NewS3(awsCfg), cfg.AWSBucketName, cfg.AWSRegion), nil
	default:
		local, err := storage.NewLocalStorage(cfg.UploadsDir)
		if err != nil {
			return nil, fmt.Errorf("prepare uploads dir: %w", err)
		}
		return local, nil
	}
}

func modelConfig(cfg *config.Config, model string) llm.Config {
	return llm.Config{
		Model:       model,
		Temperature: cfg.ModelTemperature,
		TopP:        cfg.ModelTopP,
		MaxTokens:   cfg.ModelMaxTokens,
	}
}

func newEstimator(ctx context.Context, cfg *config.Config, log *zap.Logger, deps *dependencies) (interfaces.IPriceEstimator, error) {
	switch cfg.ModelProvider {
	case llm.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, modelConfig(cfg, cfg.GeminiModel))
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		deps.closers = append(deps.closers, client.Close)
		return client, nil
	default:
		if cfg.GroqAPIKey == "" {
			log.Warn("[server][routes] GROQ_API_KEY is empty; model calls will be rejected")
		}
		// The use case bounds every call with MODEL_TIMEOUT.
		return llm.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, modelConfig(cfg, cfg.GroqModel), &http.Client{}, log), nil
	}
}

// newNotifier returns the Hub notifier, or with NOTIFIER_BACKEND=redis a
// Redis publisher plus a relay feeding the local Hub.
func newNotifier(ctx context.Context, cfg *config.Config, hub *realtime.Hub, log *zap.Logger, deps *dependencies) (interfaces.IEstimateNotifier, error) {
	if cfg.NotifierBackend != "redis" {
		return realtime.NewHubNotifier(hub, log), nil
	}

	client, err := redisclient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	deps.closers = append(deps.closers, client.Close)

	relay := realtime.NewRedisRelay(client, hub, log)
	go func() {
		if err := relay.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("[server][routes] redis relay stopped", zap.Error(err))
		}
	}()
	return realtime.NewRedisNotifier(client, log), nil
}
