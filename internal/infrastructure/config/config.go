package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the API reads at startup. Keys map one to one to
// environment variables (http_port -> HTTP_PORT).
type Config struct {
	HTTPPort  int    `mapstructure:"http_port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	JWTSecret string `mapstructure:"jwt_secret"`

	AWSRegion        string `mapstructure:"aws_region"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
	EstimatesTable   string `mapstructure:"estimates_table"`
	PaymentsTable    string `mapstructure:"payments_table"`

	StorageBackend string `mapstructure:"storage_backend"`
	UploadsDir     string `mapstructure:"uploads_dir"`
	AWSBucketName  string `mapstructure:"aws_bucket_name"`

	ModelProvider    string        `mapstructure:"model_provider"`
	GroqAPIKey       string        `mapstructure:"groq_api_key"`
	GroqBaseURL      string        `mapstructure:"groq_base_url"`
	GroqModel        string        `mapstructure:"groq_model"`
	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	GeminiModel      string        `mapstructure:"gemini_model"`
	ModelTemperature float64       `mapstructure:"model_temperature"`
	ModelTopP        float64       `mapstructure:"model_top_p"`
	ModelMaxTokens   int           `mapstructure:"model_max_tokens"`
	ModelTimeout     time.Duration `mapstructure:"model_timeout"`

	EstimateAsyncIntake   bool  `mapstructure:"estimate_async_intake"`
	EstimateMaxImageBytes int64 `mapstructure:"estimate_max_image_bytes"`

	NotifierBackend string `mapstructure:"notifier_backend"`
	RedisAddr       string `mapstructure:"redis_addr"`
	RedisPassword   string `mapstructure:"redis_password"`
	RedisDB         int    `mapstructure:"redis_db"`

	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token"`
	PaymentGatewayMock     bool   `mapstructure:"payment_gateway_mock"`

	FrontendURL string `mapstructure:"frontend_url"`
}

var defaults = map[string]any{
	"http_port":  8080,
	"log_level":  "info",
	"log_format": "json",
	"jwt_secret": "",

	"aws_region":        "us-east-1",
	"dynamodb_endpoint": "",
	"estimates_table":   "estimates",
	"payments_table":    "payments",

	"storage_backend": "local",
	"uploads_dir":     "uploads",
	"aws_bucket_name": "",

	"model_provider":    "groq",
	"groq_api_key":      "",
	"groq_base_url":     "https://api.groq.com/openai/v1",
	"groq_model":        "llama-3.2-90b-vision-preview",
	"gemini_api_key":    "",
	"gemini_model":      "gemini-1.5-flash",
	"model_temperature": 0.7,
	"model_top_p":       0.9,
	"model_max_tokens":  4096,
	"model_timeout":     "60s",

	"estimate_async_intake":    false,
	"estimate_max_image_bytes": 5 << 20,

	"notifier_backend": "hub",
	"redis_addr":       "localhost:6379",
	"redis_password":   "",
	"redis_db":         0,

	"mercadopago_access_token": "",
	"payment_gateway_mock":     false,

	"frontend_url": "http://localhost:3000",
}

// Load reads config.yaml (optional) from . or ./configs and overlays the
// process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.StorageBackend {
	case "local":
	case "s3":
		if cfg.AWSBucketName == "" {
			return fmt.Errorf("AWS_BUCKET_NAME is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	switch cfg.ModelProvider {
	case "groq", "gemini":
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q", cfg.ModelProvider)
	}

	switch cfg.NotifierBackend {
	case "hub", "redis":
	default:
		return fmt.Errorf("unknown NOTIFIER_BACKEND %q", cfg.NotifierBackend)
	}

	if cfg.ModelTimeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT must be positive")
	}
	if cfg.EstimateMaxImageBytes <= 0 {
		return fmt.Errorf("ESTIMATE_MAX_IMAGE_BYTES must be positive")
	}
	return nil
}
