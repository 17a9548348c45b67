package llm

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.2-90b-vision-preview"
	DefaultGeminiModel = "gemini-1.5-flash"
)

// Config carries the generation parameters shared by every provider.
type Config struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

func DefaultConfig() Config {
	return Config{
		Model:       DefaultGroqModel,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   4096,
	}
}
