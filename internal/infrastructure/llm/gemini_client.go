package llm

import (
	"context"
	"errors"
	"strings"

	"furniture_estimates/internal/usecase/interfaces"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient asks a Gemini vision model for the assessment JSON.
type GeminiClient struct {
	client *genai.Client
	cfg    Config
}

var _ interfaces.IPriceEstimator = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey string, cfg Config) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, cfg: cfg}, nil
}

func (c *GeminiClient) Provider() string { return ProviderGemini }

func (c *GeminiClient) Estimate(ctx context.Context, req interfaces.ModelRequest) (string, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(float32(c.cfg.Temperature))
	model.SetTopP(float32(c.cfg.TopP))
	model.SetMaxOutputTokens(int32(c.cfg.MaxTokens))
	model.ResponseMIMEType = "application/json"

	img, err := decodeBase64(req.ImageBase64)
	if err != nil {
		return "", err
	}
	format := strings.TrimPrefix(req.MIME, "image/")
	if format == "" {
		format = "jpeg"
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData(format, img), genai.Text(req.Prompt))
	if err != nil {
		return "", geminiError(err)
	}
	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func geminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &interfaces.ModelCallError{Provider: ProviderGemini, Status: gerr.Code, Body: gerr.Message}
	}
	return &interfaces.ModelCallError{Provider: ProviderGemini, Cause: err}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &interfaces.ResponseShapeError{Reason: "no candidates in response"}
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", &interfaces.ResponseShapeError{Reason: "no content in response"}
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", &interfaces.ResponseShapeError{Reason: "no text parts in response"}
	}
	return sb.String(), nil
}
