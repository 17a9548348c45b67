package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"furniture_estimates/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const maxErrorBody = 2048

// GroqClient calls the OpenAI-compatible chat completions endpoint of Groq
// with one image and one prompt, in JSON mode.
type GroqClient struct {
	baseURL string
	apiKey  string
	cfg     Config
	http    *http.Client
	log     *zap.Logger
}

var _ interfaces.IPriceEstimator = (*GroqClient)(nil)

// NewGroqClient builds a client. Timeouts come from the caller's context;
// httpClient may be nil.
func NewGroqClient(baseURL, apiKey string, cfg Config, httpClient *http.Client, log *zap.Logger) *GroqClient {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGroqModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GroqClient{baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey, cfg: cfg, http: httpClient, log: log}
}

func (c *GroqClient) Provider() string { return ProviderGroq }

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	TopP           float64        `json:"top_p"`
	ResponseFormat responseFormat `json:"response_format"`
	Stream         bool           `json:"stream"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *GroqClient) Estimate(ctx context.Context, req interfaces.ModelRequest) (string, error) {
	mime := req.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: req.Prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: "data:" + mime + ";base64," + req.ImageBase64}},
			},
		}},
		Temperature:    c.cfg.Temperature,
		MaxTokens:      c.cfg.MaxTokens,
		TopP:           c.cfg.TopP,
		ResponseFormat: responseFormat{Type: "json_object"},
		Stream:         false,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("[estimate][groq] sending request", zap.String("model", c.cfg.Model), zap.Int("body_bytes", len(body)))
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &interfaces.ModelCallError{Provider: ProviderGroq, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn("[estimate][groq] non-success status", zap.Int("status", resp.StatusCode), zap.ByteString("body", snippet))
		return "", &interfaces.ModelCallError{Provider: ProviderGroq, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if ctx.Err() != nil {
			return "", &interfaces.ModelCallError{Provider: ProviderGroq, Cause: ctx.Err()}
		}
		return "", &interfaces.ResponseShapeError{Reason: fmt.Sprintf("decode completion envelope: %v", err)}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == nil {
		return "", &interfaces.ResponseShapeError{Reason: "completion has no choices[0].message.content"}
	}
	return *out.Choices[0].Message.Content, nil
}
