package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"furniture_estimates/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newGroq(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGroqClient(srv.URL+"/", "test-key", DefaultConfig(), srv.Client(), zaptest.NewLogger(t))
}

var sampleRequest = interfaces.ModelRequest{ImageBase64: "aW1n", MIME: "image/jpeg", Prompt: "price this chair"}

func TestGroqClient_Estimate_Success(t *testing.T) {
	c := newGroq(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		assert.Equal(t, "llama-3.2-90b-vision-preview", body["model"])
		assert.Equal(t, 0.7, body["temperature"])
		assert.Equal(t, 0.9, body["top_p"])
		assert.Equal(t, float64(4096), body["max_tokens"])
		assert.Equal(t, false, body["stream"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])

		msgs, _ := body["messages"].([]any)
		if !assert.Len(t, msgs, 1) {
			return
		}
		content, _ := msgs[0].(map[string]any)["content"].([]any)
		if !assert.Len(t, content, 2) {
			return
		}
		assert.Equal(t, "price this chair", content[0].(map[string]any)["text"])
		img := content[1].(map[string]any)["image_url"].(map[string]any)
		assert.Equal(t, "data:image/jpeg;base64,aW1n", img["url"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"price\":350}"}}]}`))
	})

	got, err := c.Estimate(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, `{"price":350}`, got)
	assert.Equal(t, "groq", c.Provider())
}

func TestGroqClient_Estimate_NonSuccessStatus(t *testing.T) {
	c := newGroq(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := c.Estimate(context.Background(), sampleRequest)
	var callErr *interfaces.ModelCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, http.StatusTooManyRequests, callErr.Status)
	assert.Contains(t, callErr.Body, "rate limited")
	assert.True(t, errors.Is(err, interfaces.ErrModelUnavailable))
}

func TestGroqClient_Estimate_BadEnvelope(t *testing.T) {
	for name, body := range map[string]string{
		"no choices":   `{"choices":[]}`,
		"null content": `{"choices":[{"message":{}}]}`,
		"not json":     `<html>oops</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newGroq(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.Estimate(context.Background(), sampleRequest)
			var shapeErr *interfaces.ResponseShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.True(t, errors.Is(err, interfaces.ErrInvalidModelResponse))
		})
	}
}

func TestGroqClient_Estimate_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newGroq(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Estimate(ctx, sampleRequest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrModelUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
