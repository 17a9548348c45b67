package interfaces

import "context"

type ModelRequest struct {
	ImageBase64 string
	MIME        string
	Prompt      string
}

// IPriceEstimator calls a vision-language model and returns the raw JSON
// content of its single completion.
type IPriceEstimator interface {
	Estimate(ctx context.Context, req ModelRequest) (string, error)
	Provider() string
}
