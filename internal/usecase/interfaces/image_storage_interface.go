package interfaces

import "context"

// IImageStorage persists an uploaded image and returns a stable reference
// (a relative path or a URL) that is stored on the estimate.
type IImageStorage interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}
