package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	// decoders for the accepted upload formats
	_ "image/gif"
	_ "image/png"

	"furniture_estimates/internal/usecase/interfaces"

	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 800
	DefaultQuality   = 80

	// DefaultMaxPixels caps the decoded size of an upload.
	DefaultMaxPixels = 40_000_000
)

var ErrImageTooLarge = errors.New("image dimensions exceed limit")

// JPEGNormalizer fits an image inside MaxWidth x MaxHeight, keeping its
// aspect ratio, and re-encodes it as JPEG. Smaller images are not upscaled.
type JPEGNormalizer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
	MaxPixels int
}

var _ interfaces.IImageNormalizer = (*JPEGNormalizer)(nil)

func NewJPEGNormalizer() *JPEGNormalizer {
	return &JPEGNormalizer{MaxWidth: DefaultMaxWidth, MaxHeight: DefaultMaxHeight, Quality: DefaultQuality, MaxPixels: DefaultMaxPixels}
}

func (n *JPEGNormalizer) Normalize(data []byte) (interfaces.NormalizedImage, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return interfaces.NormalizedImage{}, fmt.Errorf("decode image header: %w", err)
	}
	if n.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(n.MaxPixels) {
		return interfaces.NormalizedImage{}, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return interfaces.NormalizedImage{}, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	w, h := FitInside(b.Dx(), b.Dy(), n.MaxWidth, n.MaxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: n.Quality}); err != nil {
		return interfaces.NormalizedImage{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return interfaces.NormalizedImage{
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MIME:   "image/jpeg",
	}, nil
}

// FitInside returns the largest size with the aspect ratio of w x h that fits
// in maxW x maxH, never larger than the original.
func FitInside(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	// Compare w/maxW against h/maxH without floats.
	if w*maxH >= h*maxW {
		nh := h * maxW / w
		if nh < 1 {
			nh = 1
		}
		return maxW, nh
	}
	nw := w * maxH / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxH
}
