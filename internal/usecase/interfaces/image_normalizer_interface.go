package interfaces

// NormalizedImage is the transport form of an uploaded image.
type NormalizedImage struct {
	Base64 string
	MIME   string
}

// IImageNormalizer bounds an image to the size sent to the vision model.
type IImageNormalizer interface {
	Normalize(data []byte) (NormalizedImage, error)
}
