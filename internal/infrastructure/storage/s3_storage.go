package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"furniture_estimates/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Storage.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client S3API
	bucket string
	region string
	now    func() time.Time
}

var _ interfaces.IImageStorage = (*S3Storage)(nil)

func NewS3Storage(client S3API, bucket, region string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, region: region, now: time.Now}
}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// ContentTypeFor maps an upload's extension to the type the object is served
// with. The client-declared type is never used.
func ContentTypeFor(filename string) string {
	if ct, ok := imageContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Save uploads data to estimates/<unix-ms>-<random name> and returns the
// public object URL.
func (s *S3Storage) Save(ctx context.Context, filename, _ string, data []byte) (string, error) {
	name, err := RandomName(filename)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("estimates/%d-%s", s.now().UnixMilli(), name)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ContentTypeFor(filename)),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
