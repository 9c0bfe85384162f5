package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"anoa.com/livestockhub/pkg/apperror"
)

// ErrNotConfigured is returned by services asked to upload without a provider.
var ErrNotConfigured = apperror.New(http.StatusServiceUnavailable, "file uploads are not configured", nil)

// ImageStorage defines contract for the upload provider backing animal photos,
// listing images, avatars and content media.
type ImageStorage interface {
	// UploadImage uploads image from reader and returns the public URL.
	// folder is optional logical folder in storage (e.g. "avatars").
	UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteImage deletes image from storage using its URL.
	DeleteImage(ctx context.Context, fileURL string) error
}

type Options struct {
	Driver string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadFolder        string

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
}

// New picks the provider named by opts.Driver. An empty driver with no
// credentials yields a nil storage, and uploads are then rejected by callers.
func New(ctx context.Context, opts Options) (ImageStorage, error) {
	switch opts.Driver {
	case "s3":
		return NewS3Storage(ctx, opts)
	case "cloudinary":
		return NewCloudinaryStorage(opts)
	case "":
		if opts.CloudinaryURL == "" && opts.CloudinaryCloudName == "" {
			return nil, nil
		}
		return NewCloudinaryStorage(opts)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
