package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Storage struct {
	client     *s3.Client
	bucket     string
	rootFolder string
	publicBase string
}

// NewS3Storage uploads to an S3 compatible bucket. S3_ENDPOINT allows local
// stacks such as MinIO or localstack.
func NewS3Storage(ctx context.Context, opts Options) (ImageStorage, error) {
	if opts.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.S3Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.S3Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimRight(opts.S3PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.S3Bucket, cfg.Region)
	}

	return &s3Storage{
		client:     client,
		bucket:     opts.S3Bucket,
		rootFolder: opts.UploadFolder,
		publicBase: publicBase,
	}, nil
}

func (s *s3Storage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	key := path.Join(s.rootFolder, folder, fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileName)))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(fileName)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object to s3: %w", err)
	}

	return s.publicBase + "/" + key, nil
}

func (s *s3Storage) DeleteImage(ctx context.Context, fileURL string) error {
	key := strings.TrimPrefix(fileURL, s.publicBase+"/")
	if key == fileURL || key == "" {
		return fmt.Errorf("url %s does not belong to bucket %s", fileURL, s.bucket)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from s3: %w", err)
	}
	return nil
}
