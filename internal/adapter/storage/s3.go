// Package storage relays uploaded files to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/schulanmeldung/regform-backend/internal/config"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

const keyPrefix = "uploads"

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Uploader stores files in a single bucket.
type Uploader struct {
	client  objectStore
	bucket  string
	baseURL string
	timeout time.Duration
	maxSize int64
	newID   func() string
}

// NewUploader builds an S3 client from cfg. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain.
func NewUploader(ctx context.Context, cfg config.StorageConfig) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newUploader(client, cfg), nil
}

func newUploader(client objectStore, cfg config.StorageConfig) *Uploader {
	base := cfg.PublicBaseURL
	if base == "" {
		base = defaultBaseURL(cfg)
	}
	return &Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(base, "/"),
		timeout: cfg.UploadTimeout,
		maxSize: cfg.MaxFileSize,
		newID:   uuid.NewString,
	}
}

// Upload writes u to the bucket and returns the stored attachment.
// Files larger than the configured maximum are rejected with a validation
// error before any bytes are sent.
func (u *Uploader) Upload(ctx context.Context, up domain.Upload) (domain.Attachment, error) {
	if u.maxSize > 0 && up.Size > u.maxSize {
		return domain.Attachment{}, domain.NewValidationError(up.Field, fmt.Sprintf("file exceeds %d bytes", u.maxSize))
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	key := ObjectKey(u.newID(), up.Filename)
	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        up.Body,
		ContentType: aws.String(contentType),
	}
	if up.Size > 0 {
		input.ContentLength = aws.Int64(up.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return domain.Attachment{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return domain.Attachment{
		Field:       up.Field,
		Filename:    up.Filename,
		ObjectKey:   key,
		URL:         u.baseURL + "/" + escapeKey(key),
		ContentType: contentType,
		Size:        up.Size,
	}, nil
}

// Delete removes a previously uploaded object. Deleting a key that does
// not exist is not an error on S3.
func (u *Uploader) Delete(ctx context.Context, key string) error {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// ObjectKey places a file under a unique prefix, keeping a sanitized form
// of the original name for readability.
func ObjectKey(id, filename string) string {
	return path.Join(keyPrefix, id, SafeFilename(filename))
}

// SafeFilename reduces name to its base and replaces characters outside
// letters, digits, dot, dash and underscore.
func SafeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func defaultBaseURL(cfg config.StorageConfig) string {
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}
