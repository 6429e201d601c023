package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3-compatible bucket (AWS S3 or MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional; custom endpoint such as MinIO
	PathStyle       bool
	PublicBaseURL   string // optional; CDN or bucket website in front of the objects
	AccessKeyID     string // optional, falls back to the default credentials chain
	SecretAccessKey string
}

type S3Uploader struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3 loads AWS configuration and builds the client. optFns are applied
// after the endpoint options.
func NewS3(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	opts := append([]func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}}, optFns...)
	return &S3Uploader{client: s3.NewFromConfig(awsCfg, opts...), cfg: cfg}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, obj Object) (string, error) {
	// Buffer so the SDK can sign a seekable payload; images are size capped upstream.
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}
	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", obj.Key, err)
	}
	return u.PublicURL(obj.Key), nil
}

// PublicURL is where a stored key is served from.
func (u *S3Uploader) PublicURL(key string) string {
	switch {
	case u.cfg.PublicBaseURL != "":
		return joinURL(u.cfg.PublicBaseURL, key)
	case u.cfg.Endpoint != "":
		return joinURL(joinURL(u.cfg.Endpoint, u.cfg.Bucket), key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, key)
	}
}
