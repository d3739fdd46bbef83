package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"childcare-cv-backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by Put when no bucket is configured.
var ErrNotConfigured = errors.New("object storage not configured")

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"eu-central-1": "s3.eu-central-1.wasabisys.com",
	"eu-central-2": "s3.eu-central-2.wasabisys.com",
	"eu-west-1":    "s3.eu-west-1.wasabisys.com",
	"eu-west-2":    "s3.eu-west-2.wasabisys.com",
	"eu-west-3":    "s3.eu-west-3.wasabisys.com",
	"us-east-1":    "s3.us-east-1.wasabisys.com",
}

const defaultWasabiEndpoint = "s3.eu-central-1.wasabisys.com"

// Config holds configuration for S3-compatible storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// PublicBaseURL overrides the URL prefix of stored objects (CDN, custom domain).
	PublicBaseURL  string
	WasabiEndpoint string
	MaxRetries     uint64
}

// Endpoint returns the host serving the bucket.
func (c Config) Endpoint() string {
	if c.Provider != ProviderWasabi {
		return fmt.Sprintf("s3.%s.amazonaws.com", c.Region)
	}
	if c.WasabiEndpoint != "" {
		return c.WasabiEndpoint
	}
	if endpoint, ok := WasabiEndpoints[c.Region]; ok {
		return endpoint
	}
	return defaultWasabiEndpoint
}

// PublicURL builds the URL under which key is readable.
func (c Config) PublicURL(key string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + key
	}
	if c.Provider == ProviderWasabi {
		return fmt.Sprintf("https://%s/%s/%s", c.Endpoint(), c.Bucket, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", c.Bucket, c.Endpoint(), key)
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Storage uploads objects to an S3-compatible bucket.
type S3Storage struct {
	client objectPutter
	cfg    Config
}

// NewS3Client creates an S3 client with the given config.
// Supports both AWS S3 and Wasabi.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == ProviderWasabi {
		// Wasabi requires a custom endpoint and path-style addressing
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.Endpoint())
			o.UsePathStyle = true
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}

func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Storage{client: client, cfg: cfg}, nil
}

// Put uploads data under key and returns its public URL. Transient failures are
// retried with exponential backoff.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s == nil || s.cfg.Bucket == "" {
		return "", ErrNotConfigured
	}
	log := logger.FromContext(ctx)
	start := time.Now()

	operation := func() error {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.cfg.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(int64(len(data))),
			CacheControl:  aws.String("public, max-age=31536000"),
		})
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 20 * time.Second
	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(b, s.cfg.MaxRetries), ctx),
		func(err error, d time.Duration) {
			log.Warn("Upload attempt failed",
				zap.String("key", key),
				zap.Error(err),
				zap.Duration("backoff", d))
		},
	)
	if err != nil {
		log.Error("All upload attempts failed",
			zap.String("key", key),
			zap.Uint64("retries", s.cfg.MaxRetries),
			zap.Error(err))
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Info("File uploaded",
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.Duration("duration", time.Since(start)))
	return s.cfg.PublicURL(key), nil
}

// HealthCheck verifies the bucket is reachable with the configured credentials.
func (s *S3Storage) HealthCheck(ctx context.Context) error {
	if s == nil || s.cfg.Bucket == "" {
		return ErrNotConfigured
	}
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.cfg.Bucket)}); err != nil {
		return fmt.Errorf("failed to access bucket %s: %w", s.cfg.Bucket, err)
	}
	return nil
}
