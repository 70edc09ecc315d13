package storage

import (
	"bytes"
	"context"
	"fmt"

	"roots-catalog/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3PutAPI is the part of the S3 client used for uploads.
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements ImageStore for AWS S3.
type s3Store struct {
	client     s3PutAPI
	bucket     string
	prefix     string
	publicBase string
	logger     zerolog.Logger
}

// NewS3Store creates an S3-backed image store using the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 image store initialised")

	return newS3Store(s3.NewFromConfig(awsCfg), cfg, logger), nil
}

func newS3Store(client s3PutAPI, cfg config.S3Config, logger zerolog.Logger) *s3Store {
	publicBase := cfg.PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &s3Store{
		client:     client,
		bucket:     cfg.Bucket,
		prefix:     cfg.Prefix,
		publicBase: publicBase,
		logger:     logger,
	}
}

// Save uploads the image under prefix + name.
func (s *s3Store) Save(ctx context.Context, upload Upload) (string, error) {
	key := s.prefix + upload.Name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Data),
		ContentLength: aws.Int64(int64(len(upload.Data))),
		ContentType:   aws.String(upload.ContentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("image uploaded to S3")

	return joinURL(s.publicBase, key), nil
}
