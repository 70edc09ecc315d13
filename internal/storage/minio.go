package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"roots-catalog/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// minioPutAPI is the part of the MinIO client used for uploads.
type minioPutAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioStore implements ImageStore for MinIO.
type minioStore struct {
	client     minioPutAPI
	bucket     string
	publicBase string
	logger     zerolog.Logger
}

// NewMinIOStore connects to MinIO, creates the bucket if needed and returns an image store.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "minio-image-store").Logger()

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		logger.Error().Err(err).Str("bucket", cfg.Bucket).Msg("failed to ensure MinIO bucket")
		return nil, fmt.Errorf("failed to ensure MinIO bucket %s: %w", cfg.Bucket, err)
	}

	publicBase := cfg.PublicBase
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.Bucket).
		Msg("MinIO image store initialised")

	return &minioStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase,
		logger:     logger,
	}, nil
}

// ensureBucket creates bucketName when it does not exist yet.
func ensureBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		return client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	}

	return nil
}

// Save uploads the image as an object named upload.Name.
func (s *minioStore) Save(ctx context.Context, upload Upload) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, upload.Name, bytes.NewReader(upload.Data), int64(len(upload.Data)), minio.PutObjectOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", upload.Name).
			Msg("failed to put object to MinIO")
		return "", fmt.Errorf("failed to put object to MinIO (bucket=%s, key=%s): %w", s.bucket, upload.Name, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", info.Key).
		Int64("bytes", info.Size).
		Msg("image uploaded to MinIO")

	return joinURL(s.publicBase, info.Key), nil
}
