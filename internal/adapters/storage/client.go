// Package storage provides document storage backed by MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"ultron_backend/platform/config"
)

// MinIOService stores and retrieves tenant documents (brochures).
type MinIOService struct {
	client *minio.Client
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg config.MinIOConfig) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{client: client}, nil
}

// EnsureBucketExists creates the bucket if it doesn't exist.
func (s *MinIOService) EnsureBucketExists(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	return nil
}

// Object is a fully read document.
type Object struct {
	FileName    string
	ContentType string
	Content     []byte
}

// DownloadObject reads an object into memory. Brochures are small PDFs, so
// buffering them is fine; they are attached to outbound email as a whole.
func (s *MinIOService) DownloadObject(ctx context.Context, bucket, fileKey string) (Object, error) {
	obj, err := s.client.GetObject(ctx, bucket, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return Object{}, fmt.Errorf("failed to get object %s: %w", fileKey, err)
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		return Object{}, fmt.Errorf("failed to stat object %s: %w", fileKey, err)
	}

	content, err := io.ReadAll(obj)
	if err != nil {
		return Object{}, fmt.Errorf("failed to read object %s: %w", fileKey, err)
	}

	contentType := stat.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return Object{
		FileName:    path.Base(fileKey),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// UploadObject stores a document and returns its file key.
func (s *MinIOService) UploadObject(ctx context.Context, bucket, fileKey, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, fileKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", fileKey, err)
	}
	return fileKey, nil
}
