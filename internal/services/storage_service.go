package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService wraps the object store. Blob paths are namespaced per
// tenant so presigned reads cannot cross tenants.
type StorageService interface {
	UploadGovernmentID(ctx context.Context, tenantID uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (string, error)
	UploadGalleryImage(ctx context.Context, tenantID uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (string, error)
	UploadVehicleImage(ctx context.Context, tenantID uuid.UUID, path string, reader io.Reader, size int64, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
}

type minioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioStorage{client: client, bucket: bucket}, nil
}

func (m *minioStorage) UploadGovernmentID(ctx context.Context, tenantID uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("gov_ids/%s/%s", tenantID.String(), fileName)
	return m.upload(ctx, objectName, reader, size, contentType)
}

func (m *minioStorage) UploadGalleryImage(ctx context.Context, tenantID uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("gallery/%s/%s", tenantID.String(), fileName)
	return m.upload(ctx, objectName, reader, size, contentType)
}

func (m *minioStorage) UploadVehicleImage(ctx context.Context, tenantID uuid.UUID, path string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("vehicle-images/%s/%s", tenantID.String(), path)
	return m.upload(ctx, objectName, reader, size, contentType)
}

func (m *minioStorage) upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return objectName, nil
}

func (m *minioStorage) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioStorage) DeleteObject(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
}

func (m *minioStorage) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
