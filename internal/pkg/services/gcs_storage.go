package services

import (
	"bytes"
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/logger"
)

// GCSStorage uploads report files and client documents to the configured
// bucket and hands back the object path.
type GCSStorage struct {
	client     *storage.Client
	bucketName string
}

func NewGCSStorage(client *storage.Client) *GCSStorage {
	return &GCSStorage{
		client:     client,
		bucketName: configs.BUCKET_NAME,
	}
}

func (g *GCSStorage) Upload(ctx context.Context, objectName string, data *bytes.Buffer) (string, error) {
	writer := g.client.Bucket(g.bucketName).Object(objectName).NewWriter(ctx)
	if _, err := writer.Write(data.Bytes()); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	objectURL := fmt.Sprintf("gs://%s/%s", g.bucketName, objectName)
	logger.Info(ctx, "uploaded object %s", objectURL)
	return objectURL, nil
}
