package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// CloudStorageClient uploads report photos to a GCS bucket and returns their
// public URLs.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *CloudStorageClient) UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	name := fmt.Sprintf("reports/%s-%s", uuid.New().String(), time.Now().Format("20060102150405"))

	switch contentType {
	case "image/jpeg", "image/jpg":
		name += ".jpg"
	case "image/png":
		name += ".png"
	case "image/webp":
		name += ".webp"
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}

	obj := c.client.Bucket(c.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to bucket: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, name), nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
