package objectclient

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/winnow-hq/winnow-api/internal/core"
)

// GCSClient wraps the Firebase storage bucket (a Cloud Storage bucket).
type GCSClient struct {
	bucket     *storage.BucketHandle
	bucketName string
}

func NewGCSClient(bucket *storage.BucketHandle, bucketName string) *GCSClient {
	return &GCSClient{bucket: bucket, bucketName: bucketName}
}

// UploadFile writes the object and returns its public URL.
func (c *GCSClient) UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctxUpload, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := c.bucket.Object(key).NewWriter(ctxUpload)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("bucket write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("bucket upload failed: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, key)
	return url, nil
}

func (c *GCSClient) DeleteFile(ctx context.Context, key string) error {
	ctxDel, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := c.bucket.Object(key).Delete(ctxDel); err != nil {
		return fmt.Errorf("bucket delete failed: %w", err)
	}
	return nil
}

var _ core.ObjectClient = (*GCSClient)(nil)
