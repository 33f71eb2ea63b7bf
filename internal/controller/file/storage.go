package file

import (
	"context"
	"fmt"
	"io"

	"github.com/HarishP23/OneStop/internal/config"
)

// StorageClient stores file bytes outside the database
type StorageClient interface {
	UploadFile(ctx context.Context, objectName string, fileData io.Reader) error
	// DownloadFile returns the object content and its size, 0 when unknown
	DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error)
	DeleteFile(ctx context.Context, objectName string) error
	ListFiles(ctx context.Context, prefix string) ([]string, error)
}

// NewStorageClient picks the bucket backend named by cfg.Driver.
// It returns a nil client when no driver is configured, which keeps file
// content in the database.
func NewStorageClient(ctx context.Context, cfg config.StorageSettings) (StorageClient, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required for the gcs storage driver")
		}
		client, err := NewCloudStorageClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "s3":
		client, err := NewS3StorageClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
