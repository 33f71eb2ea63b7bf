package file

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/HarishP23/OneStop/internal/config"
)

// S3StorageClient keeps objects in an S3 compatible bucket (AWS, R2, MinIO)
type S3StorageClient struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
}

// NewS3StorageClient builds a client from the S3_* settings.
// Static credentials are used when both keys are set, otherwise the default AWS chain.
func NewS3StorageClient(cfg config.StorageSettings) (*S3StorageClient, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for the s3 storage driver")
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
	}
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	return &S3StorageClient{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
	}, nil
}

func (s *S3StorageClient) UploadFile(ctx context.Context, objectName string, fileData io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectName),
		Body:        fileData,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

func (s *S3StorageClient) DownloadFile(ctx context.Context, objectName string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get %s from s3: %w", objectName, err)
	}
	return out.Body, aws.Int64Value(out.ContentLength), nil
}

func (s *S3StorageClient) DeleteFile(ctx context.Context, objectName string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from s3: %w", objectName, err)
	}
	return nil
}

func (s *S3StorageClient) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			names = append(names, aws.StringValue(obj.Key))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list s3 objects: %w", err)
	}
	return names, nil
}
