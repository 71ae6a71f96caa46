package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Client implements ObjectStorage for AWS S3 and S3-compatible services.
type S3Client struct {
	client *minio.Client
}

// NewS3Client builds a new S3Client. When creds is nil the standard
// resolution chain is used: AWS environment variables, then the shared
// credentials file (~/.aws/credentials).
func NewS3Client(cfg S3Config, creds *credentials.Credentials) (*S3Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint must be provided")
	}

	if creds == nil {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
		})
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	return &S3Client{client: client}, nil
}

// S3Config encapsulates the connection info for the object-storage endpoint.
type S3Config struct {
	Endpoint string
	Region   string
	UseSSL   bool
}

// ListObjects lists all objects in a bucket under the given prefix.
func (c *S3Client) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	results := make([]ObjectInfo, 0)
	for object := range c.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("s3 list failed: %w", object.Err)
		}
		results = append(results, ObjectInfo{
			Key:  object.Key,
			Size: object.Size,
		})
	}
	return results, nil
}

// DownloadObject downloads an object to the provided destination path.
func (c *S3Client) DownloadObject(ctx context.Context, bucket, key, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed creating directory for %s: %w", destPath, err)
	}
	return c.client.FGetObject(ctx, bucket, key, destPath, minio.GetObjectOptions{})
}

// UploadObject uploads a local file to the given bucket and key.
func (c *S3Client) UploadObject(ctx context.Context, localPath, bucket, key string) error {
	_, err := c.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{})
	return err
}

var _ ObjectStorage = (*S3Client)(nil)
