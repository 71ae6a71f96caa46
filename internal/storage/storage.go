package storage

import "context"

// ObjectInfo represents metadata for a remote object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal bucket/key operations the pipeline needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DownloadObject(ctx context.Context, bucket, key, destPath string) error
	UploadObject(ctx context.Context, localPath, bucket, key string) error
}
