package archive

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"

	"comics-etl/core/failure"
	"comics-etl/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver uploads local directories to a bucket.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// Result counts uploaded and skipped objects.
type Result struct {
	Uploaded int `json:"uploaded"`
	Skipped  int `json:"skipped"`
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client storage.Client, bucket, prefix string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// EnsureBucket creates the bucket if it does not exist.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return failure.New(failure.KindStorage, "check bucket", err).WithPath(a.bucket)
	}
	if exists {
		return nil
	}

	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return failure.New(failure.KindStorage, "create bucket", err).WithPath(a.bucket)
	}
	a.logger.Info("Created bucket", zap.String("bucket", a.bucket))
	return nil
}

// UploadDir uploads every regular file of dir under prefix/sub. With skipExisting,
// objects already present under that key are left untouched.
func (a *Archiver) UploadDir(ctx context.Context, dir, sub string, skipExisting bool) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failure.New(failure.KindFilesystem, "list archive source", err).WithPath(dir)
	}

	keyPrefix := path.Join(a.prefix, sub) + "/"
	existing := map[string]struct{}{}
	if skipExisting {
		for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: keyPrefix, Recursive: true}) {
			if obj.Err != nil {
				return nil, failure.New(failure.KindStorage, "list archived objects", obj.Err).WithPath(keyPrefix)
			}
			existing[obj.Key] = struct{}{}
		}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	res := &Result{}
	for _, name := range names {
		key := keyPrefix + name
		if _, ok := existing[key]; ok {
			res.Skipped++
			continue
		}
		if err := a.upload(ctx, filepath.Join(dir, name), key); err != nil {
			return res, err
		}
		res.Uploaded++
	}

	a.logger.Info("Archived directory",
		zap.String("dir", dir),
		zap.String("prefix", keyPrefix),
		zap.Int("uploaded", res.Uploaded),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (a *Archiver) upload(ctx context.Context, file, key string) error {
	f, err := os.Open(file)
	if err != nil {
		return failure.New(failure.KindFilesystem, "open archive source", err).WithPath(file)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return failure.New(failure.KindFilesystem, "stat archive source", err).WithPath(file)
	}

	opts := minio.PutObjectOptions{ContentType: contentType(file)}
	if _, err := a.client.PutObject(ctx, a.bucket, key, f, info.Size(), opts); err != nil {
		a.logger.Error("Failed to upload object", zap.String("key", key), zap.Error(err))
		return failure.New(failure.KindStorage, "upload object", err).WithPath(key)
	}
	return nil
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
