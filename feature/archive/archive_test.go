package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"comics-etl/core/failure"
	"comics-etl/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "etl").Return(true, nil)

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		assert.NoError(t, a.EnsureBucket(context.Background()))
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "etl").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "etl", mock.Anything).Return(nil)

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		assert.NoError(t, a.EnsureBucket(context.Background()))
		mockClient.AssertNumberOfCalls(t, "MakeBucket", 1)
	})

	t.Run("Unreachable", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "etl").Return(false, errors.New("dial tcp: refused"))

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		err := a.EnsureBucket(context.Background())
		assert.True(t, failure.Is(err, failure.KindStorage))
	})
}

func TestUploadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters_0_01012024_000000.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters_100_01012024_000010.json"), []byte("[]"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	t.Run("SkipExisting", func(t *testing.T) {
		mockClient := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "data/raw/characters/characters_0_01012024_000000.json"}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "etl", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "data/raw/characters/" && opts.Recursive
		})).Return((<-chan minio.ObjectInfo)(ch))
		mockClient.On("PutObject", mock.Anything, "etl", "data/raw/characters/characters_100_01012024_000010.json",
			mock.Anything, int64(2), mock.Anything).Return(minio.UploadInfo{}, nil)

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		res, err := a.UploadDir(context.Background(), dir, "raw/characters", true)
		require.NoError(t, err)
		assert.Equal(t, &Result{Uploaded: 1, Skipped: 1}, res)
		mockClient.AssertExpectations(t)
	})

	t.Run("Overwrite", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "etl", mock.Anything, mock.Anything, int64(2), mock.Anything).Return(minio.UploadInfo{}, nil)

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		res, err := a.UploadDir(context.Background(), dir, "raw/characters", false)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Uploaded)
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UploadFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "etl", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		a := NewArchiver(mockClient, "etl", "data", zap.NewNop())
		_, err := a.UploadDir(context.Background(), dir, "raw/characters", false)
		assert.True(t, failure.Is(err, failure.KindStorage))
	})

	t.Run("MissingDir", func(t *testing.T) {
		a := NewArchiver(new(mocks.Client), "etl", "data", zap.NewNop())
		_, err := a.UploadDir(context.Background(), filepath.Join(dir, "absent"), "raw", false)
		assert.True(t, failure.Is(err, failure.KindFilesystem))
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("a.json"))
	assert.Equal(t, "text/csv", contentType("a.csv"))
	assert.Equal(t, "application/octet-stream", contentType("a.log"))
}
