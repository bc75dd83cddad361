package report

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"comics-etl/core/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_Cache(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(dir, time.Minute, zap.NewNop())
	svc.now = func() time.Time { return now }

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Results, 4)

	// Files removed while the snapshot is fresh are not noticed.
	require.NoError(t, os.Remove(filepath.Join(dir, dataset.FinalResultsFile)))
	cached, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, cached)

	now = now.Add(2 * time.Minute)
	_, err = svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestService_Invalidate(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	svc := NewService(dir, time.Hour, zap.NewNop())

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	svc.Invalidate()
	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestService_ConcurrentReads(t *testing.T) {
	dir := t.TempDir()
	writeTables(t, dir)
	svc := NewService(dir, time.Hour, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := svc.Snapshot(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 4, snap.Summary.Characters)
		}()
	}
	wg.Wait()
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, summarize(nil))
}
