package fetch

import (
	"context"
	"os"
	"time"

	"comics-etl/core/failure"
	"comics-etl/core/marvel"

	"go.uber.org/zap"
)

// DefaultPageSize is the largest page the API serves.
const DefaultPageSize = 100

// Lister fetches one page of a collection.
type Lister interface {
	ListPage(ctx context.Context, kind marvel.Kind, offset, limit int) (*marvel.Page, error)
}

// Result summarizes one drained collection.
type Result struct {
	Kind marvel.Kind `json:"kind"`
	// Total is the collection size reported on the first page.
	Total   int      `json:"total"`
	Pages   int      `json:"pages"`
	Records int      `json:"records"`
	Files   []string `json:"files"`
}

// Fetcher pages through a collection and persists every page.
type Fetcher struct {
	client   Lister
	pageSize int
	delay    time.Duration
	logger   *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewFetcher creates a fetcher. A non-positive pageSize falls back to DefaultPageSize.
func NewFetcher(client Lister, pageSize int, delay time.Duration, logger *zap.Logger) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{
		client:   client,
		pageSize: pageSize,
		delay:    delay,
		logger:   logger,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// FetchAll drains the collection into outDir.
func (f *Fetcher) FetchAll(ctx context.Context, kind marvel.Kind, outDir string) (*Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, failure.New(failure.KindFilesystem, "create raw directory", err).WithPath(outDir)
	}

	l := f.logger.With(zap.String("kind", string(kind)))
	l.Info("Pulling data started", zap.Int("page_size", f.pageSize), zap.Duration("delay", f.delay))

	res := &Result{Kind: kind, Total: -1}
	offset := 0

	// Total is unknown until the first page arrives, so the first request is unconditional.
	for res.Total < 0 || offset <= res.Total {
		if err := f.sleep(ctx, f.delay); err != nil {
			l.Warn("Pulling data interrupted", zap.Int("offset", offset), zap.Error(err))
			return res, failure.New(failure.KindNetwork, "wait before request", err)
		}

		page, err := f.client.ListPage(ctx, kind, offset, f.pageSize)
		if err != nil {
			l.Error("Page request failed", zap.Int("offset", offset), zap.Error(err))
			return res, err
		}

		if res.Total < 0 {
			res.Total = page.Total
			l.Info("Collection size reported", zap.Int("total", res.Total))
		}

		path, err := WritePage(outDir, kind, offset, f.now(), page.Results)
		if err != nil {
			l.Error("Page write failed", zap.Int("offset", offset), zap.Error(err))
			return res, err
		}

		res.Pages++
		res.Records += len(page.Results)
		res.Files = append(res.Files, path)
		l.Info("Page created", zap.String("path", path), zap.Int("records", len(page.Results)))

		offset += f.pageSize
	}

	l.Info("Pulling data finished", zap.Int("pages", res.Pages), zap.Int("records", res.Records))
	return res, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
