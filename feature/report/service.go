package report

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"comics-etl/core/dataset"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Summary describes the latest result tables.
type Summary struct {
	// Characters is the number of aggregated characters.
	Characters int `json:"characters"`
	// Matched counts characters whose pulled and calculated counts agree.
	Matched int `json:"matched"`
	// Discrepancies counts characters with a positive difference.
	Discrepancies int `json:"discrepancies"`
	// Overcounted counts characters with more joined comics than reported.
	Overcounted int `json:"overcounted"`
	// MissingComics is the sum of positive differences.
	MissingComics int `json:"missing_comics"`
}

// Snapshot is one parsed view of the result tables.
type Snapshot struct {
	Results       []dataset.ResultRow `json:"results"`
	Discrepancies []dataset.ResultRow `json:"discrepancies"`
	Summary       Summary             `json:"summary"`
	LoadedAt      time.Time           `json:"loaded_at"`
}

// Service reads the curated result tables and keeps them in memory for a TTL.
type Service struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	sf       singleflight.Group
	now      func() time.Time
}

// NewService creates a service reading tables from dir. A zero ttl disables caching.
func NewService(dir string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{dir: dir, ttl: ttl, logger: logger, now: time.Now}
}

func (s *Service) expired(snap *Snapshot) bool {
	if s.ttl == 0 {
		return true
	}
	return s.now().Sub(snap.LoadedAt) > s.ttl
}

// Snapshot returns the cached tables, reloading them once the TTL has passed.
// Concurrent reloads are coalesced into a single read.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil && !s.expired(snap) {
		return snap, nil
	}

	result, err, _ := s.sf.Do("snapshot", func() (interface{}, error) {
		s.mu.RLock()
		snap := s.snapshot
		s.mu.RUnlock()
		if snap != nil && !s.expired(snap) {
			return snap, nil
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fresh, err := s.load()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snapshot = fresh
		s.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
}

func (s *Service) load() (*Snapshot, error) {
	rows, err := dataset.ReadResults(filepath.Join(s.dir, dataset.FinalResultsFile))
	if err != nil {
		return nil, err
	}
	discrepancies, err := dataset.ReadResults(filepath.Join(s.dir, dataset.VerifiedResultsFile))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(discrepancies, func(i, j int) bool {
		return discrepancies[i].Difference > discrepancies[j].Difference
	})

	s.logger.Debug("Loaded result tables",
		zap.String("dir", s.dir),
		zap.Int("results", len(rows)),
		zap.Int("discrepancies", len(discrepancies)),
	)

	return &Snapshot{
		Results:       rows,
		Discrepancies: discrepancies,
		Summary:       summarize(rows),
		LoadedAt:      s.now(),
	}, nil
}

func summarize(rows []dataset.ResultRow) Summary {
	sum := Summary{Characters: len(rows)}
	for _, r := range rows {
		switch d := r.ComicsCount - r.CountCalculated; {
		case d == 0:
			sum.Matched++
		case d > 0:
			sum.Discrepancies++
			sum.MissingComics += d
		default:
			sum.Overcounted++
		}
	}
	return sum
}
