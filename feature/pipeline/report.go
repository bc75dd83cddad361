package pipeline

import (
	"time"

	"comics-etl/core/dataset"
	"comics-etl/feature/aggregate"
)

// Stage names a pipeline step.
type Stage string

const (
	StageLayout            Stage = "layout"
	StageFetchCharacters   Stage = "fetch_characters"
	StageFetchComics       Stage = "fetch_comics"
	StageCleanseCharacters Stage = "cleanse_characters"
	StageCleanseComics     Stage = "cleanse_comics"
	StageAggregate         Stage = "aggregate"
	StagePublish           Stage = "publish"
)

// StageResult is the outcome of one stage.
type StageResult struct {
	Stage Stage `json:"stage"`
	// Rows is the number of records or table rows the stage produced.
	Rows int `json:"rows"`
	// Files is the number of files the stage wrote or uploaded.
	Files    int           `json:"files"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	// Error is Err rendered for JSON output.
	Error string `json:"error,omitempty"`
}

// OK reports whether the stage succeeded.
func (r StageResult) OK() bool {
	return r.Err == nil
}

// Report is the outcome of a full run.
type Report struct {
	RunID  string        `json:"run_id"`
	Stages []StageResult `json:"stages"`
	// Summary is set once aggregation succeeded.
	Summary *aggregate.Summary `json:"summary,omitempty"`
	// Discrepancies are the rows written to the discrepancy table.
	Discrepancies []dataset.ResultRow `json:"-"`
	Duration      time.Duration       `json:"duration"`
}

// Err returns the error of the failed stage, if any.
func (r *Report) Err() error {
	for _, s := range r.Stages {
		if s.Err != nil {
			return s.Err
		}
	}
	return nil
}

// Failed returns the failed stage, or nil when every stage succeeded.
func (r *Report) Failed() *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Err != nil {
			return &r.Stages[i]
		}
	}
	return nil
}
