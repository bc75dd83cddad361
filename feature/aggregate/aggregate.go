package aggregate

import (
	"path/filepath"
	"sort"

	"comics-etl/core/dataset"

	"go.uber.org/zap"
)

// Summary provides aggregate counts for one run.
type Summary struct {
	// Characters is the number of cleaned character rows.
	Characters int `json:"characters"`
	// ComicRows is the number of cleaned (comic, character) rows.
	ComicRows int `json:"comic_rows"`
	// Joined is the number of rows produced by the inner join.
	Joined int `json:"joined"`
	// Groups is the number of rows in final_results.csv.
	Groups int `json:"groups"`
	// Discrepancies is the number of rows in verified_results.csv.
	Discrepancies int `json:"discrepancies"`
	// Overcounted counts groups where count_calculated exceeds comics_count.
	Overcounted int `json:"overcounted"`
}

// Result is the outcome of an aggregation.
type Result struct {
	Rows          []dataset.ResultRow `json:"-"`
	Discrepancies []dataset.ResultRow `json:"-"`
	Summary       Summary             `json:"summary"`
	FinalPath     string              `json:"final_path"`
	VerifiedPath  string              `json:"verified_path"`
}

// Aggregator joins the cleaned tables and writes the result tables.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Run aggregates the tables and writes both result files into outDir.
func (a *Aggregator) Run(characters []dataset.CharacterRow, comics []dataset.ComicRow, outDir string) (*Result, error) {
	a.logger.Info("Data aggregation started",
		zap.Int("characters", len(characters)),
		zap.Int("comic_rows", len(comics)),
	)

	rows, joined := Join(characters, comics)
	discrepancies := Discrepancies(rows)

	res := &Result{
		Rows:          rows,
		Discrepancies: discrepancies,
		Summary: Summary{
			Characters:    len(characters),
			ComicRows:     len(comics),
			Joined:        joined,
			Groups:        len(rows),
			Discrepancies: len(discrepancies),
		},
		FinalPath:    filepath.Join(outDir, dataset.FinalResultsFile),
		VerifiedPath: filepath.Join(outDir, dataset.VerifiedResultsFile),
	}

	for _, r := range rows {
		if r.Difference < 0 {
			res.Summary.Overcounted++
			a.logger.Warn("Observed more comics than reported",
				zap.String("name", r.Name),
				zap.Int("character_id", r.CharacterID),
				zap.Int("comics_count", r.ComicsCount),
				zap.Int("count_calculated", r.CountCalculated),
			)
		}
	}

	if err := dataset.WriteResults(res.FinalPath, rows); err != nil {
		return nil, err
	}
	if err := dataset.WriteVerified(res.VerifiedPath, discrepancies); err != nil {
		return nil, err
	}

	a.logger.Info("Data aggregation finished",
		zap.String("final", res.FinalPath),
		zap.String("verified", res.VerifiedPath),
		zap.Int("groups", res.Summary.Groups),
		zap.Int("discrepancies", res.Summary.Discrepancies),
		zap.Int("overcounted", res.Summary.Overcounted),
	)
	return res, nil
}

type groupKey struct {
	name        string
	id          int
	comicsCount int
}

// Join inner-joins characters to comics and counts joined rows per
// (name, id, comics_count). Rows are sorted by name, id, comics_count. The second
// return value is the number of joined rows.
func Join(characters []dataset.CharacterRow, comics []dataset.ComicRow) ([]dataset.ResultRow, int) {
	perCharacter := make(map[int]int)
	for _, c := range comics {
		perCharacter[c.CharacterID]++
	}

	groups := make(map[groupKey]int)
	joined := 0
	for _, ch := range characters {
		n := perCharacter[ch.ID]
		if n == 0 {
			continue
		}
		// duplicate character rows each join every matching comic row
		groups[groupKey{ch.Name, ch.ID, ch.ComicsCount}] += n
		joined += n
	}

	rows := make([]dataset.ResultRow, 0, len(groups))
	for k, count := range groups {
		rows = append(rows, dataset.ResultRow{
			Name:            k.name,
			CharacterID:     k.id,
			ComicsCount:     k.comicsCount,
			CountCalculated: count,
			Difference:      k.comicsCount - count,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.CharacterID != b.CharacterID {
			return a.CharacterID < b.CharacterID
		}
		return a.ComicsCount < b.ComicsCount
	})

	return rows, joined
}

// Discrepancies keeps rows whose difference is strictly positive.
func Discrepancies(rows []dataset.ResultRow) []dataset.ResultRow {
	out := make([]dataset.ResultRow, 0)
	for _, r := range rows {
		if r.Difference > 0 {
			out = append(out, r)
		}
	}
	return out
}
