package warehouse

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"comics-etl/core/database"
	"comics-etl/core/dataset"
	"comics-etl/core/failure"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is the number of rows inserted per statement.
const DefaultBatchSize = 500

// Tables is the data of one run.
type Tables struct {
	RunID      string
	Characters []dataset.CharacterRow
	Comics     []dataset.ComicRow
	Results    []dataset.ResultRow
}

// LoadResult counts the rows written per table.
type LoadResult struct {
	Characters int `json:"characters"`
	Comics     int `json:"comics"`
	Results    int `json:"results"`
}

// Total returns the number of rows written across tables.
func (r LoadResult) Total() int {
	return r.Characters + r.Comics + r.Results
}

// Warehouse writes run tables to a database.
type Warehouse struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
}

// New creates a warehouse over db.
func New(db *gorm.DB, logger *zap.Logger) *Warehouse {
	return &Warehouse{db: db, batchSize: DefaultBatchSize, logger: logger}
}

// Migrate creates or updates the tables and checks every expected column exists.
func (w *Warehouse) Migrate(ctx context.Context) error {
	db := w.db.WithContext(ctx)
	if err := db.AutoMigrate(&characterRecord{}, &comicCharacterRecord{}, &resultRecord{}); err != nil {
		return failure.New(failure.KindDatabase, "migrate warehouse", err)
	}

	tables := make([]string, 0, len(expectedColumns))
	for table := range expectedColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		missing, err := database.MissingColumns(db, table, expectedColumns[table])
		if err != nil {
			return failure.New(failure.KindDatabase, "inspect warehouse", err).WithPath(table)
		}
		if len(missing) > 0 {
			return failure.Errorf(failure.KindDatabase, "inspect warehouse", "table %s is missing columns: %s",
				table, strings.Join(missing, ", ")).WithPath(table)
		}
	}
	return nil
}

// Load replaces the content of every table with t.
func (w *Warehouse) Load(ctx context.Context, t Tables) (*LoadResult, error) {
	res := &LoadResult{
		Characters: len(t.Characters),
		Comics:     len(t.Comics),
		Results:    len(t.Results),
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&characterRecord{}).Error; err != nil {
			return fmt.Errorf("clear characters: %w", err)
		}
		if err := all.Delete(&comicCharacterRecord{}).Error; err != nil {
			return fmt.Errorf("clear comic_characters: %w", err)
		}
		if err := all.Delete(&resultRecord{}).Error; err != nil {
			return fmt.Errorf("clear aggregate_results: %w", err)
		}

		if chars := toCharacterRecords(t.Characters); len(chars) > 0 {
			if err := tx.CreateInBatches(chars, w.batchSize).Error; err != nil {
				return fmt.Errorf("insert characters: %w", err)
			}
		}
		if comics := toComicRecords(t.Comics); len(comics) > 0 {
			if err := tx.CreateInBatches(comics, w.batchSize).Error; err != nil {
				return fmt.Errorf("insert comic_characters: %w", err)
			}
		}
		if results := toResultRecords(t.RunID, t.Results); len(results) > 0 {
			if err := tx.CreateInBatches(results, w.batchSize).Error; err != nil {
				return fmt.Errorf("insert aggregate_results: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		w.logger.Error("Warehouse load failed", zap.Error(err))
		return nil, failure.New(failure.KindDatabase, "load warehouse", err)
	}

	w.logger.Info("Loaded warehouse",
		zap.String("run_id", t.RunID),
		zap.Int("characters", res.Characters),
		zap.Int("comics", res.Comics),
		zap.Int("results", res.Results),
	)
	return res, nil
}
