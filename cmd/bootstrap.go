package cmd

import (
	"fmt"

	"comics-etl/core/config"
	"comics-etl/core/database"
	"comics-etl/core/logger"
	"comics-etl/core/marvel"
	"comics-etl/core/storage"
	"comics-etl/feature/archive"
	"comics-etl/feature/layout"
	"comics-etl/feature/pipeline"
	"comics-etl/feature/warehouse"

	"go.uber.org/zap"
)

// needs selects which optional collaborators a command wires into the pipeline.
type needs struct {
	api     bool
	publish bool
}

// app is what every pipeline command works with.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *pipeline.Pipeline
}

// bootstrap loads the configuration, opens the run log and builds the pipeline.
func bootstrap(n needs) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = layout.NewPaths(cfg.Pipeline.BaseDir).LogFile()
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var opts []pipeline.Option

	if n.api {
		client, err := marvel.NewClient(cfg.Marvel, logg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithLister(client))
	}

	if n.publish {
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return nil, fmt.Errorf("failed to create storage client: %w", err)
			}
			opts = append(opts, pipeline.WithArchiver(archive.NewArchiver(client, cfg.Storage.Bucket, cfg.Storage.Prefix, logg)))
		}
		if cfg.Database.Enabled {
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return nil, fmt.Errorf("database connection failed: %w", err)
			}
			opts = append(opts, pipeline.WithWarehouse(warehouse.New(db, logg)))
		}
	}

	p := pipeline.New(cfg.Pipeline, logg, opts...)
	return &app{cfg: cfg, logger: logg.With(zap.String("run_id", p.RunID())), pipeline: p}, nil
}

// finish flushes the logger and converts a failed stage into the command error.
func (a *app) finish(results ...pipeline.StageResult) error {
	defer a.logger.Sync()
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("stage %s failed: %w", r.Stage, r.Err)
		}
	}
	return nil
}
