package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"comics-etl/core/dataset"
	"comics-etl/core/failure"
	"comics-etl/core/marvel"
	"comics-etl/feature/aggregate"
	"comics-etl/feature/archive"
	"comics-etl/feature/cleanse"
	"comics-etl/feature/fetch"
	"comics-etl/feature/layout"
	"comics-etl/feature/warehouse"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunOptions selects the optional stages of Run.
type RunOptions struct {
	// Fetch pulls fresh pages from the API before cleansing.
	Fetch bool
	// Publish archives the data tree and loads the warehouse after aggregation.
	Publish bool
}

// Pipeline runs the stages over one data directory. It is not safe for concurrent use.
type Pipeline struct {
	cfg    Config
	paths  layout.Paths
	runID  string
	logger *zap.Logger

	lister     fetch.Lister
	fetcher    *fetch.Fetcher
	cleanser   *cleanse.Cleanser
	aggregator *aggregate.Aggregator
	archiver   *archive.Archiver
	warehouse  *warehouse.Warehouse

	// tables produced by earlier stages of the same run
	characters []dataset.CharacterRow
	comics     []dataset.ComicRow
	results    *aggregate.Result
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLister enables the fetch stages.
func WithLister(client fetch.Lister) Option {
	return func(p *Pipeline) {
		p.lister = client
	}
}

// WithArchiver enables archiving during publish.
func WithArchiver(a *archive.Archiver) Option {
	return func(p *Pipeline) {
		p.archiver = a
	}
}

// WithWarehouse enables the database load during publish.
func WithWarehouse(w *warehouse.Warehouse) Option {
	return func(p *Pipeline) {
		p.warehouse = w
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(p *Pipeline) {
		p.runID = id
	}
}

// New creates a pipeline rooted at cfg.BaseDir.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		paths:  layout.NewPaths(cfg.BaseDir),
		runID:  uuid.NewString(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("run_id", p.runID))
	if p.lister != nil {
		p.fetcher = fetch.NewFetcher(p.lister, cfg.PageSize, cfg.RequestDelay, p.logger)
	}
	p.cleanser = cleanse.NewCleanser(p.logger, cfg.Dedupe)
	p.aggregator = aggregate.NewAggregator(p.logger)
	return p
}

// RunID returns the id attached to every log line of this pipeline.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Paths returns the resolved data directories.
func (p *Pipeline) Paths() layout.Paths {
	return p.paths
}

// Run executes the stages in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) *Report {
	start := time.Now()
	report := &Report{RunID: p.runID}
	p.logger.Info("Pipeline started", zap.Bool("fetch", opts.Fetch), zap.Bool("publish", opts.Publish))

	steps := []func() StageResult{p.Layout}
	if opts.Fetch {
		steps = append(steps, func() StageResult { return p.Fetch(ctx, marvel.KindCharacters) })
	}
	steps = append(steps, p.CleanseCharacters)
	if opts.Fetch {
		steps = append(steps, func() StageResult { return p.Fetch(ctx, marvel.KindComics) })
	}
	steps = append(steps, p.CleanseComics, p.Aggregate)
	if opts.Publish {
		steps = append(steps, func() StageResult { return p.Publish(ctx) })
	}

	for _, step := range steps {
		res := step()
		report.Stages = append(report.Stages, res)
		if res.Err != nil {
			p.logger.Error("Pipeline stopped",
				zap.String("stage", string(res.Stage)),
				zap.String("kind", string(failure.KindOf(res.Err))),
				zap.Error(res.Err),
			)
			break
		}
	}

	if p.results != nil {
		summary := p.results.Summary
		report.Summary = &summary
		report.Discrepancies = p.results.Discrepancies
	}
	report.Duration = time.Since(start)

	if report.Err() == nil {
		p.logger.Info("Pipeline finished", zap.Duration("duration", report.Duration))
	}
	return report
}

// Layout creates any missing data directory.
func (p *Pipeline) Layout() StageResult {
	return p.timed(StageLayout, func(res *StageResult) error {
		missing, err := layout.CheckStructure(p.paths)
		if err != nil {
			return err
		}
		res.Files = len(missing)
		return layout.FixStructure(p.logger, missing)
	})
}

// Fetch drains the collection of kind into its raw directory.
func (p *Pipeline) Fetch(ctx context.Context, kind marvel.Kind) StageResult {
	stage := StageFetchCharacters
	if kind == marvel.KindComics {
		stage = StageFetchComics
	}

	return p.timed(stage, func(res *StageResult) error {
		if p.fetcher == nil {
			return failure.New(failure.KindConfig, "fetch", errors.New("no api client configured"))
		}
		out, err := p.fetcher.FetchAll(ctx, kind, p.paths.Raw(kind))
		if out != nil {
			res.Rows = out.Records
			res.Files = len(out.Files)
		}
		return err
	})
}

// CleanseCharacters builds the cleaned character table from the raw pages.
func (p *Pipeline) CleanseCharacters() StageResult {
	return p.timed(StageCleanseCharacters, func(res *StageResult) error {
		out, err := p.cleanser.Characters(p.paths.Raw(marvel.KindCharacters), p.paths.Stage(marvel.KindCharacters))
		if err != nil {
			return err
		}
		p.characters = out.Rows
		res.Rows = len(out.Rows)
		res.Files = out.Files
		return nil
	})
}

// CleanseComics builds the cleaned comic table from the raw pages.
func (p *Pipeline) CleanseComics() StageResult {
	return p.timed(StageCleanseComics, func(res *StageResult) error {
		out, err := p.cleanser.Comics(p.paths.Raw(marvel.KindComics), p.paths.Stage(marvel.KindComics))
		if err != nil {
			return err
		}
		p.comics = out.Rows
		res.Rows = len(out.Rows)
		res.Files = out.Files
		return nil
	})
}

// Aggregate joins the cleaned tables and writes the result tables. Tables not
// produced earlier in this run are read from the stage directories.
func (p *Pipeline) Aggregate() StageResult {
	return p.timed(StageAggregate, func(res *StageResult) error {
		if err := p.loadCleaned(); err != nil {
			return err
		}
		out, err := p.aggregator.Run(p.characters, p.comics, p.paths.Curated())
		if err != nil {
			return err
		}
		p.results = out
		res.Rows = len(out.Rows)
		res.Files = 2
		return nil
	})
}

// Publish archives the data tree and loads the warehouse, whichever is configured.
func (p *Pipeline) Publish(ctx context.Context) StageResult {
	return p.timed(StagePublish, func(res *StageResult) error {
		if p.archiver == nil && p.warehouse == nil {
			p.logger.Warn("Publish skipped, neither storage nor database is enabled")
			return nil
		}

		if p.archiver != nil {
			files, err := p.archive(ctx)
			res.Files = files
			if err != nil {
				return err
			}
		}

		if p.warehouse != nil {
			rows, err := p.load(ctx)
			res.Rows = rows
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Pipeline) archive(ctx context.Context) (int, error) {
	if err := p.archiver.EnsureBucket(ctx); err != nil {
		return 0, err
	}

	type source struct {
		dir          string
		skipExisting bool
	}
	// Raw pages carry their fetch time in the name, so a key never changes content.
	var sources []source
	for _, kind := range marvel.Kinds {
		sources = append(sources, source{p.paths.Raw(kind), true})
	}
	for _, kind := range marvel.Kinds {
		sources = append(sources, source{p.paths.Stage(kind), false})
	}
	sources = append(sources, source{p.paths.Curated(), false})

	uploaded := 0
	for _, src := range sources {
		rel, err := filepath.Rel(p.paths.Data(), src.dir)
		if err != nil {
			return uploaded, failure.New(failure.KindFilesystem, "resolve archive key", err).WithPath(src.dir)
		}
		out, err := p.archiver.UploadDir(ctx, src.dir, filepath.ToSlash(rel), src.skipExisting)
		if out != nil {
			uploaded += out.Uploaded
		}
		if err != nil {
			return uploaded, err
		}
	}
	return uploaded, nil
}

func (p *Pipeline) load(ctx context.Context) (int, error) {
	if err := p.loadCleaned(); err != nil {
		return 0, err
	}
	if p.results == nil {
		rows, err := dataset.ReadResults(filepath.Join(p.paths.Curated(), dataset.FinalResultsFile))
		if err != nil {
			return 0, err
		}
		p.results = &aggregate.Result{Rows: rows, Discrepancies: aggregate.Discrepancies(rows)}
	}

	if err := p.warehouse.Migrate(ctx); err != nil {
		return 0, err
	}
	out, err := p.warehouse.Load(ctx, warehouse.Tables{
		RunID:      p.runID,
		Characters: p.characters,
		Comics:     p.comics,
		Results:    p.results.Rows,
	})
	if err != nil {
		return 0, err
	}
	return out.Total(), nil
}

// loadCleaned reads whichever cleaned table this run has not produced yet.
func (p *Pipeline) loadCleaned() error {
	if p.characters == nil {
		rows, err := dataset.ReadCharacters(filepath.Join(p.paths.Stage(marvel.KindCharacters), dataset.CharactersFile))
		if err != nil {
			return err
		}
		p.characters = rows
	}
	if p.comics == nil {
		rows, err := dataset.ReadComics(filepath.Join(p.paths.Stage(marvel.KindComics), dataset.ComicsFile))
		if err != nil {
			return err
		}
		p.comics = rows
	}
	return nil
}

func (p *Pipeline) timed(stage Stage, fn func(res *StageResult) error) StageResult {
	start := time.Now()
	res := StageResult{Stage: stage}
	res.Err = fn(&res)
	res.Duration = time.Since(start)
	if res.Err != nil {
		res.Error = res.Err.Error()
	}

	if res.Err == nil {
		p.logger.Debug("Stage finished",
			zap.String("stage", string(stage)),
			zap.Int("rows", res.Rows),
			zap.Int("files", res.Files),
			zap.Duration("duration", res.Duration),
		)
	}
	return res
}
