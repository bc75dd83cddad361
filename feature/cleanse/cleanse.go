package cleanse

import (
	"path/filepath"

	"comics-etl/core/dataset"
	"comics-etl/core/marvel"

	"go.uber.org/zap"
)

// Result describes one cleansing run.
type Result struct {
	// Path is the written table.
	Path string `json:"path"`
	// Files is the number of page files read.
	Files int `json:"files"`
	// Records is the number of raw records read.
	Records int `json:"records"`
	// Dropped counts comics removed for having no characters.
	Dropped int `json:"dropped"`
	// Duplicates counts rows removed by dedupe.
	Duplicates int `json:"duplicates"`
}

// CharactersResult is the outcome of cleansing characters.
type CharactersResult struct {
	Result
	Rows []dataset.CharacterRow `json:"-"`
}

// ComicsResult is the outcome of cleansing comics.
type ComicsResult struct {
	Result
	Rows []dataset.ComicRow `json:"-"`
}

// Cleanser turns raw pages into cleaned tables.
type Cleanser struct {
	logger *zap.Logger
	dedupe bool
}

// NewCleanser creates a cleanser. With dedupe set, repeated ids are collapsed to
// their first occurrence.
func NewCleanser(logger *zap.Logger, dedupe bool) *Cleanser {
	return &Cleanser{logger: logger, dedupe: dedupe}
}

// Characters cleanses the character pages in inDir into outDir/cleaned_characters.csv.
func (c *Cleanser) Characters(inDir, outDir string) (*CharactersResult, error) {
	c.logger.Info("Characters cleansing started", zap.String("input", inDir))

	records, files, err := ReadPages(inDir)
	if err != nil {
		return nil, err
	}

	rows, err := CleanCharacters(records)
	if err != nil {
		return nil, err
	}

	res := &CharactersResult{Result: Result{Files: files, Records: len(records)}}
	if c.dedupe {
		before := len(rows)
		rows = DedupeCharacters(rows)
		res.Duplicates = before - len(rows)
	}

	res.Path = filepath.Join(outDir, dataset.CharactersFile)
	if err := dataset.WriteCharacters(res.Path, rows); err != nil {
		return nil, err
	}
	res.Rows = rows

	c.logger.Info("All characters are cleaned",
		zap.String("path", res.Path),
		zap.Int("files", files),
		zap.Int("rows", len(rows)),
		zap.Int("duplicates", res.Duplicates),
	)
	return res, nil
}

// Comics cleanses the comic pages in inDir into outDir/cleaned_comics.csv.
func (c *Cleanser) Comics(inDir, outDir string) (*ComicsResult, error) {
	c.logger.Info("Comics cleansing started", zap.String("input", inDir))

	records, files, err := ReadPages(inDir)
	if err != nil {
		return nil, err
	}

	rows, dropped, err := ExplodeComics(records)
	if err != nil {
		return nil, err
	}

	res := &ComicsResult{Result: Result{Files: files, Records: len(records), Dropped: dropped}}
	if c.dedupe {
		before := len(rows)
		rows = DedupeComics(rows)
		res.Duplicates = before - len(rows)
	}

	res.Path = filepath.Join(outDir, dataset.ComicsFile)
	if err := dataset.WriteComics(res.Path, rows); err != nil {
		return nil, err
	}
	res.Rows = rows

	c.logger.Info("All comics are cleaned",
		zap.String("path", res.Path),
		zap.Int("files", files),
		zap.Int("rows", len(rows)),
		zap.Int("dropped", dropped),
		zap.Int("duplicates", res.Duplicates),
	)
	return res, nil
}

// CleanCharacters projects raw character records to table rows.
func CleanCharacters(records []Record) ([]dataset.CharacterRow, error) {
	rows := make([]dataset.CharacterRow, 0, len(records))
	for _, rec := range records {
		ch, err := marvel.DecodeCharacter(rec.Raw)
		if err != nil {
			return nil, rec.wrap("cleanse characters", err)
		}
		rows = append(rows, dataset.CharacterRow{ID: ch.ID, Name: ch.Name, ComicsCount: ch.ComicsAvailable})
	}
	return rows, nil
}

// ExplodeComics maps raw comic records to one row per involved character. It also
// returns how many comics were dropped for having zero available characters.
func ExplodeComics(records []Record) ([]dataset.ComicRow, int, error) {
	var (
		rows    = make([]dataset.ComicRow, 0, len(records))
		dropped int
	)
	for _, rec := range records {
		comic, err := marvel.DecodeComic(rec.Raw)
		if err != nil {
			return nil, 0, rec.wrap("cleanse comics", err)
		}

		if comic.CharactersAvailable == 0 {
			dropped++
			continue
		}

		ids, err := comic.CharacterIDs()
		if err != nil {
			return nil, 0, rec.wrap("cleanse comics", err)
		}
		for _, id := range ids {
			rows = append(rows, dataset.ComicRow{ID: comic.ID, Title: comic.Title, CharacterID: id})
		}
	}
	return rows, dropped, nil
}

// DedupeCharacters keeps the first row of every character id.
func DedupeCharacters(rows []dataset.CharacterRow) []dataset.CharacterRow {
	seen := make(map[int]struct{}, len(rows))
	out := make([]dataset.CharacterRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// DedupeComics keeps the first row of every (comic id, character id) pair.
func DedupeComics(rows []dataset.ComicRow) []dataset.ComicRow {
	type pair struct{ comic, character int }

	seen := make(map[pair]struct{}, len(rows))
	out := make([]dataset.ComicRow, 0, len(rows))
	for _, r := range rows {
		k := pair{r.ID, r.CharacterID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
