package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"comics-etl/core/failure"
)

var (
	characterHeader = []string{"index", "id", "name", "comics_count"}
	comicHeader     = []string{"index", "id", "title", "characters_id_involved"}
	resultHeader    = []string{"name", "character_id", "comics_count", "count_calculated"}
	verifiedHeader  = []string{"name", "character_id", "comics_count", "count_calculated", "difference"}
)

// WriteCharacters writes the cleaned characters table.
func WriteCharacters(path string, rows []CharacterRow) error {
	records := make([][]string, 0, len(rows))
	for i, r := range rows {
		records = append(records, []string{
			strconv.Itoa(i),
			strconv.Itoa(r.ID),
			r.Name,
			strconv.Itoa(r.ComicsCount),
		})
	}
	return writeCSV(path, characterHeader, records)
}

// ReadCharacters reads a table written by WriteCharacters.
func ReadCharacters(path string) ([]CharacterRow, error) {
	records, err := readCSV(path, characterHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]CharacterRow, 0, len(records))
	for line, rec := range records {
		ints, err := atoi(path, line, rec[1], rec[3])
		if err != nil {
			return nil, err
		}
		rows = append(rows, CharacterRow{ID: ints[0], Name: rec[2], ComicsCount: ints[1]})
	}
	return rows, nil
}

// WriteComics writes the exploded comics table.
func WriteComics(path string, rows []ComicRow) error {
	records := make([][]string, 0, len(rows))
	for i, r := range rows {
		records = append(records, []string{
			strconv.Itoa(i),
			strconv.Itoa(r.ID),
			r.Title,
			strconv.Itoa(r.CharacterID),
		})
	}
	return writeCSV(path, comicHeader, records)
}

// ReadComics reads a table written by WriteComics.
func ReadComics(path string) ([]ComicRow, error) {
	records, err := readCSV(path, comicHeader)
	if err != nil {
		return nil, err
	}

	rows := make([]ComicRow, 0, len(records))
	for line, rec := range records {
		ints, err := atoi(path, line, rec[1], rec[3])
		if err != nil {
			return nil, err
		}
		rows = append(rows, ComicRow{ID: ints[0], Title: rec[2], CharacterID: ints[1]})
	}
	return rows, nil
}

// WriteResults writes the full aggregation table.
func WriteResults(path string, rows []ResultRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Name,
			strconv.Itoa(r.CharacterID),
			strconv.Itoa(r.ComicsCount),
			strconv.Itoa(r.CountCalculated),
		})
	}
	return writeCSV(path, resultHeader, records)
}

// WriteVerified writes the discrepancy table, which carries the difference column.
func WriteVerified(path string, rows []ResultRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Name,
			strconv.Itoa(r.CharacterID),
			strconv.Itoa(r.ComicsCount),
			strconv.Itoa(r.CountCalculated),
			strconv.Itoa(r.Difference),
		})
	}
	return writeCSV(path, verifiedHeader, records)
}

// ReadResults reads either result table. Difference is derived when the column is absent.
func ReadResults(path string) ([]ResultRow, error) {
	records, err := readCSV(path, nil)
	if err != nil {
		return nil, err
	}

	verified := false
	switch {
	case len(records) == 0:
		return nil, failure.Errorf(failure.KindParse, "read table", "missing header").WithPath(path)
	case slices.Equal(records[0], verifiedHeader):
		verified = true
	case slices.Equal(records[0], resultHeader):
	default:
		return nil, failure.Errorf(failure.KindParse, "read table", "unexpected header %v", records[0]).WithPath(path)
	}

	rows := make([]ResultRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		fields := rec[1:4]
		if verified {
			fields = rec[1:5]
		}
		ints, err := atoi(path, line, fields...)
		if err != nil {
			return nil, err
		}
		row := ResultRow{
			Name:            rec[0],
			CharacterID:     ints[0],
			ComicsCount:     ints[1],
			CountCalculated: ints[2],
			Difference:      ints[1] - ints[2],
		}
		if verified {
			row.Difference = ints[3]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return failure.New(failure.KindFilesystem, "create table directory", err).WithPath(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return failure.New(failure.KindFilesystem, "create table", err).WithPath(path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return failure.New(failure.KindFilesystem, "write table", err).WithPath(path)
	}
	if err := w.WriteAll(records); err != nil {
		return failure.New(failure.KindFilesystem, "write table", err).WithPath(path)
	}

	if err := f.Close(); err != nil {
		return failure.New(failure.KindFilesystem, "close table", err).WithPath(path)
	}
	return nil
}

// readCSV returns the data records after checking the header. A nil header returns
// every record, header included.
func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.New(failure.KindFilesystem, "open table", err).WithPath(path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, failure.New(failure.KindParse, "read table", err).WithPath(path)
	}

	if header == nil {
		return records, nil
	}
	if len(records) == 0 || !slices.Equal(records[0], header) {
		return nil, failure.Errorf(failure.KindParse, "read table", "expected header %v", header).WithPath(path)
	}
	return records[1:], nil
}

func atoi(path string, line int, fields ...string) ([]int, error) {
	out := make([]int, len(fields))
	for i, s := range fields {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, failure.New(failure.KindParse, "read table", fmt.Errorf("row %d: %w", line, err)).WithPath(path)
		}
		out[i] = n
	}
	return out, nil
}
