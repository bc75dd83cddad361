package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"comics-etl/core/failure"
	"comics-etl/core/marvel"
)

// StampLayout formats the fetch time in file names and the current_timestamp field.
const StampLayout = "02012006_150405"

// TimestampField is added to every persisted record.
const TimestampField = "current_timestamp"

// PageFileName returns the file name of a page fetched at offset.
func PageFileName(kind marvel.Kind, offset int, stamp string) string {
	return fmt.Sprintf("%s_%d_%s.json", kind, offset, stamp)
}

// WritePage stamps the records and writes them as a JSON array into dir.
func WritePage(dir string, kind marvel.Kind, offset int, fetchedAt time.Time, records []json.RawMessage) (string, error) {
	stamp := fetchedAt.Format(StampLayout)
	path := filepath.Join(dir, PageFileName(kind, offset, stamp))

	stamped, err := stampRecords(records, stamp)
	if err != nil {
		return "", failure.New(failure.KindShape, "stamp page", err).WithPath(path)
	}

	body, err := json.Marshal(stamped)
	if err != nil {
		return "", failure.New(failure.KindParse, "encode page", err).WithPath(path)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", failure.New(failure.KindFilesystem, "write page", err).WithPath(path)
	}
	return path, nil
}

func stampRecords(records []json.RawMessage, stamp string) ([]json.RawMessage, error) {
	value, err := json.Marshal(stamp)
	if err != nil {
		return nil, err
	}

	out := make([]json.RawMessage, 0, len(records))
	for i, raw := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("record %d is not an object: %w", i, err)
		}
		if fields == nil {
			return nil, fmt.Errorf("record %d is null", i)
		}
		fields[TimestampField] = value

		b, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}
