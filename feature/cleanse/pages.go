package cleanse

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"comics-etl/core/failure"
)

// Record is one raw record and where it came from.
type Record struct {
	File  string
	Index int
	Raw   json.RawMessage
}

// wrap attaches the record position to a decode error, keeping its kind.
func (r Record) wrap(op string, err error) error {
	kind := failure.KindOf(err)
	if kind == failure.KindUnknown {
		kind = failure.KindShape
	}
	return failure.New(kind, op, fmt.Errorf("record %d: %w", r.Index, err)).WithPath(r.File)
}

// ReadPages loads every *.json page file in dir, in file-name order.
func ReadPages(dir string) ([]Record, int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, 0, failure.New(failure.KindFilesystem, "list page files", err).WithPath(dir)
	}
	if len(files) == 0 {
		return nil, 0, failure.New(failure.KindFilesystem, "list page files", errors.New("no page files found")).WithPath(dir)
	}
	sort.Strings(files)

	var records []Record
	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, 0, failure.New(failure.KindFilesystem, "read page", err).WithPath(file)
		}

		var page []json.RawMessage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, 0, failure.New(failure.KindParse, "decode page", err).WithPath(file)
		}

		for i, raw := range page {
			records = append(records, Record{File: file, Index: i, Raw: raw})
		}
	}
	return records, len(files), nil
}
