package layout

import (
	"path/filepath"

	"comics-etl/core/marvel"
)

// Paths resolves every pipeline directory against a base directory.
type Paths struct {
	Base string
}

// NewPaths creates Paths rooted at base.
func NewPaths(base string) Paths {
	if base == "" {
		base = "."
	}
	return Paths{Base: base}
}

// Data is the root of the data tree.
func (p Paths) Data() string {
	return filepath.Join(p.Base, "data")
}

// Raw is the directory holding raw page files of kind.
func (p Paths) Raw(kind marvel.Kind) string {
	return filepath.Join(p.Data(), "raw", string(kind))
}

// Stage is the directory holding the cleaned table of kind.
func (p Paths) Stage(kind marvel.Kind) string {
	return filepath.Join(p.Data(), "stage", string(kind))
}

// Curated is the directory holding the result tables.
func (p Paths) Curated() string {
	return filepath.Join(p.Data(), "curated", "aggregations")
}

// Logging is the directory holding the log file.
func (p Paths) Logging() string {
	return filepath.Join(p.Data(), "logging")
}

// LogFile is the pipeline log file.
func (p Paths) LogFile() string {
	return filepath.Join(p.Logging(), "app.log")
}

// RequiredFolders lists every directory the pipeline writes into.
func (p Paths) RequiredFolders() []string {
	folders := make([]string, 0, 2*len(marvel.Kinds)+2)
	for _, kind := range marvel.Kinds {
		folders = append(folders, p.Raw(kind))
	}
	for _, kind := range marvel.Kinds {
		folders = append(folders, p.Stage(kind))
	}
	return append(folders, p.Curated(), p.Logging())
}
