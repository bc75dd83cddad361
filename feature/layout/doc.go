// Package layout checks and creates the on-disk directory structure of the pipeline.
//
// # Structure
//
//	data/raw/characters/       raw page files
//	data/raw/comics/
//	data/stage/characters/     cleaned tables
//	data/stage/comics/
//	data/curated/aggregations/ result tables
//	data/logging/              app.log
//
// # Usage
//
//	p := layout.NewPaths(cfg.Pipeline.BaseDir)
//	missing, err := layout.CheckStructure(p)
//	err = layout.FixStructure(p, logger, missing)
package layout
