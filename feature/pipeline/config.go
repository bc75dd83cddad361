package pipeline

import "time"

// Config holds the pipeline settings.
type Config struct {
	// BaseDir is the directory the data/ tree is created in.
	BaseDir string `mapstructure:"base_dir" default:"."`
	// RequestDelay is slept before every API request.
	RequestDelay time.Duration `mapstructure:"request_delay" default:"10s"`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// Dedupe collapses repeated characters and comic rows while cleansing.
	Dedupe bool `mapstructure:"dedupe" default:"false"`
}
