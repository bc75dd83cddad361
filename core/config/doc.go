// Package config provides configuration management for the comics ETL.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Marvel: API base URL, public and private keys, request timeout
//   - Pipeline: data directory, request delay, page size, dedupe
//   - Log: level, format and log file
//   - Storage: S3/MinIO archive settings
//   - Database: warehouse connection details
//   - Server: report server port, API key and cache TTL
//
// Defaults come from the `default` struct tags. Every key can be overridden by the
// matching upper-case environment variable, e.g. PIPELINE_REQUEST_DELAY=2s.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.BaseDir)
package config
