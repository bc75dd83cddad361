// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the pipeline commands and the report
// server, and integrates with the Fiber web framework.
//
// # Log File
//
// When Config.File is set the file is truncated and added as a second output, so
// every pipeline run leaves exactly one run's log on disk next to its data.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so all logs related to a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", File: "data/logging/app.log"})
//	log.Info("Pipeline started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
