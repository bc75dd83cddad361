// Package server holds the report HTTP server configuration.
//
// The serve command owns the Fiber app lifecycle; this package only defines the
// settings it reads: listen port, API key and the result cache lifetime.
package server
