// Package failure defines the closed set of error kinds the pipeline reports.
//
// Every stage boundary wraps its error in a *failure.Error so callers can tell
// a missing API key apart from an unreachable host or a malformed record without
// matching on message text.
//
// # Kinds
//
//   - config: missing or invalid configuration (API keys, paths).
//   - network: the API could not be reached or answered with a non-2xx status.
//   - parse: a response body or page file is not valid JSON/CSV.
//   - shape: a record is valid JSON but lacks an expected field.
//   - filesystem: a directory or file could not be created, read or written.
//   - storage: the object storage bucket rejected an operation.
//   - database: the relational sink rejected an operation.
//
// # Usage
//
//	if err != nil {
//	    return failure.New(failure.KindFilesystem, "write page", err).WithPath(path)
//	}
//
//	if failure.Is(err, failure.KindNetwork) { ... }
package failure
