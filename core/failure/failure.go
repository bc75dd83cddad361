package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindConfig     Kind = "config"
	KindNetwork    Kind = "network"
	KindParse      Kind = "parse"
	KindShape      Kind = "shape"
	KindFilesystem Kind = "filesystem"
	KindStorage    Kind = "storage"
	KindDatabase   Kind = "database"
	// KindUnknown is returned by KindOf for errors that were never classified.
	KindUnknown Kind = "unknown"
)

// Error is a classified pipeline error.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Op names the operation that failed, e.g. "list characters".
	Op string
	// Path is the file or URL involved, if any.
	Path string
	// Err is the underlying cause.
	Err error
}

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// WithPath returns the error with Path set.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Op
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
