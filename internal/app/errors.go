package app

import (
	"errors"
	"fmt"

	"github.com/obiente/translate/whisper-transcribe/internal/whisper"
)

// Kind classifies a failure. Every kind is reported the same way, as an
// ErrorReport on stderr with exit status 1; the kind only drives logging.
type Kind int

const (
	KindRuntime Kind = iota
	KindUsage
	KindFileNotFound
	KindDependencyMissing
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindFileNotFound:
		return "file_not_found"
	case KindDependencyMissing:
		return "dependency_missing"
	default:
		return "runtime"
	}
}

// Error is a classified adapter failure. Its message is what ends up in the
// ErrorReport.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// ErrFileNotFound builds the validation failure for a missing input path.
func ErrFileNotFound(path string) *Error {
	return &Error{Kind: KindFileNotFound, Err: fmt.Errorf("File not found: %s", path)}
}

// ErrDependencyMissing builds the failure reported when the engine is not
// compiled into the binary.
func ErrDependencyMissing() *Error {
	return &Error{
		Kind: KindDependencyMissing,
		Err:  fmt.Errorf("%s package is not installed", whisper.LibraryName),
	}
}

// Usage wraps a command-line parsing error.
func Usage(err error) *Error {
	return &Error{Kind: KindUsage, Err: err}
}

// Runtime wraps anything raised while loading or transcribing. The message is
// passed through unchanged.
func Runtime(err error) *Error {
	return &Error{Kind: KindRuntime, Err: err}
}

// KindOf returns the Kind of err, KindRuntime when it carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindRuntime
}
