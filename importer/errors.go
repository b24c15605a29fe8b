package importer

import (
	"errors"
	"fmt"
)

// Error kinds returned by the loaders. Match them with errors.Is.
var (
	ErrMissingFile = errors.New("input file unreadable")
	ErrSchema      = errors.New("schema mismatch")
	ErrParse       = errors.New("malformed input")
)

// ImportError describes a failure to load one input source.
type ImportError struct {
	Kind    error
	Source  string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Kind, e.Source, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the error kind so callers can test errors.Is(err, ErrSchema).
func (e *ImportError) Is(target error) bool {
	return target == e.Kind
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func missingFile(source string, err error) error {
	return &ImportError{Kind: ErrMissingFile, Source: source, Message: "cannot open", Err: err}
}

func parseError(source string, err error) error {
	return &ImportError{Kind: ErrParse, Source: source, Message: "cannot parse", Err: err}
}

func schemaError(source, format string, args ...interface{}) error {
	return &ImportError{Kind: ErrSchema, Source: source, Message: fmt.Sprintf(format, args...)}
}
