package logger

import (
	"errors"
	"fmt"
)

// DefaultTag is reported for errors that never passed through WithTag
const DefaultTag = "cli"

// TaggedError names the log tag a command failure is reported under
type TaggedError struct {
	Tag string
	Err error
}

func (e *TaggedError) Error() string {
	return e.Err.Error()
}

func (e *TaggedError) Unwrap() error {
	return e.Err
}

// WithTag attaches tag to err. Nil stays nil, and an error that already
// carries a tag keeps the innermost one.
func WithTag(tag string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *TaggedError
	if errors.As(err, &tagged) {
		return err
	}
	return &TaggedError{Tag: tag, Err: err}
}

// Tagf formats a new error under tag
func Tagf(tag, format string, args ...any) error {
	return WithTag(tag, fmt.Errorf(format, args...))
}

// ErrorTag returns the tag of the first TaggedError in err's chain, or
// DefaultTag.
func ErrorTag(err error) string {
	var tagged *TaggedError
	if errors.As(err, &tagged) {
		return tagged.Tag
	}
	return DefaultTag
}
