package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies analysis failures for callers that report them over a
// wire protocol rather than inspecting Go error types.
type ErrorKind string

const (
	KindUnsupportedLanguage ErrorKind = "unsupported_language"
	KindFileLoad            ErrorKind = "file_load_error"
	KindParse               ErrorKind = "parse_error"
	KindTimeout             ErrorKind = "timeout"
	KindInternal            ErrorKind = "internal_error"
)

// UnsupportedLanguageError reports input in a language with no registered
// grammar. Known is true when the extension is recognized but no bindings
// exist for it, as with markdown.
type UnsupportedLanguageError struct {
	Path       string
	LanguageID string
	Known      bool
}

func (e *UnsupportedLanguageError) Error() string {
	if e.LanguageID == "" {
		return fmt.Sprintf("unsupported language for %s", e.Path)
	}
	return fmt.Sprintf("unsupported language %q for %s", e.LanguageID, e.Path)
}

// FileLoadError reports a file that could not be read or decoded.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error { return e.Err }

// ParseError reports input the grammar rejected outright.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TimeoutError reports a blocking analysis call that exceeded its deadline.
type TimeoutError struct {
	RequestID string
	Limit     time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("analysis request %s exceeded %s", e.RequestID, e.Limit)
}

// KindOf maps an error onto its ErrorKind, defaulting to internal_error.
func KindOf(err error) ErrorKind {
	var unsupported *UnsupportedLanguageError
	var load *FileLoadError
	var parse *ParseError
	var timeout *TimeoutError
	switch {
	case errors.As(err, &unsupported):
		return KindUnsupportedLanguage
	case errors.As(err, &load):
		return KindFileLoad
	case errors.As(err, &parse):
		return KindParse
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindInternal
	}
}
