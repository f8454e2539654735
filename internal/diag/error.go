package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a formatting failure.
type Kind uint8

const (
	// KindConfig is an invalid formatting option. Fatal: detected before any
	// file processing begins.
	KindConfig Kind = iota
	// KindPath is a UFO path argument that does not denote a valid package.
	KindPath
	// KindParse is a file that cannot be parsed into its structured form.
	KindParse
	// KindWrite is an I/O failure while writing a canonical output file.
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config error"
	case KindPath:
		return "invalid path error"
	case KindParse:
		return "read error"
	case KindWrite:
		return "write error"
	}
	return "unknown error"
}

// Error is a tagged formatting failure. Path names the file or package the
// failure belongs to; Err carries the underlying cause when one exists.
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewConfig reports an invalid formatting option.
func NewConfig(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Msg: fmt.Sprintf(format, args...)}
}

// NewPath reports an invalid UFO path argument.
func NewPath(path, msg string) *Error {
	return &Error{Kind: KindPath, Path: path, Msg: msg}
}

// NewParse wraps a per-file parse failure.
func NewParse(path string, err error) *Error {
	return &Error{Kind: KindParse, Path: path, Err: err}
}

// NewWrite wraps a per-file write failure.
func NewWrite(path string, err error) *Error {
	return &Error{Kind: KindWrite, Path: path, Err: err}
}

// KindOf returns the kind of err when it is a diag.Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
