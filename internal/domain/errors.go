package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversion jobs
var (
	// ErrNotFound indicates the source path does not exist
	ErrNotFound = errors.New("source file not found")

	// ErrIO indicates a read, write, open or close failure
	ErrIO = errors.New("i/o failure")

	// ErrInvalidToken indicates a text line that is not a valid binary byte
	ErrInvalidToken = errors.New("invalid binary token")
)

// ErrorKind classifies a ConversionError
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindNotFound
	KindInvalidToken
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidToken:
		return "InvalidToken"
	default:
		return "IOError"
	}
}

// sentinel returns the package error matching the kind
func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindInvalidToken:
		return ErrInvalidToken
	default:
		return ErrIO
	}
}

// ConversionError is the terminal error of a job.
// errors.Is matches both the sentinel for Kind and the wrapped cause.
type ConversionError struct {
	Kind ErrorKind
	Op   string // "open", "read", "write", "close", "stat"
	Path string
	Err  error
}

// NewError builds a ConversionError
func NewError(kind ErrorKind, op, path string, err error) *ConversionError {
	return &ConversionError{Kind: kind, Op: op, Path: path, Err: err}
}

func (e *ConversionError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf reports the kind of err, defaulting to KindIO for foreign errors
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	}
	return KindIO
}
