package fields

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformed marks a slot whose kind or text cannot be read as the
	// declared type.
	ErrMalformed = errors.New("malformed value")
	// ErrSizeMismatch marks a fixed size buffer given a string of another
	// length.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrMissingField marks an absent or null slot whose codec has no zero
	// reading.
	ErrMissingField = errors.New("missing field")
	// ErrDuplicateField marks a declaration naming the same field twice.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrUnsupported marks a Go type no codec can handle.
	ErrUnsupported = errors.New("unsupported type")
)

// DecodeError reports where in the source a decode failed.
type DecodeError struct {
	FieldPath string // Field path (e.g., "outer.items[2].name")
	Message   string
	Err       error
}

func (e *DecodeError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("decode error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DeclareError reports a rejected field declaration.
type DeclareError struct {
	Field   string
	Message string
	Err     error
}

func (e *DeclareError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("declare error for %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("declare error: %s", e.Message)
}

func (e *DeclareError) Unwrap() error {
	return e.Err
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// atField and atIndex prefix the path of err with one step.
func atField(name string, err error) error {
	return prefixPath(quoteField(name), err)
}

func atIndex(i int, err error) error {
	return prefixPath("["+strconv.Itoa(i)+"]", err)
}

func prefixPath(step string, err error) error {
	if de, ok := err.(*DecodeError); ok {
		cp := *de
		cp.FieldPath = joinPath(step, de.FieldPath)
		return &cp
	}
	return &DecodeError{FieldPath: step, Message: err.Error(), Err: err}
}

func joinPath(step, rest string) string {
	if rest == "" || strings.HasPrefix(rest, "[") {
		return step + rest
	}
	return step + "." + rest
}

// decodeErr makes sure err is a *DecodeError for callers of the top level
// entry points.
func decodeErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*DecodeError); ok {
		return err
	}
	return &DecodeError{Message: err.Error(), Err: err}
}

func quoteField(f string) string {
	if f == "" || strings.ContainsAny(f, ".[]{}\"' \t\n") {
		return strconv.Quote(f)
	}
	return f
}
