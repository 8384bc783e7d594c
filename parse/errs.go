package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse   = errors.New("parse error")
	ErrEmpty   = fmt.Errorf("%w: empty document", ErrParse)
	ErrTrailer = fmt.Errorf("%w: trailing data", ErrParse)
)

// OffsetError reports a parse failure at a byte offset of the input.
type OffsetError struct {
	Offset int64
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}
