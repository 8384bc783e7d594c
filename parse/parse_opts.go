package parse

import (
	"github.com/signadot/datafields/format"
)

type parseOpts struct {
	format  format.Format
	jsonc   bool
	maxSize int
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseCBOR() ParseOption {
	return ParseFormat(format.CBORFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseJSONC controls whether JSON input may carry comments and trailing
// commas. It is on by default.
func ParseJSONC(v bool) ParseOption {
	return func(o *parseOpts) { o.jsonc = v }
}

// ParseMaxSize limits ParseReader to n bytes of input. n <= 0 means no
// limit.
func ParseMaxSize(n int) ParseOption {
	return func(o *parseOpts) { o.maxSize = n }
}
