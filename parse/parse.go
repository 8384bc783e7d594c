package parse

import (
	"fmt"
	"io"

	"github.com/signadot/datafields/format"
	"github.com/signadot/datafields/ir"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	switch pOpts.format {
	case format.JSONFormat:
		return parseJSON(d, pOpts)
	case format.YAMLFormat:
		return parseYAML(d)
	case format.CBORFormat:
		return parseCBOR(d)
	}
	return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, pOpts.format)
}

func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	pOpts := newParseOpts(opts)
	if pOpts.maxSize > 0 {
		r = io.LimitReader(r, int64(pOpts.maxSize)+1)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if pOpts.maxSize > 0 && len(d) > pOpts.maxSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrParse, pOpts.maxSize)
	}
	return Parse(d, opts...)
}

func newParseOpts(opts []ParseOption) *parseOpts {
	pOpts := &parseOpts{format: format.JSONFormat, jsonc: true}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts
}
