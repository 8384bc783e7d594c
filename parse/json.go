package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/datafields/ir"
	"github.com/tidwall/jsonc"
)

func parseJSON(d []byte, opts *parseOpts) (*ir.Node, error) {
	if opts.jsonc {
		// strip comments and trailing commas
		d = jsonc.ToJSON(d)
	}
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := jsonValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	off := dec.InputOffset()
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &OffsetError{Offset: off, Err: ErrTrailer}
	}
	return res, nil
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	off := dec.InputOffset()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, jsonErr(dec, err)
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		}
		return nil, &OffsetError{Offset: off, Err: fmt.Errorf("%w: unexpected %q", ErrParse, v)}
	case string:
		return ir.FromString(v), nil
	case json.Number:
		n, err := ir.FromNumber(v.String())
		if err != nil {
			return nil, &OffsetError{Offset: off, Err: fmt.Errorf("%w: number %s: %w", ErrParse, v, err)}
		}
		return n, nil
	case bool:
		return ir.FromBool(v), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, &OffsetError{Offset: off, Err: fmt.Errorf("%w: unexpected token %v", ErrParse, tok)}
}

func jsonObject(dec *json.Decoder) (*ir.Node, error) {
	res := ir.Object()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, jsonErr(dec, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &OffsetError{Offset: dec.InputOffset(), Err: fmt.Errorf("%w: object key %v is not a string", ErrParse, tok)}
		}
		val, err := jsonValue(dec)
		if err != nil {
			return nil, jsonErr(dec, err)
		}
		res.Put(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, jsonErr(dec, err)
	}
	return res, nil
}

func jsonArray(dec *json.Decoder) (*ir.Node, error) {
	res := ir.FromSlice(nil)
	for dec.More() {
		val, err := jsonValue(dec)
		if err != nil {
			return nil, jsonErr(dec, err)
		}
		res.Append(val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, jsonErr(dec, err)
	}
	return res, nil
}

func jsonErr(dec *json.Decoder, err error) error {
	if errors.Is(err, ErrParse) {
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &OffsetError{Offset: dec.InputOffset(), Err: fmt.Errorf("%w: unexpected end of input", ErrParse)}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return &OffsetError{Offset: se.Offset, Err: fmt.Errorf("%w: %s", ErrParse, se.Error())}
	}
	return &OffsetError{Offset: dec.InputOffset(), Err: fmt.Errorf("%w: %w", ErrParse, err)}
}
