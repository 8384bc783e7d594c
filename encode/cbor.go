package encode

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/datafields/ir"
)

// cborEncMode writes Core Deterministic Encoding (RFC 8949 §4.2): the
// same document always produces the same bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: CBOR encoder initialization failed: " + err.Error())
	}
}

func encodeCBOR(node *ir.Node, w io.Writer) error {
	v, err := toAny(node)
	if err != nil {
		return err
	}
	d, err := cborEncMode.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

func toAny(node *ir.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			v, err := toAny(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[f.String] = v
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, e := range node.Values {
			v, err := toAny(e)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		}
		if u, err := node.AsUint(); err == nil {
			return u, nil
		}
		b, ok := new(big.Int).SetString(node.Number, 10)
		if !ok {
			return nil, fmt.Errorf("%w: number %q", ErrEncoding, node.Number)
		}
		return b, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NullType:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
}
