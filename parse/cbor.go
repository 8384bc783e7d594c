package parse

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/datafields/ir"
)

var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		// documents are keyed by field name; other key types are rejected
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("parse: CBOR decoder initialization failed: " + err.Error())
	}
}

func parseCBOR(d []byte) (*ir.Node, error) {
	if len(d) == 0 {
		return nil, ErrEmpty
	}
	var v any
	if err := cborDecMode.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromAny(v)
}

func fromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case uint64:
		return ir.FromUint(x), nil
	case int64:
		return ir.FromInt(x), nil
	case float64:
		return ir.FromFloat(x), nil
	case float32:
		return ir.FromFloat(float64(x)), nil
	case string:
		return ir.FromString(x), nil
	case []byte:
		return ir.FromString(string(x)), nil
	case big.Int:
		return bigNumber(&x)
	case *big.Int:
		return bigNumber(x)
	case cbor.Tag:
		return fromAny(x.Content)
	case []any:
		res := ir.FromSlice(nil)
		for _, e := range x {
			n, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			res.Append(n)
		}
		return res, nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			n, err := fromAny(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: unsupported CBOR item %T", ErrParse, v)
}

func bigNumber(x *big.Int) (*ir.Node, error) {
	n, err := ir.FromNumber(x.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return n, nil
}
