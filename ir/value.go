package ir

import (
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/datafields/value"
)

var _ value.Value = (*Node)(nil)

func (y *Node) Kind() value.Kind {
	return y.Type
}

func (y *Node) Has(key string) bool {
	return y.fieldIndex(key) >= 0
}

func (y *Node) Get(key string) value.Value {
	if i := y.fieldIndex(key); i >= 0 {
		return y.Values[i]
	}
	return Null()
}

func (y *Node) Field(key string) value.Value {
	if y.Type != ObjectType {
		y.SetObject()
	}
	if i := y.fieldIndex(key); i >= 0 {
		return y.Values[i]
	}
	v := Null()
	y.Put(key, v)
	return v
}

func (y *Node) Keys() []string {
	if y.Type != ObjectType {
		return nil
	}
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

func (y *Node) SetObject() {
	y.reset(ObjectType)
}

func (y *Node) Len() int {
	switch y.Type {
	case ArrayType, ObjectType:
		return len(y.Values)
	}
	return 0
}

func (y *Node) Index(i int) value.Value {
	if y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return Null()
	}
	return y.Values[i]
}

func (y *Node) Resize(n int) {
	if y.Type != ArrayType {
		y.reset(ArrayType)
	}
	if n <= len(y.Values) {
		clear(y.Values[n:])
		y.Values = y.Values[:n]
		return
	}
	for len(y.Values) < n {
		y.Append(Null())
	}
}

func (y *Node) AsString() (string, error) {
	if y.Type != StringType {
		return "", y.kindErr(StringType)
	}
	return y.String, nil
}

func (y *Node) AsInt() (int64, error) {
	if y.Type != NumberType {
		return 0, y.kindErr(NumberType)
	}
	switch {
	case y.Int64 != nil:
		return *y.Int64, nil
	case y.Float64 != nil:
		f := *y.Float64
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v is not an int64", value.ErrRange, f)
		}
		return int64(f), nil
	}
	i, err := strconv.ParseInt(y.Number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an int64", value.ErrRange, y.Number)
	}
	return i, nil
}

func (y *Node) AsUint() (uint64, error) {
	if y.Type != NumberType {
		return 0, y.kindErr(NumberType)
	}
	switch {
	case y.Int64 != nil:
		if *y.Int64 < 0 {
			return 0, fmt.Errorf("%w: %d is negative", value.ErrRange, *y.Int64)
		}
		return uint64(*y.Int64), nil
	case y.Float64 != nil:
		f := *y.Float64
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: %v is not a uint64", value.ErrRange, f)
		}
		return uint64(f), nil
	}
	u, err := strconv.ParseUint(y.Number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a uint64", value.ErrRange, y.Number)
	}
	return u, nil
}

func (y *Node) AsFloat() (float64, error) {
	if y.Type != NumberType {
		return 0, y.kindErr(NumberType)
	}
	switch {
	case y.Float64 != nil:
		return *y.Float64, nil
	case y.Int64 != nil:
		return float64(*y.Int64), nil
	}
	f, err := strconv.ParseFloat(y.Number, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a float64", value.ErrRange, y.Number)
	}
	return f, nil
}

func (y *Node) AsBool() (bool, error) {
	if y.Type != BoolType {
		return false, y.kindErr(BoolType)
	}
	return y.Bool, nil
}

func (y *Node) SetString(v string) {
	y.reset(StringType)
	y.String = v
}

func (y *Node) SetInt(v int64) {
	y.reset(NumberType)
	y.Int64 = &v
}

func (y *Node) SetUint(v uint64) {
	y.reset(NumberType)
	y.setUint(v)
}

func (y *Node) SetFloat(v float64) {
	y.reset(NumberType)
	y.Float64 = &v
}

func (y *Node) SetBool(v bool) {
	y.reset(BoolType)
	y.Bool = v
}

func (y *Node) SetNull() {
	y.reset(NullType)
}

func (y *Node) setUint(v uint64) {
	if v <= math.MaxInt64 {
		i := int64(v)
		y.Int64 = &i
		return
	}
	y.Number = strconv.FormatUint(v, 10)
}

// reset clears the payload of y, keeping its position in the tree.
func (y *Node) reset(t Type) {
	y.Type = t
	y.Fields = nil
	y.Values = nil
	y.String = ""
	y.Bool = false
	y.Number = ""
	y.Float64 = nil
	y.Int64 = nil
}

func (y *Node) kindErr(want Type) error {
	return fmt.Errorf("%w: expected %s, got %s", value.ErrKind, want, y.Type)
}
