package fields

import (
	"cmp"
	"encoding"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/signadot/datafields/value"
)

// Auto returns a codec for F derived by reflection. It covers bools,
// numbers and strings, byte arrays (as Chars), other arrays, slices,
// maps with string keys, sets held as map[K]struct{}, pointers and
// structs. Struct fields are exported fields named by a `field:"name"`
// tag or by their Go name; `field:"-"` skips a field. Types whose pointer
// implements Object or encoding.TextMarshaler and
// encoding.TextUnmarshaler use those methods. time.Duration uses Micros.
// Durations and non-empty arrays have no zero reading, so a null slot for
// one fails with ErrMissingField.
//
// Auto panics if F or anything it contains has no codec, so unsupported
// types are found when the codec is built rather than when it is used.
func Auto[F any]() Codec[F] {
	rc, err := newRCodec(reflect.TypeFor[F](), map[reflect.Type]*lateRCodec{})
	if err != nil {
		panic(fmt.Sprintf("fields.Auto: %v", err))
	}
	return autoCodec[F]{rc: rc}
}

type autoCodec[F any] struct {
	rc rcodec
}

func (c autoCodec[F]) EncodeValue(src *F, dst value.Value) {
	c.rc.encode(reflect.ValueOf(src).Elem(), dst)
}

func (c autoCodec[F]) DecodeValue(src value.Value, dst *F, p Policy) error {
	return c.rc.decode(src, reflect.ValueOf(dst).Elem(), p)
}

func (c autoCodec[F]) Init(dst *F) {
	c.rc.init(reflect.ValueOf(dst).Elem())
}

// rcodec is a Codec over reflect.Value. decode and init get settable
// values.
type rcodec interface {
	encode(src reflect.Value, dst value.Value)
	decode(src value.Value, dst reflect.Value, p Policy) error
	init(dst reflect.Value)
}

var (
	objectType          = reflect.TypeFor[Object]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
)

// newRCodec builds the codec for t. building holds codecs under
// construction so recursive types refer back to them.
func newRCodec(t reflect.Type, building map[reflect.Type]*lateRCodec) (rcodec, error) {
	if late, ok := building[t]; ok {
		return late, nil
	}
	pt := reflect.PointerTo(t)
	switch {
	case t == durationType:
		return durationRCodec{c: Micros}, nil
	case pt.Implements(objectType):
		return objectRCodec{t: t}, nil
	case pt.Implements(textMarshalerType) && pt.Implements(textUnmarshalerType):
		return textRCodec{t: t}, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return boolRCodec{}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intRCodec{}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintRCodec{}, nil
	case reflect.Float32, reflect.Float64:
		return floatRCodec{}, nil
	case reflect.String:
		return stringRCodec{}, nil
	}

	late := &lateRCodec{}
	building[t] = late
	defer delete(building, t)
	rc, err := newCompositeRCodec(t, building)
	if err != nil {
		return nil, err
	}
	late.rc = rc
	return rc, nil
}

func newCompositeRCodec(t reflect.Type, building map[reflect.Type]*lateRCodec) (rcodec, error) {
	switch t.Kind() {
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return charsRCodec{n: t.Len()}, nil
		}
		elem, err := newRCodec(t.Elem(), building)
		if err != nil {
			return nil, err
		}
		return arrayRCodec{elem: elem}, nil
	case reflect.Slice:
		elem, err := newRCodec(t.Elem(), building)
		if err != nil {
			return nil, err
		}
		return sliceRCodec{t: t, elem: elem}, nil
	case reflect.Map:
		return newMapRCodec(t, building)
	case reflect.Pointer:
		elem, err := newRCodec(t.Elem(), building)
		if err != nil {
			return nil, err
		}
		return ptrRCodec{t: t, elem: elem}, nil
	case reflect.Struct:
		return newStructRCodec(t, building)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
}

func newMapRCodec(t reflect.Type, building map[reflect.Type]*lateRCodec) (rcodec, error) {
	kt, vt := t.Key(), t.Elem()
	if vt.Kind() == reflect.Struct && vt.NumField() == 0 {
		switch kt.Kind() {
		case reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64:
			key, err := newRCodec(kt, building)
			if err != nil {
				return nil, err
			}
			return setRCodec{t: t, key: key}, nil
		}
	}
	if kt.Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s has non-string keys", ErrUnsupported, t)
	}
	elem, err := newRCodec(vt, building)
	if err != nil {
		return nil, err
	}
	return mapRCodec{t: t, elem: elem}, nil
}

// lateRCodec stands in for a codec whose construction is in progress.
type lateRCodec struct {
	rc rcodec
}

func (c *lateRCodec) encode(src reflect.Value, dst value.Value) { c.rc.encode(src, dst) }
func (c *lateRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	return c.rc.decode(src, dst, p)
}
func (c *lateRCodec) init(dst reflect.Value) { c.rc.init(dst) }

type zeroInit struct{}

func (zeroInit) init(dst reflect.Value) {
	dst.SetZero()
}

type boolRCodec struct{ zeroInit }

func (boolRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetBool(src.Bool())
}

func (boolRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	b, err := src.AsBool()
	if err != nil {
		return malformed(err)
	}
	dst.SetBool(b)
	return nil
}

type intRCodec struct{ zeroInit }

func (intRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetInt(src.Int())
}

func (intRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	i, err := src.AsInt()
	if err != nil {
		return malformed(err)
	}
	if dst.OverflowInt(i) {
		return malformedf("%d overflows %s", i, dst.Type())
	}
	dst.SetInt(i)
	return nil
}

type uintRCodec struct{ zeroInit }

func (uintRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetUint(src.Uint())
}

func (uintRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	u, err := src.AsUint()
	if err != nil {
		return malformed(err)
	}
	if dst.OverflowUint(u) {
		return malformedf("%d overflows %s", u, dst.Type())
	}
	dst.SetUint(u)
	return nil
}

type floatRCodec struct{ zeroInit }

func (floatRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetFloat(src.Float())
}

func (floatRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	f, err := src.AsFloat()
	if err != nil {
		return malformed(err)
	}
	if dst.OverflowFloat(f) {
		return malformedf("%v overflows %s", f, dst.Type())
	}
	dst.SetFloat(f)
	return nil
}

type stringRCodec struct{ zeroInit }

func (stringRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetString(src.String())
}

func (stringRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	s, err := src.AsString()
	if err != nil {
		return malformed(err)
	}
	dst.SetString(s)
	return nil
}

type durationRCodec struct {
	zeroInit
	c Codec[time.Duration]
}

func (r durationRCodec) encode(src reflect.Value, dst value.Value) {
	d := time.Duration(src.Int())
	r.c.EncodeValue(&d, dst)
}

func (r durationRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	d := time.Duration(dst.Int())
	if err := r.c.DecodeValue(src, &d, p); err != nil {
		return err
	}
	dst.SetInt(int64(d))
	return nil
}

// addr returns a pointer to the value held by v, copying it when v is not
// addressable.
func addr(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

type objectRCodec struct {
	t reflect.Type
}

func (objectRCodec) encode(src reflect.Value, dst value.Value) {
	addr(src).Interface().(Object).EncodeValue(dst)
}

func (objectRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	return dst.Addr().Interface().(Object).DecodeValue(src, p)
}

func (r objectRCodec) init(dst reflect.Value) {
	dst.SetZero()
	if d, ok := dst.Addr().Interface().(Defaulter); ok {
		d.SetDefaults()
	}
}

type textRCodec struct {
	zeroInit
	t reflect.Type
}

func (textRCodec) encode(src reflect.Value, dst value.Value) {
	d, err := addr(src).Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		// encoding cannot fail; a value that cannot render itself is null
		dst.SetNull()
		return
	}
	dst.SetString(string(d))
}

func (textRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	s, err := src.AsString()
	if err != nil {
		return malformed(err)
	}
	if err := dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
		return malformed(err)
	}
	return nil
}

type charsRCodec struct {
	zeroInit
	n int
}

func (charsRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetString(string(addr(src).Elem().Bytes()))
}

func (r charsRCodec) decode(src value.Value, dst reflect.Value, _ Policy) error {
	var s string
	if src.Kind() == value.NullKind {
		if r.n != 0 {
			return ErrMissingField
		}
	} else {
		var err error
		if s, err = src.AsString(); err != nil {
			return malformed(err)
		}
	}
	if len(s) != r.n {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(s), r.n)
	}
	reflect.Copy(dst, reflect.ValueOf(s))
	return nil
}

type arrayRCodec struct {
	elem rcodec
}

func (r arrayRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetNull()
	dst.Resize(src.Len())
	for i := 0; i < src.Len(); i++ {
		r.elem.encode(src.Index(i), dst.Index(i))
	}
}

func (r arrayRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	if src.Kind() == value.NullKind && dst.Len() != 0 {
		return ErrMissingField
	}
	if src.Kind() != value.ArrayKind {
		return kindMismatch(value.ArrayKind, src)
	}
	if src.Len() != dst.Len() {
		return fmt.Errorf("%w: got %d elements, want %d", ErrSizeMismatch, src.Len(), dst.Len())
	}
	for i := 0; i < dst.Len(); i++ {
		if err := r.elem.decode(src.Index(i), dst.Index(i), p); err != nil {
			return atIndex(i, err)
		}
	}
	return nil
}

func (r arrayRCodec) init(dst reflect.Value) {
	for i := 0; i < dst.Len(); i++ {
		r.elem.init(dst.Index(i))
	}
}

type sliceRCodec struct {
	zeroInit
	t    reflect.Type
	elem rcodec
}

func (r sliceRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetNull()
	if src.IsNil() {
		return
	}
	dst.Resize(src.Len())
	for i := 0; i < src.Len(); i++ {
		r.elem.encode(src.Index(i), dst.Index(i))
	}
}

func (r sliceRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		dst.SetZero()
		return nil
	case value.ArrayKind:
	default:
		return kindMismatch(value.ArrayKind, src)
	}
	n := src.Len()
	res := reflect.MakeSlice(r.t, n, n)
	old := reflect.Copy(res, dst)
	for i := old; i < n; i++ {
		r.elem.init(res.Index(i))
	}
	for i := 0; i < n; i++ {
		if err := r.elem.decode(src.Index(i), res.Index(i), p); err != nil {
			return atIndex(i, err)
		}
	}
	dst.Set(res)
	return nil
}

type setRCodec struct {
	zeroInit
	t   reflect.Type
	key rcodec
}

func (r setRCodec) encode(src reflect.Value, dst value.Value) {
	dst.SetNull()
	if src.IsNil() {
		return
	}
	keys := src.MapKeys()
	slices.SortFunc(keys, compareKeys)
	dst.Resize(len(keys))
	for i, k := range keys {
		r.key.encode(k, dst.Index(i))
	}
}

func (r setRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		dst.SetZero()
		return nil
	case value.ArrayKind:
	default:
		return kindMismatch(value.ArrayKind, src)
	}
	n := src.Len()
	res := reflect.MakeMapWithSize(r.t, n)
	present := reflect.New(r.t.Elem()).Elem()
	for i := 0; i < n; i++ {
		k := reflect.New(r.t.Key()).Elem()
		if err := r.key.decode(src.Index(i), k, p); err != nil {
			return atIndex(i, err)
		}
		res.SetMapIndex(k, present)
	}
	dst.Set(res)
	return nil
}

func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	}
	return cmp.Compare(a.Float(), b.Float())
}

type mapRCodec struct {
	zeroInit
	t    reflect.Type
	elem rcodec
}

func (r mapRCodec) encode(src reflect.Value, dst value.Value) {
	if src.IsNil() {
		dst.SetNull()
		return
	}
	dst.SetObject()
	keys := make(map[string]reflect.Value, src.Len())
	for _, k := range src.MapKeys() {
		keys[k.String()] = k
	}
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		r.elem.encode(src.MapIndex(keys[k]), dst.Field(k))
	}
}

func (r mapRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	switch src.Kind() {
	case value.NullKind:
		dst.SetZero()
		return nil
	case value.ObjectKind:
	default:
		return kindMismatch(value.ObjectKind, src)
	}
	keys := src.Keys()
	res := reflect.MakeMapWithSize(r.t, len(keys))
	for _, k := range keys {
		kv := reflect.ValueOf(k).Convert(r.t.Key())
		v := reflect.New(r.t.Elem()).Elem()
		if old := mapIndex(dst, kv); old.IsValid() {
			v.Set(old)
		} else {
			r.elem.init(v)
		}
		if err := r.elem.decode(src.Get(k), v, p); err != nil {
			return atField(k, err)
		}
		res.SetMapIndex(kv, v)
	}
	dst.Set(res)
	return nil
}

func mapIndex(m, k reflect.Value) reflect.Value {
	if m.IsNil() {
		return reflect.Value{}
	}
	return m.MapIndex(k)
}

type ptrRCodec struct {
	zeroInit
	t    reflect.Type
	elem rcodec
}

func (r ptrRCodec) encode(src reflect.Value, dst value.Value) {
	if src.IsNil() {
		dst.SetNull()
		return
	}
	r.elem.encode(src.Elem(), dst)
}

func (r ptrRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	if src.Kind() == value.NullKind {
		dst.SetZero()
		return nil
	}
	res := reflect.New(r.t.Elem())
	r.elem.init(res.Elem())
	if err := r.elem.decode(src, res.Elem(), p); err != nil {
		return err
	}
	dst.Set(res)
	return nil
}

type structField struct {
	name  string
	index int
	rc    rcodec
}

type structRCodec struct {
	t      reflect.Type
	fields []structField
}

func newStructRCodec(t reflect.Type, building map[reflect.Type]*lateRCodec) (rcodec, error) {
	res := structRCodec{t: t}
	seen := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("field"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q used by %s.%s and %s.%s", ErrDuplicateField, name, t, prev, t, sf.Name)
		}
		seen[name] = sf.Name
		rc, err := newRCodec(sf.Type, building)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}
		res.fields = append(res.fields, structField{name: name, index: i, rc: rc})
	}
	return res, nil
}

func (r structRCodec) encode(src reflect.Value, dst value.Value) {
	if dst.Kind() != value.ObjectKind {
		dst.SetObject()
	}
	for _, f := range r.fields {
		f.rc.encode(src.Field(f.index), dst.Field(f.name))
	}
}

func (r structRCodec) decode(src value.Value, dst reflect.Value, p Policy) error {
	if k := src.Kind(); k != value.ObjectKind && k != value.NullKind {
		return kindMismatch(value.ObjectKind, src)
	}
	for _, f := range r.fields {
		if p == Lazy && !src.Has(f.name) {
			continue
		}
		if err := f.rc.decode(src.Get(f.name), dst.Field(f.index), p); err != nil {
			return atField(f.name, err)
		}
	}
	return nil
}

func (r structRCodec) init(dst reflect.Value) {
	dst.SetZero()
	if d, ok := dst.Addr().Interface().(Defaulter); ok {
		d.SetDefaults()
		return
	}
	for _, f := range r.fields {
		f.rc.init(dst.Field(f.index))
	}
}
