package fields

import (
	"math"
	"strconv"
	"time"

	"github.com/signadot/datafields/value"
)

// Seconds and Micros encode durations as "<n><unit>" text.
//
// Seconds writes whole seconds ("30s") and reads the units s, sec, m,
// min, h and hours. Micros writes whole microseconds ("500us") and also
// reads us and ms. Unit matching is exact and case sensitive.
//
// Unlike other scalars a duration has no zero reading: a null or absent
// slot fails with ErrMissingField.
var (
	Seconds Codec[time.Duration] = &durationCodec{
		tick:   time.Second,
		suffix: "s",
		units:  secondUnits,
	}
	Micros Codec[time.Duration] = &durationCodec{
		tick:   time.Microsecond,
		suffix: "us",
		units:  microUnits,
	}
)

var (
	secondUnits = map[string]time.Duration{
		"s":     time.Second,
		"sec":   time.Second,
		"m":     time.Minute,
		"min":   time.Minute,
		"h":     time.Hour,
		"hours": time.Hour,
	}
	microUnits = map[string]time.Duration{
		"us":    time.Microsecond,
		"ms":    time.Millisecond,
		"s":     time.Second,
		"sec":   time.Second,
		"m":     time.Minute,
		"min":   time.Minute,
		"h":     time.Hour,
		"hours": time.Hour,
	}
)

type durationCodec struct {
	tick   time.Duration
	suffix string
	units  map[string]time.Duration
}

func (c *durationCodec) EncodeValue(src *time.Duration, dst value.Value) {
	dst.SetString(strconv.FormatInt(int64(*src/c.tick), 10) + c.suffix)
}

func (c *durationCodec) DecodeValue(src value.Value, dst *time.Duration, _ Policy) error {
	if src.Kind() == value.NullKind {
		return ErrMissingField
	}
	s, err := src.AsString()
	if err != nil {
		return malformed(err)
	}
	d, err := c.parse(s)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func (c *durationCodec) parse(s string) (time.Duration, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, malformedf("duration %q has no digits", s)
	}
	n, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return 0, malformedf("duration %q: %v", s, err)
	}
	unit, ok := c.units[s[i:]]
	if !ok {
		return 0, malformedf("duration %q has unknown unit %q", s, s[i:])
	}
	if n > uint64(math.MaxInt64/unit) {
		return 0, malformedf("duration %q overflows", s)
	}
	return time.Duration(n) * unit, nil
}
