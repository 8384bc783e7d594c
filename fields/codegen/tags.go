package codegen

import (
	"fmt"
	"strings"
)

// ParseStructTag parses a comma separated option list into a map.
// It handles key-value pairs (key=value) and boolean flags (key).
// Values may be quoted with ' or " to hold commas or spaces; the quotes
// are removed.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	var key, value strings.Builder
	inKey := true
	var quote rune
	quoted := false

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return result, nil
	}

	flush := func() {
		k := strings.TrimSpace(key.String())
		v := value.String()
		if !quoted {
			v = strings.TrimSpace(v)
		}
		if k != "" {
			result[k] = v
		}
		key.Reset()
		value.Reset()
		inKey = true
		quoted = false
	}

	for _, r := range tag {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			value.WriteRune(r)
		case inKey:
			switch r {
			case '=':
				inKey = false
			case ',':
				flush()
			default:
				key.WriteRune(r)
			}
		default:
			switch {
			case (r == '"' || r == '\'') && strings.TrimSpace(value.String()) == "" && !quoted:
				value.Reset()
				quote = r
				quoted = true
			case r == ',':
				flush()
			default:
				value.WriteRune(r)
			}
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in tag %q", quote, tag)
	}
	flush()
	return result, nil
}

// FieldTag is the parsed content of a `field:"..."` tag.
type FieldTag struct {
	// Name is the declared name; empty means the Go field name.
	Name string

	// Skip is set by the tag "-".
	Skip bool

	Default    string
	HasDefault bool
	Micros     bool
}

var fieldTagOptions = map[string]bool{
	"default": true,
	"micros":  true,
}

// ParseFieldTag parses the content of a "field" struct tag.
// Example: `field:"count,default=7"` -> tagContent is "count,default=7"
func ParseFieldTag(tagContent string) (*FieldTag, error) {
	res := &FieldTag{}
	tagContent = strings.TrimSpace(tagContent)
	if tagContent == "-" {
		res.Skip = true
		return res, nil
	}
	name, rest, _ := strings.Cut(tagContent, ",")
	if strings.Contains(name, "=") {
		name, rest = "", tagContent
	}
	res.Name = strings.TrimSpace(name)
	opts, err := ParseStructTag(rest)
	if err != nil {
		return nil, err
	}
	for k := range opts {
		if !fieldTagOptions[k] {
			return nil, fmt.Errorf("unknown field tag option %q", k)
		}
	}
	res.Default, res.HasDefault = opts["default"]
	_, res.Micros = opts["micros"]
	return res, nil
}
