package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/datafields/ir"
)

// MustString returns node as compact JSON and panics if it cannot be
// encoded.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeWire(true)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
