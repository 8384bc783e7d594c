package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/datafields/encode"
	"github.com/signadot/datafields/ir"
)

var out io.Writer = os.Stderr

// Logf writes to standard error like fmt.Fprintf. *ir.Node arguments are
// rendered as JSON and should use the %v verb.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = nodeString(x)
		case []byte:
			args[i] = string(x)
		}
	}
	fmt.Fprintf(out, msg, args...)
}

func nodeString(x *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(x, buf); err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", x)
	}
	return buf.String()
}
