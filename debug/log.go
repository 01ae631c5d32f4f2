package debug

import (
	"bytes"
	"fmt"
	"os"

	"github.com/defml-format/go-defml/encode"
	"github.com/defml-format/go-defml/ir"
)

func Logf(msg string, args ...any) {
	for i := range args {
		x, ok := args[i].(*ir.Node)
		if !ok {
			continue
		}
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(x, buf); err != nil {
			args[i] = fmt.Sprintf("[raw node] %v", x)
			continue
		}
		args[i] = buf.String()
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
