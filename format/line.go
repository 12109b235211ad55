package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javalink/java"
)

// LineEncoder writes one tab separated line per class, field and method,
// suitable for grep and cut.
type LineEncoder struct {
	w     io.Writer
	class *java.ClassSurface
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *java.ClassSurface) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "class\t%s\t%s\n", c.FullName(), c.Name.SourceName())

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\n", f.Name)
	}

	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n",
			m.Name,
			e.argumentsStr(m.Arguments),
			m.Fragment(),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) argumentsStr(args []java.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Erased
		if a.Generic != "" && a.Generic != a.Erased {
			parts[i] += "=" + a.Generic
		}
	}
	return "(" + strings.Join(parts, ",") + ")"
}
