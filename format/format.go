package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/javalink/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *java.ClassSurface) error
}

// New returns the encoder for a format name: "line" or "json".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected json or line)", name)
	}
}
