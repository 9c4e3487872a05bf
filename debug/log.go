package debug

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/gistsapi/dynjson/dyn"
)

var out io.Writer = os.Stderr

// JSON formats a value tree as compact JSON text with %s or %v.
type JSON struct{ *dyn.Value }

func (j JSON) String() string {
	return valueString(j.Value)
}

// Logf writes a debug line to stderr. Maps and slices are rendered
// through json-iterator; wrap trees in JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(out, msg, args...)
}

func valueString(v *dyn.Value) string {
	s := jsoniter.ConfigFastest.BorrowStream(nil)
	defer jsoniter.ConfigFastest.ReturnStream(s)
	writeValue(s, v)
	if s.Error != nil {
		return fmt.Sprintf("[raw *dyn.Value] %v", s.Error)
	}
	return string(s.Buffer())
}

func writeValue(s *jsoniter.Stream, v *dyn.Value) {
	if v == nil {
		s.WriteNil()
		return
	}
	switch v.Type {
	case dyn.BoolType:
		s.WriteBool(v.Bool)
	case dyn.NumberType:
		s.WriteFloat64(v.Number)
	case dyn.StringType:
		s.WriteString(v.String)
	case dyn.ArrayType:
		s.WriteArrayStart()
		for i, m := range v.Members {
			if i > 0 {
				s.WriteMore()
			}
			writeValue(s, m.Value)
		}
		s.WriteArrayEnd()
	case dyn.ObjectType:
		s.WriteObjectStart()
		for i, m := range v.Members {
			if i > 0 {
				s.WriteMore()
			}
			s.WriteObjectField(m.Name())
			writeValue(s, m.Value)
		}
		s.WriteObjectEnd()
	default:
		s.WriteNil()
	}
}
