package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/format"
)

type EncState struct {
	indent     int
	escapeHTML bool
	format     format.Format

	Color func(dyn.Type, ColorAttr, string) string

	api    jsoniter.API
	stream *jsoniter.Stream
	path   []dyn.PathElem
}

type apiKey struct {
	indent     int
	escapeHTML bool
}

var apis sync.Map // apiKey -> jsoniter.API

func streamAPI(indent int, escapeHTML bool) jsoniter.API {
	k := apiKey{indent: indent, escapeHTML: escapeHTML}
	if api, ok := apis.Load(k); ok {
		return api.(jsoniter.API)
	}
	api := jsoniter.Config{IndentionStep: indent, EscapeHTML: escapeHTML}.Froze()
	actual, _ := apis.LoadOrStore(k, api)
	return actual.(jsoniter.API)
}

// Encode writes v to w. Before writing, every null node in v is
// normalized so that it carries no stale content.
func Encode(v *dyn.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if v == nil {
		v = dyn.Null()
	}
	Normalize(v)
	if debug.Encode() {
		debug.Logf("encode %s: %s\n", es.format, debug.JSON{Value: v})
	}
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(v, w, es)
	case format.YAMLFormat:
		return encodeYAML(v, w, es)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

// ToText returns the text form of v. JSON output has no trailing newline.
func ToText(v *dyn.Value, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Serialize converts a Go value with dyn.FromObject and returns its text
// form.
func Serialize(obj any, opts ...EncodeOption) (string, error) {
	v, err := dyn.FromObject(obj)
	if err != nil {
		return "", err
	}
	return ToText(v, opts...)
}

// Normalize clears the members and scalar payload of every null node in
// the tree rooted at v, so that a node whose type was rewritten to null
// keeps nothing of its former content.
func Normalize(v *dyn.Value) {
	_ = v.Visit(func(v *dyn.Value, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		if v.Type == dyn.NullType {
			*v = dyn.Value{}
			return false, nil
		}
		if v.Type.IsLeaf() {
			v.Members = nil
		}
		return true, nil
	})
}

func encodeJSON(v *dyn.Value, w io.Writer, es *EncState) error {
	es.api = streamAPI(es.indent, es.escapeHTML)
	es.stream = es.api.BorrowStream(w)
	if err := es.value(v); err != nil {
		// the stream may be left mid-indentation; drop it
		return err
	}
	defer es.api.ReturnStream(es.stream)
	if es.stream.Error != nil {
		return es.stream.Error
	}
	return es.stream.Flush()
}

func (es *EncState) fail(msg string) error {
	return &EncodeError{Path: dyn.FormatPath(es.path), Message: msg}
}

func (es *EncState) value(v *dyn.Value) error {
	s := es.stream
	switch v.Type {
	case dyn.NullType:
		es.scalar(v.Type, func(s *jsoniter.Stream) { s.WriteNil() })
	case dyn.BoolType:
		es.scalar(v.Type, func(s *jsoniter.Stream) { s.WriteBool(v.Bool) })
	case dyn.NumberType:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return es.fail(fmt.Sprintf("%v has no text form", v.Number))
		}
		es.scalar(v.Type, func(s *jsoniter.Stream) { s.WriteFloat64(v.Number) })
	case dyn.StringType:
		es.scalar(v.Type, func(s *jsoniter.Stream) { es.writeString(s, v.String) })
	case dyn.ArrayType:
		if len(v.Members) == 0 {
			s.WriteEmptyArray()
			return nil
		}
		s.WriteArrayStart()
		for i, m := range v.Members {
			if i > 0 {
				s.WriteMore()
			}
			es.path = append(es.path, dyn.IndexElem(i))
			err := es.value(m.Value)
			es.path = es.path[:len(es.path)-1]
			if err != nil {
				return err
			}
		}
		s.WriteArrayEnd()
	case dyn.ObjectType:
		if len(v.Members) == 0 {
			s.WriteEmptyObject()
			return nil
		}
		s.WriteObjectStart()
		for i, m := range v.Members {
			if i > 0 {
				s.WriteMore()
			}
			name := m.Name()
			es.field(name)
			es.path = append(es.path, dyn.FieldElem(name))
			err := es.value(m.Value)
			es.path = es.path[:len(es.path)-1]
			if err != nil {
				return err
			}
		}
		s.WriteObjectEnd()
	default:
		return es.fail(fmt.Sprintf("unknown type %d", v.Type))
	}
	return nil
}

func (es *EncState) writeString(s *jsoniter.Stream, str string) {
	if es.escapeHTML {
		s.WriteStringWithHTMLEscaped(str)
		return
	}
	s.WriteString(str)
}

// scalar writes a leaf with f, colored when colors are on.
func (es *EncState) scalar(t dyn.Type, f func(*jsoniter.Stream)) {
	if es.Color == nil {
		f(es.stream)
		return
	}
	es.stream.WriteRaw(es.Color(t, ValueColor, es.render(f)))
}

func (es *EncState) field(name string) {
	if es.Color == nil {
		es.stream.WriteObjectField(name)
		return
	}
	quoted := es.render(func(s *jsoniter.Stream) { es.writeString(s, name) })
	es.stream.WriteRaw(es.Color(dyn.ObjectType, FieldColor, quoted))
	sep := ":"
	if es.indent > 0 {
		sep = ": "
	}
	es.stream.WriteRaw(es.Color(dyn.ObjectType, SepColor, sep))
}

// render returns what f writes to a scratch stream.
func (es *EncState) render(f func(*jsoniter.Stream)) string {
	sub := es.api.BorrowStream(nil)
	defer es.api.ReturnStream(sub)
	f(sub)
	return string(sub.Buffer())
}
