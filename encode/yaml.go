package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/gistsapi/dynjson/dyn"
)

func encodeYAML(v *dyn.Value, w io.Writer, es *EncState) error {
	doc, err := es.toYAML(v)
	if err != nil {
		return err
	}
	indent := es.indent
	if indent <= 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(doc, yaml.Indent(indent))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// toYAML converts v to values go-yaml marshals in order: objects become
// yaml.MapSlice and integral numbers int64.
func (es *EncState) toYAML(v *dyn.Value) (any, error) {
	switch v.Type {
	case dyn.NullType:
		return nil, nil
	case dyn.BoolType:
		return v.Bool, nil
	case dyn.NumberType:
		f := v.Number
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, es.fail(fmt.Sprintf("%v has no text form", f))
		}
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), nil
		}
		return f, nil
	case dyn.StringType:
		return v.String, nil
	case dyn.ArrayType:
		res := make([]any, 0, len(v.Members))
		for i, m := range v.Members {
			es.path = append(es.path, dyn.IndexElem(i))
			x, err := es.toYAML(m.Value)
			es.path = es.path[:len(es.path)-1]
			if err != nil {
				return nil, err
			}
			res = append(res, x)
		}
		return res, nil
	case dyn.ObjectType:
		res := make(yaml.MapSlice, 0, len(v.Members))
		for _, m := range v.Members {
			name := m.Name()
			es.path = append(es.path, dyn.FieldElem(name))
			x, err := es.toYAML(m.Value)
			es.path = es.path[:len(es.path)-1]
			if err != nil {
				return nil, err
			}
			res = append(res, yaml.MapItem{Key: name, Value: x})
		}
		return res, nil
	}
	return nil, es.fail(fmt.Sprintf("unknown type %d", v.Type))
}
