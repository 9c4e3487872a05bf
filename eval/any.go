package eval

import (
	"github.com/gistsapi/dynjson/dyn"
)

// ToAny converts v to plain Go values: map[string]any, []any, float64,
// string, bool and nil. For duplicate keys the first member wins.
func ToAny(v *dyn.Value) any {
	if v == nil {
		return nil
	}
	switch v.Type {
	case dyn.ObjectType:
		res := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			name := m.Name()
			if _, ok := res[name]; ok {
				continue
			}
			res[name] = ToAny(m.Value)
		}
		return res
	case dyn.ArrayType:
		res := make([]any, len(v.Members))
		for i, m := range v.Members {
			res[i] = ToAny(m.Value)
		}
		return res
	default:
		return v.Natural()
	}
}

// FromAny converts the result of an expression back to a value. Maps come
// back with sorted keys.
func FromAny(x any) (*dyn.Value, error) {
	if v, ok := x.(*dyn.Value); ok {
		return v.Clone(), nil
	}
	return dyn.FromObject(x, dyn.Strict())
}
