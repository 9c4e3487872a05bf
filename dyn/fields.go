package dyn

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldInfo describes a struct field as it appears in an object: its
// member name, its index path from the outer struct and its type.
type FieldInfo struct {
	Name      string
	Index     []int
	Type      reflect.Type
	OmitEmpty bool
}

// ParseJSONTag splits a json struct tag into its name and options. A name
// of "-" (with no options) means the field is skipped.
func ParseJSONTag(tag string) (name string, omitEmpty bool) {
	name, opts, _ := strings.Cut(tag, ",")
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

// StructFields lists the exported fields of struct type t in declaration
// order, with embedded structs flattened. A field reaches the list under its
// json tag name, or its Go name when the tag has none. A shallower field
// shadows a deeper one of the same name; two fields of the same name at the
// same depth are an error.
func StructFields(t reflect.Type) ([]FieldInfo, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &MarshalError{Message: fmt.Sprintf("%s is not a struct", t)}
	}
	var all []FieldInfo
	depths := map[string][]int{}
	collectFields(t, nil, map[reflect.Type]bool{t: true}, &all)
	for i, f := range all {
		depths[f.Name] = append(depths[f.Name], i)
	}
	res := make([]FieldInfo, 0, len(all))
	for i, f := range all {
		idxs := depths[f.Name]
		best := len(all[idxs[0]].Index)
		for _, j := range idxs[1:] {
			best = min(best, len(all[j].Index))
		}
		if len(f.Index) != best {
			continue
		}
		for _, j := range idxs {
			if j != i && len(all[j].Index) == best {
				return nil, &MarshalError{
					FieldPath: f.Name,
					Message:   fmt.Sprintf("field name conflict in %s", t),
				}
			}
		}
		res = append(res, f)
	}
	return res, nil
}

func collectFields(t reflect.Type, prefix []int, onPath map[reflect.Type]bool, dst *[]FieldInfo) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, hasTag := field.Tag.Lookup("json")
		name, omitEmpty := ParseJSONTag(tag)
		if hasTag && name == "-" && tag == "-" {
			continue
		}
		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				// fields of unexported embedded types cannot be read or
				// set through reflection.
				if field.IsExported() && !onPath[ft] {
					onPath[ft] = true
					collectFields(ft, index, onPath, dst)
					delete(onPath, ft)
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		*dst = append(*dst, FieldInfo{
			Name:      name,
			Index:     index,
			Type:      field.Type,
			OmitEmpty: omitEmpty,
		})
	}
}
