package dyn

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"
)

type fromOpts struct {
	strict bool
}

type FromOption func(*fromOpts)

// Strict makes FromObject fail on values that have no tree
// representation (channels, funcs, complex numbers) instead of storing
// them as null.
func Strict() FromOption {
	return func(o *fromOpts) { o.strict = true }
}

// FromObject builds a tree from a Go value. A *Value (or Value) is deep
// copied. Structs become objects with one member per exported field in
// declaration order, maps become objects with sorted keys, slices and
// arrays become arrays, and scalars map to the matching leaf type.
// time.Time values are rendered in RFC 3339 and encoding.TextMarshaler
// implementations by their text.
func FromObject(x any, opts ...FromOption) (*Value, error) {
	o := &fromOpts{}
	for _, opt := range opts {
		opt(o)
	}
	switch x := x.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if x == nil {
			return Null(), nil
		}
		return x.Clone(), nil
	case Value:
		return x.Clone(), nil
	}
	fb := &fromBuilder{opts: o, visited: map[visit]string{}}
	return fb.value(reflect.ValueOf(x), "")
}

type fromBuilder struct {
	opts *fromOpts
	// visited tracks the pointers, maps and slices on the current path to
	// detect cycles. A struct and its first field share an address, so the
	// type is part of the key.
	visited map[visit]string
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

func (fb *fromBuilder) enter(key visit, fieldPath string) error {
	if prev, seen := fb.visited[key]; seen {
		return &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s", displayPath(prev), displayPath(fieldPath)),
		}
	}
	fb.visited[key] = fieldPath
	return nil
}

func displayPath(p string) string {
	if p == "" {
		return "$"
	}
	return p
}

func (fb *fromBuilder) value(val reflect.Value, fieldPath string) (*Value, error) {
	if !val.IsValid() {
		return Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	switch kind {
	case reflect.Pointer:
		if val.IsNil() {
			return Null(), nil
		}
		if v, ok := val.Interface().(*Value); ok {
			return v.Clone(), nil
		}
		if typ.Implements(textMarshalerType) {
			return marshalText(val.Interface().(encoding.TextMarshaler), fieldPath)
		}
		key := visit{val.Pointer(), typ}
		if err := fb.enter(key, fieldPath); err != nil {
			return nil, err
		}
		defer delete(fb.visited, key)
		return fb.value(val.Elem(), fieldPath)
	case reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return fb.value(val.Elem(), fieldPath)
	}

	if typ == valueType {
		v := val.Interface().(Value)
		return v.Clone(), nil
	}
	if typ == timeType {
		return FromString(val.Interface().(time.Time).Format(time.RFC3339Nano)), nil
	}
	if typ.Implements(textMarshalerType) {
		return marshalText(val.Interface().(encoding.TextMarshaler), fieldPath)
	}
	if val.CanAddr() && reflect.PointerTo(typ).Implements(textMarshalerType) {
		return marshalText(val.Addr().Interface().(encoding.TextMarshaler), fieldPath)
	}

	switch kind {
	case reflect.Bool:
		return FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromNumber(float64(val.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return FromNumber(float64(val.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FromNumber(val.Float()), nil
	case reflect.String:
		return FromString(val.String()), nil
	case reflect.Slice, reflect.Array:
		return fb.slice(val, fieldPath)
	case reflect.Map:
		return fb.mapValue(val, fieldPath)
	case reflect.Struct:
		return fb.structValue(val, fieldPath)
	}
	if fb.opts.strict {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
	return Null(), nil
}

func marshalText(tm encoding.TextMarshaler, fieldPath string) (*Value, error) {
	text, err := tm.MarshalText()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error()}
	}
	return FromString(string(text)), nil
}

func (fb *fromBuilder) slice(val reflect.Value, fieldPath string) (*Value, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return Null(), nil
		}
		if val.Len() > 0 {
			key := visit{val.Pointer(), val.Type()}
			if err := fb.enter(key, fieldPath); err != nil {
				return nil, err
			}
			defer delete(fb.visited, key)
		}
	}
	n := val.Len()
	res := &Value{Type: ArrayType, Members: make([]*Member, 0, n)}
	for i := 0; i < n; i++ {
		elt, err := fb.value(val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i))
		if err != nil {
			return nil, err
		}
		res.Members = append(res.Members, newItem(elt))
	}
	return res, nil
}

type mapEntry struct {
	key string
	val reflect.Value
}

func (fb *fromBuilder) mapValue(val reflect.Value, fieldPath string) (*Value, error) {
	if val.IsNil() {
		return Null(), nil
	}
	key := visit{val.Pointer(), val.Type()}
	if err := fb.enter(key, fieldPath); err != nil {
		return nil, err
	}
	defer delete(fb.visited, key)

	entries := make([]mapEntry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error()}
		}
		entries = append(entries, mapEntry{key: key, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b mapEntry) int { return cmp.Compare(a.key, b.key) })

	res := &Value{Type: ObjectType, Members: make([]*Member, 0, len(entries))}
	for _, e := range entries {
		child, err := fb.value(e.val, JoinFieldPath(fieldPath, e.key))
		if err != nil {
			return nil, err
		}
		res.Members = append(res.Members, newMember(e.key, child))
	}
	return res, nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", fmt.Errorf("unsupported map key type %s", k.Type())
}

func (fb *fromBuilder) structValue(val reflect.Value, fieldPath string) (*Value, error) {
	fields, err := StructFields(val.Type())
	if err != nil {
		return nil, err
	}
	res := &Value{Type: ObjectType, Members: make([]*Member, 0, len(fields))}
	for _, f := range fields {
		fv, err := val.FieldByIndexErr(f.Index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if f.OmitEmpty && isEmptyValue(fv) {
			continue
		}
		child, err := fb.value(fv, JoinFieldPath(fieldPath, f.Name))
		if err != nil {
			return nil, err
		}
		res.Members = append(res.Members, newMember(f.Name, child))
	}
	return res, nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

// JoinFieldPath appends a member name to a field path used in error
// messages, quoting names that are not labels.
func JoinFieldPath(fieldPath, name string) string {
	if !IsLabel(name) {
		return fieldPath + "[" + strconv.Quote(name) + "]"
	}
	if fieldPath == "" {
		return name
	}
	return fieldPath + "." + name
}
