package dyn

import (
	"encoding"
	"reflect"
	"time"
)

var (
	valueType         = reflect.TypeFor[Value]()
	timeType          = reflect.TypeFor[time.Time]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Classify returns the Type a Go value takes in a tree.
//
// nil and nil pointers, maps and slices are Null. Every integer and
// floating point kind is a Number. Strings, time.Time and
// encoding.TextMarshaler implementations are Strings. Slices and arrays
// are Arrays; structs and maps are Objects. Values of any other kind
// (channels, funcs, complex numbers) are Null.
func Classify(x any) Type {
	switch x := x.(type) {
	case nil:
		return NullType
	case *Value:
		if x == nil {
			return NullType
		}
		return x.Type
	case Value:
		return x.Type
	}
	return classifyValue(reflect.ValueOf(x))
}

func classifyValue(rv reflect.Value) Type {
	for {
		if !rv.IsValid() {
			return NullType
		}
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return NullType
			}
			if rv.Type() == reflect.PointerTo(valueType) {
				return rv.Interface().(*Value).Type
			}
			if rv.Type().Implements(textMarshalerType) {
				return StringType
			}
			rv = rv.Elem()
			continue
		}
		break
	}
	t := rv.Type()
	if t == valueType {
		return rv.Interface().(Value).Type
	}
	if t == timeType || t.Implements(textMarshalerType) {
		return StringType
	}
	switch rv.Kind() {
	case reflect.Bool:
		return BoolType
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return NumberType
	case reflect.String:
		return StringType
	case reflect.Slice:
		if rv.IsNil() {
			return NullType
		}
		return ArrayType
	case reflect.Array:
		return ArrayType
	case reflect.Map:
		if rv.IsNil() {
			return NullType
		}
		return ObjectType
	case reflect.Struct:
		return ObjectType
	default:
		return NullType
	}
}
