package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/parse"
)

var (
	valueType           = reflect.TypeFor[dyn.Value]()
	valuePtrType        = reflect.TypeFor[*dyn.Value]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Unmarshal parses d and maps the result onto dst, which must be a
// non-nil pointer.
func Unmarshal(d []byte, dst any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	v, err := parse.Parse(d, cfg.parseOptions...)
	if err != nil {
		return err
	}
	return fromValue(v, dst, cfg)
}

// As maps v onto a new value of type T.
func As[T any](v *dyn.Value, opts ...UnmapOption) (T, error) {
	var res T
	err := FromValue(v, &res, opts...)
	return res, err
}

// FromValue maps v onto dst, which must be a non-nil pointer.
//
// Object members are matched to struct fields by their json tag name, or
// by field name when there is no tag, exactly and case sensitively.
// Members without a field are ignored and fields without a member keep
// their zero value.
func FromValue(v *dyn.Value, dst any, opts ...UnmapOption) error {
	return fromValue(v, dst, newUnmapConfig(opts))
}

func fromValue(v *dyn.Value, dst any, cfg *unmapConfig) error {
	if dst == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	if debug.Map() {
		debug.Logf("map %s onto %s\n", debug.JSON{Value: v}, val.Type().Elem())
	}
	d := &decoder{cfg: cfg}
	return d.decode(v, val.Elem(), "")
}

type decoder struct {
	cfg *unmapConfig
}

func convErr(v *dyn.Value, typ reflect.Type, fieldPath string) *ConversionError {
	return &ConversionError{FieldPath: fieldPath, From: v.Type, To: typ.String()}
}

func (d *decoder) decode(v *dyn.Value, val reflect.Value, fieldPath string) error {
	if v == nil {
		v = dyn.Null()
	}
	typ := val.Type()

	switch typ {
	case valueType:
		val.Set(reflect.ValueOf(*v.Clone()))
		return nil
	case valuePtrType:
		val.Set(reflect.ValueOf(v.Clone()))
		return nil
	}

	if typ.Kind() == reflect.Pointer {
		if v.Type == dyn.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return d.decode(v, val.Elem(), fieldPath)
	}

	if v.Type == dyn.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}

	if reflect.PointerTo(typ).Implements(textUnmarshalerType) && val.CanAddr() {
		if v.Type != dyn.StringType {
			return convErr(v, typ, fieldPath)
		}
		tu := val.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(v.String)); err != nil {
			return &ConversionError{FieldPath: fieldPath, From: v.Type, To: typ.String(), Err: err}
		}
		return nil
	}

	switch typ.Kind() {
	case reflect.String:
		return d.toString(v, val, fieldPath)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.toInt(v, val, fieldPath)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return d.toUint(v, val, fieldPath)
	case reflect.Float32, reflect.Float64:
		return d.toFloat(v, val, fieldPath)
	case reflect.Bool:
		return d.toBool(v, val, fieldPath)
	case reflect.Slice:
		return d.toSlice(v, val, fieldPath)
	case reflect.Array:
		return d.toArray(v, val, fieldPath)
	case reflect.Map:
		return d.toMap(v, val, fieldPath)
	case reflect.Struct:
		return d.toStruct(v, val, fieldPath)
	case reflect.Interface:
		return d.toInterface(v, val, fieldPath)
	}
	return convErr(v, typ, fieldPath)
}

func (d *decoder) toString(v *dyn.Value, val reflect.Value, fieldPath string) error {
	switch v.Type {
	case dyn.StringType:
		val.SetString(v.String)
	case dyn.BoolType:
		val.SetString(strconv.FormatBool(v.Bool))
	default:
		return convErr(v, val.Type(), fieldPath)
	}
	return nil
}

// number returns the float64 held by v, parsing it when v is a string.
func number(v *dyn.Value, typ reflect.Type, fieldPath string) (float64, error) {
	switch v.Type {
	case dyn.NumberType:
		return v.Number, nil
	case dyn.StringType:
		f, err := strconv.ParseFloat(v.String, 64)
		if err != nil {
			return 0, &ConversionError{
				FieldPath: fieldPath,
				From:      v.Type,
				To:        typ.String(),
				Message:   fmt.Sprintf("cannot convert string %q to %s", v.String, typ),
			}
		}
		return f, nil
	}
	return 0, convErr(v, typ, fieldPath)
}

func (d *decoder) toInt(v *dyn.Value, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	if v.Type == dyn.StringType {
		i, err := strconv.ParseInt(v.String, 10, 64)
		if err == nil {
			if val.OverflowInt(i) {
				return overflow(v, typ, fieldPath, v.String)
			}
			val.SetInt(i)
			return nil
		}
	}
	f, err := number(v, typ, fieldPath)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) {
		return &ConversionError{
			FieldPath: fieldPath,
			From:      v.Type,
			To:        typ.String(),
			Message:   fmt.Sprintf("%v is not an integer", f),
		}
	}
	if f < math.MinInt64 || f >= math.MaxInt64 || val.OverflowInt(int64(f)) {
		return overflow(v, typ, fieldPath, strconv.FormatFloat(f, 'g', -1, 64))
	}
	val.SetInt(int64(f))
	return nil
}

func (d *decoder) toUint(v *dyn.Value, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	if v.Type == dyn.StringType {
		u, err := strconv.ParseUint(v.String, 10, 64)
		if err == nil {
			if val.OverflowUint(u) {
				return overflow(v, typ, fieldPath, v.String)
			}
			val.SetUint(u)
			return nil
		}
	}
	f, err := number(v, typ, fieldPath)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) || f < 0 {
		return &ConversionError{
			FieldPath: fieldPath,
			From:      v.Type,
			To:        typ.String(),
			Message:   fmt.Sprintf("%v is not a non-negative integer", f),
		}
	}
	if f >= math.MaxUint64 || val.OverflowUint(uint64(f)) {
		return overflow(v, typ, fieldPath, strconv.FormatFloat(f, 'g', -1, 64))
	}
	val.SetUint(uint64(f))
	return nil
}

func (d *decoder) toFloat(v *dyn.Value, val reflect.Value, fieldPath string) error {
	f, err := number(v, val.Type(), fieldPath)
	if err != nil {
		return err
	}
	if val.OverflowFloat(f) {
		return overflow(v, val.Type(), fieldPath, strconv.FormatFloat(f, 'g', -1, 64))
	}
	val.SetFloat(f)
	return nil
}

func overflow(v *dyn.Value, typ reflect.Type, fieldPath, lit string) error {
	return &ConversionError{
		FieldPath: fieldPath,
		From:      v.Type,
		To:        typ.String(),
		Message:   fmt.Sprintf("value %s overflows %s", lit, typ),
	}
}

func (d *decoder) toBool(v *dyn.Value, val reflect.Value, fieldPath string) error {
	switch v.Type {
	case dyn.BoolType:
		val.SetBool(v.Bool)
	case dyn.StringType:
		b, err := strconv.ParseBool(v.String)
		if err != nil {
			return &ConversionError{FieldPath: fieldPath, From: v.Type, To: val.Type().String(), Err: err}
		}
		val.SetBool(b)
	default:
		return convErr(v, val.Type(), fieldPath)
	}
	return nil
}

func elemPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}

// toSlice builds a fresh slice and appends each converted element.
func (d *decoder) toSlice(v *dyn.Value, val reflect.Value, fieldPath string) error {
	if v.Type != dyn.ArrayType {
		return convErr(v, val.Type(), fieldPath)
	}
	typ := val.Type()
	res := reflect.MakeSlice(typ, 0, len(v.Members))
	elt := reflect.New(typ.Elem()).Elem()
	for i, m := range v.Members {
		elt.Set(reflect.Zero(typ.Elem()))
		if err := d.decode(m.Value, elt, elemPath(fieldPath, i)); err != nil {
			return err
		}
		res = reflect.Append(res, elt)
	}
	val.Set(res)
	return nil
}

// toArray fills a Go array in order. When the lengths differ the common
// prefix is assigned and a *ConversionError is returned.
func (d *decoder) toArray(v *dyn.Value, val reflect.Value, fieldPath string) error {
	if v.Type != dyn.ArrayType {
		return convErr(v, val.Type(), fieldPath)
	}
	val.Set(reflect.Zero(val.Type()))
	n := min(val.Len(), len(v.Members))
	for i := 0; i < n; i++ {
		if err := d.decode(v.Members[i].Value, val.Index(i), elemPath(fieldPath, i)); err != nil {
			return err
		}
	}
	if val.Len() != len(v.Members) {
		return &ConversionError{
			FieldPath: fieldPath,
			From:      v.Type,
			To:        val.Type().String(),
			Message:   fmt.Sprintf("array of %d elements does not fit %s", len(v.Members), val.Type()),
		}
	}
	return nil
}

// toMap fills a fresh map with every member. Later duplicates win.
func (d *decoder) toMap(v *dyn.Value, val reflect.Value, fieldPath string) error {
	if v.Type != dyn.ObjectType {
		return convErr(v, val.Type(), fieldPath)
	}
	typ := val.Type()
	res := reflect.MakeMapWithSize(typ, len(v.Members))
	for _, m := range v.Members {
		name := m.Name()
		path := dyn.JoinFieldPath(fieldPath, name)
		k, err := mapKey(name, typ.Key(), path)
		if err != nil {
			return err
		}
		elt := reflect.New(typ.Elem()).Elem()
		if err := d.decode(m.Value, elt, path); err != nil {
			return err
		}
		res.SetMapIndex(k, elt)
	}
	val.Set(res)
	return nil
}

func mapKey(name string, kt reflect.Type, fieldPath string) (reflect.Value, error) {
	k := reflect.New(kt).Elem()
	if reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		if err := k.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(name)); err != nil {
			return k, &ConversionError{FieldPath: fieldPath, From: dyn.StringType, To: kt.String(), Err: err}
		}
		return k, nil
	}
	switch kt.Kind() {
	case reflect.String:
		k.SetString(name)
		return k, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, 64)
		if err != nil || k.OverflowInt(i) {
			break
		}
		k.SetInt(i)
		return k, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(name, 10, 64)
		if err != nil || k.OverflowUint(u) {
			break
		}
		k.SetUint(u)
		return k, nil
	}
	return k, &ConversionError{
		FieldPath: fieldPath,
		From:      dyn.StringType,
		To:        kt.String(),
		Message:   fmt.Sprintf("cannot use key %q as %s", name, kt),
	}
}

// toStruct starts from the zero value and assigns matched members in
// document order.
func (d *decoder) toStruct(v *dyn.Value, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	if v.Type != dyn.ObjectType {
		return convErr(v, typ, fieldPath)
	}
	fields, err := dyn.StructFields(typ)
	if err != nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	byName := make(map[string]*dyn.FieldInfo, len(fields))
	for i := range fields {
		byName[fields[i].Name] = &fields[i]
	}
	val.Set(reflect.Zero(typ))
	for _, m := range v.Members {
		name := m.Name()
		path := dyn.JoinFieldPath(fieldPath, name)
		f := byName[name]
		if f == nil {
			if d.cfg.disallowUnknown {
				return &ConversionError{
					FieldPath: path,
					From:      m.Value.Type,
					To:        typ.String(),
					Message:   fmt.Sprintf("%s has no field %q", typ, name),
				}
			}
			continue
		}
		fv := fieldByIndexAlloc(val, f.Index)
		if !fv.CanSet() {
			continue
		}
		if err := d.decode(m.Value, fv, path); err != nil {
			return err
		}
	}
	return nil
}

// fieldByIndexAlloc is like reflect.Value.FieldByIndex, allocating nil
// embedded struct pointers on the way.
func fieldByIndexAlloc(val reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && val.Kind() == reflect.Pointer {
			if val.IsNil() {
				val.Set(reflect.New(val.Type().Elem()))
			}
			val = val.Elem()
		}
		val = val.Field(x)
	}
	return val
}

// toInterface stores the natural Go form of a scalar, or a copy of the
// subtree for containers.
func (d *decoder) toInterface(v *dyn.Value, val reflect.Value, fieldPath string) error {
	var x any
	if v.Type.IsLeaf() {
		x = v.Natural()
	} else {
		x = v.Clone()
	}
	xv := reflect.ValueOf(x)
	if !xv.Type().AssignableTo(val.Type()) {
		return convErr(v, val.Type(), fieldPath)
	}
	val.Set(xv)
	return nil
}
