package dyn

import (
	"iter"
	"slices"
	"strconv"
)

func accessErr(op string, t Type, key, msg string) *AccessError {
	return &AccessError{Op: op, Type: t, Key: key, Message: msg}
}

func quoteKey(key string) string {
	return strconv.Quote(key)
}

func indexKey(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// findKey returns the position of the first member named key. Wrapped
// members are consulted before plain ones.
func (v *Value) findKey(key string) int {
	for i, m := range v.Members {
		if m.Wrapped && m.Key == key {
			return i
		}
	}
	for i, m := range v.Members {
		if !m.Wrapped && m.Label == key {
			return i
		}
	}
	return -1
}

func (v *Value) needObject(op, key string) error {
	switch v.Type {
	case ObjectType:
		return nil
	case ArrayType:
		return accessErr(op, v.Type, quoteKey(key), "string key on array")
	default:
		return accessErr(op, v.Type, quoteKey(key), "not a container")
	}
}

func (v *Value) needArray(op string, i int) error {
	switch v.Type {
	case ArrayType:
		return nil
	case ObjectType:
		return accessErr(op, v.Type, indexKey(i), "index on object")
	default:
		return accessErr(op, v.Type, indexKey(i), "not a container")
	}
}

// IsDefined reports whether the object has a member named key.
func (v *Value) IsDefined(key string) (bool, error) {
	if err := v.needObject("isDefined", key); err != nil {
		return false, err
	}
	return v.findKey(key) >= 0, nil
}

// IsDefinedAt reports whether i is a valid index of the array.
func (v *Value) IsDefinedAt(i int) (bool, error) {
	if err := v.needArray("isDefined", i); err != nil {
		return false, err
	}
	return i >= 0 && i < len(v.Members), nil
}

// Get returns the first member named key. A member holding null is present:
// it is returned with ok set.
func (v *Value) Get(key string) (*Value, bool, error) {
	if err := v.needObject("get", key); err != nil {
		return nil, false, err
	}
	i := v.findKey(key)
	if i < 0 {
		return nil, false, nil
	}
	return v.Members[i].Value, true, nil
}

func (v *Value) GetAt(i int) (*Value, bool, error) {
	if err := v.needArray("get", i); err != nil {
		return nil, false, err
	}
	if i < 0 || i >= len(v.Members) {
		return nil, false, nil
	}
	return v.Members[i].Value, true, nil
}

// Set converts x with FromObject and stores it under key. An existing
// member is rewritten in place and keeps its position; otherwise a new
// member is appended.
func (v *Value) Set(key string, x any) error {
	if err := v.needObject("set", key); err != nil {
		return err
	}
	nv, err := FromObject(x)
	if err != nil {
		return err
	}
	if i := v.findKey(key); i >= 0 {
		v.Members[i].Value.assign(nv)
		return nil
	}
	v.Members = append(v.Members, newMember(key, nv))
	return nil
}

// SetAt stores x at index i. Indices at or past the end append.
func (v *Value) SetAt(i int, x any) error {
	if err := v.needArray("set", i); err != nil {
		return err
	}
	if i < 0 {
		return accessErr("set", v.Type, indexKey(i), "negative index")
	}
	nv, err := FromObject(x)
	if err != nil {
		return err
	}
	if i < len(v.Members) {
		v.Members[i].Value.assign(nv)
		return nil
	}
	v.Members = append(v.Members, newItem(nv))
	return nil
}

// Delete removes the first member named key and reports whether there
// was one.
func (v *Value) Delete(key string) (bool, error) {
	if err := v.needObject("delete", key); err != nil {
		return false, err
	}
	i := v.findKey(key)
	if i < 0 {
		return false, nil
	}
	v.Members = slices.Delete(v.Members, i, i+1)
	return true, nil
}

// DeleteAt removes the element at i. Later elements shift down.
func (v *Value) DeleteAt(i int) (bool, error) {
	if err := v.needArray("delete", i); err != nil {
		return false, err
	}
	if i < 0 || i >= len(v.Members) {
		return false, nil
	}
	v.Members = slices.Delete(v.Members, i, i+1)
	return true, nil
}

// Keys returns the literal member keys of an object, or the decimal
// indices of an array.
func (v *Value) Keys() ([]string, error) {
	switch v.Type {
	case ObjectType:
		res := make([]string, len(v.Members))
		for i, m := range v.Members {
			res[i] = m.Name()
		}
		return res, nil
	case ArrayType:
		res := make([]string, len(v.Members))
		for i := range v.Members {
			res[i] = strconv.Itoa(i)
		}
		return res, nil
	default:
		return nil, accessErr("keys", v.Type, "", "not a container")
	}
}

// Elements yields the elements of an array in order. It yields nothing
// for other types.
func (v *Value) Elements() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		if v == nil || v.Type != ArrayType {
			return
		}
		for _, m := range v.Members {
			if !yield(m.Value) {
				return
			}
		}
	}
}

// Fields yields the key and value of each object member in document
// order. It yields nothing for other types.
func (v *Value) Fields() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if v == nil || v.Type != ObjectType {
			return
		}
		for _, m := range v.Members {
			if !yield(m.Name(), m.Value) {
				return
			}
		}
	}
}
