package dyn

import (
	"unicode"
	"unicode/utf8"
)

// ItemLabel is the structural label of array elements and of object
// members whose key is not a valid label.
const ItemLabel = "item"

type Value struct {
	Type Type

	Bool   bool
	Number float64
	String string

	// Members holds the children of ObjectType and ArrayType values in
	// document order.
	Members []*Member
}

// Member is a child slot of an Object or Array. The slot keeps its
// position in the parent while its Value is rewritten by Set.
type Member struct {
	Label   string
	Key     string
	Wrapped bool
	Value   *Value
}

// Name returns the literal key of an object member, regardless of whether
// it is stored plain or wrapped.
func (m *Member) Name() string {
	if m.Wrapped {
		return m.Key
	}
	return m.Label
}

// IsLabel reports whether key can be stored as a plain structural label.
// Labels start with a letter or '_' and continue with letters, digits, '_'
// or '-'. They are also the keys that may appear bare in a path.
func IsLabel(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		if r == utf8.RuneError {
			return false
		}
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}

func newMember(key string, v *Value) *Member {
	if IsLabel(key) {
		return &Member{Label: key, Value: v}
	}
	return &Member{Label: ItemLabel, Key: key, Wrapped: true, Value: v}
}

func newItem(v *Value) *Member {
	return &Member{Label: ItemLabel, Value: v}
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromNumber(f float64) *Value {
	return &Value{Type: NumberType, Number: f}
}

func FromString(s string) *Value {
	return &Value{Type: StringType, String: s}
}

// NewObject returns an empty object.
func NewObject() *Value {
	return &Value{Type: ObjectType, Members: []*Member{}}
}

// NewArray returns an empty array.
func NewArray() *Value {
	return &Value{Type: ArrayType, Members: []*Member{}}
}

func FromSlice(vs []*Value) *Value {
	res := &Value{Type: ArrayType, Members: make([]*Member, len(vs))}
	for i, v := range vs {
		res.Members[i] = newItem(v)
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds an object whose members appear in the order of kvs.
// Keys are wrapped as needed; duplicates are kept.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{Type: ObjectType, Members: make([]*Member, len(kvs))}
	for i, kv := range kvs {
		val := kv.Val
		if val == nil {
			val = Null()
		}
		res.Members[i] = newMember(kv.Key, val)
	}
	return res
}

// Append adds a member with the given key at the end of an object without
// looking for an existing one. Parsers use it to keep duplicate keys.
func (v *Value) Append(key string, child *Value) error {
	if v.Type != ObjectType {
		return accessErr("append", v.Type, quoteKey(key), "not an object")
	}
	v.Members = append(v.Members, newMember(key, child))
	return nil
}

// Push adds an element at the end of an array.
func (v *Value) Push(child *Value) error {
	if v.Type != ArrayType {
		return accessErr("push", v.Type, "", "not an array")
	}
	v.Members = append(v.Members, newItem(child))
	return nil
}

func (v *Value) IsObject() bool { return v != nil && v.Type == ObjectType }

func (v *Value) IsArray() bool { return v != nil && v.Type == ArrayType }

// Len returns the number of children of a container, 0 for scalars.
func (v *Value) Len() int {
	if v == nil || v.Type.IsLeaf() {
		return 0
	}
	return len(v.Members)
}

// Natural returns the narrowest Go representation of a scalar: nil, bool,
// float64 or string. Containers are returned as the *Value itself.
func (v *Value) Natural() any {
	if v == nil {
		return nil
	}
	switch v.Type {
	case BoolType:
		return v.Bool
	case NumberType:
		return v.Number
	case StringType:
		return v.String
	case ObjectType, ArrayType:
		return v
	default:
		return nil
	}
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := &Value{}
	return v.CloneTo(res)
}

func (v *Value) CloneTo(dst *Value) *Value {
	dst.Type = v.Type
	dst.Bool = v.Bool
	dst.Number = v.Number
	dst.String = v.String
	dst.Members = nil
	if v.Members != nil {
		dst.Members = make([]*Member, len(v.Members))
		for i, m := range v.Members {
			dst.Members[i] = &Member{
				Label:   m.Label,
				Key:     m.Key,
				Wrapped: m.Wrapped,
				Value:   m.Value.Clone(),
			}
		}
	}
	return dst
}

// assign replaces the type tag and content of v with that of o, keeping v's
// identity and therefore its position in any parent.
func (v *Value) assign(o *Value) {
	*v = *o
}

// Visit walks the tree depth first, calling f before (isPost false) and
// after (isPost true) the children of each value. Children are visited only
// when the pre call returns true.
func (v *Value) Visit(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for _, m := range v.Members {
			if err := m.Value.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}
