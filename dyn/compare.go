package dyn

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Values of different types order by type: Null < Bool < Number < String <
// Array < Object. Containers compare member by member, objects comparing
// the key before the value.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(rank(a.Type), rank(b.Type))
	}
	switch a.Type {
	case NumberType:
		return cmp.Compare(a.Number, b.Number)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType, ObjectType:
		return compareMembers(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 100
}

func compareMembers(a, b *Value) int {
	n := min(len(a.Members), len(b.Members))
	for i := 0; i < n; i++ {
		ma, mb := a.Members[i], b.Members[i]
		if a.Type == ObjectType {
			if c := strings.Compare(ma.Name(), mb.Name()); c != 0 {
				return c
			}
		}
		if c := Compare(ma.Value, mb.Value); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Members), len(b.Members))
}

// Equal reports whether v and o have the same type, the same content and,
// for containers, the same members in the same order.
func (v *Value) Equal(o *Value) bool {
	return Compare(v, o) == 0
}
