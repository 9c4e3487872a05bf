// Package dyn provides a mutable, order preserving tree for JSON values.
//
// # Values
//
// A Value is a tagged union: the Type field says which of Bool, Number,
// String or Members carries the content.
//
//   - NullType: null
//   - BoolType: true or false
//   - NumberType: an IEEE 754 double
//   - StringType: a string
//   - ArrayType: ordered elements
//   - ObjectType: ordered members with string keys
//
// Containers hold their children as *Member slots in document order. Keys
// need not be unique; lookups return the first match.
//
// # Keys
//
// A key that satisfies IsLabel is stored as the member's Label. Any other
// key (empty, starting with a digit, containing spaces or punctuation) is
// wrapped: the member is labelled "item" and the literal key is kept in
// Key. Member.Name always returns the literal key, and the encoder writes
// it back unchanged, so wrapping is invisible in the text form.
//
// # Access
//
//	v, _ := parse.ParseString(`{"a":1,"b":[1,2,3]}`)
//	a, ok, err := v.Get("a")       // Number 1, true, nil
//	err = v.Set("a", "one")        // rewritten in place, keeps position
//	err = v.Set("c", []int{4})     // appended
//	ok, err = v.Delete("b")
//	b, _ := v.GetPath("$.b[0]")
//
// Key operations on arrays, index operations on objects and any container
// operation on a scalar return an *AccessError.
//
// # Building from Go values
//
// Classify tells which Type a Go value maps to and FromObject converts it,
// walking structs (json tags honored), maps, slices and scalars.
package dyn
