// Package encode writes *dyn.Value trees as JSON or YAML text.
//
// # Usage
//
//	v := dyn.NewObject()
//	_ = v.Set("x", true)
//	s, err := encode.ToText(v) // {"x":true}
//
//	// indented, colored output for a terminal
//	err = encode.Encode(v, os.Stdout, encode.EncodeIndent(2), encode.EncodeColors(encode.NewColors()))
//
//	// a Go value, through dyn.FromObject
//	s, err = encode.Serialize(struct{ N int }{3}) // {"N":3}
//
// Encoding normalizes the tree first: a node whose type is null loses any
// members or scalar content it carried, so it is always written as null.
// Members are written under their literal keys in document order. NaN and
// infinite numbers cannot be written and give an *EncodeError.
//
// # Related Packages
//
//   - github.com/gistsapi/dynjson/dyn - the value tree
//   - github.com/gistsapi/dynjson/parse - text to a tree
package encode
