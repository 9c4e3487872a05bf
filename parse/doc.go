// Package parse reads JSON (or YAML) text into a *dyn.Value tree.
//
// # Usage
//
//	v, err := parse.ParseString(`{"a":1,"b":[1,2,3]}`)
//
//	// UTF-16 input without a byte order mark
//	v, err = parse.Parse(data, parse.WithEncodingName("utf-16le"))
//
//	// YAML input
//	v, err = parse.Parse(data, parse.ParseYAML())
//
// Member order is that of the input and duplicate keys are kept. All
// numbers become float64. The input must hold exactly one value; anything
// other than whitespace after it is an error, as is any malformed text.
// A failed parse never returns a partial tree.
//
// Without WithEncoding the input is decoded as UTF-8, or as UTF-16 when it
// starts with a UTF-16 byte order mark. A UTF-8 byte order mark is
// skipped.
//
// # Related Packages
//
//   - github.com/gistsapi/dynjson/dyn - the value tree
//   - github.com/gistsapi/dynjson/encode - text from a tree
package parse
