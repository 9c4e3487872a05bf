// Package gomap maps between *dyn.Value trees and statically typed Go
// values.
//
// # Reading
//
//	type File struct {
//	    Name string  `json:"filename"`
//	    Size float64 `json:"size"`
//	}
//	f, err := gomap.As[File](v)
//
// Struct fields are matched by json tag name, or by Go field name when
// untagged, exactly and with case. Unknown members are skipped unless
// DisallowUnknown is given; fields with no member stay zero. Sequences map
// onto slices (appended in order) and arrays (a length mismatch is an
// error after the common prefix is assigned). Scalars are converted where
// the conversion is lossless or a plain parse: numbers to any numeric
// kind, strings to strings, numbers, bools, time.Time and other
// encoding.TextUnmarshaler types, bools to bools and strings. null gives
// the zero value. Anything else fails with a *ConversionError naming the
// field path.
//
// Fields of type any receive bool, float64 or string for scalars and a
// copied *dyn.Value for containers; fields of type *dyn.Value receive a
// copy of the subtree.
//
// # Writing
//
// ToValue and Marshal go the other way through dyn.FromObject.
package gomap
