// Package libdiff computes structural differences between dyn values.
//
// # Usage
//
//	d := libdiff.Diff(oldDoc, newDoc)
//	if d == nil {
//		// no change
//	}
//	for path, change := range d.Fields() {
//		old, _, _ := change.Get(libdiff.FromKey)
//		...
//	}
//
// Object members are aligned by key and array elements by value using the
// sequence diff of github.com/sergi/go-diff, so an insertion in the middle
// of an array is reported as one addition rather than a change to every
// later element.
//
// # Related Packages
//
//   - github.com/gistsapi/dynjson/dyn - values and paths
//   - github.com/gistsapi/dynjson/patch - applying RFC 6902 and RFC 7386 patches
package libdiff
