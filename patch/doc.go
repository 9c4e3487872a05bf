// Package patch applies JSON Patch (RFC 6902) and JSON Merge Patch
// (RFC 7386) documents to dyn values.
//
// Patching goes through github.com/evanphx/json-patch, which does not keep
// member order. The result is put back into the order of the input
// document, with members the patch added placed last.
//
// # Usage
//
//	doc, _ := parse.ParseString(`{"name":"a","size":1}`)
//	res, err := patch.Apply(doc, []byte(`[{"op":"replace","path":"/size","value":2}]`))
//
//	res, err = patch.Merge(doc, []byte(`{"size":null}`))
//
// # Related Packages
//
//   - github.com/gistsapi/dynjson/libdiff - computing differences
package patch
