package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/gistsapi/dynjson/dyn"
)

func parseYAML(d []byte, opts *parseOpts) (*dyn.Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(d, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, parseErr("reading yaml", err)
	}
	return fromYAML(doc, 0, opts.maxDepth)
}

// fromYAML converts a document decoded with ordered maps. Mapping keys
// that are not strings are rendered with fmt.Sprint.
func fromYAML(x any, depth, maxDepth int) (*dyn.Value, error) {
	if maxDepth > 0 && depth > maxDepth {
		return nil, parseErr(fmt.Sprintf("nesting deeper than %d", maxDepth), nil)
	}
	switch x := x.(type) {
	case yaml.MapSlice:
		res := dyn.NewObject()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			child, err := fromYAML(item.Value, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			if err := res.Append(key, child); err != nil {
				return nil, err
			}
		}
		return res, nil
	case []any:
		res := dyn.NewArray()
		for _, elt := range x {
			child, err := fromYAML(elt, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			if err := res.Push(child); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	res, err := dyn.FromObject(x, dyn.Strict())
	if err != nil {
		return nil, parseErr("converting yaml value", err)
	}
	return res, nil
}
