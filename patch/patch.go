package patch

import (
	"cmp"
	"fmt"
	"slices"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

// Apply applies the RFC 6902 patch ops to doc and returns the patched
// document. doc is not modified.
func Apply(doc *dyn.Value, ops []byte) (*dyn.Value, error) {
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return run(doc, "json-patch", p.Apply)
}

// ApplyValue is Apply with the patch given as a tree.
func ApplyValue(doc, ops *dyn.Value) (*dyn.Value, error) {
	d, err := marshal(ops)
	if err != nil {
		return nil, err
	}
	return Apply(doc, d)
}

// Merge applies the RFC 7386 merge patch mergePatch to doc and returns the
// merged document. doc is not modified.
func Merge(doc *dyn.Value, mergePatch []byte) (*dyn.Value, error) {
	return run(doc, "merge-patch", func(d []byte) ([]byte, error) {
		return jsonpatch.MergePatch(d, mergePatch)
	})
}

// MergeDiff returns the RFC 7386 merge patch turning from into to.
func MergeDiff(from, to *dyn.Value) (*dyn.Value, error) {
	a, err := marshal(from)
	if err != nil {
		return nil, err
	}
	b, err := marshal(to)
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return parse.Parse(d)
}

func run(doc *dyn.Value, name string, f func([]byte) ([]byte, error)) (*dyn.Value, error) {
	if debug.Patch() {
		debug.Logf("%s on %s\n", name, debug.JSON{Value: doc})
	}
	d, err := marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := f(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	RestoreOrder(res, doc)
	return res, nil
}

func marshal(v *dyn.Value) ([]byte, error) {
	s, err := encode.ToText(v.Clone())
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// RestoreOrder sorts the members of every object in v that also exists in
// like into like's member order. Members not in like keep their relative
// order after those that are. Arrays are matched by position.
func RestoreOrder(v, like *dyn.Value) {
	if v == nil || like == nil || v.Type != like.Type {
		return
	}
	switch v.Type {
	case dyn.ObjectType:
		pos := make(map[string]int, len(like.Members))
		for i, m := range like.Members {
			if _, ok := pos[m.Name()]; !ok {
				pos[m.Name()] = i
			}
		}
		slices.SortStableFunc(v.Members, func(a, b *dyn.Member) int {
			pa, aok := pos[a.Name()]
			pb, bok := pos[b.Name()]
			switch {
			case aok && bok:
				return cmp.Compare(pa, pb)
			case aok:
				return -1
			case bok:
				return 1
			}
			return 0
		})
		for _, m := range v.Members {
			if i, ok := pos[m.Name()]; ok {
				RestoreOrder(m.Value, like.Members[i].Value)
			}
		}
	case dyn.ArrayType:
		for i := range min(len(v.Members), len(like.Members)) {
			RestoreOrder(v.Members[i].Value, like.Members[i].Value)
		}
	}
}
