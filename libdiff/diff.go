package libdiff

import (
	"strconv"
	"unicode/utf8"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/gistsapi/dynjson/dyn"
)

const (
	// FromKey holds the old value of a change.
	FromKey = "-"
	// ToKey holds the new value of a change.
	ToKey = "+"
)

// Diff returns the changes turning from into to, or nil when they are
// equal.
//
// The result is an object whose keys are paths (see dyn.FormatPath) and
// whose values hold the old value under FromKey, the new value under ToKey,
// or both for a replacement. Array indices of removed elements refer to
// from, indices of added elements refer to to.
func Diff(from, to *dyn.Value) *dyn.Value {
	d := &differ{res: dyn.NewObject()}
	d.diff(orNull(from), orNull(to))
	if d.res.Len() == 0 {
		return nil
	}
	return d.res
}

func orNull(v *dyn.Value) *dyn.Value {
	if v == nil {
		return dyn.Null()
	}
	return v
}

type differ struct {
	path []dyn.PathElem
	res  *dyn.Value
}

func (d *differ) add(from, to *dyn.Value) {
	change := dyn.NewObject()
	if from != nil {
		_ = change.Append(FromKey, from.Clone())
	}
	if to != nil {
		_ = change.Append(ToKey, to.Clone())
	}
	_ = d.res.Append(dyn.FormatPath(d.path), change)
}

func (d *differ) push(e dyn.PathElem) { d.path = append(d.path, e) }
func (d *differ) pop()                { d.path = d.path[:len(d.path)-1] }

func (d *differ) diff(from, to *dyn.Value) {
	switch {
	case from.Type != to.Type:
		d.add(from, to)
	case from.Type == dyn.ObjectType:
		d.object(from, to)
	case from.Type == dyn.ArrayType:
		d.array(from, to)
	case !from.Equal(to):
		d.add(from, to)
	}
}

// object aligns member keys. A key removed at one place and added at
// another is diffed as a single member, so that reordering alone yields no
// change.
func (d *differ) object(from, to *dyn.Value) {
	syms := map[string]rune{}
	fromRunes := keyRunes(syms, from)
	toRunes := keyRunes(syms, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	deleted := map[string][]*dyn.Value{}
	inserted := map[string][]*dyn.Value{}
	fi, ti := 0, 0
	for i := range diffs {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				m := from.Members[fi]
				deleted[m.Name()] = append(deleted[m.Name()], m.Value)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				m := to.Members[ti]
				inserted[m.Name()] = append(inserted[m.Name()], m.Value)
				ti++
			}
		case diffpatch.DiffEqual:
			fi += n
			ti += n
		}
	}

	delSeen := map[string]int{}
	insSeen := map[string]int{}
	fi, ti = 0, 0
	for i := range diffs {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				m := from.Members[fi]
				name := m.Name()
				j := delSeen[name]
				delSeen[name]++
				d.push(dyn.FieldElem(name))
				if j < len(inserted[name]) {
					d.diff(m.Value, inserted[name][j])
				} else {
					d.add(m.Value, nil)
				}
				d.pop()
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				m := to.Members[ti]
				name := m.Name()
				j := insSeen[name]
				insSeen[name]++
				if j >= len(deleted[name]) {
					d.push(dyn.FieldElem(name))
					d.add(nil, m.Value)
					d.pop()
				}
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				d.push(dyn.FieldElem(from.Members[fi].Name()))
				d.diff(from.Members[fi].Value, to.Members[ti].Value)
				d.pop()
				fi++
				ti++
			}
		}
	}
}

// array aligns elements by summary, a container's being its hash. A removal
// directly followed by an addition is diffed pairwise, so that an edited
// container is compared in depth.
func (d *differ) array(from, to *dyn.Value) {
	syms := map[string]rune{}
	fromRunes := valueRunes(syms, from)
	toRunes := valueRunes(syms, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := 0; i < len(diffs); i++ {
		n := utf8.RuneCountInString(diffs[i].Text)
		switch diffs[i].Type {
		case diffpatch.DiffEqual:
			for range n {
				d.push(dyn.IndexElem(fi))
				d.diff(from.Members[fi].Value, to.Members[ti].Value)
				d.pop()
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			paired, added := 0, 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				added = utf8.RuneCountInString(diffs[i+1].Text)
				paired = min(n, added)
				i++
			}
			for j := range n {
				d.push(dyn.IndexElem(fi))
				if j < paired {
					d.diff(from.Members[fi].Value, to.Members[ti].Value)
					ti++
				} else {
					d.add(from.Members[fi].Value, nil)
				}
				d.pop()
				fi++
			}
			for range added - paired {
				d.insertAt(to, ti)
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				d.insertAt(to, ti)
				ti++
			}
		}
	}
}

func (d *differ) insertAt(to *dyn.Value, i int) {
	d.push(dyn.IndexElem(i))
	d.add(nil, to.Members[i].Value)
	d.pop()
}

// symbol maps the n-th distinct item to a rune outside the surrogate
// range.
func symbol(syms map[string]rune, s string) rune {
	r, ok := syms[s]
	if !ok {
		r = rune(len(syms))
		if r >= 0xD800 {
			r += 0x800
		}
		syms[s] = r
	}
	return r
}

func keyRunes(syms map[string]rune, v *dyn.Value) []rune {
	rs := make([]rune, len(v.Members))
	for i, m := range v.Members {
		rs[i] = symbol(syms, m.Name())
	}
	return rs
}

func valueRunes(syms map[string]rune, v *dyn.Value) []rune {
	rs := make([]rune, len(v.Members))
	for i, m := range v.Members {
		rs[i] = symbol(syms, summary(m.Value))
	}
	return rs
}

func summary(v *dyn.Value) string {
	switch v.Type {
	case dyn.BoolType:
		return v.Type.String() + "-" + strconv.FormatBool(v.Bool)
	case dyn.NumberType:
		return v.Type.String() + "-" + strconv.FormatFloat(v.Number, 'g', -1, 64)
	case dyn.StringType:
		return v.Type.String() + "-" + v.String
	case dyn.ArrayType, dyn.ObjectType:
		return v.Type.String() + "-" + strconv.FormatUint(v.Hash(), 16)
	default:
		return v.Type.String()
	}
}
