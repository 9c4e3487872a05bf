package dyn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PathElem is one step of a Path: either an object member or an array
// index.
type PathElem struct {
	Field *string
	Index *int
}

func FieldElem(name string) PathElem { return PathElem{Field: &name} }

func IndexElem(i int) PathElem { return PathElem{Index: &i} }

// Path addresses a value inside a tree, starting at the root.
//
// Its text form starts with an optional "$" followed by steps:
//
//	.label      member whose key is a label
//	['key']     any member key, quoted with ' or "
//	[3]         array index
//
// so that "$.files['a b.txt'].size" and "files['a b.txt'].size" are the
// same path.
type Path []PathElem

// ParsePath parses the text form of a path.
func ParsePath(s string) (Path, error) {
	p := &pathParser{src: s}
	return p.parse()
}

type pathParser struct {
	src string
	i   int
}

func (p *pathParser) errorf(format string, args ...any) error {
	return fmt.Errorf("path %q at %d: %s: %w", p.src, p.i, fmt.Sprintf(format, args...), ErrParse)
}

func (p *pathParser) parse() (Path, error) {
	res := Path{}
	if strings.HasPrefix(p.src, "$") {
		p.i++
	} else if p.src != "" && p.src[0] != '.' && p.src[0] != '[' {
		label := p.label()
		if label == "" {
			return nil, p.errorf("expected label")
		}
		res = append(res, FieldElem(label))
	}
	for p.i < len(p.src) {
		switch p.src[p.i] {
		case '.':
			p.i++
			label := p.label()
			if label == "" {
				return nil, p.errorf("expected label after '.'")
			}
			res = append(res, FieldElem(label))
		case '[':
			p.i++
			elem, err := p.bracket()
			if err != nil {
				return nil, err
			}
			res = append(res, elem)
		default:
			return nil, p.errorf("unexpected %q", p.src[p.i])
		}
	}
	return res, nil
}

func (p *pathParser) label() string {
	start := p.i
	for p.i < len(p.src) {
		r, sz := utf8.DecodeRuneInString(p.src[p.i:])
		ok := unicode.IsLetter(r) || r == '_'
		if p.i > start {
			ok = ok || unicode.IsDigit(r) || r == '-'
		}
		if !ok {
			break
		}
		p.i += sz
	}
	return p.src[start:p.i]
}

func (p *pathParser) bracket() (PathElem, error) {
	if p.i >= len(p.src) {
		return PathElem{}, p.errorf("unterminated '['")
	}
	q := p.src[p.i]
	if q == '\'' || q == '"' {
		p.i++
		var sb strings.Builder
		for {
			if p.i >= len(p.src) {
				return PathElem{}, p.errorf("unterminated quoted key")
			}
			c := p.src[p.i]
			p.i++
			if c == q {
				break
			}
			if c == '\\' {
				if p.i >= len(p.src) {
					return PathElem{}, p.errorf("unterminated escape")
				}
				c = p.src[p.i]
				p.i++
			}
			sb.WriteByte(c)
		}
		if p.i >= len(p.src) || p.src[p.i] != ']' {
			return PathElem{}, p.errorf("expected ']'")
		}
		p.i++
		return FieldElem(sb.String()), nil
	}
	end := strings.IndexByte(p.src[p.i:], ']')
	if end < 0 {
		return PathElem{}, p.errorf("unterminated '['")
	}
	n, err := strconv.Atoi(p.src[p.i : p.i+end])
	if err != nil || n < 0 {
		return PathElem{}, p.errorf("bad index %q", p.src[p.i:p.i+end])
	}
	p.i += end + 1
	return IndexElem(n), nil
}

// FormatPath renders a path in its text form. Keys that are labels use
// the dotted form, all others the quoted bracket form.
func FormatPath(path []PathElem) string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, e := range path {
		switch {
		case e.Index != nil:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(*e.Index))
			sb.WriteByte(']')
		case e.Field != nil && IsLabel(*e.Field):
			sb.WriteByte('.')
			sb.WriteString(*e.Field)
		case e.Field != nil:
			sb.WriteString("['")
			sb.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(*e.Field))
			sb.WriteString("']")
		}
	}
	return sb.String()
}

func (p Path) String() string {
	return FormatPath(p)
}

func (v *Value) step(e PathElem) (*Value, bool, error) {
	if e.Index != nil {
		return v.GetAt(*e.Index)
	}
	return v.Get(*e.Field)
}

// Walk follows path from v and returns the value it ends at.
func (v *Value) Walk(path Path) (*Value, error) {
	res := v
	for i, e := range path {
		next, ok, err := res.step(e)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", FormatPath(path[:i]), err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", FormatPath(path[:i+1]), ErrNotFound)
		}
		res = next
	}
	return res, nil
}

// GetPath returns the value at path p. A missing member or index is an
// error wrapping ErrNotFound.
func (v *Value) GetPath(p string) (*Value, error) {
	path, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return v.Walk(path)
}

// SetPath stores x at path p. Every step but the last must already exist;
// the last one is created as by Set or SetAt. The empty path replaces v.
func (v *Value) SetPath(p string, x any) error {
	path, err := ParsePath(p)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		nv, err := FromObject(x)
		if err != nil {
			return err
		}
		v.assign(nv)
		return nil
	}
	parent, err := v.Walk(path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	if last.Index != nil {
		return parent.SetAt(*last.Index, x)
	}
	return parent.Set(*last.Field, x)
}

// DeletePath removes the value at path p and reports whether it was
// present.
func (v *Value) DeletePath(p string) (bool, error) {
	path, err := ParsePath(p)
	if err != nil {
		return false, err
	}
	if len(path) == 0 {
		return false, accessErr("delete", v.Type, "$", "cannot delete the root")
	}
	parent, err := v.Walk(path[:len(path)-1])
	if err != nil {
		return false, err
	}
	last := path[len(path)-1]
	if last.Index != nil {
		return parent.DeleteAt(*last.Index)
	}
	return parent.Delete(*last.Field)
}
