package parse

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/gistsapi/dynjson/dyn"
)

type jsonParser struct {
	iter     *jsoniter.Iterator
	maxDepth int
	depth    int
	err      error
}

func parseJSON(d []byte, opts *parseOpts) (*dyn.Value, error) {
	iter := jsoniter.ConfigDefault.BorrowIterator(d)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	p := &jsonParser{iter: iter, maxDepth: opts.maxDepth}
	res := p.value()
	if p.err != nil {
		return nil, p.err
	}
	if res == nil {
		return nil, p.iterErr("reading value")
	}
	switch {
	case iter.Error == io.EOF:
		// a number ending the input reads up to EOF
		return res, nil
	case iter.Error != nil:
		return nil, p.iterErr("reading value")
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		if iter.Error == nil || iter.Error == io.EOF {
			return nil, parseErr("trailing data after value", nil)
		}
		return nil, p.iterErr("trailing data after value")
	}
	return res, nil
}

// iterErr turns the iterator's error state into a *ParseError. The
// iterator keeps io.EOF when it runs out of input in the middle of a token.
func (p *jsonParser) iterErr(msg string) error {
	err := p.iter.Error
	if err == nil || errors.Is(err, io.EOF) {
		err = errUnexpectedEOF
	}
	return parseErr(msg, err)
}

func (p *jsonParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// value reads one value. It returns nil after recording an error.
func (p *jsonParser) value() *dyn.Value {
	iter := p.iter
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		return p.object()
	case jsoniter.ArrayValue:
		return p.array()
	case jsoniter.StringValue:
		s := iter.ReadString()
		if iter.Error != nil {
			p.fail(p.iterErr("reading string"))
			return nil
		}
		return dyn.FromString(s)
	case jsoniter.NumberValue:
		num := string(iter.ReadNumber())
		if iter.Error != nil && iter.Error != io.EOF {
			p.fail(p.iterErr("reading number"))
			return nil
		}
		f, err := parseNumber(num)
		if err != nil {
			p.fail(err)
			return nil
		}
		return dyn.FromNumber(f)
	case jsoniter.BoolValue:
		b := iter.ReadBool()
		if iter.Error != nil {
			p.fail(p.iterErr("reading literal"))
			return nil
		}
		return dyn.FromBool(b)
	case jsoniter.NilValue:
		iter.ReadNil()
		if iter.Error != nil {
			p.fail(p.iterErr("reading literal"))
			return nil
		}
		return dyn.Null()
	default:
		if iter.Error != nil && iter.Error != io.EOF {
			p.fail(p.iterErr("expected value"))
		} else if iter.Error == io.EOF {
			p.fail(parseErr("expected value", errUnexpectedEOF))
		} else {
			p.fail(parseErr("expected value", nil))
		}
		return nil
	}
}

func (p *jsonParser) enter() bool {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.fail(parseErr(fmt.Sprintf("nesting deeper than %d", p.maxDepth), nil))
		return false
	}
	return true
}

func (p *jsonParser) object() *dyn.Value {
	if !p.enter() {
		return nil
	}
	defer func() { p.depth-- }()
	res := dyn.NewObject()
	ok := p.iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
		if iter.Error != nil || p.err != nil {
			return false
		}
		child := p.value()
		if child == nil {
			return false
		}
		// duplicates are kept in order, lookups see the first one
		if err := res.Append(key, child); err != nil {
			p.fail(err)
			return false
		}
		return true
	})
	if p.err != nil {
		return nil
	}
	if !ok || p.iter.Error != nil {
		p.fail(p.iterErr("reading object"))
		return nil
	}
	return res
}

func (p *jsonParser) array() *dyn.Value {
	if !p.enter() {
		return nil
	}
	defer func() { p.depth-- }()
	res := dyn.NewArray()
	ok := p.iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		if iter.Error != nil || p.err != nil {
			return false
		}
		child := p.value()
		if child == nil {
			return false
		}
		if err := res.Push(child); err != nil {
			p.fail(err)
			return false
		}
		// a number directly followed by the end of input leaves io.EOF
		// behind, which the closing bracket check reports.
		return true
	})
	if p.err != nil {
		return nil
	}
	if !ok || p.iter.Error != nil {
		p.fail(p.iterErr("reading array"))
		return nil
	}
	return res
}

// parseNumber checks lit against the JSON number grammar
//
//	-? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
//
// and converts it to a float64. Literals too large for a float64 are
// rejected.
func parseNumber(lit string) (float64, error) {
	bad := func() (float64, error) {
		return 0, parseErr(fmt.Sprintf("invalid number %q", lit), nil)
	}
	i := 0
	if i < len(lit) && lit[i] == '-' {
		i++
	}
	switch {
	case i < len(lit) && lit[i] == '0':
		i++
	case i < len(lit) && lit[i] >= '1' && lit[i] <= '9':
		for i < len(lit) && isDigit(lit[i]) {
			i++
		}
	default:
		return bad()
	}
	if i < len(lit) && lit[i] == '.' {
		i++
		start := i
		for i < len(lit) && isDigit(lit[i]) {
			i++
		}
		if i == start {
			return bad()
		}
	}
	if i < len(lit) && (lit[i] == 'e' || lit[i] == 'E') {
		i++
		if i < len(lit) && (lit[i] == '+' || lit[i] == '-') {
			i++
		}
		start := i
		for i < len(lit) && isDigit(lit[i]) {
			i++
		}
		if i == start {
			return bad()
		}
	}
	if i != len(lit) {
		return bad()
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return bad()
	}
	if math.IsInf(f, 0) {
		return 0, parseErr(fmt.Sprintf("number %s out of range", lit), err)
	}
	return f, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
