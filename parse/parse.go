package parse

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/format"
)

func Parse(d []byte, opts ...ParseOption) (*dyn.Value, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	d, err := decodeText(d, pOpts)
	if err != nil {
		return nil, err
	}
	var res *dyn.Value
	switch pOpts.format {
	case format.JSONFormat:
		res, err = parseJSON(d, pOpts)
	case format.YAMLFormat:
		res, err = parseYAML(d, pOpts)
	default:
		return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, pOpts.format)
	}
	if err != nil {
		if debug.Parse() {
			debug.Logf("parse %s: %v\n", pOpts.format, err)
		}
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parse %s: %s\n", pOpts.format, debug.JSON{Value: res})
	}
	return res, nil
}

func ParseString(s string, opts ...ParseOption) (*dyn.Value, error) {
	return Parse([]byte(s), opts...)
}

func ParseReader(r io.Reader, opts ...ParseOption) (*dyn.Value, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

// decodeText converts the input to UTF-8.
func decodeText(d []byte, opts *parseOpts) ([]byte, error) {
	enc := opts.enc
	if enc == nil && opts.encName != "" {
		e, err := htmlindex.Get(strings.ToLower(opts.encName))
		if err != nil {
			return nil, parseErr(fmt.Sprintf("unknown encoding %q", opts.encName), err)
		}
		enc = e
	}
	if enc == nil {
		if isPlainUTF8(d) {
			return d, nil
		}
		enc = unicode.UTF8
	}
	res, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), d)
	if err != nil {
		return nil, parseErr("decoding input", err)
	}
	return res, nil
}

// isPlainUTF8 reports whether d has no byte order mark, so that the
// decoding pass can be skipped for UTF-8 input.
func isPlainUTF8(d []byte) bool {
	if len(d) < 2 {
		return true
	}
	switch {
	case d[0] == 0xEF && len(d) >= 3 && d[1] == 0xBB && d[2] == 0xBF:
		return false
	case d[0] == 0xFE && d[1] == 0xFF, d[0] == 0xFF && d[1] == 0xFE:
		return false
	}
	return true
}
