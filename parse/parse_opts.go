package parse

import (
	"golang.org/x/text/encoding"

	"github.com/gistsapi/dynjson/format"
)

type parseOpts struct {
	format   format.Format
	enc      encoding.Encoding
	encName  string
	maxDepth int
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// WithEncoding decodes the input with enc instead of sniffing a byte order
// mark.
func WithEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOpts) { o.enc = enc }
}

// WithEncodingName is like WithEncoding with the encoding looked up by its
// WHATWG or IANA name, such as "utf-16le" or "windows-1252".
func WithEncodingName(name string) ParseOption {
	return func(o *parseOpts) { o.encName = name }
}

// MaxDepth bounds the nesting of arrays and objects. Zero means no bound
// beyond the tokenizer's own.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
