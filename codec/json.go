package codec

import (
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

// JSON is a Codec for JSON text. The zero value is ready to use.
type JSON struct {
	EncodeOptions []encode.EncodeOption
	ParseOptions  []parse.ParseOption
}

func (c JSON) Encode(v *dyn.Value) ([]byte, error) {
	s, err := encode.ToText(v, c.EncodeOptions...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c JSON) Decode(b []byte) (*dyn.Value, error) {
	return parse.Parse(b, c.ParseOptions...)
}
