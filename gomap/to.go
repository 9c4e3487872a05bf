package gomap

import (
	"bytes"

	"github.com/gistsapi/dynjson/debug"
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
)

// ToValue converts a Go value to a tree with dyn.FromObject.
func ToValue(x any, opts ...MapOption) (*dyn.Value, error) {
	cfg := newMapConfig(opts)
	v, err := dyn.FromObject(x, cfg.fromOptions...)
	if err != nil {
		return nil, err
	}
	if debug.Map() {
		debug.Logf("map %T to %s\n", x, debug.JSON{Value: v})
	}
	return v, nil
}

// Marshal converts a Go value to text: JSON unless an encode format option
// says otherwise.
func Marshal(x any, opts ...MapOption) ([]byte, error) {
	cfg := newMapConfig(opts)
	v, err := dyn.FromObject(x, cfg.fromOptions...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(v, &buf, cfg.encodeOptions...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
