package gomap

import (
	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

// MapOption controls mapping from Go values to trees and text.
type MapOption func(*mapConfig)

// UnmapOption controls mapping from text and trees to Go values.
type UnmapOption func(*unmapConfig)

type mapConfig struct {
	encodeOptions []encode.EncodeOption
	fromOptions   []dyn.FromOption
}

type unmapConfig struct {
	parseOptions    []parse.ParseOption
	disallowUnknown bool
}

func newMapConfig(opts []MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithEncodeOptions passes options through to encode.Encode in Marshal.
func WithEncodeOptions(opts ...encode.EncodeOption) MapOption {
	return func(c *mapConfig) { c.encodeOptions = append(c.encodeOptions, opts...) }
}

// WithFromOptions passes options through to dyn.FromObject.
func WithFromOptions(opts ...dyn.FromOption) MapOption {
	return func(c *mapConfig) { c.fromOptions = append(c.fromOptions, opts...) }
}

// WithParseOptions passes options through to parse.Parse in Unmarshal.
func WithParseOptions(opts ...parse.ParseOption) UnmapOption {
	return func(c *unmapConfig) { c.parseOptions = append(c.parseOptions, opts...) }
}

// DisallowUnknown makes object members without a matching struct field a
// conversion error instead of being ignored.
func DisallowUnknown() UnmapOption {
	return func(c *unmapConfig) { c.disallowUnknown = true }
}
