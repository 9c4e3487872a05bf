package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

var names = map[string]Format{
	"j":    JSONFormat,
	"json": JSONFormat,
	"y":    YAMLFormat,
	"yml":  YAMLFormat,
	"yaml": YAMLFormat,
}

// ParseFormat reads a format name or its abbreviation, ignoring case.
func ParseFormat(v string) (Format, error) {
	if f, ok := names[strings.ToLower(strings.TrimSpace(v))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) MarshalText() ([]byte, error) {
	if f != JSONFormat && f != YAMLFormat {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// FromPath guesses the format of a file from its extension. ok is false
// when the extension names no format.
func FromPath(name string) (f Format, ok bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSONFormat, true
	case ".yaml", ".yml":
		return YAMLFormat, true
	}
	return JSONFormat, false
}
