package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"j", JSONFormat},
		{"JSON", JSONFormat},
		{" yaml ", YAMLFormat},
		{"yml", YAMLFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("toml: %v", err)
	}
}

func TestText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("y")); err != nil || f != YAMLFormat {
		t.Fatalf("got %v %v", f, err)
	}
	d, err := f.MarshalText()
	if err != nil || string(d) != "yaml" {
		t.Errorf("got %s %v", d, err)
	}
	if _, err := Format(7).MarshalText(); !errors.Is(err, ErrBadFormat) {
		t.Errorf("bad format: %v", err)
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		name string
		want Format
		ok   bool
	}{
		{"a.json", JSONFormat, true},
		{"dir.d/a.YML", YAMLFormat, true},
		{"a.yaml", YAMLFormat, true},
		{"a.txt", JSONFormat, false},
		{"-", JSONFormat, false},
	}
	for _, tt := range tests {
		got, ok := FromPath(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FromPath(%q) = %v, %v", tt.name, got, ok)
		}
	}
}
