package encode

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/format"
	"github.com/gistsapi/dynjson/parse"
)

func TestSetThenText(t *testing.T) {
	v := dyn.NewObject()
	if err := v.Set("x", true); err != nil {
		t.Fatal(err)
	}
	got, err := ToText(v)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"x":true}` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		in   *dyn.Value
		want string
	}{
		{dyn.Null(), `null`},
		{dyn.FromBool(false), `false`},
		{dyn.FromNumber(1), `1`},
		{dyn.FromNumber(-2.5), `-2.5`},
		{dyn.FromNumber(1e21), `1e+21`},
		{dyn.FromNumber(123456789012), `123456789012`},
		{dyn.FromString("a\"b\n"), `"a\"b\n"`},
		{dyn.FromString("<p>"), `"<p>"`},
		{dyn.NewArray(), `[]`},
		{dyn.NewObject(), `{}`},
	}
	for _, tt := range tests {
		if got := MustString(tt.in); got != tt.want {
			t.Errorf("MustString(%s) = %s, want %s", tt.in.Type, got, tt.want)
		}
	}
}

func TestEncodeEscapeHTML(t *testing.T) {
	got := MustString(dyn.FromString("<p>"), EncodeEscapeHTML(true))
	if got != `"\u003cp\u003e"` {
		t.Errorf("got %s", got)
	}
}

func TestNullMemberIsNull(t *testing.T) {
	v, err := parse.ParseString(`{"a":{"b":[1,2]},"c":[{"d":1}]}`)
	if err != nil {
		t.Fatal(err)
	}
	a, _, _ := v.Get("a")
	// retag without clearing, as a caller poking at the struct might
	a.Type = dyn.NullType
	c, _, _ := v.Get("c")
	d, _, _ := c.GetAt(0)
	d.Type = dyn.NullType

	got := MustString(v)
	if got != `{"a":null,"c":[null]}` {
		t.Errorf("got %s", got)
	}
	if a.Members != nil {
		t.Error("null node still has members after encoding")
	}
}

func TestWrappedKeysRoundTrip(t *testing.T) {
	keys := []string{"plain", "a b.txt", "", "1st", "$ref", "ключ"}
	v := dyn.NewObject()
	for i, k := range keys {
		if err := v.Set(k, i); err != nil {
			t.Fatal(err)
		}
	}
	back, err := parse.ParseString(MustString(v))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := back.Keys()
	if strings.Join(got, "|") != strings.Join(keys, "|") {
		t.Errorf("keys %q, want %q", got, keys)
	}
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`{"n":null,"b":true,"f":false,"num":-1.25e-7,"s":"stré","a":[1,[2,{}],[]],"o":{"z":1,"a":2}}`,
		`[{"dup":1,"dup":2}]`,
		`"just a string"`,
		`0`,
	}
	for _, d := range docs {
		v, err := parse.ParseString(d)
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		again, err := parse.ParseString(MustString(v))
		if err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if !v.Equal(again) {
			t.Errorf("%s: round trip gave %s", d, MustString(again))
		}
	}
}

func TestEncodeIndent(t *testing.T) {
	v, err := parse.ParseString(`{"a":[1,2],"b":{}}`)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {}\n}"
	if got := MustString(v, EncodeIndent(2)); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeNonFinite(t *testing.T) {
	v := dyn.FromSlice([]*dyn.Value{dyn.FromNumber(1), dyn.FromNumber(math.NaN())})
	_, err := ToText(v)
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EncodeError", err)
	}
	if ee.Path != "$[1]" {
		t.Errorf("path %s", ee.Path)
	}
	if !errors.Is(err, dyn.ErrEncode) {
		t.Error("error does not match ErrEncode")
	}
}

func TestSerialize(t *testing.T) {
	type file struct {
		Name string  `json:"filename"`
		Size float64 `json:"size"`
		Raw  *string `json:"raw_url"`
	}
	got, err := Serialize(file{Name: "a.txt", Size: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"filename":"a.txt","size":3,"raw_url":null}` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeYAML(t *testing.T) {
	v, err := parse.ParseString(`{"b":1,"a":[true,null,"x"],"c":1.5}`)
	if err != nil {
		t.Fatal(err)
	}
	got := MustString(v, EncodeFormat(format.YAMLFormat))
	back, err := parse.ParseString(got, parse.ParseYAML())
	if err != nil {
		t.Fatalf("%s: %v", got, err)
	}
	if !v.Equal(back) {
		t.Errorf("yaml round trip:\n%s", got)
	}
	if !strings.HasPrefix(got, "b: 1\n") {
		t.Errorf("member order lost:\n%s", got)
	}
}

func TestEncodeColors(t *testing.T) {
	v, err := parse.ParseString(`{"a":"%d"}`)
	if err != nil {
		t.Fatal(err)
	}
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: dyn.StringType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	got := MustString(v, EncodeColors(colors))
	if got != `{"a":<"%d">}` {
		t.Errorf("got %s", got)
	}
}
