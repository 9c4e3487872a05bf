package gomap

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

type User struct {
	Login string  `json:"login"`
	ID    float64 `json:"id"`
}

type File struct {
	Size     float64 `json:"size"`
	Filename string  `json:"filename"`
	RawURL   string  `json:"raw_url"`
}

type Gist struct {
	ID        string     `json:"id"`
	Public    bool       `json:"public"`
	User      *User      `json:"user"`
	Comments  float64    `json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
	Files     []File     `json:"files"`
	Meta      any        `json:"meta"`
	Raw       *dyn.Value `json:"raw"`
	Untouched string
}

func mustParse(t *testing.T, s string) *dyn.Value {
	t.Helper()
	v, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestAsStruct(t *testing.T) {
	v := mustParse(t, `{
		"id": "abc",
		"unknown": {"deep": [1]},
		"public": true,
		"user": {"login": "octo", "id": 1},
		"comments": 2,
		"created_at": "2010-04-14T02:15:15Z",
		"files": [{"filename": "a.txt", "size": 12, "raw_url": "https://x/a.txt"}],
		"meta": "m",
		"raw": {"k": [true]}
	}`)
	got, err := As[Gist](v)
	if err != nil {
		t.Fatal(err)
	}
	want := Gist{
		ID:        "abc",
		Public:    true,
		User:      &User{Login: "octo", ID: 1},
		Comments:  2,
		CreatedAt: time.Date(2010, 4, 14, 2, 15, 15, 0, time.UTC),
		Files:     []File{{Size: 12, Filename: "a.txt", RawURL: "https://x/a.txt"}},
		Meta:      "m",
		Raw:       dyn.FromKeyVals([]dyn.KeyVal{{Key: "k", Val: dyn.FromSlice([]*dyn.Value{dyn.FromBool(true)})}}),
	}
	opt := cmp.Comparer(func(a, b *dyn.Value) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAsCaseSensitive(t *testing.T) {
	v := mustParse(t, `{"Login":"x","ID":3}`)
	got, err := As[User](v)
	if err != nil {
		t.Fatal(err)
	}
	if got != (User{}) {
		t.Errorf("matched with different case: %+v", got)
	}
}

func TestAsNull(t *testing.T) {
	v := mustParse(t, `{"user":null,"files":null,"comments":null}`)
	got, err := As[Gist](v)
	if err != nil {
		t.Fatal(err)
	}
	if got.User != nil || got.Files != nil || got.Comments != 0 {
		t.Errorf("got %+v", got)
	}
}

func TestAsScalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		run  func(*dyn.Value) (any, error)
		want any
	}{
		{"int", `3`, func(v *dyn.Value) (any, error) { return As[int](v) }, 3},
		{"int8 string", `"-8"`, func(v *dyn.Value) (any, error) { return As[int8](v) }, int8(-8)},
		{"uint16", `65535`, func(v *dyn.Value) (any, error) { return As[uint16](v) }, uint16(65535)},
		{"float32", `1.5`, func(v *dyn.Value) (any, error) { return As[float32](v) }, float32(1.5)},
		{"float string", `"2.25"`, func(v *dyn.Value) (any, error) { return As[float64](v) }, 2.25},
		{"bool string", `"true"`, func(v *dyn.Value) (any, error) { return As[bool](v) }, true},
		{"bool to string", `false`, func(v *dyn.Value) (any, error) { return As[string](v) }, "false"},
		{"any number", `4`, func(v *dyn.Value) (any, error) { return As[any](v) }, 4.0},
		{"any null", `null`, func(v *dyn.Value) (any, error) { return As[any](v) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(mustParse(t, tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		run  func(*dyn.Value) error
		path string
	}{
		{"number to bool", `{"public":1}`, func(v *dyn.Value) error { _, err := As[Gist](v); return err }, "public"},
		{"number to string", `{"id":1}`, func(v *dyn.Value) error { _, err := As[Gist](v); return err }, "id"},
		{"nested", `{"files":[{"size":"big"}]}`, func(v *dyn.Value) error { _, err := As[Gist](v); return err }, "files[0].size"},
		{"object to slice", `{"files":{}}`, func(v *dyn.Value) error { _, err := As[Gist](v); return err }, "files"},
		{"fraction to int", `1.5`, func(v *dyn.Value) error { _, err := As[int](v); return err }, ""},
		{"overflow", `300`, func(v *dyn.Value) error { _, err := As[uint8](v); return err }, ""},
		{"negative uint", `-1`, func(v *dyn.Value) error { _, err := As[uint](v); return err }, ""},
		{"bad time", `{"created_at":"yesterday"}`, func(v *dyn.Value) error { _, err := As[Gist](v); return err }, "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(mustParse(t, tt.in))
			var ce *ConversionError
			if !errors.As(err, &ce) {
				t.Fatalf("got %v, want *ConversionError", err)
			}
			if !errors.Is(err, dyn.ErrConversion) {
				t.Error("error does not match ErrConversion")
			}
			if ce.FieldPath != tt.path {
				t.Errorf("field path %q, want %q", ce.FieldPath, tt.path)
			}
		})
	}
}

func TestAsFixedArray(t *testing.T) {
	got, err := As[[2]int](mustParse(t, `[1,2]`))
	if err != nil || got != [2]int{1, 2} {
		t.Errorf("exact: %v %v", got, err)
	}
	got, err = As[[2]int](mustParse(t, `[7]`))
	if !errors.Is(err, dyn.ErrConversion) {
		t.Errorf("short: %v", err)
	}
	if got != [2]int{7, 0} {
		t.Errorf("short prefix: %v", got)
	}
	got, err = As[[2]int](mustParse(t, `[1,2,3]`))
	if !errors.Is(err, dyn.ErrConversion) {
		t.Errorf("long: %v", err)
	}
	if got != [2]int{1, 2} {
		t.Errorf("long prefix: %v", got)
	}
}

func TestAsMap(t *testing.T) {
	got, err := As[map[string]int](mustParse(t, `{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"a": 3, "b": 2}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	ints, err := As[map[int]bool](mustParse(t, `{"1":true}`))
	if err != nil || !ints[1] {
		t.Errorf("int keys: %v %v", ints, err)
	}
}

func TestEmbedded(t *testing.T) {
	type Base struct {
		Kind string `json:"kind"`
	}
	type Outer struct {
		*Base
		Name string `json:"name"`
	}
	got, err := As[Outer](mustParse(t, `{"kind":"k","name":"n"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.Base == nil || got.Kind != "k" || got.Name != "n" {
		t.Errorf("got %+v", got)
	}
}

func TestDisallowUnknown(t *testing.T) {
	v := mustParse(t, `{"login":"a","extra":1}`)
	if _, err := As[User](v); err != nil {
		t.Errorf("default: %v", err)
	}
	_, err := As[User](v, DisallowUnknown())
	var ce *ConversionError
	if !errors.As(err, &ce) || ce.FieldPath != "extra" {
		t.Errorf("strict: %v", err)
	}
}

func TestFromValueDestination(t *testing.T) {
	v := mustParse(t, `1`)
	var x int
	for _, dst := range []any{nil, x, (*int)(nil)} {
		var ue *UnmarshalError
		if err := FromValue(v, dst); !errors.As(err, &ue) {
			t.Errorf("FromValue(%T): %v", dst, err)
		}
	}
}

func TestUnmarshalMarshal(t *testing.T) {
	var u User
	if err := Unmarshal([]byte(`{"login":"octo","id":5}`), &u); err != nil {
		t.Fatal(err)
	}
	d, err := Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"login":"octo","id":5}` {
		t.Errorf("got %s", d)
	}
	v, err := ToValue(&u)
	if err != nil {
		t.Fatal(err)
	}
	back, err := As[User](v)
	if err != nil || back != u {
		t.Errorf("back %+v %v", back, err)
	}
}

func TestOptions(t *testing.T) {
	var u User
	err := Unmarshal([]byte("login: octo\nid: 5\n"), &u, WithParseOptions(parse.ParseYAML()))
	if err != nil {
		t.Fatal(err)
	}
	if u != (User{Login: "octo", ID: 5}) {
		t.Errorf("got %+v", u)
	}
	d, err := Marshal(u, WithEncodeOptions(encode.EncodeIndent(1)))
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n \"login\": \"octo\",\n \"id\": 5\n}"; string(d) != want {
		t.Errorf("got %q", d)
	}
	type withChan struct {
		C chan int `json:"c"`
	}
	if _, err := ToValue(withChan{}); err != nil {
		t.Errorf("lenient: %v", err)
	}
	if _, err := ToValue(withChan{}, WithFromOptions(dyn.Strict())); err == nil {
		t.Error("strict: no error for a channel")
	}
}
