package patch

import (
	"testing"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

func mustParse(t *testing.T, s string) *dyn.Value {
	t.Helper()
	v, err := parse.ParseString(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func mustText(t *testing.T, v *dyn.Value) string {
	t.Helper()
	s, err := encode.ToText(v)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestApply(t *testing.T) {
	doc := mustParse(t, `{"z":1,"a":{"y":2,"b":3}}`)
	ops := `[
		{"op":"replace","path":"/a/b","value":4},
		{"op":"add","path":"/c","value":[1]},
		{"op":"remove","path":"/z"}
	]`
	res, err := Apply(doc, []byte(ops))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustText(t, res), `{"a":{"y":2,"b":4},"c":[1]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := mustText(t, doc), `{"z":1,"a":{"y":2,"b":3}}`; got != want {
		t.Errorf("input modified: %s", got)
	}
}

func TestApplyValue(t *testing.T) {
	doc := mustParse(t, `{"files":{"b.txt":{},"a.txt":{}}}`)
	ops := mustParse(t, `[{"op":"remove","path":"/files/b.txt"}]`)
	res, err := ApplyValue(doc, ops)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustText(t, res), `{"files":{"a.txt":{}}}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestApplyErrors(t *testing.T) {
	doc := mustParse(t, `{"a":1}`)
	for _, ops := range []string{
		`{`,
		`[{"op":"remove","path":"/missing"}]`,
		`[{"op":"test","path":"/a","value":2}]`,
	} {
		if _, err := Apply(doc, []byte(ops)); err == nil {
			t.Errorf("Apply(%s) succeeded", ops)
		}
	}
}

func TestMerge(t *testing.T) {
	doc := mustParse(t, `{"z":1,"a":{"y":2,"b":3}}`)
	res, err := Merge(doc, []byte(`{"a":{"b":null,"n":true},"z":"s"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustText(t, res), `{"z":"s","a":{"y":2,"n":true}}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMergeDiff(t *testing.T) {
	from := mustParse(t, `{"a":1,"b":2}`)
	to := mustParse(t, `{"a":1,"c":3}`)
	mp, err := MergeDiff(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := mustText(t, mp), `{"b":null,"c":3}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	d, _ := encode.ToText(mp)
	res, err := Merge(from, []byte(d))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Equal(to) {
		t.Errorf("merge of diff = %s", mustText(t, res))
	}
}

func TestRestoreOrder(t *testing.T) {
	v := mustParse(t, `[{"a":1,"b":2,"new":0},{"x":1}]`)
	like := mustParse(t, `[{"b":0,"a":0}]`)
	RestoreOrder(v, like)
	if got, want := mustText(t, v), `[{"b":2,"a":1,"new":0},{"x":1}]`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
