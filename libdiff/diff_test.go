package libdiff

import (
	"strconv"
	"testing"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/encode"
	"github.com/gistsapi/dynjson/parse"
)

type diffTest struct {
	name string
	a    string
	b    string
	diff string
}

var diffTests = []diffTest{
	{
		name: "equal",
		a:    `{"a":[1,{"b":null}]}`,
		b:    `{"a":[1,{"b":null}]}`,
		diff: `null`,
	},
	{
		name: "root type",
		a:    `1`,
		b:    `"1"`,
		diff: `{"$":{"-":1,"+":"1"}}`,
	},
	{
		name: "object members",
		a:    `{"a":1,"b":2,"c":{"x":true}}`,
		b:    `{"a":1,"c":{"x":false},"d":"new"}`,
		diff: `{"$.b":{"-":2},"$.c.x":{"-":true,"+":false},"$.d":{"+":"new"}}`,
	},
	{
		name: "reordered members",
		a:    `{"a":1,"b":2}`,
		b:    `{"b":2,"a":1}`,
		diff: `null`,
	},
	{
		name: "wrapped key",
		a:    `{"files":{"a b.txt":{"size":1}}}`,
		b:    `{"files":{"a b.txt":{"size":2}}}`,
		diff: `{"$.files['a b.txt'].size":{"-":1,"+":2}}`,
	},
	{
		name: "array insert and delete",
		a:    `[1,2,3,4]`,
		b:    `[1,3,4,5]`,
		diff: `{"$[1]":{"-":2},"$[3]":{"+":5}}`,
	},
	{
		name: "array replace",
		a:    `[1,2,3]`,
		b:    `[1,9,3]`,
		diff: `{"$[1]":{"-":2,"+":9}}`,
	},
	{
		name: "array of objects",
		a:    `[{"id":1,"n":"a"}]`,
		b:    `[{"id":1,"n":"b"}]`,
		diff: `{"$[0].n":{"-":"a","+":"b"}}`,
	},
	{
		name: "object removed from array",
		a:    `[{"id":1},{"id":2},{"id":3}]`,
		b:    `[{"id":1},{"id":3}]`,
		diff: `{"$[1]":{"-":{"id":2}}}`,
	},
}

func TestDiff(t *testing.T) {
	for _, tt := range diffTests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parse.ParseString(tt.a)
			if err != nil {
				t.Fatal(err)
			}
			b, err := parse.ParseString(tt.b)
			if err != nil {
				t.Fatal(err)
			}
			got, err := encode.ToText(Diff(a, b))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.diff {
				t.Errorf("got %s\nwant %s", got, tt.diff)
			}
		})
	}
}

func TestDiffDoesNotAlias(t *testing.T) {
	a := dyn.FromSlice([]*dyn.Value{dyn.NewObject()})
	b := dyn.NewArray()
	d := Diff(a, b)
	change, _, _ := d.Get("$[0]")
	old, _, _ := change.Get(FromKey)
	if err := old.Set("k", 1); err != nil {
		t.Fatal(err)
	}
	if a.Members[0].Value.Len() != 0 {
		t.Error("diff shares nodes with its input")
	}
}

func TestDiffManyKeys(t *testing.T) {
	a := dyn.NewObject()
	b := dyn.NewObject()
	for i := range 60000 {
		k := "k" + strconv.Itoa(i)
		_ = a.Append(k, dyn.FromNumber(float64(i)))
		_ = b.Append(k, dyn.FromNumber(float64(i)))
	}
	_ = b.Set("k59999", true)
	d := Diff(a, b)
	if d == nil || d.Len() != 1 {
		t.Fatalf("diff = %v", d)
	}
}
