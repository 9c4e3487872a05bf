package dyn

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type Owner struct {
	Login string `json:"login"`
	ID    float64
}

type Base struct {
	Kind string `json:"kind"`
}

type record struct {
	Base
	Name    string            `json:"name"`
	Tags    []string          `json:"tags,omitempty"`
	Owner   *Owner            `json:"owner"`
	Skipped string            `json:"-"`
	Extra   map[string]int    `json:"extra"`
	When    time.Time         `json:"when"`
	Addr    netip.Addr        `json:"addr"`
	private int
	Labels  map[string]string `json:"labels,omitempty"`
}

func TestClassify(t *testing.T) {
	var nilPtr *Owner
	var nilMap map[string]int
	var nilSlice []int
	tests := []struct {
		name string
		in   any
		want Type
	}{
		{"nil", nil, NullType},
		{"nil pointer", nilPtr, NullType},
		{"nil map", nilMap, NullType},
		{"nil slice", nilSlice, NullType},
		{"bool", true, BoolType},
		{"int", 3, NumberType},
		{"uint8", uint8(3), NumberType},
		{"rune", 'x', NumberType},
		{"float32", float32(1.5), NumberType},
		{"string", "s", StringType},
		{"time", time.Now(), StringType},
		{"text marshaler", netip.MustParseAddr("10.0.0.1"), StringType},
		{"slice", []int{1}, ArrayType},
		{"array", [2]int{}, ArrayType},
		{"map", map[string]int{}, ObjectType},
		{"struct", Owner{}, ObjectType},
		{"struct pointer", &Owner{}, ObjectType},
		{"value", FromBool(true), BoolType},
		{"chan", make(chan int), NullType},
		{"func", func() {}, NullType},
		{"complex", complex(1, 2), NullType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFromObjectStruct(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := &record{
		Base:    Base{Kind: "k"},
		Name:    "n",
		Owner:   &Owner{Login: "me", ID: 7},
		Skipped: "no",
		Extra:   map[string]int{"z": 1, "a": 2},
		When:    when,
		Addr:    netip.MustParseAddr("10.0.0.1"),
		private: 1,
	}
	v, err := FromObject(r)
	if err != nil {
		t.Fatal(err)
	}
	keys, _ := v.Keys()
	if diff := cmp.Diff([]string{"kind", "name", "owner", "extra", "when", "addr"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	extra, _, _ := v.Get("extra")
	ekeys, _ := extra.Keys()
	if diff := cmp.Diff([]string{"a", "z"}, ekeys); diff != "" {
		t.Errorf("map keys not sorted (-want +got):\n%s", diff)
	}
	w, _, _ := v.Get("when")
	if w.String != "2024-05-01T12:00:00Z" {
		t.Errorf("when = %q", w.String)
	}
	a, _, _ := v.Get("addr")
	if a.String != "10.0.0.1" {
		t.Errorf("addr = %q", a.String)
	}
	o, _, _ := v.Get("owner")
	id, _, _ := o.Get("ID")
	if id.Number != 7 {
		t.Errorf("owner.ID = %v", id.Number)
	}
}

func TestFromObjectNested(t *testing.T) {
	v, err := FromObject([]any{1, "two", nil, []int{3}, map[string]any{"k": false}})
	if err != nil {
		t.Fatal(err)
	}
	want := FromSlice([]*Value{
		FromNumber(1),
		FromString("two"),
		Null(),
		FromSlice([]*Value{FromNumber(3)}),
		FromKeyVals([]KeyVal{{Key: "k", Val: FromBool(false)}}),
	})
	if !v.Equal(want) {
		t.Errorf("got %+v", v)
	}
}

func TestFromObjectCycle(t *testing.T) {
	type node struct {
		Next *node
	}
	n := &node{}
	n.Next = n
	_, err := FromObject(n)
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("got %v, want *MarshalError", err)
	}
	if !errors.Is(err, ErrMarshal) {
		t.Error("error does not match ErrMarshal")
	}
	if me.FieldPath != "Next" {
		t.Errorf("field path %q", me.FieldPath)
	}
}

func TestFromObjectSharedPointer(t *testing.T) {
	o := &Owner{Login: "x"}
	v, err := FromObject([]*Owner{o, o})
	if err != nil {
		t.Fatalf("shared pointer reported as cycle: %v", err)
	}
	if v.Len() != 2 {
		t.Errorf("len %d", v.Len())
	}

	type inner struct {
		X int `json:"x"`
	}
	type outer struct {
		In  inner  `json:"in"`
		Ref *inner `json:"ref"`
	}
	out := &outer{In: inner{X: 1}}
	out.Ref = &out.In
	v, err = FromObject(out)
	if err != nil {
		t.Fatalf("pointer to first field reported as cycle: %v", err)
	}
	ref, err := v.GetPath("$.ref.x")
	if err != nil || ref.Number != 1 {
		t.Errorf("ref.x = %v, %v", ref, err)
	}
}

func TestFromObjectStrict(t *testing.T) {
	x := map[string]any{"f": func() {}}
	v, err := FromObject(x)
	if err != nil {
		t.Fatal(err)
	}
	f, _, _ := v.Get("f")
	if f.Type != NullType {
		t.Errorf("func stored as %s", f.Type)
	}
	_, err = FromObject(x, Strict())
	if !errors.Is(err, ErrMarshal) {
		t.Errorf("strict: got %v", err)
	}
}

func TestStructFieldsConflict(t *testing.T) {
	type A struct{ X int }
	type B struct{ X int }
	type C struct {
		A
		B
	}
	type D struct {
		A
		X string
	}
	if _, err := FromObject(C{}); !errors.Is(err, ErrMarshal) {
		t.Errorf("same depth conflict: got %v", err)
	}
	v, err := FromObject(D{X: "outer"})
	if err != nil {
		t.Fatal(err)
	}
	x, _, _ := v.Get("X")
	if x.String != "outer" {
		t.Errorf("X = %+v, want the outer field", x)
	}
}
