package dyn

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$", "$"},
		{"", "$"},
		{"$.a", "$.a"},
		{"a", "$.a"},
		{"a.b[0]", "$.a.b[0]"},
		{"$['a b'].c", "$['a b'].c"},
		{`$["x.txt"]`, "$['x.txt']"},
		{`$['it\'s']`, `$['it\'s']`},
		{"$['plain']", "$.plain"},
		{"[2][3]", "$[2][3]"},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.in)
		if err != nil {
			t.Errorf("ParsePath(%q): %v", tt.in, err)
			continue
		}
		if got := p.String(); got != tt.want {
			t.Errorf("ParsePath(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"$.", "$[", "$[x]", "$[-1]", "$['a'", "$['a']x", "1a", "$a"} {
		if _, err := ParsePath(in); !errors.Is(err, ErrParse) {
			t.Errorf("ParsePath(%q) = %v, want parse error", in, err)
		}
	}
}

func TestGetSetDeletePath(t *testing.T) {
	files := FromKeyVals([]KeyVal{
		{Key: "a b.txt", Val: FromKeyVals([]KeyVal{{Key: "size", Val: FromNumber(12)}})},
	})
	doc := FromKeyVals([]KeyVal{
		{Key: "files", Val: files},
		{Key: "list", Val: FromSlice([]*Value{FromNumber(1), FromNumber(2)})},
	})

	size, err := doc.GetPath("$.files['a b.txt'].size")
	if err != nil {
		t.Fatal(err)
	}
	if size.Number != 12 {
		t.Errorf("size = %v", size.Number)
	}
	if _, err := doc.GetPath("$.files.missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing member: %v", err)
	}
	if _, err := doc.GetPath("$.list.x"); !errors.Is(err, ErrAccess) {
		t.Errorf("key on array: %v", err)
	}

	if err := doc.SetPath("$.list[1]", "two"); err != nil {
		t.Fatal(err)
	}
	two, _ := doc.GetPath("list[1]")
	if two.String != "two" {
		t.Errorf("list[1] = %+v", two)
	}
	if err := doc.SetPath("$.files['new one']", true); err != nil {
		t.Fatal(err)
	}
	if ok, _ := files.IsDefined("new one"); !ok {
		t.Error("new member not created")
	}

	ok, err := doc.DeletePath("$.files['a b.txt']")
	if err != nil || !ok {
		t.Fatalf("DeletePath = %v %v", ok, err)
	}
	if _, err := doc.DeletePath("$"); !errors.Is(err, ErrAccess) {
		t.Errorf("delete root: %v", err)
	}
	if err := doc.SetPath("$", 5); err != nil {
		t.Fatal(err)
	}
	if doc.Type != NumberType {
		t.Errorf("root replaced with %s", doc.Type)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Value
		expected int
	}{
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromNumber(1), -1},
		{"Number < String", FromNumber(1), FromString("a"), -1},
		{"String < Array", FromString("a"), NewArray(), -1},
		{"Array < Object", NewArray(), NewObject(), -1},
		{"false < true", FromBool(false), FromBool(true), -1},
		{"numbers", FromNumber(2), FromNumber(1), 1},
		{"strings", FromString("a"), FromString("a"), 0},
		{"short array", FromSlice([]*Value{FromNumber(1)}), FromSlice([]*Value{FromNumber(1), FromNumber(2)}), -1},
		{"object keys",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromNumber(9)}}),
			FromKeyVals([]KeyVal{{Key: "b", Val: FromNumber(1)}}),
			-1},
		{"object values",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromNumber(2)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromNumber(1)}}),
			1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestHash(t *testing.T) {
	a := FromKeyVals([]KeyVal{{Key: "x y", Val: FromSlice([]*Value{FromNumber(1)})}})
	b := a.Clone()
	if a.Hash() != b.Hash() {
		t.Error("equal values hash differently")
	}
	if err := b.Set("x y", 2); err != nil {
		t.Fatal(err)
	}
	if a.Hash() == b.Hash() {
		t.Error("different values hash equally")
	}
	if FromNumber(0).Hash() != FromNumber(-0.0).Hash() {
		t.Error("zero and negative zero hash differently")
	}
}

func TestTypeText(t *testing.T) {
	for _, ty := range Types() {
		d, err := ty.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != ty {
			t.Errorf("%s round trips to %s", ty, back)
		}
	}
	var ty Type
	if err := ty.UnmarshalText([]byte("Tuple")); err == nil {
		t.Error("unknown type accepted")
	}
}
