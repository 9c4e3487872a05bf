package gist

import "testing"

func TestParseLinks(t *testing.T) {
	tests := []struct {
		header string
		want   Links
	}{
		{"", Links{}},
		{`<https://x/gists?page=1>; rel="first", <https://x/gists?page=3>; rel="prev"`,
			Links{First: "https://x/gists?page=1", Prev: "https://x/gists?page=3"}},
		{`<https://x/a>;rel="next",<https://x/b>;rel="last"`,
			Links{Next: "https://x/a", Last: "https://x/b"}},
		{`<https://x/a>, garbage; rel="other"`, Links{}},
	}
	for _, tt := range tests {
		if got := parseLinks(tt.header); got != tt.want {
			t.Errorf("parseLinks(%q) = %+v, want %+v", tt.header, got, tt.want)
		}
	}
}
