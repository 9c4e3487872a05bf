package gist

import "strings"

// Links holds the pagination URLs of the last list response. Missing
// relations are empty.
type Links struct {
	First string
	Prev  string
	Next  string
	Last  string
}

// parseLinks reads an RFC 8288 Link header such as
//
//	<https://api.github.com/gists?page=2>; rel="next", <...>; rel="last"
func parseLinks(header string) Links {
	var res Links
	for item := range strings.SplitSeq(header, ",") {
		parts := strings.Split(strings.TrimSpace(item), ";")
		if len(parts) < 2 {
			continue
		}
		url := strings.TrimSpace(parts[0])
		url = strings.TrimSuffix(strings.TrimPrefix(url, "<"), ">")
		for _, param := range parts[1:] {
			switch strings.TrimSpace(param) {
			case `rel="first"`:
				res.First = url
			case `rel="prev"`:
				res.Prev = url
			case `rel="next"`:
				res.Next = url
			case `rel="last"`:
				res.Last = url
			}
		}
	}
	return res
}
