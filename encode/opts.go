package encode

import "github.com/gistsapi/dynjson/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// EncodeIndent sets the indentation step. Zero, the default, gives compact
// JSON output.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
func EncodeEscapeHTML(v bool) EncodeOption {
	return func(es *EncState) { es.escapeHTML = v }
}
