package encode

import (
	"strings"

	"github.com/gistsapi/dynjson/dyn"
)

func MustString(v *dyn.Value, opts ...EncodeOption) string {
	s, err := ToText(v, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(s)
}
