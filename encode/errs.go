package encode

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
)

// EncodeError reports a value that has no text form, such as a NaN.
type EncodeError struct {
	Path    string
	Message string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode error at %s: %s", e.Path, e.Message)
}

func (e *EncodeError) Unwrap() error {
	return dyn.ErrEncode
}
