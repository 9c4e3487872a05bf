package codec

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
)

// Limit wraps another codec to enforce a maximum payload size at Decode
// time. If MaxDecode <= 0, size limiting is disabled.
type Limit struct {
	Inner     Codec
	MaxDecode int
}

func (c Limit) Encode(v *dyn.Value) ([]byte, error) { return c.Inner.Encode(v) }

func (c Limit) Decode(b []byte) (*dyn.Value, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return nil, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
