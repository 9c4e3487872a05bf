package codec

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
)

// Codec encodes trees to bytes and back. Implementations keep member
// order.
type Codec interface {
	Encode(*dyn.Value) ([]byte, error)
	Decode([]byte) (*dyn.Value, error)
}

// Names lists the codecs ByName knows.
var Names = []string{"json", "msgpack", "cbor"}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON{}, nil
	case "msgpack":
		return Msgpack{}, nil
	case "cbor":
		return NewCBOR(false)
	}
	return nil, fmt.Errorf("unknown codec %q, want one of %v", name, Names)
}
