package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	"github.com/gistsapi/dynjson/dyn"
)

const (
	majorArray = 4
	majorMap   = 5
)

// CBOR is a Codec that serializes trees using fxamacker/cbor. Containers
// are framed here so that maps keep member order; scalars go through the
// configured modes. The zero value is NOT ready to use; construct with
// NewCBOR.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = CBOR{}

// NewCBOR constructs a CBOR codec. When deterministic is true scalars use
// the RFC 8949 core deterministic options.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

func (c CBOR) Encode(v *dyn.Value) ([]byte, error) {
	return c.appendValue(nil, v)
}

func (c CBOR) Decode(b []byte) (*dyn.Value, error) {
	v, rest, err := c.decodeFirst(b)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("cbor: %d trailing bytes", len(rest))
	}
	return v, nil
}

func (c CBOR) appendValue(b []byte, v *dyn.Value) ([]byte, error) {
	if v == nil {
		v = dyn.Null()
	}
	switch v.Type {
	case dyn.ArrayType:
		b = appendHead(b, majorArray, uint64(len(v.Members)))
		for _, m := range v.Members {
			var err error
			if b, err = c.appendValue(b, m.Value); err != nil {
				return nil, err
			}
		}
		return b, nil
	case dyn.ObjectType:
		b = appendHead(b, majorMap, uint64(len(v.Members)))
		for _, m := range v.Members {
			k, err := c.enc.Marshal(m.Name())
			if err != nil {
				return nil, err
			}
			b = append(b, k...)
			if b, err = c.appendValue(b, m.Value); err != nil {
				return nil, err
			}
		}
		return b, nil
	}
	d, err := c.enc.Marshal(v.Natural())
	if err != nil {
		return nil, err
	}
	return append(b, d...), nil
}

func (c CBOR) decodeFirst(b []byte) (*dyn.Value, []byte, error) {
	if len(b) == 0 {
		return nil, nil, fmt.Errorf("cbor: unexpected end of data")
	}
	switch b[0] >> 5 {
	case majorArray:
		n, rest, err := readHead(b)
		if err != nil {
			return nil, nil, err
		}
		res := dyn.NewArray()
		for range n {
			var child *dyn.Value
			if child, rest, err = c.decodeFirst(rest); err != nil {
				return nil, nil, err
			}
			_ = res.Push(child)
		}
		return res, rest, nil
	case majorMap:
		n, rest, err := readHead(b)
		if err != nil {
			return nil, nil, err
		}
		res := dyn.NewObject()
		for range n {
			var key string
			if rest, err = c.dec.UnmarshalFirst(rest, &key); err != nil {
				return nil, nil, fmt.Errorf("cbor: map key: %w", err)
			}
			var child *dyn.Value
			if child, rest, err = c.decodeFirst(rest); err != nil {
				return nil, nil, err
			}
			_ = res.Append(key, child)
		}
		return res, rest, nil
	}
	var x any
	rest, err := c.dec.UnmarshalFirst(b, &x)
	if err != nil {
		return nil, nil, err
	}
	if bs, ok := x.([]byte); ok {
		x = string(bs)
	}
	v, err := dyn.FromObject(x, dyn.Strict())
	if err != nil {
		return nil, nil, err
	}
	return v, rest, nil
}

func appendHead(b []byte, major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return append(b, m|byte(n))
	case n <= math.MaxUint8:
		return append(b, m|24, byte(n))
	case n <= math.MaxUint16:
		return binary.BigEndian.AppendUint16(append(b, m|25), uint16(n))
	case n <= math.MaxUint32:
		return binary.BigEndian.AppendUint32(append(b, m|26), uint32(n))
	}
	return binary.BigEndian.AppendUint64(append(b, m|27), n)
}

// readHead reads a definite length container head.
func readHead(b []byte) (uint64, []byte, error) {
	info := b[0] & 0x1f
	b = b[1:]
	var size int
	switch {
	case info < 24:
		return uint64(info), b, nil
	case info == 24:
		size = 1
	case info == 25:
		size = 2
	case info == 26:
		size = 4
	case info == 27:
		size = 8
	default:
		return 0, nil, fmt.Errorf("cbor: unsupported container head 0x%02x", info)
	}
	if len(b) < size {
		return 0, nil, fmt.Errorf("cbor: unexpected end of data")
	}
	var n uint64
	for _, x := range b[:size] {
		n = n<<8 | uint64(x)
	}
	if n > uint64(len(b)) {
		return 0, nil, fmt.Errorf("cbor: container of %d items exceeds data", n)
	}
	return n, b[size:], nil
}
