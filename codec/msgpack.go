package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/gistsapi/dynjson/dyn"
)

// Msgpack is a Codec that serializes trees using vmihailenco/msgpack/v5.
// Objects are written as msgpack maps in member order. The zero value is
// ready to use.
type Msgpack struct{}

func (Msgpack) Encode(v *dyn.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeMsgpack(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack) Decode(b []byte) (*dyn.Value, error) {
	r := bytes.NewReader(b)
	dec := msgpack.NewDecoder(r)
	v, err := decodeMsgpack(dec)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("msgpack: %d trailing bytes", r.Len())
	}
	return v, nil
}

func encodeMsgpack(enc *msgpack.Encoder, v *dyn.Value) error {
	if v == nil {
		return enc.EncodeNil()
	}
	switch v.Type {
	case dyn.NullType:
		return enc.EncodeNil()
	case dyn.BoolType:
		return enc.EncodeBool(v.Bool)
	case dyn.NumberType:
		return enc.EncodeFloat64(v.Number)
	case dyn.StringType:
		return enc.EncodeString(v.String)
	case dyn.ArrayType:
		if err := enc.EncodeArrayLen(len(v.Members)); err != nil {
			return err
		}
		for _, m := range v.Members {
			if err := encodeMsgpack(enc, m.Value); err != nil {
				return err
			}
		}
		return nil
	case dyn.ObjectType:
		if err := enc.EncodeMapLen(len(v.Members)); err != nil {
			return err
		}
		for _, m := range v.Members {
			if err := enc.EncodeString(m.Name()); err != nil {
				return err
			}
			if err := encodeMsgpack(enc, m.Value); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("msgpack: unknown type %d", v.Type)
}

func decodeMsgpack(dec *msgpack.Decoder) (*dyn.Value, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, err
	}
	switch {
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		res := dyn.NewObject()
		for range n {
			key, err := dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("msgpack: map key: %w", err)
			}
			child, err := decodeMsgpack(dec)
			if err != nil {
				return nil, err
			}
			_ = res.Append(key, child)
		}
		return res, nil
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		res := dyn.NewArray()
		for range n {
			child, err := decodeMsgpack(dec)
			if err != nil {
				return nil, err
			}
			_ = res.Push(child)
		}
		return res, nil
	}
	x, err := dec.DecodeInterface()
	if err != nil {
		return nil, err
	}
	if b, ok := x.([]byte); ok {
		x = string(b)
	}
	return dyn.FromObject(x, dyn.Strict())
}
