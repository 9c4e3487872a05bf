package dyn

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// seed is shared so that equal values hash equally within a process.
var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the value.
// It panics if v is nil.
func (v *Value) Hash() uint64 {
	if v == nil {
		panic("dyn: Hash called on nil value")
	}
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(v.Type))

	var b [8]byte
	switch v.Type {
	case BoolType:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		f := v.Number
		if f == 0 {
			// -0 == 0
			f = 0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
		h.Write(b[:])
	case StringType:
		h.WriteString(v.String)
	case ArrayType:
		for _, m := range v.Members {
			binary.LittleEndian.PutUint64(b[:], m.Value.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		for _, m := range v.Members {
			h.WriteString(m.Name())
			h.WriteByte(0)
			binary.LittleEndian.PutUint64(b[:], m.Value.Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
