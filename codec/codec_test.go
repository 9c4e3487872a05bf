package codec

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gistsapi/dynjson/dyn"
	"github.com/gistsapi/dynjson/parse"
)

const doc = `{"z":1,"a":[true,null,"s",{"k b":2.5}],"":{},"big":[` +
	`0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25]}`

func codecs(t *testing.T) map[string]Codec {
	t.Helper()
	res := map[string]Codec{}
	for _, name := range Names {
		c, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		res[name] = c
	}
	det, err := NewCBOR(true)
	if err != nil {
		t.Fatal(err)
	}
	res["cbor-det"] = det
	return res
}

func TestRoundTrip(t *testing.T) {
	v, err := parse.ParseString(doc)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys, _ := v.Keys()
	for name, c := range codecs(t) {
		t.Run(name, func(t *testing.T) {
			d, err := c.Encode(v)
			if err != nil {
				t.Fatal(err)
			}
			back, err := c.Decode(d)
			if err != nil {
				t.Fatal(err)
			}
			if !back.Equal(v) {
				t.Errorf("round trip changed the value")
			}
			keys, _ := back.Keys()
			if diff := cmp.Diff(wantKeys, keys); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	v, err := parse.ParseString(doc)
	if err != nil {
		t.Fatal(err)
	}
	for name, c := range codecs(t) {
		t.Run(name, func(t *testing.T) {
			d, err := c.Encode(v)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.Decode(d[:len(d)/2]); err == nil {
				t.Error("truncated input decoded")
			}
			if _, err := c.Decode(append(d, d...)); err == nil {
				t.Error("trailing input decoded")
			}
		})
	}
}

func TestMsgpackForeignScalars(t *testing.T) {
	d, err := msgpack.Marshal([]any{int8(-3), uint64(7), []byte("raw")})
	if err != nil {
		t.Fatal(err)
	}
	v, err := Msgpack{}.Decode(d)
	if err != nil {
		t.Fatal(err)
	}
	want := dyn.FromSlice([]*dyn.Value{dyn.FromNumber(-3), dyn.FromNumber(7), dyn.FromString("raw")})
	if !v.Equal(want) {
		t.Errorf("got %+v", v)
	}
}

func TestLimit(t *testing.T) {
	c := Limit{Inner: JSON{}, MaxDecode: 4}
	if _, err := c.Decode([]byte(`[1,2]`)); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("got %v", err)
	}
	v, err := c.Decode([]byte(`[1]`))
	if err != nil || v.Len() != 1 {
		t.Errorf("got %v %v", v, err)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("xml"); err == nil {
		t.Error("unknown codec accepted")
	}
}
