package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Encode bool
	Map    bool
	HTTP   bool
	Patch  bool
	Eval   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DJ_DEBUG_PARSE")
	d.Encode = boolEnv("DJ_DEBUG_ENCODE")
	d.Map = boolEnv("DJ_DEBUG_MAP")
	d.HTTP = boolEnv("DJ_DEBUG_HTTP")
	d.Patch = boolEnv("DJ_DEBUG_PATCH")
	d.Eval = boolEnv("DJ_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Map() bool {
	return d.Map
}
func HTTP() bool {
	return d.HTTP
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}
