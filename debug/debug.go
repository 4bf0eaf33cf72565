// Package debug gates diagnostic output on PBXGRAPH_DEBUG_* environment
// variables so the library itself never logs in normal operation.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Encode   bool
	Alloc    bool
	Validate bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("PBXGRAPH_DEBUG_PARSE")
	d.Encode = boolEnv("PBXGRAPH_DEBUG_ENCODE")
	d.Alloc = boolEnv("PBXGRAPH_DEBUG_ALLOC")
	d.Validate = boolEnv("PBXGRAPH_DEBUG_VALIDATE")
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
func Alloc() bool {
	return d.Alloc
}
func Validate() bool {
	return d.Validate
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
