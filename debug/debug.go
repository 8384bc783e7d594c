// Package debug holds switches for diagnostic output, read once from the
// environment.
//
//	FIELDS_DEBUG_GEN    print generated source before formatting
//	FIELDS_DEBUG_PARSE  print every document the CLI parses
//	FIELDS_DEBUG_DIFF   print the canonical forms compared by diff
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Gen   bool
	Parse bool
	Diff  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Gen = boolEnv("FIELDS_DEBUG_GEN")
	d.Parse = boolEnv("FIELDS_DEBUG_PARSE")
	d.Diff = boolEnv("FIELDS_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Gen() bool {
	return d.Gen
}
func Parse() bool {
	return d.Parse
}
func Diff() bool {
	return d.Diff
}
