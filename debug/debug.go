// Package debug holds environment-gated trace switches for the patch
// engine. Each switch is read once at startup from DEFML_DEBUG_*.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Op      bool
	Patch   bool
	XPath   bool
	Inherit bool
}

var d *debug

func init() {
	d = &debug{}
	d.Op = boolEnv("DEFML_DEBUG_OP")
	d.Patch = boolEnv("DEFML_DEBUG_PATCH")
	d.XPath = boolEnv("DEFML_DEBUG_XPATH")
	d.Inherit = boolEnv("DEFML_DEBUG_INHERIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Op() bool {
	return d.Op
}
func Patch() bool {
	return d.Patch
}
func XPath() bool {
	return d.XPath
}
func Inherit() bool {
	return d.Inherit
}
