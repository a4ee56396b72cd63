// Package debug provides env-gated debug logging for formbind internals.
// Each area has a FORMBIND_DEBUG_* boolean variable; output goes to
// stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Facade     bool
	Session    bool
	Invalidate bool
	Server     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Facade = boolEnv("FORMBIND_DEBUG_FACADE")
	d.Session = boolEnv("FORMBIND_DEBUG_SESSION")
	d.Invalidate = boolEnv("FORMBIND_DEBUG_INVALIDATE")
	d.Server = boolEnv("FORMBIND_DEBUG_SERVER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Facade() bool {
	return d.Facade
}
func Session() bool {
	return d.Session
}
func Invalidate() bool {
	return d.Invalidate
}
func Server() bool {
	return d.Server
}
