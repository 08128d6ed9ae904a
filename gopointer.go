// Package gopointer normalizes pointer input from a local surface into the
// button and move events a remote framebuffer session expects.
package gopointer

import "github.com/edaniels/golog"

// Logger is used by sessions and servers that are not given their own logger.
var Logger = golog.Global().Named("gopointer")
