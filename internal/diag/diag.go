// Package diag holds the process-wide verbose logging switch.
//
// All diagnostics go through the standard log package, whose output main
// points at stderr; stdout is reserved for MCP protocol messages.
package diag

import (
	"fmt"
	"log"
	"sync/atomic"
)

var debug atomic.Bool

// SetDebug turns verbose progress logging on or off.
func SetDebug(on bool) {
	debug.Store(on)
}

// Enabled reports whether verbose logging is on.
func Enabled() bool {
	return debug.Load()
}

// Debugf logs only when verbose logging is enabled.
func Debugf(format string, args ...interface{}) {
	if !debug.Load() {
		return
	}
	log.Output(2, fmt.Sprintf(format, args...))
}
