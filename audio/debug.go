// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"log"
	"sync/atomic"
)

var debugLogger atomic.Pointer[log.Logger]

// SetLogger enables decoder debug tracing on l. A nil l silences it again.
func SetLogger(l *log.Logger) {
	debugLogger.Store(l)
}

// Debugf writes a trace line when a logger was set with SetLogger.
func Debugf(format string, args ...any) {
	if l := debugLogger.Load(); l != nil {
		l.Printf(format, args...)
	}
}
