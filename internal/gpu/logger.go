//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	setLogger(nil)
}

func slogger() *slog.Logger { return loggerPtr.Load() }

// setLogger installs the logger handed down by pixrot.SetLogger. nil
// discards.
func setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}
