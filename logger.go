package pixrot

import (
	"log/slog"
	"sync/atomic"
)

// silent is the logger in effect until SetLogger installs another one.
var silent = slog.New(slog.DiscardHandler)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(silent)
}

// SetLogger sets the logger used by package-level functions, by engines
// created without WithLogger and by the registered accelerator. pixrot is
// silent by default; nil restores that.
//
// Records are emitted at these levels:
//   - [slog.LevelDebug]: backend chosen for each rotation, with format,
//     angle and geometry
//   - [slog.LevelInfo]: accelerator registration
//   - [slog.LevelWarn]: failed blits and image allocations, SIMD or GPU
//     turned off through PIXROT_NO_SIMD or PIXROT_NO_GPU
//
//	pixrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)

	if a := Accelerator(); a != nil {
		propagateLogger(a, l)
	}
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by accelerators that log on their own.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(a GPUAccelerator, l *slog.Logger) {
	if ls, ok := a.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
