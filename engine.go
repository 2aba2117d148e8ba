package pixrot

import (
	"log/slog"
	"sync"

	"github.com/gogpu/pixrot/pixfmt"
)

// Angle is a clockwise rotation in degrees.
type Angle int

// Supported angles.
const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// IsValid reports whether a is one of the four supported angles.
func (a Angle) IsValid() bool {
	switch a {
	case Angle0, Angle90, Angle180, Angle270:
		return true
	}
	return false
}

// Inverse returns the angle that undoes a.
func (a Angle) Inverse() Angle {
	return (360 - a) % 360
}

// swapsAxes reports whether a rotation by a exchanges width and height.
func (a Angle) swapsAxes() bool { return a == Angle90 || a == Angle270 }

// Backend identifies a rotation implementation.
type Backend uint8

// Backends.
const (
	// BackendAuto selects a backend per call.
	BackendAuto Backend = iota
	BackendScalar
	BackendSIMD
	BackendGPU
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendScalar:
		return "scalar"
	case BackendSIMD:
		return "simd"
	case BackendGPU:
		return "gpu"
	}
	return "unknown"
}

// CacheCleaner flushes CPU-dirty cache lines of buf to shared memory.
type CacheCleaner interface {
	Clean(buf []byte)
}

// CacheCleanerFunc adapts a function to CacheCleaner.
type CacheCleanerFunc func(buf []byte)

// Clean calls f(buf).
func (f CacheCleanerFunc) Clean(buf []byte) { f(buf) }

// nopCleaner serves hosts where CPU caches are coherent with every reader.
type nopCleaner struct{}

func (nopCleaner) Clean([]byte) {}

// Engine rotates and converts images. An Engine holds no per-call state and
// may be shared; each call runs synchronously on the calling goroutine.
type Engine struct {
	caps    Caps
	backend Backend
	accel   GPUAccelerator
	alloc   Allocator
	cleaner CacheCleaner
	logger  *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		backend: o.backend,
		accel:   o.accel,
		alloc:   o.alloc,
		cleaner: o.cleaner,
		logger:  o.logger,
	}
	if o.caps != nil {
		e.caps = *o.caps
	} else {
		e.caps = detectedCaps()
	}
	return e
}

var detectedCaps = sync.OnceValue(DetectCaps)

// Caps returns the capabilities the engine was created with.
func (e *Engine) Caps() Caps { return e.caps }

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// accelerator returns the accelerator in effect, or nil when GPU use is off.
func (e *Engine) accelerator() GPUAccelerator {
	if !e.caps.GPU {
		return nil
	}
	if e.accel != nil {
		return e.accel
	}
	return Accelerator()
}

// Create allocates an image from the engine's allocator.
func (e *Engine) Create(pitch, width, height int, f pixfmt.ColorFormat) (*Image, error) {
	return CreateWith(e.alloc, pitch, width, height, f)
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

// Default returns the engine behind the package-level functions. It uses
// detected capabilities and the registered accelerator.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// Rotate rotates a raw buffer with the default engine. See Engine.Rotate.
func Rotate(src, dst []byte, pitch, width, height int, f pixfmt.ColorFormat, angle Angle) error {
	return Default().Rotate(src, dst, pitch, width, height, f, angle)
}

// RotateImage rotates in into out with the default engine. See
// Engine.RotateImage.
func RotateImage(in, out *Image, angle Angle) error {
	return Default().RotateImage(in, out, angle)
}

// Convert converts src into dst with the default engine. See Engine.Convert.
func Convert(src, dst *Image) error {
	return Default().Convert(src, dst)
}
