package pixrot

import "log/slog"

// Option configures an Engine during creation.
//
// Example:
//
//	// Detected capabilities, registered accelerator, default allocator
//	e := pixrot.NewEngine()
//
//	// Scalar only, with a hardware cache flush
//	e := pixrot.NewEngine(
//	    pixrot.WithBackend(pixrot.BackendScalar),
//	    pixrot.WithCacheCleaner(pixrot.CacheCleanerFunc(dcache.Clean)),
//	)
type Option func(*engineOptions)

type engineOptions struct {
	caps    *Caps
	backend Backend
	accel   GPUAccelerator
	alloc   Allocator
	cleaner CacheCleaner
	logger  *slog.Logger
}

func defaultOptions() engineOptions {
	return engineOptions{
		backend: BackendAuto,
		alloc:   defaultAllocator,
		cleaner: nopCleaner{},
	}
}

// WithCaps replaces capability detection with c.
func WithCaps(c Caps) Option {
	return func(o *engineOptions) {
		o.caps = &c
	}
}

// WithBackend forces every rotation onto one backend. Requests that backend
// cannot serve fail with ErrUnsupportedFormat.
func WithBackend(b Backend) Option {
	return func(o *engineOptions) {
		o.backend = b
	}
}

// WithAccelerator injects an accelerator instead of the registered one.
// The accelerator must already be initialized.
func WithAccelerator(a GPUAccelerator) Option {
	return func(o *engineOptions) {
		o.accel = a
	}
}

// WithAllocator sets the allocator used by Engine.Create.
func WithAllocator(a Allocator) Option {
	return func(o *engineOptions) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithCacheCleaner sets the cache maintenance primitive run after CPU writes.
func WithCacheCleaner(c CacheCleaner) Option {
	return func(o *engineOptions) {
		if c != nil {
			o.cleaner = c
		}
	}
}

// WithLogger gives the engine its own logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
