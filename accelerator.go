package pixrot

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/pixfmt"
)

// GPUFrame is one rotation handed to an accelerator. Strides are in bytes;
// Width and Height are the source geometry.
type GPUFrame struct {
	Src, Dst  []byte
	SrcStride int
	DstStride int
	Width     int
	Height    int
	Format    pixfmt.ColorFormat
	Angle     Angle
}

// GPUAccelerator is an optional hardware rotation provider.
//
// Implementations live in GPU backend packages. Users opt in by calling
// gpu.Register with the platform's texturing unit:
//
//	err := gpu.Register(driverTexturer)
//
// Rotate blocks until the hardware has finished writing Dst. Errors are
// returned to the caller as is; the engine never retries on another backend.
type GPUAccelerator interface {
	// Name returns the accelerator name.
	Name() string

	// Init acquires hardware resources. Called once during registration.
	Init() error

	// Close releases hardware resources.
	Close()

	// CanRotate reports whether the hardware can texture the format.
	CanRotate(f pixfmt.ColorFormat) bool

	// Rotate performs the rotation, including the 0 degree identity blit.
	Rotate(frame GPUFrame) error
}

// DeviceProviderAware is implemented by accelerators that can share a GPU
// device with an external provider.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers the process-wide GPU accelerator.
//
// Only one accelerator can be registered; a later call replaces and closes
// the previous one. Init is called first and the accelerator is not
// registered if it fails.
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("pixrot: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return errors.Wrapf(err, "pixrot: init accelerator %s", a.Name())
	}
	propagateLogger(a, Logger())

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	Logger().Info("pixrot: accelerator registered", "name", a.Name())
	return nil
}

// UnregisterAccelerator closes and removes the registered accelerator.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// Accelerator returns the registered GPU accelerator, or nil if none.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator. It is a no-op when no accelerator is registered or the
// accelerator cannot share devices.
func SetAcceleratorDeviceProvider(provider any) error {
	a := Accelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
