//go:build !nogpu

// Package gpu registers a texturing unit as the pixrot GPU backend.
//
// A platform driver supplies the unit by implementing Texturer and calling
// Register. Hosts without one can register the software Emulator, which
// follows the same addressing as the rotation compute shader:
//
//	if err := gpu.Register(gpu.NewEmulator()); err != nil {
//		log.Printf("GPU backend unavailable: %v", err)
//	}
//
// Once registered, the default engine routes every supported format to the
// unit unless the PIXROT_NO_GPU environment variable is set. Build with the
// nogpu tag to leave the backend out entirely.
package gpu

import (
	"github.com/gogpu/pixrot"
	gpuimpl "github.com/gogpu/pixrot/internal/gpu"
)

// Texturer is the hardware texturing collaborator implemented by drivers.
type Texturer = gpuimpl.Texturer

// BlitRequest is one texturing operation handed to a Texturer.
type BlitRequest = gpuimpl.BlitRequest

// Status is the result a Texturer reports for a request.
type Status = gpuimpl.Status

// Mode is the hardware pixel mode of a request.
type Mode = gpuimpl.Mode

// Statuses a Texturer may return.
const (
	StatusOK              = gpuimpl.StatusOK
	StatusBadParam        = gpuimpl.StatusBadParam
	StatusUnsupportedMode = gpuimpl.StatusUnsupportedMode
	StatusBusy            = gpuimpl.StatusBusy
	StatusTimeout         = gpuimpl.StatusTimeout
	StatusDeviceLost      = gpuimpl.StatusDeviceLost
)

// NewEmulator returns a software texturing unit.
func NewEmulator() *gpuimpl.Emulator { return gpuimpl.NewEmulator() }

// Register wraps t in an accelerator and installs it as the process-wide
// GPU backend, replacing any previous one. When initialization fails the
// previous accelerator stays in place and the error is logged and returned.
func Register(t Texturer) error {
	if err := pixrot.RegisterAccelerator(gpuimpl.New(t)); err != nil {
		pixrot.Logger().Warn("GPU accelerator not available", "err", err)
		return err
	}
	return nil
}

// Unregister removes the GPU backend. Rotations fall back to the CPU.
func Unregister() {
	pixrot.UnregisterAccelerator()
}

// SetDeviceProvider shares a GPU device from an external provider with the
// registered accelerator. The provider must implement
// gpucontext.DeviceProvider; the accelerator then waits on that device
// after every rotation.
func SetDeviceProvider(provider any) error {
	return pixrot.SetAcceleratorDeviceProvider(provider)
}
