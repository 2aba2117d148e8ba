//go:build !nogpu

// Package gpu implements the hardware rotation backend.
//
// Accelerator adapts a Texturer, the texturing unit collaborator, to
// pixrot.GPUAccelerator. It maps color formats to hardware modes, builds
// one BlitRequest per rotation, translates the returned Status and, when a
// shared gpucontext.DeviceProvider is attached, polls the device until the
// request has completed so the caller sees the finished destination.
//
// Emulator is a software Texturer with the same addressing as the rotation
// compute shader. It serves hosts without a texturing unit and tests.
package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot"
	"github.com/gogpu/pixrot/pixfmt"
)

// Accelerator errors.
var (
	ErrNoTexturer        = errors.New("gpu: no texturing unit")
	ErrNotInitialized    = errors.New("gpu: accelerator not initialized")
	ErrNotDeviceProvider = errors.New("gpu: provider does not implement gpucontext.DeviceProvider")
)

// Accelerator implements pixrot.GPUAccelerator on top of a Texturer.
//
// Accelerator is safe for concurrent use; requests are serialized because
// the texturing unit processes one blit at a time.
type Accelerator struct {
	mu       sync.Mutex
	tex      Texturer
	provider gpucontext.DeviceProvider
	spirv    []byte
	ready    bool
}

var _ pixrot.GPUAccelerator = (*Accelerator)(nil)

// New creates an accelerator driving t. Call Init, or register it with
// pixrot.RegisterAccelerator, before use.
func New(t Texturer) *Accelerator {
	return &Accelerator{tex: t}
}

// Name returns the accelerator name.
func (a *Accelerator) Name() string { return "texturer" }

// Init compiles the rotation shader and hands it to texturing units that
// implement ShaderLoader. When the shader cannot be compiled the unit keeps
// its fixed-function path and the failure is only logged.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tex == nil {
		return ErrNoTexturer
	}

	spirv, err := CompileRotateShader()
	if err != nil {
		slogger().Warn("gpu: rotate shader unavailable, using fixed function", "err", err)
		spirv = nil
	}
	if loader, ok := a.tex.(ShaderLoader); ok && spirv != nil {
		if err := loader.LoadShader(spirv); err != nil {
			return errors.Wrap(err, "gpu: load rotate shader")
		}
		slogger().Debug("gpu: rotate shader loaded", "bytes", len(spirv))
	}
	a.spirv = spirv
	a.ready = true
	return nil
}

// Close releases the accelerator. A shared device is left to its provider.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ready = false
	a.spirv = nil
	a.provider = nil
}

// SetLogger receives the logger propagated by pixrot.SetLogger.
func (a *Accelerator) SetLogger(l *slog.Logger) { setLogger(l) }

// SetDeviceProvider attaches a shared GPU device. Rotations then poll the
// device until the hardware has finished. Passing nil detaches it.
func (a *Accelerator) SetDeviceProvider(provider any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if provider == nil {
		a.provider = nil
		return nil
	}
	dp, ok := provider.(gpucontext.DeviceProvider)
	if !ok {
		return errors.Wrapf(ErrNotDeviceProvider, "%T", provider)
	}
	a.provider = dp
	slogger().Info("gpu: device provider attached", "surface", dp.SurfaceFormat())
	return nil
}

// CanRotate reports whether f has a hardware mode.
func (a *Accelerator) CanRotate(f pixfmt.ColorFormat) bool {
	_, ok := ModeOf(f)
	return ok
}

// Rotate performs one rotation on the texturing unit.
func (a *Accelerator) Rotate(fr pixrot.GPUFrame) error {
	mode, ok := ModeOf(fr.Format)
	if !ok {
		return errors.Wrapf(pixrot.ErrUnsupportedFormat, "gpu: no hardware mode for %v", fr.Format)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return ErrNotInitialized
	}

	dw, dh := fr.Width, fr.Height
	if fr.Angle == pixrot.Angle90 || fr.Angle == pixrot.Angle270 {
		dw, dh = dh, dw
	}
	req := &BlitRequest{
		Src:      fr.Src,
		Dst:      fr.Dst,
		SrcPitch: fr.SrcStride,
		DstPitch: fr.DstStride,
		Size: gputypes.Extent3D{
			Width:              uint32(fr.Width),  // #nosec G115 -- validated positive
			Height:             uint32(fr.Height), // #nosec G115 -- validated positive
			DepthOrArrayLayers: 1,
		},
		Mode:      mode,
		Format:    mode.TextureFormat(),
		DstWidth:  dw,
		DstHeight: dh,
		Angle:     int(fr.Angle),
	}

	slogger().Debug("gpu: blit",
		"mode", mode,
		"width", fr.Width,
		"height", fr.Height,
		"angle", req.Angle)

	if err := a.tex.Blit(req).Err(); err != nil {
		slogger().Warn("gpu: blit failed", "mode", mode, "err", err)
		return err
	}
	a.waitDevice()
	return nil
}

// devicePoller is implemented by shared device handles that can wait for
// queued work.
type devicePoller interface {
	Poll(wait bool)
}

// waitDevice polls the shared device until queued work has completed.
// Caller must hold a.mu.
func (a *Accelerator) waitDevice() {
	if a.provider == nil {
		return
	}
	p, ok := a.provider.Device().(devicePoller)
	if !ok {
		slogger().Debug("gpu: shared device cannot be polled", "device", fmt.Sprintf("%T", a.provider.Device()))
		return
	}
	p.Poll(true)
}

// Shader returns the SPIR-V compiled by Init, or nil.
func (a *Accelerator) Shader() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spirv
}
