package pixrot

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/internal/rotate"
	"github.com/gogpu/pixrot/pixfmt"
)

// request is a validated rotation.
type request struct {
	frame  rotate.Frame
	format pixfmt.ColorFormat
	angle  Angle
}

// Rotate rotates a w x h buffer by angle.
//
// pitch is the source row stride in pixels. The destination is tightly
// packed: its row stride is the rotated width, which is height for 90 and
// 270 degrees. src and dst must not overlap.
func (e *Engine) Rotate(src, dst []byte, pitch, width, height int, f pixfmt.ColorFormat, angle Angle) error {
	if len(src) == 0 || len(dst) == 0 {
		return errors.Wrap(ErrNullPointer, "rotate")
	}
	outW := width
	if angle.swapsAxes() {
		outW = height
	}
	bpp := f.BytesPerPixel()
	return e.run(request{
		frame: rotate.Frame{
			Src:       src,
			Dst:       dst,
			SrcStride: pitch * bpp,
			DstStride: outW * bpp,
			Width:     width,
			Height:    height,
			BPP:       bpp,
		},
		format: f,
		angle:  angle,
	}, pitch)
}

// RotateImage rotates in into out. Both images must share a format, and out
// must have the rotated geometry. Each image uses its own pitch.
func (e *Engine) RotateImage(in, out *Image, angle Angle) error {
	if in == nil || out == nil || len(in.Data) == 0 || len(out.Data) == 0 {
		return errors.Wrap(ErrNullPointer, "rotate image")
	}
	if in.Format != out.Format {
		return errors.Wrapf(ErrFormatMismatch, "%v into %v", in.Format, out.Format)
	}
	wantW, wantH := in.Width, in.Height
	if angle.swapsAxes() {
		wantW, wantH = wantH, wantW
	}
	if out.Width != wantW || out.Height != wantH {
		return errors.Wrapf(ErrSizeMismatch, "%dx%d rotated by %d needs %dx%d output, got %dx%d",
			in.Width, in.Height, angle, wantW, wantH, out.Width, out.Height)
	}
	if out.Pitch < out.Width {
		return errors.Wrapf(ErrSizeMismatch, "output pitch %d below width %d", out.Pitch, out.Width)
	}
	return e.run(request{
		frame: rotate.Frame{
			Src:       in.Data,
			Dst:       out.Data,
			SrcStride: in.BytesPerRow(),
			DstStride: out.BytesPerRow(),
			Width:     in.Width,
			Height:    in.Height,
			BPP:       in.Format.BytesPerPixel(),
		},
		format: in.Format,
		angle:  angle,
	}, in.Pitch)
}

// run finishes validation in order (geometry, format support, angle) and
// dispatches to the selected backend.
func (e *Engine) run(r request, pitch int) error {
	fr := r.frame
	if fr.Width <= 0 || fr.Height <= 0 || pitch < fr.Width {
		return errors.Wrapf(ErrSizeMismatch, "pitch %d for %dx%d", pitch, fr.Width, fr.Height)
	}
	if fr.BPP > 0 {
		if need := packedSize(fr.SrcStride, fr.Width, fr.Height, fr.BPP); len(fr.Src) < need {
			return errors.Wrapf(ErrSizeMismatch, "source holds %d bytes, need %d", len(fr.Src), need)
		}
		if need := fr.Span(int(r.angle)); len(fr.Dst) < need {
			return errors.Wrapf(ErrSizeMismatch, "destination holds %d bytes, need %d", len(fr.Dst), need)
		}
	}

	backend, accel, err := e.selectBackend(r.format)
	if err != nil {
		return err
	}
	if !r.angle.IsValid() || (r.angle == Angle0 && backend != BackendGPU) {
		return errors.Wrapf(ErrNotSupported, "%s backend cannot rotate by %d", backend, r.angle)
	}

	e.log().Debug("pixrot: rotate",
		"backend", backend,
		"format", r.format,
		"angle", int(r.angle),
		"width", fr.Width,
		"height", fr.Height)

	switch backend {
	case BackendGPU:
		return accel.Rotate(GPUFrame{
			Src:       fr.Src,
			Dst:       fr.Dst,
			SrcStride: fr.SrcStride,
			DstStride: fr.DstStride,
			Width:     fr.Width,
			Height:    fr.Height,
			Format:    r.format,
			Angle:     r.angle,
		})
	case BackendSIMD:
		err = rotate.SIMD(fr, int(r.angle))
	default:
		err = rotate.Scalar(fr, int(r.angle))
	}
	if err != nil {
		return mapRotateError(err)
	}
	e.cleaner.Clean(fr.Dst[:fr.Span(int(r.angle))])
	return nil
}

// selectBackend applies the backend policy for f.
func (e *Engine) selectBackend(f pixfmt.ColorFormat) (Backend, GPUAccelerator, error) {
	accel := e.accelerator()
	gpuOK := accel != nil && accel.CanRotate(f)
	cpuOK := cpuRotatable(f)

	switch e.backend {
	case BackendGPU:
		if !gpuOK {
			return BackendGPU, nil, errors.Wrapf(ErrUnsupportedFormat, "gpu backend cannot rotate %v", f)
		}
		return BackendGPU, accel, nil
	case BackendSIMD, BackendScalar:
		if !cpuOK {
			return e.backend, nil, errors.Wrapf(ErrUnsupportedFormat, "%s backend cannot rotate %v", e.backend, f)
		}
		return e.backend, nil, nil
	}

	switch {
	case gpuOK:
		return BackendGPU, accel, nil
	case !cpuOK:
		return BackendAuto, nil, errors.Wrapf(ErrUnsupportedFormat, "no backend rotates %v", f)
	case e.caps.SIMD:
		return BackendSIMD, nil, nil
	default:
		return BackendScalar, nil, nil
	}
}

// cpuRotatable reports whether f has whole-byte pixels the CPU backends can
// move. Chroma subsampled and planar formats do not.
func cpuRotatable(f pixfmt.ColorFormat) bool {
	return f.BytesPerPixel() > 0
}

func mapRotateError(err error) error {
	switch {
	case errors.Is(err, rotate.ErrAngle):
		return errors.Wrap(ErrNotSupported, err.Error())
	case errors.Is(err, rotate.ErrGeometry):
		return errors.Wrap(ErrSizeMismatch, err.Error())
	}
	return err
}
