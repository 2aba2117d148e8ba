// Package rotate implements the CPU rotation backends.
//
// Both backends share one addressing scheme. For a source pixel at column x
// and row y of a w x h frame, the destination pixel is
//
//	 90: row x,       column h-1-y
//	180: row h-1-y,   column w-1-x
//	270: row w-1-x,   column y
//
// so the output is h pixels wide for 90 and 270 degrees. Scalar copies one
// pixel at a time. SIMD moves one byte plane of eight pixels per step with
// masked gather and scatter, and must produce the same bytes.
package rotate

import (
	"github.com/pkg/errors"
)

var (
	// ErrAngle is returned for angles without a CPU rotation, including 0.
	ErrAngle = errors.New("rotate: unsupported angle")

	// ErrGeometry is returned when a frame does not fit its buffers.
	ErrGeometry = errors.New("rotate: frame does not fit its buffers")
)

// Frame is one rotation request. Strides are in bytes.
type Frame struct {
	Src, Dst  []byte
	SrcStride int
	DstStride int
	Width     int
	Height    int
	BPP       int
}

// OutSize returns the destination geometry for angle.
func OutSize(w, h, angle int) (int, int) {
	if angle == 90 || angle == 270 {
		return h, w
	}
	return w, h
}

// Span returns the number of destination bytes a rotation by angle writes,
// counted from the start of Dst.
func (f Frame) Span(angle int) int {
	ow, oh := OutSize(f.Width, f.Height, angle)
	if ow <= 0 || oh <= 0 {
		return 0
	}
	return (oh-1)*f.DstStride + ow*f.BPP
}

func (f Frame) check(angle int) error {
	switch angle {
	case 90, 180, 270:
	default:
		return errors.Wrapf(ErrAngle, "%d degrees", angle)
	}
	if f.Width <= 0 || f.Height <= 0 || f.BPP <= 0 {
		return errors.Wrapf(ErrGeometry, "%dx%d at %d bytes per pixel", f.Width, f.Height, f.BPP)
	}
	ow, _ := OutSize(f.Width, f.Height, angle)
	if f.SrcStride < f.Width*f.BPP || f.DstStride < ow*f.BPP {
		return errors.Wrapf(ErrGeometry, "strides %d/%d too small", f.SrcStride, f.DstStride)
	}
	if need := (f.Height-1)*f.SrcStride + f.Width*f.BPP; len(f.Src) < need {
		return errors.Wrapf(ErrGeometry, "source holds %d bytes, need %d", len(f.Src), need)
	}
	if need := f.Span(angle); len(f.Dst) < need {
		return errors.Wrapf(ErrGeometry, "destination holds %d bytes, need %d", len(f.Dst), need)
	}
	return nil
}
