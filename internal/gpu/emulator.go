//go:build !nogpu

package gpu

import (
	"sync"

	"github.com/gogpu/gputypes"
)

// Emulator is a software texturing unit. It walks the destination the way
// the rotation compute shader does, one destination texel at a time, and
// validates requests the way the hardware does.
type Emulator struct {
	mu     sync.Mutex
	shader []byte
	blits  int

	// Fail, when not StatusOK, is returned for every request without
	// touching the destination.
	Fail Status
}

var _ Texturer = (*Emulator)(nil)

// NewEmulator creates a software texturing unit.
func NewEmulator() *Emulator { return &Emulator{} }

// LoadShader records the compiled rotation shader.
func (e *Emulator) LoadShader(spirv []byte) error {
	e.mu.Lock()
	e.shader = spirv
	e.mu.Unlock()
	return nil
}

// Blits returns the number of completed requests.
func (e *Emulator) Blits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blits
}

// Blit executes req.
func (e *Emulator) Blit(req *BlitRequest) Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.Fail != StatusOK {
		return e.Fail
	}
	if st := validate(req); st != StatusOK {
		return st
	}

	bpp := req.Mode.BytesPerPixel()
	sw, sh := int(req.Size.Width), int(req.Size.Height)
	ow, oh := sw, sh
	if req.Angle == 90 || req.Angle == 270 {
		ow, oh = sh, sw
	}
	for dy := 0; dy < oh; dy++ {
		for dx := 0; dx < ow; dx++ {
			fx, fy := dx, dy
			if req.Flip&FlipX != 0 {
				fx = ow - 1 - dx
			}
			if req.Flip&FlipY != 0 {
				fy = oh - 1 - dy
			}
			sx, sy := sourceTexel(req.Angle, fx, fy, sw, sh)
			s := sy*req.SrcPitch + sx*bpp
			d := (req.OriginY+dy)*req.DstPitch + (req.OriginX+dx)*bpp
			copy(req.Dst[d:d+bpp], req.Src[s:s+bpp])
		}
	}
	e.blits++
	return StatusOK
}

// sourceTexel inverts the clockwise rotation for destination texel (dx, dy).
func sourceTexel(angle, dx, dy, sw, sh int) (int, int) {
	switch angle {
	case 90:
		return dy, sh - 1 - dx
	case 180:
		return sw - 1 - dx, sh - 1 - dy
	case 270:
		return sw - 1 - dy, dx
	}
	return dx, dy
}

func validate(req *BlitRequest) Status {
	if req == nil || len(req.Src) == 0 || len(req.Dst) == 0 {
		return StatusBadParam
	}
	bpp := req.Mode.BytesPerPixel()
	if bpp == 0 {
		return StatusUnsupportedMode
	}
	if req.Format != gputypes.TextureFormatUndefined && req.Format != req.Mode.TextureFormat() {
		return StatusUnsupportedMode
	}
	switch req.Angle {
	case 0, 90, 180, 270:
	default:
		return StatusBadParam
	}
	if req.Size.DepthOrArrayLayers > 1 || req.Size.Width == 0 || req.Size.Height == 0 {
		return StatusBadParam
	}

	sw, sh := int(req.Size.Width), int(req.Size.Height)
	ow, oh := sw, sh
	if req.Angle == 90 || req.Angle == 270 {
		ow, oh = sh, sw
	}
	if req.OriginX < 0 || req.OriginY < 0 ||
		req.OriginX+ow > req.DstWidth || req.OriginY+oh > req.DstHeight {
		return StatusBadParam
	}
	if req.SrcPitch < sw*bpp || req.DstPitch < req.DstWidth*bpp {
		return StatusBadParam
	}
	if len(req.Src) < (sh-1)*req.SrcPitch+sw*bpp {
		return StatusBadParam
	}
	if len(req.Dst) < (req.OriginY+oh-1)*req.DstPitch+(req.OriginX+ow)*bpp {
		return StatusBadParam
	}
	return StatusOK
}
