//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"
)

// Flip bits of a BlitRequest, applied to destination coordinates.
const (
	FlipX uint32 = 1 << iota
	FlipY
)

// BlitRequest is one hardware texturing operation.
type BlitRequest struct {
	Src, Dst []byte

	// SrcPitch and DstPitch are row strides in bytes.
	SrcPitch int
	DstPitch int

	// Size is the source geometry. DepthOrArrayLayers is always 1.
	Size gputypes.Extent3D

	Mode   Mode
	Format gputypes.TextureFormat

	// DstWidth and DstHeight bound the destination surface; the rotated
	// image is placed at OriginX, OriginY inside it.
	DstWidth  int
	DstHeight int
	OriginX   int
	OriginY   int

	// Angle is the clockwise rotation in degrees.
	Angle int

	// Flip holds FlipX and FlipY bits.
	Flip uint32
}

// Texturer is the hardware texturing collaborator. Blit returns only after
// the unit has finished writing Dst, then reports the unit's status. When a
// shared device is attached the accelerator also polls it after each blit.
type Texturer interface {
	Blit(req *BlitRequest) Status
}

// ShaderLoader is implemented by texturing units that run the rotation as a
// compute shader. Accelerator.Init hands them the compiled SPIR-V.
type ShaderLoader interface {
	LoadShader(spirv []byte) error
}
