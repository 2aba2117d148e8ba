package pixrot

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/internal/vmem"
	"github.com/gogpu/pixrot/pixfmt"
)

// Allocator is the video memory collaborator. Alloc returns nil when it
// cannot provide size bytes.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

var defaultAllocator Allocator = vmem.New(vmem.Config{})

// DefaultAllocator returns the budgeted allocator used when no other is
// configured.
func DefaultAllocator() Allocator { return defaultAllocator }

// Image is a pixel buffer with its geometry.
//
// Pitch is the row stride in pixels (luma samples for planar formats).
// Width and Height are the visible size. An Image from Create exclusively
// owns Data until Destroy.
type Image struct {
	Data   []byte
	Pitch  int
	Width  int
	Height int
	Format pixfmt.ColorFormat

	rows  int
	alloc Allocator
}

// Rows returns the number of allocated rows. YUV images created by Create
// carry an even row count that may exceed Height.
func (img *Image) Rows() int {
	if img.rows > 0 {
		return img.rows
	}
	return img.Height
}

// BytesPerRow returns the byte stride of a packed format, or 0 for planar
// and subsampled formats.
func (img *Image) BytesPerRow() int {
	return img.Pitch * img.Format.BytesPerPixel()
}

// Create allocates an image from the default allocator.
func Create(pitch, width, height int, f pixfmt.ColorFormat) (*Image, error) {
	return CreateWith(defaultAllocator, pitch, width, height, f)
}

// CreateWith allocates an image from a.
//
// The buffer holds pitch*rows*depth/8 bytes. For YUV formats pitch and rows
// are first rounded up to even values, so Create(7, 7, 5, I420) allocates an
// 8x6 luma plane and reports 7x5. On allocation failure CreateWith returns
// nil and ErrAllocFailed; it does not retry.
func CreateWith(a Allocator, pitch, width, height int, f pixfmt.ColorFormat) (*Image, error) {
	if a == nil {
		return nil, errors.Wrap(ErrNullPointer, "pixrot: nil allocator")
	}
	if !f.IsValid() {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format tag %#x", uint8(f))
	}
	if width <= 0 || height <= 0 || pitch < width {
		return nil, errors.Wrapf(ErrSizeMismatch, "pitch %d for %dx%d", pitch, width, height)
	}

	rows := height
	if f.Space() == pixfmt.SpaceYUV {
		pitch = roundEven(pitch)
		rows = roundEven(rows)
	}
	size := pitch * rows * f.Depth() / 8

	data := a.Alloc(size)
	if len(data) < size {
		if data != nil {
			a.Free(data)
		}
		Logger().Warn("pixrot: allocation failed", "bytes", size, "format", f)
		return nil, errors.Wrapf(ErrAllocFailed, "%d bytes for %dx%d %v", size, width, height, f)
	}
	return &Image{
		Data:   data[:size],
		Pitch:  pitch,
		Width:  width,
		Height: height,
		Format: f,
		rows:   rows,
		alloc:  a,
	}, nil
}

// Destroy releases the image buffer through the allocator that created it
// and clears Data so the buffer cannot be used after free. Images not made
// by Create only have Data cleared.
func Destroy(img *Image) {
	if img == nil || img.Data == nil {
		return
	}
	if img.alloc != nil {
		img.alloc.Free(img.Data)
	}
	img.Data = nil
	img.alloc = nil
}

func roundEven(n int) int { return (n + 1) &^ 1 }

// packedSize returns the bytes a packed image of the given geometry spans.
func packedSize(stride, width, height, bpp int) int {
	if height <= 0 {
		return 0
	}
	return (height-1)*stride + width*bpp
}
