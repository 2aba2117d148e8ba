// Package imageio moves pixels between pixrot images and the standard
// library image types.
//
// ToImage decodes an image into *image.NRGBA. FromImage draws any
// image.Image into a new pixrot image of the requested format. Packed RGB
// formats with a pixel layout are handled directly; the 4:2:0 YUV formats go
// through an ARGB8888 scratch image and pixrot.Convert.
package imageio

import (
	"image"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/pixrot"
	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixel"
	"github.com/gogpu/pixrot/pixfmt"
)

// ToImage decodes img into a new NRGBA image of the same visible size.
// Formats without alpha decode as opaque.
func ToImage(img *pixrot.Image) (*image.NRGBA, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, errors.Wrap(pixrot.ErrNullPointer, "imageio: decode")
	}
	if yuv420(img.Format) {
		scratch, err := pixrot.Create(img.Width, img.Width, img.Height, pixfmt.ARGB8888)
		if err != nil {
			return nil, err
		}
		defer pixrot.Destroy(scratch)
		if err := pixrot.Convert(img, scratch); err != nil {
			return nil, err
		}
		img = scratch
	}

	l, err := pixel.LayoutOf(img.Format)
	if err != nil {
		return nil, errors.Wrapf(pixrot.ErrUnsupportedFormat, "imageio: cannot decode %v", img.Format)
	}
	if need := (img.Height-1)*img.BytesPerRow() + img.Width*l.Bytes; len(img.Data) < need {
		return nil, errors.Wrapf(pixrot.ErrSizeMismatch, "imageio: %d bytes, need %d", len(img.Data), need)
	}

	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		src := y * img.BytesPerRow()
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < img.Width; x += lanes.MaxLanes {
			n := min(lanes.MaxLanes, img.Width-x)
			m := lanes.FirstN(n)
			var b pixel.Block16
			if l.HasAlpha() {
				b = l.Load16(img.Data, src+x*l.Bytes, l.Bytes, m)
			} else {
				b = l.Load16NoAlpha(img.Data, src+x*l.Bytes, l.Bytes, m)
				b.A = lanes.SplatU8(0xFF)
			}
			for i := 0; i < n; i++ {
				p := dst[(x+i)*4:]
				p[0], p[1], p[2], p[3] = b.R[i], b.G[i], b.B[i], b.A[i]
			}
		}
	}
	return out, nil
}

// FromImage draws src into a new image of format f allocated from alloc,
// or from the default allocator when alloc is nil. The result is tightly
// packed except for the even rounding of YUV formats.
func FromImage(src image.Image, f pixfmt.ColorFormat, alloc pixrot.Allocator) (*pixrot.Image, error) {
	if src == nil {
		return nil, errors.Wrap(pixrot.ErrNullPointer, "imageio: encode")
	}
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if in, ok := src.(*image.NRGBA); ok {
		// Straight copy keeps translucent pixels exact; drawing goes
		// through premultiplied color.
		for y := 0; y < b.Dy(); y++ {
			off := in.PixOffset(b.Min.X, b.Min.Y+y)
			copy(nrgba.Pix[y*nrgba.Stride:(y+1)*nrgba.Stride], in.Pix[off:off+b.Dx()*4])
		}
	} else {
		xdraw.Draw(nrgba, nrgba.Bounds(), src, b.Min, xdraw.Src)
	}
	return encode(nrgba, f, alloc)
}

// FromImageScaled is FromImage with src resampled to width x height using
// Catmull-Rom filtering.
func FromImageScaled(src image.Image, width, height int, f pixfmt.ColorFormat, alloc pixrot.Allocator) (*pixrot.Image, error) {
	if src == nil {
		return nil, errors.Wrap(pixrot.ErrNullPointer, "imageio: encode")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(pixrot.ErrSizeMismatch, "imageio: scale to %dx%d", width, height)
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(nrgba, nrgba.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return encode(nrgba, f, alloc)
}

func encode(src *image.NRGBA, f pixfmt.ColorFormat, alloc pixrot.Allocator) (*pixrot.Image, error) {
	if alloc == nil {
		alloc = pixrot.DefaultAllocator()
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, errors.Wrap(pixrot.ErrSizeMismatch, "imageio: empty source")
	}

	if yuv420(f) {
		scratch, err := encode(src, pixfmt.ARGB8888, alloc)
		if err != nil {
			return nil, err
		}
		defer pixrot.Destroy(scratch)
		out, err := pixrot.CreateWith(alloc, w, w, h, f)
		if err != nil {
			return nil, err
		}
		if err := pixrot.Convert(scratch, out); err != nil {
			pixrot.Destroy(out)
			return nil, err
		}
		return out, nil
	}

	l, err := pixel.LayoutOf(f)
	if err != nil {
		return nil, errors.Wrapf(pixrot.ErrUnsupportedFormat, "imageio: cannot encode %v", f)
	}
	out, err := pixrot.CreateWith(alloc, w, w, h, f)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		base := y * out.BytesPerRow()
		for x := 0; x < w; x += lanes.MaxLanes {
			n := min(lanes.MaxLanes, w-x)
			var b pixel.Block16
			for i := 0; i < n; i++ {
				p := row[(x+i)*4:]
				b.R[i], b.G[i], b.B[i], b.A[i] = p[0], p[1], p[2], p[3]
			}
			if l.HasAlpha() {
				l.Store16(out.Data, base+x*l.Bytes, l.Bytes, lanes.FirstN(n), b)
			} else {
				l.Store16NoAlpha(out.Data, base+x*l.Bytes, l.Bytes, lanes.FirstN(n), b)
			}
		}
	}
	return out, nil
}

func yuv420(f pixfmt.ColorFormat) bool {
	switch f {
	case pixfmt.I420, pixfmt.YV12, pixfmt.NV12, pixfmt.NV21:
		return true
	}
	return false
}
