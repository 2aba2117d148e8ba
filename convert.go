package pixrot

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/colorimetry"
	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixel"
	"github.com/gogpu/pixrot/pixfmt"
)

// Convert converts src into dst, which must have the same visible size.
//
// Every pair of packed RGB formats with a pixel layout converts through the
// canonical channel blocks; alpha is carried when both sides have it and is
// opaque when only dst has it. Packed RGB converts to and from the 4:2:0
// formats I420, YV12, NV12 and NV21 with BT.601 integer colorimetry; each
// chroma sample is the rounded mean of its 2x2 luma block, with the last
// column or row repeated for odd sizes.
//
// Like rotation, the written destination span is cache-cleaned before
// Convert returns.
func (e *Engine) Convert(src, dst *Image) error {
	if src == nil || dst == nil || len(src.Data) == 0 || len(dst.Data) == 0 {
		return errors.Wrap(ErrNullPointer, "convert")
	}
	if src.Width != dst.Width || src.Height != dst.Height {
		return errors.Wrapf(ErrSizeMismatch, "%dx%d into %dx%d", src.Width, src.Height, dst.Width, dst.Height)
	}
	if src.Width <= 0 || src.Height <= 0 || src.Pitch < src.Width || dst.Pitch < dst.Width {
		return errors.Wrapf(ErrSizeMismatch, "pitches %d/%d for %dx%d", src.Pitch, dst.Pitch, src.Width, src.Height)
	}

	sl, srcErr := pixel.LayoutOf(src.Format)
	dl, dstErr := pixel.LayoutOf(dst.Format)
	srcYUV, dstYUV := is420(src.Format), is420(dst.Format)
	switch {
	case srcErr == nil && (dstErr == nil || dstYUV):
	case srcYUV && dstErr == nil:
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "no conversion from %v to %v", src.Format, dst.Format)
	}

	var (
		srcPlanes, dstPlanes yuvPlanes
		err                  error
	)
	if srcYUV {
		if srcPlanes, err = planesOf(src); err != nil {
			return err
		}
	} else if err = checkPacked(src, sl); err != nil {
		return err
	}
	var written int
	if dstYUV {
		if dstPlanes, err = planesOf(dst); err != nil {
			return err
		}
		written = dstPlanes.size
	} else {
		if err = checkPacked(dst, dl); err != nil {
			return err
		}
		written = packedSize(dst.BytesPerRow(), dst.Width, dst.Height, dl.Bytes)
	}

	e.log().Debug("pixrot: convert",
		"from", src.Format,
		"to", dst.Format,
		"width", src.Width,
		"height", src.Height)

	switch {
	case srcYUV:
		yuvToPacked(srcPlanes, src.Width, src.Height, dst, dl)
	case dstYUV:
		packedToYUV(src, sl, dstPlanes)
	default:
		convertPacked(src, sl, dst, dl)
	}
	e.cleaner.Clean(dst.Data[:written])
	return nil
}

func is420(f pixfmt.ColorFormat) bool {
	switch f {
	case pixfmt.I420, pixfmt.YV12, pixfmt.NV12, pixfmt.NV21:
		return true
	}
	return false
}

func checkPacked(img *Image, l *pixel.Layout) error {
	if need := packedSize(img.BytesPerRow(), img.Width, img.Height, l.Bytes); len(img.Data) < need {
		return errors.Wrapf(ErrSizeMismatch, "%v image holds %d bytes, need %d", img.Format, len(img.Data), need)
	}
	return nil
}

// yuvPlanes addresses the samples of a 4:2:0 image. Chroma sample (cx, cy)
// lives at u[cy*cStride+cx*cStep] and v[cy*cStride+cx*cStep].
type yuvPlanes struct {
	y, u, v []byte
	yStride int
	cStride int
	cStep   int
	size    int
}

func planesOf(img *Image) (yuvPlanes, error) {
	rows := img.Rows()
	if rows < img.Height {
		rows = img.Height
	}
	cw, ch := (img.Pitch+1)/2, (rows+1)/2
	ySize := img.Pitch * rows
	p := yuvPlanes{
		yStride: img.Pitch,
		size:    ySize + 2*cw*ch,
	}
	if len(img.Data) < p.size {
		return p, errors.Wrapf(ErrSizeMismatch, "%v image holds %d bytes, need %d", img.Format, len(img.Data), p.size)
	}
	p.y = img.Data[:ySize]
	chroma := img.Data[ySize:p.size]
	switch img.Format {
	case pixfmt.I420, pixfmt.YV12:
		p.cStride, p.cStep = cw, 1
		first, second := chroma[:cw*ch], chroma[cw*ch:]
		p.u, p.v = first, second
		if img.Format == pixfmt.YV12 {
			p.u, p.v = second, first
		}
	default:
		p.cStride, p.cStep = 2*cw, 2
		p.u, p.v = chroma, chroma[1:]
		if img.Format == pixfmt.NV21 {
			p.u, p.v = chroma[1:], chroma
		}
	}
	return p, nil
}

func convertPacked(src *Image, sl *pixel.Layout, dst *Image, dl *pixel.Layout) {
	alpha := sl.HasAlpha() && dl.HasAlpha()
	w := src.Width
	for y := 0; y < src.Height; y++ {
		sb, db := y*src.BytesPerRow(), y*dst.BytesPerRow()
		for x0 := 0; x0 < w; x0 += lanes.MaxLanes {
			m := lanes.FirstN(w - x0)
			s, d := sb+x0*sl.Bytes, db+x0*dl.Bytes
			if alpha {
				dl.Store16(dst.Data, d, dl.Bytes, m, sl.Load16(src.Data, s, sl.Bytes, m))
			} else {
				dl.Store16NoAlpha(dst.Data, d, dl.Bytes, m, sl.Load16NoAlpha(src.Data, s, sl.Bytes, m))
			}
		}
	}
}

func packedToYUV(src *Image, sl *pixel.Layout, p yuvPlanes) {
	w, h := src.Width, src.Height
	load := func(row, x0 int, m lanes.Mask) pixel.Block16 {
		return sl.Load16NoAlpha(src.Data, row*src.BytesPerRow()+x0*sl.Bytes, sl.Bytes, m)
	}

	for y := 0; y < h; y++ {
		for x0 := 0; x0 < w; x0 += lanes.MaxLanes {
			m := lanes.FirstN(w - x0)
			even, odd := pixel.SplitEvenOdd(load(y, x0, m))
			luma := lanes.InterleaveSat(colorimetry.RGBToY8(even), colorimetry.RGBToY8(odd))
			luma.Scatter(p.y, y*p.yStride+x0, 1, m)
		}
	}

	var zero lanes.U16x8
	for cy := 0; cy < (h+1)/2; cy++ {
		r0, r1 := 2*cy, min(2*cy+1, h-1)
		for x0 := 0; x0 < w; x0 += lanes.MaxLanes {
			n := min(lanes.MaxLanes, w-x0)
			m := lanes.FirstN(n)
			top, bottom := load(r0, x0, m), load(r1, x0, m)
			if n%2 == 1 {
				repeatLane(&top, n-1)
				repeatLane(&bottom, n-1)
			}
			te, to := pixel.SplitEvenOdd(top)
			be, bo := pixel.SplitEvenOdd(bottom)
			mean := pixel.Block8{
				R: avg4(te.R, to.R, be.R, bo.R),
				G: avg4(te.G, to.G, be.G, bo.G),
				B: avg4(te.B, to.B, be.B, bo.B),
			}
			cm := lanes.FirstN((n + 1) / 2)
			base := cy*p.cStride + (x0/2)*p.cStep
			lanes.NarrowSat(colorimetry.RGBToU8(mean), zero).Scatter(p.u, base, p.cStep, cm)
			lanes.NarrowSat(colorimetry.RGBToV8(mean), zero).Scatter(p.v, base, p.cStep, cm)
		}
	}
}

// repeatLane copies pixel i of b into pixel i+1.
func repeatLane(b *pixel.Block16, i int) {
	b.R[i+1], b.G[i+1], b.B[i+1] = b.R[i], b.G[i], b.B[i]
}

// avg4 is the rounded mean of four 8-bit channel vectors.
func avg4(a, b, c, d lanes.U16x8) lanes.U16x8 {
	sum := a.AddSat(b).AddSat(c).AddSat(d).AddSat(lanes.SplatU16(2))
	for i := range sum {
		sum[i] >>= 2
	}
	return sum
}

func yuvToPacked(p yuvPlanes, w, h int, dst *Image, dl *pixel.Layout) {
	for y := 0; y < h; y++ {
		crow := (y / 2) * p.cStride
		for x0 := 0; x0 < w; x0 += lanes.MaxLanes {
			n := min(lanes.MaxLanes, w-x0)
			m := lanes.FirstN(n)
			luma := lanes.GatherU8(p.y, y*p.yStride+x0, 1, m)
			var u, v lanes.U8x16
			for i := 0; i < n; i++ {
				c := crow + ((x0+i)/2)*p.cStep
				u[i], v[i] = p.u[c], p.v[c]
			}
			blk := colorimetry.YUVToRGB16(luma, u, v)
			dl.Store16NoAlpha(dst.Data, y*dst.BytesPerRow()+x0*dl.Bytes, dl.Bytes, m, blk)
		}
	}
}
