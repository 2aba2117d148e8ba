package rotate

import "github.com/gogpu/pixrot/lanes"

// Lanes is the number of pixels the SIMD backend moves per step.
const Lanes = 8

// SIMD rotates f by angle eight pixels at a time.
//
// Each step gathers one byte plane of up to eight consecutive source pixels
// (lane offset = pixel size) and scatters it to the destination. For 90 and
// 270 degrees the lanes land in a destination column, one output row apart.
// For 180 degrees the lanes are reversed and written as a group counted from
// the far end of the mirrored row. The last group of a row runs under a tail
// predicate so no lane reaches past the row.
func SIMD(f Frame, angle int) error {
	if err := f.check(angle); err != nil {
		return err
	}
	w, h, bpp, ds := f.Width, f.Height, f.BPP, f.DstStride
	for y := 0; y < h; y++ {
		row := y * f.SrcStride
		for x0 := 0; x0 < w; x0 += Lanes {
			m := lanes.FirstN(min(Lanes, w-x0))
			for b := 0; b < bpp; b++ {
				v := lanes.GatherU8(f.Src, row+x0*bpp+b, bpp, m)
				switch angle {
				case 90:
					v.Scatter(f.Dst, x0*ds+(h-1-y)*bpp+b, ds, m)
				case 180:
					// Lane i of the reversed group is pixel x0+7-i. The group
					// base may sit before the row start; only lanes that the
					// mirrored mask keeps are stored.
					base := (h-1-y)*ds + (w-x0-Lanes)*bpp + b
					v.ReverseN(Lanes).Scatter(f.Dst, base, bpp, m.Reverse(Lanes))
				default:
					v.Scatter(f.Dst, (w-1-x0)*ds+y*bpp+b, -ds, m)
				}
			}
		}
	}
	return nil
}
