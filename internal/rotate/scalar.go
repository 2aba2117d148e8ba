package rotate

// Scalar rotates f by angle one pixel at a time.
func Scalar(f Frame, angle int) error {
	if err := f.check(angle); err != nil {
		return err
	}
	w, h, bpp, ds := f.Width, f.Height, f.BPP, f.DstStride
	for y := 0; y < h; y++ {
		row := y * f.SrcStride
		for x := 0; x < w; x++ {
			var d int
			switch angle {
			case 90:
				d = x*ds + (h-1-y)*bpp
			case 180:
				d = (h-1-y)*ds + (w-1-x)*bpp
			default:
				d = (w-1-x)*ds + y*bpp
			}
			s := row + x*bpp
			copy(f.Dst[d:d+bpp], f.Src[s:s+bpp])
		}
	}
	return nil
}
