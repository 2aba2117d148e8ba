// Package lanes provides fixed-width vector types for pixel marshaling.
//
// The types are plain fixed-size arrays processed with simple loops so the
// Go compiler can keep them in registers and auto-vectorize where the target
// allows it. Two widths exist:
//
//   - U8x16: 16 lanes of 8 bits, the storage width of narrow channels.
//   - U16x8: 8 lanes of 16 bits, the accumulator width used when arithmetic
//     needs headroom.
//
// I32x8 is the signed intermediate used by fixed-point color math.
//
// # Predicates
//
// Every memory operation takes a Mask selecting the active lanes. Inactive
// lanes are neither read nor written, which is what lets the final partial
// group of a row run through the same code as full groups:
//
//	for x := 0; x < width; x += 8 {
//	    m := lanes.FirstN(width - x)
//	    v := lanes.GatherU8(src, base+x*bpp, bpp, m)
//	    v.Scatter(dst, dbase+x*dstride, dstride, m)
//	}
//
// Lane i of a gather or scatter addresses buf[base+i*offset]. The offset may
// be negative, and lanes that are masked out are never addressed.
package lanes
