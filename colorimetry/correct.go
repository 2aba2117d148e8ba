package colorimetry

import (
	"github.com/chewxy/math32"
	"github.com/x448/float16"

	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixel"
)

// Matrix is a 3x3 color correction matrix in row-major order:
//
//	[R']   [m0 m1 m2]   [R]
//	[G'] = [m3 m4 m5] * [G]
//	[B']   [m6 m7 m8]   [B]
//
// Channel values stay in the [0, 255] range during the transformation.
type Matrix [9]float32

// IdentityMatrix returns the matrix that leaves colors unchanged.
func IdentityMatrix() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Apply8 applies the matrix to 8 pixels. Products and sums are computed at
// half precision, rounded to the nearest integer and saturated to 8 bits.
func (m *Matrix) Apply8(b pixel.Block8) pixel.Block8 {
	var k [9]float32
	for i, c := range m {
		k[i] = half(c)
	}
	out := pixel.Block8{A: b.A}
	for i := 0; i < 8; i++ {
		r, g, bl := half(float32(b.R[i])), half(float32(b.G[i])), half(float32(b.B[i]))
		out.R[i] = quantize(mac3(r, g, bl, k[0], k[1], k[2]))
		out.G[i] = quantize(mac3(r, g, bl, k[3], k[4], k[5]))
		out.B[i] = quantize(mac3(r, g, bl, k[6], k[7], k[8]))
	}
	return out
}

// Apply16 applies the matrix to 16 pixels.
func (m *Matrix) Apply16(b pixel.Block16) pixel.Block16 {
	even, odd := pixel.SplitEvenOdd(b)
	return pixel.JoinEvenOdd(m.Apply8(even), m.Apply8(odd))
}

// WhiteBalance holds independent per-channel gains.
type WhiteBalance struct {
	R, G, B float32
}

// Apply8 scales 8 pixels with the same precision and rounding rules as
// Matrix.Apply8.
func (w WhiteBalance) Apply8(b pixel.Block8) pixel.Block8 {
	return pixel.Block8{
		A: b.A,
		R: scale(b.R, half(w.R)),
		G: scale(b.G, half(w.G)),
		B: scale(b.B, half(w.B)),
	}
}

// Apply16 scales 16 pixels.
func (w WhiteBalance) Apply16(b pixel.Block16) pixel.Block16 {
	even, odd := pixel.SplitEvenOdd(b)
	return pixel.JoinEvenOdd(w.Apply8(even), w.Apply8(odd))
}

func scale(v lanes.U16x8, gain float32) lanes.U16x8 {
	var out lanes.U16x8
	for i := range v {
		out[i] = quantize(half(half(float32(v[i])) * gain))
	}
	return out
}

// mac3 is x*kx + y*ky + z*kz with every intermediate rounded to half.
func mac3(x, y, z, kx, ky, kz float32) float32 {
	acc := half(x * kx)
	acc = half(acc + half(y*ky))
	return half(acc + half(z*kz))
}

// half rounds f to the nearest IEEE 754 binary16 value.
func half(f float32) float32 {
	return float16.Fromfloat32(f).Float32()
}

// quantize rounds half away from zero and saturates to [0, 255].
// NaN and negative values become 0.
func quantize(f float32) uint16 {
	if !(f > 0) {
		return 0
	}
	r := math32.Floor(f + 0.5)
	if r > 255 {
		return 255
	}
	return uint16(r)
}
