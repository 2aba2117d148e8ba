// Package colorimetry implements the fixed-point color transforms that run
// on the canonical channel blocks of package pixel.
//
// The RGB/YUV transforms use the integer BT.601 studio-swing coefficients:
//
//	Y = ((R*66  + G*129 + B*25  + 128) >> 8) + 16
//	U = ((R*-38 + G*-74 + B*112 + 128) >> 8) + 128
//	V = ((R*112 + G*-94 + B*-18 + 128) >> 8) + 128
//
//	c = Y-16, d = U-128, e = V-128
//	R = (c*298 + e*409 + 128) >> 8
//	G = (c*298 + d*-100 + e*-208 + 128) >> 8
//	B = (c*298 + d*516 + 128) >> 8
//
// Shifts are arithmetic and every result saturates to [0, 255] before it is
// narrowed. Y is not clamped to the studio range [16, 235].
//
// Every primitive exists at 8 lanes on 16-bit accumulators. The 16-lane
// forms split a block into its even and odd pixels, run the 8-lane primitive
// twice and interleave the halves back, so pixel order is preserved.
// Alpha passes through untouched.
package colorimetry

import (
	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixel"
)

func dot(r, g, b lanes.U16x8, kr, kg, kb, offset int32) lanes.U16x8 {
	var acc lanes.I32x8
	acc = acc.MulAdd(r, kr).MulAdd(g, kg).MulAdd(b, kb)
	return acc.AddConst(128).Shr(8).AddConst(offset).SatU8()
}

// RGBToY8 computes luma for 8 pixels.
func RGBToY8(b pixel.Block8) lanes.U16x8 {
	return dot(b.R, b.G, b.B, 66, 129, 25, 16)
}

// RGBToU8 computes the blue-difference chroma for 8 pixels.
func RGBToU8(b pixel.Block8) lanes.U16x8 {
	return dot(b.R, b.G, b.B, -38, -74, 112, 128)
}

// RGBToV8 computes the red-difference chroma for 8 pixels.
func RGBToV8(b pixel.Block8) lanes.U16x8 {
	return dot(b.R, b.G, b.B, 112, -94, -18, 128)
}

// RGBToYUV8 computes Y, U and V for 8 pixels.
func RGBToYUV8(b pixel.Block8) (y, u, v lanes.U16x8) {
	return RGBToY8(b), RGBToU8(b), RGBToV8(b)
}

// YUVToRGB8 converts 8 pixels of Y, U, V to RGB. The alpha vector of the
// result is zero; store it with a NoAlpha store or set it explicitly.
func YUVToRGB8(y, u, v lanes.U16x8) pixel.Block8 {
	c := y.Signed().AddConst(-16)
	d := u.Signed().AddConst(-128)
	e := v.Signed().AddConst(-128)

	var zero lanes.I32x8
	c298 := zero.MulAddS(c, 298)
	return pixel.Block8{
		R: c298.MulAddS(e, 409).AddConst(128).Shr(8).SatU8(),
		G: c298.MulAddS(d, -100).MulAddS(e, -208).AddConst(128).Shr(8).SatU8(),
		B: c298.MulAddS(d, 516).AddConst(128).Shr(8).SatU8(),
	}
}

// RGBToYUV16 computes Y, U and V for 16 pixels.
func RGBToYUV16(b pixel.Block16) (y, u, v lanes.U8x16) {
	even, odd := pixel.SplitEvenOdd(b)
	ye, ue, ve := RGBToYUV8(even)
	yo, uo, vo := RGBToYUV8(odd)
	return lanes.InterleaveSat(ye, yo), lanes.InterleaveSat(ue, uo), lanes.InterleaveSat(ve, vo)
}

// YUVToRGB16 converts 16 pixels of Y, U, V to RGB with zero alpha.
func YUVToRGB16(y, u, v lanes.U8x16) pixel.Block16 {
	even := YUVToRGB8(y.Even(), u.Even(), v.Even())
	odd := YUVToRGB8(y.Odd(), u.Odd(), v.Odd())
	return pixel.JoinEvenOdd(even, odd)
}

// RGBToYUV converts a single pixel. It shares the lane kernels so scalar
// callers (chroma averaging, tests) agree with the vector paths bit for bit.
func RGBToYUV(r, g, b uint8) (y, u, v uint8) {
	blk := pixel.Block8{
		R: lanes.U16x8{uint16(r)},
		G: lanes.U16x8{uint16(g)},
		B: lanes.U16x8{uint16(b)},
	}
	yy, uu, vv := RGBToYUV8(blk)
	return uint8(yy[0]), uint8(uu[0]), uint8(vv[0]) // #nosec G115 -- saturated
}

// YUVToRGB converts a single pixel.
func YUVToRGB(y, u, v uint8) (r, g, b uint8) {
	blk := YUVToRGB8(lanes.U16x8{uint16(y)}, lanes.U16x8{uint16(u)}, lanes.U16x8{uint16(v)})
	return uint8(blk.R[0]), uint8(blk.G[0]), uint8(blk.B[0]) // #nosec G115 -- saturated
}
