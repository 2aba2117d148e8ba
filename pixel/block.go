package pixel

import "github.com/gogpu/pixrot/lanes"

// Block16 holds 16 pixels in Structure-of-Arrays layout:
//
//	A: [A0, A1, ..., A15]
//	R: [R0, R1, ..., R15]
//	G: [G0, G1, ..., G15]
//	B: [B0, B1, ..., B15]
//
// Channels are 8-bit.
type Block16 struct {
	A, R, G, B lanes.U8x16
}

// Block8 holds 8 pixels with 16-bit channels.
type Block8 struct {
	A, R, G, B lanes.U16x8
}

// SplitEvenOdd splits a 16-lane block into the block of its even pixels
// (0, 2, ..., 14) and the block of its odd pixels (1, 3, ..., 15).
func SplitEvenOdd(b Block16) (even, odd Block8) {
	even = Block8{A: b.A.Even(), R: b.R.Even(), G: b.G.Even(), B: b.B.Even()}
	odd = Block8{A: b.A.Odd(), R: b.R.Odd(), G: b.G.Odd(), B: b.B.Odd()}
	return even, odd
}

// JoinEvenOdd is the inverse of SplitEvenOdd. Channels above 255 saturate.
func JoinEvenOdd(even, odd Block8) Block16 {
	return Block16{
		A: lanes.InterleaveSat(even.A, odd.A),
		R: lanes.InterleaveSat(even.R, odd.R),
		G: lanes.InterleaveSat(even.G, odd.G),
		B: lanes.InterleaveSat(even.B, odd.B),
	}
}

// Widen converts a 16-lane block to two 16-bit accumulator blocks holding
// pixels 0..7 and 8..15.
func Widen(b Block16) (lo, hi Block8) {
	lo = Block8{A: b.A.WidenLo(), R: b.R.WidenLo(), G: b.G.WidenLo(), B: b.B.WidenLo()}
	hi = Block8{A: b.A.WidenHi(), R: b.R.WidenHi(), G: b.G.WidenHi(), B: b.B.WidenHi()}
	return lo, hi
}

// Narrow is the inverse of Widen. Channels above 255 saturate.
func Narrow(lo, hi Block8) Block16 {
	return Block16{
		A: lanes.NarrowSat(lo.A, hi.A),
		R: lanes.NarrowSat(lo.R, hi.R),
		G: lanes.NarrowSat(lo.G, hi.G),
		B: lanes.NarrowSat(lo.B, hi.B),
	}
}
