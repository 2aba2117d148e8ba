package lanes

import "testing"

func TestFirstN(t *testing.T) {
	tests := []struct {
		n    int
		want Mask
	}{
		{-3, 0},
		{0, 0},
		{1, 0x1},
		{5, 0x1F},
		{8, 0xFF},
		{15, 0x7FFF},
		{16, 0xFFFF},
		{40, 0xFFFF},
	}
	for _, tt := range tests {
		if got := FirstN(tt.n); got != tt.want {
			t.Errorf("FirstN(%d) = %#x, want %#x", tt.n, got, tt.want)
		}
	}
}

func TestMask_Reverse(t *testing.T) {
	m := FirstN(3) // lanes 0,1,2 of 8
	got := m.Reverse(8)
	if got != 0xE0 {
		t.Errorf("Reverse = %#x, want 0xe0", got)
	}
	if got.Reverse(8) != m {
		t.Error("Reverse is not an involution")
	}
}

func TestMask_EvenOdd(t *testing.T) {
	m := FirstN(13)
	if m.Even() != FirstN(7) {
		t.Errorf("Even() = %#x, want %#x", m.Even(), FirstN(7))
	}
	if m.Odd() != FirstN(6) {
		t.Errorf("Odd() = %#x, want %#x", m.Odd(), FirstN(6))
	}
	if m.Low() != 0xFF || FirstN(5).Low() != FirstN(5) {
		t.Errorf("Low() = %#x", m.Low())
	}
}

func TestGatherScatter_Strided(t *testing.T) {
	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i)
	}
	v := GatherU8(src, 1, 4, FirstN(16))
	for i := 0; i < 16; i++ {
		if v[i] != byte(1+4*i) {
			t.Fatalf("lane %d = %d, want %d", i, v[i], 1+4*i)
		}
	}

	dst := make([]byte, 64)
	v.Scatter(dst, 2, 4, FirstN(16))
	for i := 0; i < 16; i++ {
		if dst[2+4*i] != byte(1+4*i) {
			t.Fatalf("dst[%d] = %d", 2+4*i, dst[2+4*i])
		}
	}
}

func TestGatherScatter_TailNeverTouchesOutOfBounds(t *testing.T) {
	// Five pixels of 3 bytes each: lanes 5..15 would index past the end.
	src := []byte{10, 0, 0, 11, 0, 0, 12, 0, 0, 13, 0, 0, 14, 0, 0}
	m := FirstN(5)
	v := GatherU8(src, 0, 3, m)
	for i := 5; i < 16; i++ {
		if v[i] != 0 {
			t.Errorf("inactive lane %d = %d, want 0", i, v[i])
		}
	}

	dst := make([]byte, 5)
	v.Scatter(dst, 0, 1, m)
	want := []byte{10, 11, 12, 13, 14}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestScatter_NegativeOffset(t *testing.T) {
	dst := make([]byte, 8)
	v := U8x16{1, 2, 3, 4}
	v.Scatter(dst, 7, -2, FirstN(4))
	want := []byte{0, 4, 0, 3, 0, 2, 0, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestReverseN(t *testing.T) {
	v := U8x16{1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := v.ReverseN(8)
	want := U8x16{8, 7, 6, 5, 4, 3, 2, 1}
	if got != want {
		t.Errorf("ReverseN(8) = %v, want %v", got, want)
	}
}

func TestWidenNarrow(t *testing.T) {
	var v U8x16
	for i := range v {
		v[i] = byte(i * 16)
	}
	if got := NarrowSat(v.WidenLo(), v.WidenHi()); got != v {
		t.Errorf("NarrowSat(WidenLo, WidenHi) = %v, want %v", got, v)
	}
	if got := InterleaveSat(v.Even(), v.Odd()); got != v {
		t.Errorf("InterleaveSat(Even, Odd) = %v, want %v", got, v)
	}

	over := SplatU16(300)
	if got := NarrowSat(over, over); got != SplatU8(255) {
		t.Errorf("NarrowSat did not saturate: %v", got)
	}
}

func TestU16x8_AddSat(t *testing.T) {
	got := SplatU16(0xFFF0).AddSat(SplatU16(0x20))
	if got != SplatU16(0xFFFF) {
		t.Errorf("AddSat = %v, want saturated", got)
	}
	if SplatU16(3).AddSat(SplatU16(4)) != SplatU16(7) {
		t.Error("AddSat(3, 4) != 7")
	}
}

func TestI32x8_SatU8(t *testing.T) {
	v := I32x8{-500, -1, 0, 1, 128, 255, 256, 70000}
	want := U16x8{0, 0, 0, 1, 128, 255, 255, 255}
	if got := v.SatU8(); got != want {
		t.Errorf("SatU8 = %v, want %v", got, want)
	}
}

func TestI32x8_Shr_IsArithmetic(t *testing.T) {
	v := I32x8{-9562, 9562}.Shr(8)
	if v[0] != -38 || v[1] != 37 {
		t.Errorf("Shr = %v, want [-38 37 ...]", v)
	}
}

func TestLookup(t *testing.T) {
	var table [256]uint8
	for i := range table {
		table[i] = uint8(255 - i)
	}
	if got := SplatU8(10).Lookup(&table); got != SplatU8(245) {
		t.Errorf("U8x16.Lookup = %v", got)
	}
	if got := SplatU16(400).Lookup(&table); got != SplatU16(0) {
		t.Errorf("U16x8.Lookup clamps input: got %v", got)
	}
}
