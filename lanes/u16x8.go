package lanes

// U16x8 represents 8 uint16 lanes.
// It is the accumulator width for channel math that needs headroom.
type U16x8 [8]uint16

// SplatU16 creates U16x8 with all elements set to n.
func SplatU16(n uint16) U16x8 {
	var result U16x8
	for i := range result {
		result[i] = n
	}
	return result
}

// AddSat performs element-wise unsigned saturating addition.
func (v U16x8) AddSat(other U16x8) U16x8 {
	var result U16x8
	for i := range v {
		s := uint32(v[i]) + uint32(other[i])
		if s > 0xFFFF {
			s = 0xFFFF
		}
		result[i] = uint16(s) // #nosec G115 -- clamped above
	}
	return result
}

// Lookup replaces every lane by table[min(lane, 255)].
func (v U16x8) Lookup(table *[256]uint8) U16x8 {
	var result U16x8
	for i := range v {
		x := v[i]
		if x > 255 {
			x = 255
		}
		result[i] = uint16(table[x])
	}
	return result
}

// Signed widens the lanes to signed 32-bit intermediates.
func (v U16x8) Signed() I32x8 {
	var result I32x8
	for i := range v {
		result[i] = int32(v[i])
	}
	return result
}

// NarrowSat packs lo into lanes 0..7 and hi into lanes 8..15, saturating
// each element to 255.
func NarrowSat(lo, hi U16x8) U8x16 {
	var result U8x16
	for i := 0; i < 8; i++ {
		result[i] = sat8(lo[i])
		result[i+8] = sat8(hi[i])
	}
	return result
}

// InterleaveSat places even in the even lanes and odd in the odd lanes,
// saturating each element to 255. It is the inverse of U8x16.Even/Odd.
func InterleaveSat(even, odd U16x8) U8x16 {
	var result U8x16
	for i := 0; i < 8; i++ {
		result[2*i] = sat8(even[i])
		result[2*i+1] = sat8(odd[i])
	}
	return result
}

func sat8(x uint16) uint8 {
	if x > 255 {
		return 255
	}
	return uint8(x) // #nosec G115 -- clamped above
}
