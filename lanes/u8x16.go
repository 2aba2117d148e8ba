package lanes

// U8x16 represents 16 uint8 lanes.
type U8x16 [16]uint8

// SplatU8 creates U8x16 with all elements set to n.
func SplatU8(n uint8) U8x16 {
	var result U8x16
	for i := range result {
		result[i] = n
	}
	return result
}

// GatherU8 loads lane i from buf[base+i*offset] for every active lane.
// Inactive lanes are zero.
func GatherU8(buf []byte, base, offset int, m Mask) U8x16 {
	var result U8x16
	for i := range result {
		if m.Active(i) {
			result[i] = buf[base+i*offset]
		}
	}
	return result
}

// Scatter stores lane i to buf[base+i*offset] for every active lane.
func (v U8x16) Scatter(buf []byte, base, offset int, m Mask) {
	for i := range v {
		if m.Active(i) {
			buf[base+i*offset] = v[i]
		}
	}
}

// ReverseN reverses the first n lanes: lane i moves to n-1-i.
// Lanes at or above n are zeroed.
func (v U8x16) ReverseN(n int) U8x16 {
	var result U8x16
	for i := 0; i < n && i < len(v); i++ {
		result[n-1-i] = v[i]
	}
	return result
}

// Lookup replaces every lane by table[lane].
func (v U8x16) Lookup(table *[256]uint8) U8x16 {
	var result U8x16
	for i := range v {
		result[i] = table[v[i]]
	}
	return result
}

// WidenLo zero-extends lanes 0..7 to 16 bits.
func (v U8x16) WidenLo() U16x8 {
	var result U16x8
	for i := range result {
		result[i] = uint16(v[i])
	}
	return result
}

// WidenHi zero-extends lanes 8..15 to 16 bits.
func (v U8x16) WidenHi() U16x8 {
	var result U16x8
	for i := range result {
		result[i] = uint16(v[i+8])
	}
	return result
}

// Even zero-extends the even lanes (0, 2, ..., 14) to 16 bits.
func (v U8x16) Even() U16x8 {
	var result U16x8
	for i := range result {
		result[i] = uint16(v[2*i])
	}
	return result
}

// Odd zero-extends the odd lanes (1, 3, ..., 15) to 16 bits.
func (v U8x16) Odd() U16x8 {
	var result U16x8
	for i := range result {
		result[i] = uint16(v[2*i+1])
	}
	return result
}
