package lanes

// I32x8 is a signed 8-lane intermediate for fixed-point color math.
type I32x8 [8]int32

// MulAdd returns v + a*k for every lane.
func (v I32x8) MulAdd(a U16x8, k int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + int32(a[i])*k
	}
	return result
}

// MulAddS returns v + a*k for every lane with a signed multiplicand.
func (v I32x8) MulAddS(a I32x8, k int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + a[i]*k
	}
	return result
}

// AddConst adds k to every lane.
func (v I32x8) AddConst(k int32) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] + k
	}
	return result
}

// Shr performs an arithmetic right shift of every lane.
func (v I32x8) Shr(n uint) I32x8 {
	var result I32x8
	for i := range v {
		result[i] = v[i] >> n
	}
	return result
}

// SatU8 narrows every lane with unsigned saturation to [0, 255]: negative
// values clamp to 0, values above 255 clamp to 255.
func (v I32x8) SatU8() U16x8 {
	var result U16x8
	for i := range v {
		x := v[i]
		switch {
		case x < 0:
			x = 0
		case x > 255:
			x = 255
		}
		result[i] = uint16(x) // #nosec G115 -- clamped above
	}
	return result
}
