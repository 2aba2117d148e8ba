package lanes

// MaxLanes is the widest vector in this package.
const MaxLanes = 16

// Mask is a per-lane predicate. Bit i set means lane i is active.
type Mask uint16

// FirstN returns a mask with lanes [0, n) active. n is clamped to
// [0, MaxLanes].
func FirstN(n int) Mask {
	if n <= 0 {
		return 0
	}
	if n >= MaxLanes {
		return 0xFFFF
	}
	return Mask(1<<uint(n) - 1)
}

// Active reports whether lane i is active.
func (m Mask) Active(i int) bool {
	if i < 0 || i >= MaxLanes {
		return false
	}
	return m&(1<<uint(i)) != 0
}

// Reverse mirrors the mask over the first n lanes: lane i moves to n-1-i.
// Lanes at or above n are dropped.
func (m Mask) Reverse(n int) Mask {
	var out Mask
	for i := 0; i < n && i < MaxLanes; i++ {
		if m.Active(i) {
			out |= 1 << uint(n-1-i)
		}
	}
	return out
}

// Low returns the lower eight lanes of m.
func (m Mask) Low() Mask { return m & 0xFF }

// Even returns the predicate of the even lanes of a 16-lane mask compacted
// into 8 lanes. Odd does the same for odd lanes.
func (m Mask) Even() Mask {
	var out Mask
	for i := 0; i < 8; i++ {
		if m.Active(2 * i) {
			out |= 1 << uint(i)
		}
	}
	return out
}

// Odd returns the odd-lane predicate compacted into 8 lanes.
func (m Mask) Odd() Mask {
	var out Mask
	for i := 0; i < 8; i++ {
		if m.Active(2*i + 1) {
			out |= 1 << uint(i)
		}
	}
	return out
}
