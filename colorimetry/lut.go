package colorimetry

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/pixrot/internal/cache"
	"github.com/gogpu/pixrot/pixel"
)

// LUT is a 256-entry channel lookup table over the domain [0, 255].
// Tables are owned by the caller; the transforms only read them.
type LUT [256]uint8

// IdentityLUT returns the table mapping every value to itself.
func IdentityLUT() *LUT {
	var l LUT
	for i := range l {
		l[i] = uint8(i)
	}
	return &l
}

// NewGammaLUT builds the table out = 255 * (in/255)^exponent.
// Use exponent 1/2.2 to encode linear data and 2.2 to decode it.
// A non-positive exponent yields the identity table.
func NewGammaLUT(exponent float32) *LUT {
	if !(exponent > 0) {
		return IdentityLUT()
	}
	var l LUT
	for i := range l {
		v := 255 * math32.Pow(float32(i)/255, exponent)
		l[i] = uint8(quantize(v)) // #nosec G115 -- quantize saturates to 255
	}
	return &l
}

var gammaTables = cache.New[float32, LUT](16)

// GammaLUT returns a copy of the gamma table for exponent. Tables are built
// once per exponent and kept in a small process-wide cache.
func GammaLUT(exponent float32) *LUT {
	if !(exponent > 0) {
		return IdentityLUT()
	}
	l := gammaTables.GetOrCreate(exponent, func() LUT { return *NewGammaLUT(exponent) })
	return &l
}

// Apply8 maps the color channels of 8 pixels through the table.
func (l *LUT) Apply8(b pixel.Block8) pixel.Block8 {
	t := (*[256]uint8)(l)
	return pixel.Block8{A: b.A, R: b.R.Lookup(t), G: b.G.Lookup(t), B: b.B.Lookup(t)}
}

// Apply16 maps the color channels of 16 pixels through the table.
func (l *LUT) Apply16(b pixel.Block16) pixel.Block16 {
	t := (*[256]uint8)(l)
	return pixel.Block16{A: b.A, R: b.R.Lookup(t), G: b.G.Lookup(t), B: b.B.Lookup(t)}
}

// Curves holds one table per color channel. A nil table leaves its channel
// unchanged.
type Curves struct {
	R, G, B *LUT
}

// Apply16 maps each channel of 16 pixels through its own table.
func (c Curves) Apply16(b pixel.Block16) pixel.Block16 {
	if c.R != nil {
		b.R = b.R.Lookup((*[256]uint8)(c.R))
	}
	if c.G != nil {
		b.G = b.G.Lookup((*[256]uint8)(c.G))
	}
	if c.B != nil {
		b.B = b.B.Lookup((*[256]uint8)(c.B))
	}
	return b
}

// Apply8 maps each channel of 8 pixels through its own table.
func (c Curves) Apply8(b pixel.Block8) pixel.Block8 {
	if c.R != nil {
		b.R = b.R.Lookup((*[256]uint8)(c.R))
	}
	if c.G != nil {
		b.G = b.G.Lookup((*[256]uint8)(c.G))
	}
	if c.B != nil {
		b.B = b.B.Lookup((*[256]uint8)(c.B))
	}
	return b
}
