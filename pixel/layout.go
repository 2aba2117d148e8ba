// Package pixel translates packed RGB pixel encodings to and from the
// canonical per-channel representation.
//
// A Block16 holds 16 pixels as four U8x16 channel vectors (alpha, red, green,
// blue); a Block8 holds 8 pixels as U16x8 accumulators for arithmetic that
// needs headroom. Every format pair converts as Load(A), optional color math,
// Store(B), so the marshaling code grows with the number of formats rather
// than with the number of pairs.
//
// Each packed format is described by a Layout: its pixel size and, per
// channel, a shift and a bit width inside the big-endian pixel word. One
// generic unpack and one generic pack routine per lane width consume the
// descriptor. Layouts whose channels are whole bytes take a gather fast path.
//
// All loads and stores take a base offset, a lane-to-lane byte offset and a
// predicate. Lane i addresses buf[base+i*offset]; lanes outside the predicate
// are never read or written.
package pixel

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixfmt"
)

// Errors returned by the marshaling functions.
var (
	// ErrNoLayout is returned for formats that have no packed RGB layout
	// (pure alpha and the whole YUV family).
	ErrNoLayout = errors.New("pixel: format has no packed RGB layout")

	// ErrNoAlpha is returned when an alpha-carrying load or store targets a
	// format without an alpha channel. Use the NoAlpha variants instead.
	ErrNoAlpha = errors.New("pixel: format has no alpha channel")

	// ErrOutOfBounds is returned when an active lane addresses bytes outside
	// the buffer.
	ErrOutOfBounds = errors.New("pixel: lane address out of bounds")
)

// Field locates one channel inside the pixel word.
// A zero Bits means the channel is absent.
type Field struct {
	Shift uint8
	Bits  uint8
}

// Present reports whether the channel exists.
func (f Field) Present() bool { return f.Bits != 0 }

func (f Field) mask() uint32 { return 1<<f.Bits - 1 }

// max returns the all-ones value of the field.
func (f Field) max() uint32 { return f.mask() << f.Shift }

// byteAligned reports whether the field is a whole byte of the word.
func (f Field) byteAligned() bool { return f.Bits == 8 && f.Shift%8 == 0 }

// Layout describes a packed pixel encoding.
type Layout struct {
	// Format is the tag this layout describes.
	Format pixfmt.ColorFormat

	// Bytes is the pixel size in bytes (2, 3 or 4).
	Bytes int

	// A, R, G, B locate the channels in the big-endian pixel word.
	A, R, G, B Field

	// aligned is set when every present channel is a whole byte.
	aligned bool
}

// HasAlpha reports whether the layout carries alpha.
func (l *Layout) HasAlpha() bool { return l.A.Present() }

var layoutTable = map[pixfmt.ColorFormat]*Layout{
	pixfmt.RGB565: {
		Bytes: 2,
		R:     Field{Shift: 11, Bits: 5},
		G:     Field{Shift: 5, Bits: 6},
		B:     Field{Shift: 0, Bits: 5},
	},
	pixfmt.RGB888: {
		Bytes: 3,
		R:     Field{Shift: 16, Bits: 8},
		G:     Field{Shift: 8, Bits: 8},
		B:     Field{Shift: 0, Bits: 8},
	},
	pixfmt.ARGB1555: {
		Bytes: 2,
		A:     Field{Shift: 15, Bits: 1},
		R:     Field{Shift: 10, Bits: 5},
		G:     Field{Shift: 5, Bits: 5},
		B:     Field{Shift: 0, Bits: 5},
	},
	pixfmt.RGBA5551: {
		Bytes: 2,
		R:     Field{Shift: 11, Bits: 5},
		G:     Field{Shift: 6, Bits: 5},
		B:     Field{Shift: 1, Bits: 5},
		A:     Field{Shift: 0, Bits: 1},
	},
	pixfmt.ARGB4444: {
		Bytes: 2,
		A:     Field{Shift: 12, Bits: 4},
		R:     Field{Shift: 8, Bits: 4},
		G:     Field{Shift: 4, Bits: 4},
		B:     Field{Shift: 0, Bits: 4},
	},
	pixfmt.RGBA4444: {
		Bytes: 2,
		R:     Field{Shift: 12, Bits: 4},
		G:     Field{Shift: 8, Bits: 4},
		B:     Field{Shift: 4, Bits: 4},
		A:     Field{Shift: 0, Bits: 4},
	},
	pixfmt.ARGB8888: {
		Bytes: 4,
		A:     Field{Shift: 24, Bits: 8},
		R:     Field{Shift: 16, Bits: 8},
		G:     Field{Shift: 8, Bits: 8},
		B:     Field{Shift: 0, Bits: 8},
	},
	pixfmt.RGBA8888: {
		Bytes: 4,
		R:     Field{Shift: 24, Bits: 8},
		G:     Field{Shift: 16, Bits: 8},
		B:     Field{Shift: 8, Bits: 8},
		A:     Field{Shift: 0, Bits: 8},
	},
}

func init() {
	for f, l := range layoutTable {
		l.Format = f
		l.aligned = true
		for _, c := range [...]Field{l.A, l.R, l.G, l.B} {
			if c.Present() && !c.byteAligned() {
				l.aligned = false
			}
		}
	}
}

// LayoutOf returns the layout of f, or ErrNoLayout.
func LayoutOf(f pixfmt.ColorFormat) (*Layout, error) {
	l, ok := layoutTable[f]
	if !ok {
		return nil, errors.Wrapf(ErrNoLayout, "format %v", f)
	}
	return l, nil
}

// Formats returns the formats that have a layout, in tag order.
func Formats() []pixfmt.ColorFormat {
	var out []pixfmt.ColorFormat
	for _, f := range pixfmt.Formats() {
		if _, ok := layoutTable[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// CheckBounds verifies that every active lane of a group fits in buf.
func (l *Layout) CheckBounds(buf []byte, base, offset int, m lanes.Mask) error {
	for i := 0; i < lanes.MaxLanes; i++ {
		if !m.Active(i) {
			continue
		}
		p := base + i*offset
		if p < 0 || p+l.Bytes > len(buf) {
			return errors.Wrapf(ErrOutOfBounds, "lane %d at byte %d, buffer %d", i, p, len(buf))
		}
	}
	return nil
}

// byteIndex returns the position inside the pixel of an aligned field.
func (l *Layout) byteIndex(f Field) int {
	return l.Bytes - 1 - int(f.Shift/8)
}

// word reads the big-endian pixel word at p.
func (l *Layout) word(buf []byte, p int) uint32 {
	var w uint32
	for i := 0; i < l.Bytes; i++ {
		w = w<<8 | uint32(buf[p+i])
	}
	return w
}

// putWord writes the big-endian pixel word at p.
func (l *Layout) putWord(buf []byte, p int, w uint32) {
	for i := l.Bytes - 1; i >= 0; i-- {
		buf[p+i] = byte(w)
		w >>= 8
	}
}

// expand extracts a field and widens it to 8 bits by bit replication:
// a nibble n becomes n*0x11, a 5-bit value v becomes t|t>>5 with t = v<<3,
// a set 1-bit alpha becomes 0xFF.
func expand(w uint32, f Field) uint8 {
	v := (w >> f.Shift) & f.mask()
	if f.Bits >= 8 {
		return uint8(v) // #nosec G115 -- masked to 8 bits
	}
	t := v << (8 - f.Bits)
	for s := f.Bits; s < 8; s *= 2 {
		t |= t >> s
	}
	return uint8(t) // #nosec G115 -- t < 256
}

// compress truncates an 8-bit channel to the field width and positions it.
func compress(c uint8, f Field) uint32 {
	return (uint32(c) >> (8 - f.Bits)) << f.Shift
}
