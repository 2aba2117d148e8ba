package pixel

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot/lanes"
	"github.com/gogpu/pixrot/pixfmt"
)

// Load16 decodes up to 16 pixels of an alpha-carrying format.
// Lanes outside m are zero.
func Load16(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask) (Block16, error) {
	l, err := prepare(f, buf, base, offset, m, true)
	if err != nil {
		return Block16{}, err
	}
	return l.Load16(buf, base, offset, m), nil
}

// Load16NoAlpha decodes up to 16 pixels of any packed RGB format, leaving
// the alpha vector zero. Callers default alpha per their own policy.
func Load16NoAlpha(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask) (Block16, error) {
	l, err := prepare(f, buf, base, offset, m, false)
	if err != nil {
		return Block16{}, err
	}
	return l.Load16NoAlpha(buf, base, offset, m), nil
}

// Store16 encodes up to 16 pixels into an alpha-carrying format.
func Store16(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask, b Block16) error {
	l, err := prepare(f, buf, base, offset, m, true)
	if err != nil {
		return err
	}
	l.Store16(buf, base, offset, m, b)
	return nil
}

// Store16NoAlpha encodes up to 16 pixels ignoring the block's alpha. Formats
// with an alpha field receive full opacity.
func Store16NoAlpha(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask, b Block16) error {
	l, err := prepare(f, buf, base, offset, m, false)
	if err != nil {
		return err
	}
	l.Store16NoAlpha(buf, base, offset, m, b)
	return nil
}

// Load8 decodes up to 8 pixels of an alpha-carrying format into 16-bit
// accumulators. Only lanes 0..7 of m are considered.
func Load8(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask) (Block8, error) {
	m = m.Low()
	l, err := prepare(f, buf, base, offset, m, true)
	if err != nil {
		return Block8{}, err
	}
	return l.Load8(buf, base, offset, m), nil
}

// Load8NoAlpha is the 8-lane form of Load16NoAlpha.
func Load8NoAlpha(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask) (Block8, error) {
	m = m.Low()
	l, err := prepare(f, buf, base, offset, m, false)
	if err != nil {
		return Block8{}, err
	}
	return l.Load8NoAlpha(buf, base, offset, m), nil
}

// Store8 encodes up to 8 pixels. Channels above 255 saturate.
func Store8(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask, b Block8) error {
	m = m.Low()
	l, err := prepare(f, buf, base, offset, m, true)
	if err != nil {
		return err
	}
	l.Store8(buf, base, offset, m, b)
	return nil
}

// Store8NoAlpha is the 8-lane form of Store16NoAlpha.
func Store8NoAlpha(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask, b Block8) error {
	m = m.Low()
	l, err := prepare(f, buf, base, offset, m, false)
	if err != nil {
		return err
	}
	l.Store8NoAlpha(buf, base, offset, m, b)
	return nil
}

func prepare(f pixfmt.ColorFormat, buf []byte, base, offset int, m lanes.Mask, alpha bool) (*Layout, error) {
	l, err := LayoutOf(f)
	if err != nil {
		return nil, err
	}
	if alpha && !l.HasAlpha() {
		return nil, errors.Wrapf(ErrNoAlpha, "format %v", f)
	}
	if err := l.CheckBounds(buf, base, offset, m); err != nil {
		return nil, err
	}
	return l, nil
}

// The Layout methods below are the unchecked hot path: the caller
// guarantees that every active lane is in bounds.

// Load16 decodes 16 lanes including alpha.
func (l *Layout) Load16(buf []byte, base, offset int, m lanes.Mask) Block16 {
	return l.unpack16(buf, base, offset, m, true)
}

// Load16NoAlpha decodes 16 lanes without alpha.
func (l *Layout) Load16NoAlpha(buf []byte, base, offset int, m lanes.Mask) Block16 {
	return l.unpack16(buf, base, offset, m, false)
}

// Store16 encodes 16 lanes including alpha.
func (l *Layout) Store16(buf []byte, base, offset int, m lanes.Mask, b Block16) {
	l.pack16(buf, base, offset, m, b, true)
}

// Store16NoAlpha encodes 16 lanes with opaque alpha.
func (l *Layout) Store16NoAlpha(buf []byte, base, offset int, m lanes.Mask, b Block16) {
	l.pack16(buf, base, offset, m, b, false)
}

// Load8 decodes 8 lanes including alpha.
func (l *Layout) Load8(buf []byte, base, offset int, m lanes.Mask) Block8 {
	return l.unpack8(buf, base, offset, m.Low(), true)
}

// Load8NoAlpha decodes 8 lanes without alpha.
func (l *Layout) Load8NoAlpha(buf []byte, base, offset int, m lanes.Mask) Block8 {
	return l.unpack8(buf, base, offset, m.Low(), false)
}

// Store8 encodes 8 lanes including alpha.
func (l *Layout) Store8(buf []byte, base, offset int, m lanes.Mask, b Block8) {
	l.pack8(buf, base, offset, m.Low(), b, true)
}

// Store8NoAlpha encodes 8 lanes with opaque alpha.
func (l *Layout) Store8NoAlpha(buf []byte, base, offset int, m lanes.Mask, b Block8) {
	l.pack8(buf, base, offset, m.Low(), b, false)
}

func (l *Layout) unpack16(buf []byte, base, offset int, m lanes.Mask, alpha bool) Block16 {
	alpha = alpha && l.HasAlpha()
	var b Block16
	if l.aligned {
		b.R = lanes.GatherU8(buf, base+l.byteIndex(l.R), offset, m)
		b.G = lanes.GatherU8(buf, base+l.byteIndex(l.G), offset, m)
		b.B = lanes.GatherU8(buf, base+l.byteIndex(l.B), offset, m)
		if alpha {
			b.A = lanes.GatherU8(buf, base+l.byteIndex(l.A), offset, m)
		}
		return b
	}
	for i := 0; i < 16; i++ {
		if !m.Active(i) {
			continue
		}
		w := l.word(buf, base+i*offset)
		b.R[i] = expand(w, l.R)
		b.G[i] = expand(w, l.G)
		b.B[i] = expand(w, l.B)
		if alpha {
			b.A[i] = expand(w, l.A)
		}
	}
	return b
}

func (l *Layout) unpack8(buf []byte, base, offset int, m lanes.Mask, alpha bool) Block8 {
	if l.aligned {
		wide := l.unpack16(buf, base, offset, m, alpha)
		lo, _ := Widen(wide)
		return lo
	}
	alpha = alpha && l.HasAlpha()
	var b Block8
	for i := 0; i < 8; i++ {
		if !m.Active(i) {
			continue
		}
		w := l.word(buf, base+i*offset)
		b.R[i] = uint16(expand(w, l.R))
		b.G[i] = uint16(expand(w, l.G))
		b.B[i] = uint16(expand(w, l.B))
		if alpha {
			b.A[i] = uint16(expand(w, l.A))
		}
	}
	return b
}

func (l *Layout) pack16(buf []byte, base, offset int, m lanes.Mask, b Block16, alpha bool) {
	if l.aligned {
		b.R.Scatter(buf, base+l.byteIndex(l.R), offset, m)
		b.G.Scatter(buf, base+l.byteIndex(l.G), offset, m)
		b.B.Scatter(buf, base+l.byteIndex(l.B), offset, m)
		if l.HasAlpha() {
			a := b.A
			if !alpha {
				a = lanes.SplatU8(0xFF)
			}
			a.Scatter(buf, base+l.byteIndex(l.A), offset, m)
		}
		return
	}
	for i := 0; i < 16; i++ {
		if !m.Active(i) {
			continue
		}
		w := compress(b.R[i], l.R) | compress(b.G[i], l.G) | compress(b.B[i], l.B)
		if l.HasAlpha() {
			if alpha {
				w |= compress(b.A[i], l.A)
			} else {
				w |= l.A.max()
			}
		}
		l.putWord(buf, base+i*offset, w)
	}
}

func (l *Layout) pack8(buf []byte, base, offset int, m lanes.Mask, b Block8, alpha bool) {
	var zero Block8
	l.pack16(buf, base, offset, m, Narrow(b, zero), alpha)
}
