package rotate

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rotateFunc func(Frame, int) error

var backends = []struct {
	name string
	fn   rotateFunc
}{
	{"scalar", Scalar},
	{"simd", SIMD},
}

func packed(src []byte, w, h, bpp, angle int) Frame {
	ow, oh := OutSize(w, h, angle)
	return Frame{
		Src:       src,
		Dst:       make([]byte, ow*oh*bpp),
		SrcStride: w * bpp,
		DstStride: ow * bpp,
		Width:     w,
		Height:    h,
		BPP:       bpp,
	}
}

func TestKnownLayout(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6}
	want := map[int][]byte{
		90:  {4, 1, 5, 2, 6, 3},
		180: {6, 5, 4, 3, 2, 1},
		270: {3, 6, 2, 5, 1, 4},
	}
	for _, be := range backends {
		for angle, exp := range want {
			t.Run(fmt.Sprintf("%s/%d", be.name, angle), func(t *testing.T) {
				f := packed(src, 3, 2, 1, angle)
				require.NoError(t, be.fn(f, angle))
				assert.Equal(t, exp, f.Dst)
			})
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := [][2]int{{1, 1}, {13, 3}, {8, 8}, {7, 9}, {16, 5}, {17, 2}, {31, 4}}
	for _, bpp := range []int{1, 2, 3, 4} {
		for _, sz := range sizes {
			w, h := sz[0], sz[1]
			src := make([]byte, w*h*bpp)
			rng.Read(src)
			for _, angle := range []int{90, 180, 270} {
				a := packed(src, w, h, bpp, angle)
				b := packed(src, w, h, bpp, angle)
				require.NoError(t, Scalar(a, angle))
				require.NoError(t, SIMD(b, angle))
				require.Truef(t, bytes.Equal(a.Dst, b.Dst), "%dx%d bpp=%d angle=%d", w, h, bpp, angle)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const w, h, bpp = 13, 6, 3
	src := make([]byte, w*h*bpp)
	rng.Read(src)
	for _, be := range backends {
		for _, angle := range []int{90, 180, 270} {
			first := packed(src, w, h, bpp, angle)
			require.NoError(t, be.fn(first, angle))

			ow, oh := OutSize(w, h, angle)
			second := packed(first.Dst, ow, oh, bpp, 360-angle)
			require.NoError(t, be.fn(second, 360-angle))
			assert.Equalf(t, src, second.Dst, "%s %d", be.name, angle)
		}
	}
}

// The last partial group writes nothing outside the frame, even when the
// destination rows are padded and followed by guard bytes.
func TestTailStaysInFrame(t *testing.T) {
	const w, h, bpp, pad, guard = 13, 3, 4, 5, 64
	src := make([]byte, w*h*bpp)
	for i := range src {
		src[i] = byte(i)
	}
	for _, angle := range []int{90, 180, 270} {
		ow, oh := OutSize(w, h, angle)
		stride := ow*bpp + pad
		f := Frame{
			Src: src, SrcStride: w * bpp,
			Dst: bytes.Repeat([]byte{0xEE}, oh*stride+guard), DstStride: stride,
			Width: w, Height: h, BPP: bpp,
		}
		ref := f
		ref.Dst = bytes.Repeat([]byte{0xEE}, len(f.Dst))
		require.NoError(t, SIMD(f, angle))
		require.NoError(t, Scalar(ref, angle))
		assert.Equal(t, ref.Dst, f.Dst, "angle %d", angle)

		for r := 0; r < oh; r++ {
			for i := ow * bpp; i < stride; i++ {
				require.Equalf(t, byte(0xEE), f.Dst[r*stride+i], "angle %d row %d pad byte %d", angle, r, i)
			}
		}
		for i := oh * stride; i < len(f.Dst); i++ {
			require.Equal(t, byte(0xEE), f.Dst[i])
		}
	}
}

func TestSpan(t *testing.T) {
	f := Frame{Width: 5, Height: 3, BPP: 2, DstStride: 8}
	assert.Equal(t, 4*8+3*2, f.Span(90))
	assert.Equal(t, 2*8+5*2, f.Span(180))
}

func TestErrors(t *testing.T) {
	src := make([]byte, 12)
	for _, be := range backends {
		for _, angle := range []int{0, 45, 360, -90} {
			err := be.fn(packed(src, 2, 2, 3, angle), angle)
			assert.Truef(t, errors.Is(err, ErrAngle), "%s %d", be.name, angle)
		}

		f := packed(src, 2, 2, 3, 90)
		f.Dst = f.Dst[:len(f.Dst)-1]
		assert.True(t, errors.Is(be.fn(f, 90), ErrGeometry))

		f = packed(src[:11], 2, 2, 3, 90)
		assert.True(t, errors.Is(be.fn(f, 90), ErrGeometry))

		f = packed(src, 2, 2, 3, 90)
		f.SrcStride = 5
		assert.True(t, errors.Is(be.fn(f, 90), ErrGeometry))
	}
}
