package pixrot

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pixrot/pixfmt"
)

// recordingCleaner remembers every span it was asked to clean.
type recordingCleaner struct {
	spans [][]byte
}

func (c *recordingCleaner) Clean(buf []byte) { c.spans = append(c.spans, buf) }

func randomImage(t *testing.T, rng *rand.Rand, pitch, w, h int, f pixfmt.ColorFormat) *Image {
	t.Helper()
	img, err := Create(pitch, w, h, f)
	require.NoError(t, err)
	t.Cleanup(func() { Destroy(img) })
	rng.Read(img.Data)
	return img
}

func outputFor(t *testing.T, in *Image, angle Angle) *Image {
	t.Helper()
	w, h := in.Width, in.Height
	if angle.swapsAxes() {
		w, h = h, w
	}
	out, err := Create(w, w, h, in.Format)
	require.NoError(t, err)
	t.Cleanup(func() { Destroy(out) })
	return out
}

func cpuFormats() []pixfmt.ColorFormat {
	var out []pixfmt.ColorFormat
	for _, f := range pixfmt.Formats() {
		if f.BytesPerPixel() > 0 {
			out = append(out, f)
		}
	}
	return out
}

var rotations = []Angle{Angle90, Angle180, Angle270}

func TestErrorPrecedence(t *testing.T) {
	e := NewEngine(WithCaps(Caps{SIMD: true}))
	buf := make([]byte, 200)
	buf2 := make([]byte, 200)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"nil source", func() error {
			return e.Rotate(nil, buf2, 10, 10, 10, pixfmt.RGB565, Angle90)
		}, ErrNullPointer},
		{"nil beats every other fault", func() error {
			return e.Rotate(buf, nil, 0, 0, 0, pixfmt.Unknown, 45)
		}, ErrNullPointer},
		{"subsampled format", func() error {
			return e.Rotate(buf, buf2, 10, 10, 10, pixfmt.I420, Angle90)
		}, ErrUnsupportedFormat},
		{"unknown format", func() error {
			return e.Rotate(buf, buf2, 10, 10, 10, pixfmt.Unknown, Angle90)
		}, ErrUnsupportedFormat},
		{"pitch below width beats format", func() error {
			return e.Rotate(buf, buf2, 5, 10, 10, pixfmt.I420, Angle90)
		}, ErrSizeMismatch},
		{"short destination", func() error {
			return e.Rotate(buf, buf2[:199], 10, 10, 10, pixfmt.RGB565, Angle90)
		}, ErrSizeMismatch},
		{"format beats angle", func() error {
			return e.Rotate(buf, buf2, 10, 10, 10, pixfmt.NV12, 45)
		}, ErrUnsupportedFormat},
		{"bad angle", func() error {
			return e.Rotate(buf, buf2, 10, 10, 10, pixfmt.RGB565, 45)
		}, ErrNotSupported},
		{"zero angle on cpu", func() error {
			return e.Rotate(buf, buf2, 10, 10, 10, pixfmt.RGB565, Angle0)
		}, ErrNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := bytes.Clone(buf2)
			err := tt.run()
			require.Error(t, err)
			assert.Truef(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, buf2, "no partial write")
		})
	}
}

func TestRotateImage_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	e := NewEngine(WithCaps(Caps{}))
	in := randomImage(t, rng, 280, 280, 200, pixfmt.RGB565)

	wrong := outputFor(t, in, Angle180) // 280x200, but 90 needs 200x280
	err := e.RotateImage(in, wrong, Angle90)
	assert.Equal(t, CodeSizeMismatch, CodeOf(err))

	other := outputFor(t, randomImage(t, rng, 200, 200, 280, pixfmt.ARGB8888), Angle0)
	err = e.RotateImage(in, other, Angle90)
	assert.Equal(t, CodeFormatMismatch, CodeOf(err), "format is checked before size")

	assert.Equal(t, CodeNullPointer, CodeOf(e.RotateImage(nil, wrong, Angle90)))
	assert.Equal(t, CodeNullPointer, CodeOf(e.RotateImage(in, &Image{}, Angle90)))
}

func TestBackendEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	gpu := &mockAccelerator{name: "mock"}
	engines := map[Backend]*Engine{
		BackendScalar: NewEngine(WithBackend(BackendScalar), WithCaps(Caps{})),
		BackendSIMD:   NewEngine(WithBackend(BackendSIMD), WithCaps(Caps{SIMD: true})),
		BackendGPU:    NewEngine(WithBackend(BackendGPU), WithCaps(Caps{GPU: true}), WithAccelerator(gpu)),
	}

	for _, f := range cpuFormats() {
		in := randomImage(t, rng, 21, 19, 7, f)
		for _, angle := range rotations {
			var ref []byte
			for _, b := range []Backend{BackendScalar, BackendSIMD, BackendGPU} {
				out := outputFor(t, in, angle)
				require.NoErrorf(t, engines[b].RotateImage(in, out, angle), "%v %v %d", b, f, angle)
				if ref == nil {
					ref = out.Data
					continue
				}
				require.Truef(t, bytes.Equal(ref, out.Data), "%v differs for %v at %d", b, f, angle)
			}
		}
	}
	assert.Positive(t, gpu.callCount())
}

func TestRoundTripGeometry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, caps := range []Caps{{}, {SIMD: true}} {
		e := NewEngine(WithCaps(caps))
		for _, sz := range [][2]int{{1, 1}, {13, 5}, {16, 16}, {33, 2}} {
			w, h := sz[0], sz[1]
			src := make([]byte, w*h*3)
			rng.Read(src)
			for _, angle := range rotations {
				mid := make([]byte, len(src))
				back := make([]byte, len(src))
				require.NoError(t, e.Rotate(src, mid, w, w, h, pixfmt.RGB888, angle))

				mw, mh := w, h
				if angle.swapsAxes() {
					mw, mh = h, w
				}
				require.NoError(t, e.Rotate(mid, back, mw, mw, mh, pixfmt.RGB888, angle.Inverse()))
				assert.Equalf(t, src, back, "%dx%d by %d", w, h, angle)
			}
		}
	}
}

// Width 13 leaves a five-pixel tail group. Guard bytes after the
// destination must survive and the result must match scalar.
func TestTailCorrectness(t *testing.T) {
	const w, h, bpp = 13, 4, 4
	rng := rand.New(rand.NewSource(4))
	src := make([]byte, w*h*bpp)
	rng.Read(src)

	scalar := NewEngine(WithBackend(BackendScalar), WithCaps(Caps{}))
	simd := NewEngine(WithBackend(BackendSIMD), WithCaps(Caps{SIMD: true}))
	for _, angle := range rotations {
		ref := make([]byte, w*h*bpp)
		require.NoError(t, scalar.Rotate(src, ref, w, w, h, pixfmt.ARGB8888, angle))

		guarded := bytes.Repeat([]byte{0x5A}, w*h*bpp+64)
		require.NoError(t, simd.Rotate(src, guarded, w, w, h, pixfmt.ARGB8888, angle))
		assert.Equal(t, ref, guarded[:len(ref)], "angle %d", angle)
		assert.Equal(t, bytes.Repeat([]byte{0x5A}, 64), guarded[len(ref):], "angle %d", angle)
	}
}

func TestSourcePitch(t *testing.T) {
	// 2x2 RGB565 with a one pixel pad per source row.
	src := []byte{
		0x00, 0x01, 0x00, 0x02, 0xEE, 0xEE,
		0x00, 0x03, 0x00, 0x04, 0xEE, 0xEE,
	}
	dst := make([]byte, 8)
	e := NewEngine(WithCaps(Caps{SIMD: true}))
	require.NoError(t, e.Rotate(src, dst, 3, 2, 2, pixfmt.RGB565, Angle90))
	assert.Equal(t, []byte{0x00, 0x03, 0x00, 0x01, 0x00, 0x04, 0x00, 0x02}, dst)
}

func TestCacheClean(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := make([]byte, 13*3*2)
	rng.Read(src)

	for _, b := range []Backend{BackendScalar, BackendSIMD} {
		c := &recordingCleaner{}
		e := NewEngine(WithBackend(b), WithCaps(Caps{SIMD: true}), WithCacheCleaner(c))
		dst := make([]byte, len(src)+10)
		require.NoError(t, e.Rotate(src, dst, 13, 13, 3, pixfmt.RGB565, Angle270))
		require.Len(t, c.spans, 1, "%v", b)
		assert.Len(t, c.spans[0], len(src), "exactly the written span")
		assert.Equal(t, &dst[0], &c.spans[0][0])
	}

	// GPU writes are coherent; the engine does not clean after them.
	c := &recordingCleaner{}
	e := NewEngine(WithCaps(Caps{GPU: true}), WithAccelerator(&mockAccelerator{}), WithCacheCleaner(c))
	dst := make([]byte, len(src))
	require.NoError(t, e.Rotate(src, dst, 13, 13, 3, pixfmt.RGB565, Angle270))
	assert.Empty(t, c.spans)

	// A failed request cleans nothing.
	c = &recordingCleaner{}
	e = NewEngine(WithCaps(Caps{}), WithCacheCleaner(c))
	assert.Error(t, e.Rotate(src, dst, 13, 13, 3, pixfmt.RGB565, 45))
	assert.Empty(t, c.spans)
}

func TestCacheCleanerFunc(t *testing.T) {
	var n int
	CacheCleanerFunc(func(b []byte) { n += len(b) }).Clean(make([]byte, 7))
	assert.Equal(t, 7, n)
}

func TestBackendPolicy(t *testing.T) {
	gpu := &mockAccelerator{reject: map[pixfmt.ColorFormat]bool{
		pixfmt.ARGB1555: true, pixfmt.RGBA5551: true, pixfmt.A8: true,
	}}

	tests := []struct {
		name   string
		opts   []Option
		format pixfmt.ColorFormat
		want   Backend
		err    error
	}{
		{"gpu first", []Option{WithCaps(Caps{SIMD: true, GPU: true}), WithAccelerator(gpu)}, pixfmt.RGB565, BackendGPU, nil},
		{"gpu rejects 1555", []Option{WithCaps(Caps{SIMD: true, GPU: true}), WithAccelerator(gpu)}, pixfmt.ARGB1555, BackendSIMD, nil},
		{"gpu rejects A8 without simd", []Option{WithCaps(Caps{GPU: true}), WithAccelerator(gpu)}, pixfmt.A8, BackendScalar, nil},
		{"gpu disabled by caps", []Option{WithCaps(Caps{SIMD: true}), WithAccelerator(gpu)}, pixfmt.RGB565, BackendSIMD, nil},
		{"no accelerator", []Option{WithCaps(Caps{GPU: true})}, pixfmt.RGB888, BackendScalar, nil},
		{"subsampled", []Option{WithCaps(Caps{SIMD: true})}, pixfmt.YUYV, BackendAuto, ErrUnsupportedFormat},
		{"forced gpu without accelerator", []Option{WithBackend(BackendGPU), WithCaps(Caps{GPU: true})}, pixfmt.RGB565, BackendGPU, ErrUnsupportedFormat},
		{"forced gpu rejected format", []Option{WithBackend(BackendGPU), WithCaps(Caps{GPU: true}), WithAccelerator(gpu)}, pixfmt.RGBA5551, BackendGPU, ErrUnsupportedFormat},
		{"forced simd subsampled", []Option{WithBackend(BackendSIMD), WithCaps(Caps{SIMD: true})}, pixfmt.I420, BackendSIMD, ErrUnsupportedFormat},
		{"forced scalar ignores gpu", []Option{WithBackend(BackendScalar), WithCaps(Caps{SIMD: true, GPU: true}), WithAccelerator(gpu)}, pixfmt.RGB565, BackendScalar, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetAccelerator()
			got, _, err := NewEngine(tt.opts...).selectBackend(tt.format)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGPUIdentityBlit(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, len(src))
	e := NewEngine(WithCaps(Caps{GPU: true}), WithAccelerator(&mockAccelerator{}))
	require.NoError(t, e.Rotate(src, dst, 2, 2, 2, pixfmt.RGB565, Angle0))
	assert.Equal(t, src, dst)
}

func TestGPUErrorIsNotMasked(t *testing.T) {
	hwErr := errors.New("texturing unit timeout")
	gpu := &mockAccelerator{rotErr: hwErr}
	e := NewEngine(WithCaps(Caps{SIMD: true, GPU: true}), WithAccelerator(gpu))

	src := make([]byte, 8)
	dst := make([]byte, 8)
	err := e.Rotate(src, dst, 2, 2, 2, pixfmt.RGB565, Angle90)
	assert.True(t, errors.Is(err, hwErr))
	assert.Equal(t, CodeUnknown, CodeOf(err))
	assert.Equal(t, 1, gpu.callCount())
}

func TestRegisteredAcceleratorIsUsed(t *testing.T) {
	resetAccelerator()
	t.Cleanup(resetAccelerator)
	gpu := &mockAccelerator{name: "registered"}
	require.NoError(t, RegisterAccelerator(gpu))

	e := NewEngine(WithCaps(Caps{GPU: true}))
	src := make([]byte, 8)
	require.NoError(t, e.Rotate(src, make([]byte, 8), 2, 2, 2, pixfmt.RGB565, Angle180))
	assert.Equal(t, 1, gpu.callCount())
}

func TestAngle(t *testing.T) {
	assert.Equal(t, Angle270, Angle90.Inverse())
	assert.Equal(t, Angle180, Angle180.Inverse())
	assert.Equal(t, Angle0, Angle0.Inverse())
	assert.False(t, Angle(45).IsValid())
	assert.False(t, Angle(360).IsValid())
	assert.Equal(t, "simd", BackendSIMD.String())
}

func TestCodes(t *testing.T) {
	assert.Equal(t, CodeOK, CodeOf(nil))
	assert.Equal(t, CodeNotSupported, CodeOf(errors.Wrap(ErrNotSupported, "ctx")))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("other")))
	assert.Equal(t, "SizeMismatch", CodeSizeMismatch.String())
	assert.Equal(t, "Unknown", Code(99).String())
}

func TestDetectCapsEnvironment(t *testing.T) {
	t.Setenv(EnvNoSIMD, "1")
	t.Setenv(EnvNoGPU, "1")
	c := DetectCaps()
	assert.False(t, c.SIMD)
	assert.Empty(t, c.Extension)
	assert.False(t, c.GPU)

	t.Setenv(EnvNoSIMD, "0")
	t.Setenv(EnvNoGPU, "")
	assert.True(t, DetectCaps().GPU)
}
