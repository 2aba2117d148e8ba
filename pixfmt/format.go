// Package pixfmt is the color format registry for pixrot.
//
// Every concrete ColorFormat resolves to exactly one ColorSpace and one bit
// depth. Lookups are pure and total: a tag outside the enumerated set
// resolves to SpaceUnknown, depth 0 and the name "Unknown".
//
// Packed pixels wider than one byte are stored big-endian: byte 0 holds the
// most significant bits of the pixel word, and a format name lists its
// channels from the most to the least significant. ARGB8888 is therefore
// stored as the byte sequence A, R, G, B.
package pixfmt

// ColorSpace partitions the formats into families.
type ColorSpace uint8

const (
	// SpaceUnknown is returned for unrecognized formats.
	SpaceUnknown ColorSpace = iota

	// SpaceRGB covers the packed RGB family, including pure alpha.
	SpaceRGB

	// SpaceYUV covers luma/chroma formats, packed and planar.
	SpaceYUV
)

// String returns the name of the color space.
func (s ColorSpace) String() string {
	switch s {
	case SpaceRGB:
		return "RGB"
	case SpaceYUV:
		return "YUV"
	default:
		return "Unknown"
	}
}

// ColorFormat identifies one concrete pixel encoding.
type ColorFormat uint8

const (
	// Unknown is the sentinel tag. It is never a valid image format.
	Unknown ColorFormat = iota

	// A8 is 8-bit alpha only.
	A8

	// RGB565 is 16-bit RGB: RRRRRGGG GGGBBBBB.
	RGB565

	// RGB888 is 24-bit RGB stored R, G, B.
	RGB888

	// ARGB1555 is 16-bit with a 1-bit alpha in the top bit.
	ARGB1555

	// RGBA5551 is 16-bit with a 1-bit alpha in the bottom bit.
	RGBA5551

	// ARGB4444 is 16-bit, one nibble per channel, alpha first.
	ARGB4444

	// RGBA4444 is 16-bit, one nibble per channel, alpha last.
	RGBA4444

	// ARGB8888 is 32-bit stored A, R, G, B.
	ARGB8888

	// RGBA8888 is 32-bit stored R, G, B, A.
	RGBA8888

	// Y8 is 8-bit luma only.
	Y8

	// I420 is planar 4:2:0: Y plane, then U, then V at quarter size.
	I420

	// YV12 is planar 4:2:0 with V before U.
	YV12

	// NV12 is semi-planar 4:2:0: Y plane, then interleaved U, V.
	NV12

	// NV21 is semi-planar 4:2:0 with V, U interleaving.
	NV21

	// YUYV is packed 4:2:2 stored Y0, U, Y1, V.
	YUYV

	// UYVY is packed 4:2:2 stored U, Y0, V, Y1.
	UYVY

	// I422 is planar 4:2:2: Y plane, then U and V at half width.
	I422

	// YUV444 is packed 4:4:4 stored Y, U, V.
	YUV444

	// formatCount is the number of tags, including Unknown.
	formatCount
)

// FlagRLE is reserved for future run-length encoded variants. Tags carrying
// it resolve to the unknown values until such variants are implemented.
const FlagRLE ColorFormat = 0x80

// info contains metadata about a color format.
type info struct {
	space      ColorSpace
	depth      int
	name       string
	planar     bool
	subsampled bool
	alpha      bool
}

var infoTable = [formatCount]info{
	Unknown:  {space: SpaceUnknown, name: "Unknown"},
	A8:       {space: SpaceRGB, depth: 8, name: "A8", alpha: true},
	RGB565:   {space: SpaceRGB, depth: 16, name: "RGB565"},
	RGB888:   {space: SpaceRGB, depth: 24, name: "RGB888"},
	ARGB1555: {space: SpaceRGB, depth: 16, name: "ARGB1555", alpha: true},
	RGBA5551: {space: SpaceRGB, depth: 16, name: "RGBA5551", alpha: true},
	ARGB4444: {space: SpaceRGB, depth: 16, name: "ARGB4444", alpha: true},
	RGBA4444: {space: SpaceRGB, depth: 16, name: "RGBA4444", alpha: true},
	ARGB8888: {space: SpaceRGB, depth: 32, name: "ARGB8888", alpha: true},
	RGBA8888: {space: SpaceRGB, depth: 32, name: "RGBA8888", alpha: true},
	Y8:       {space: SpaceYUV, depth: 8, name: "Y8"},
	I420:     {space: SpaceYUV, depth: 12, name: "I420", planar: true, subsampled: true},
	YV12:     {space: SpaceYUV, depth: 12, name: "YV12", planar: true, subsampled: true},
	NV12:     {space: SpaceYUV, depth: 12, name: "NV12", planar: true, subsampled: true},
	NV21:     {space: SpaceYUV, depth: 12, name: "NV21", planar: true, subsampled: true},
	YUYV:     {space: SpaceYUV, depth: 16, name: "YUYV", subsampled: true},
	UYVY:     {space: SpaceYUV, depth: 16, name: "UYVY", subsampled: true},
	I422:     {space: SpaceYUV, depth: 16, name: "I422", planar: true, subsampled: true},
	YUV444:   {space: SpaceYUV, depth: 24, name: "YUV444"},
}

func (f ColorFormat) info() info {
	if f >= formatCount {
		return infoTable[Unknown]
	}
	return infoTable[f]
}

// IsValid reports whether f is a concrete format.
func (f ColorFormat) IsValid() bool {
	return f > Unknown && f < formatCount
}

// Space returns the color space of f.
func (f ColorFormat) Space() ColorSpace { return f.info().space }

// Depth returns the number of bits per pixel, averaged over a macro-pixel
// for subsampled formats (12 for 4:2:0).
func (f ColorFormat) Depth() int { return f.info().depth }

// Name returns the human-readable name of f.
func (f ColorFormat) Name() string { return f.info().name }

// String implements fmt.Stringer.
func (f ColorFormat) String() string { return f.Name() }

// IsPlanar reports whether f stores its channels in separate planes.
func (f ColorFormat) IsPlanar() bool { return f.info().planar }

// IsSubsampled reports whether chroma is stored at lower resolution than
// luma. Subsampled images need whole macro-pixel coverage.
func (f ColorFormat) IsSubsampled() bool { return f.info().subsampled }

// HasAlpha reports whether f carries an alpha channel.
func (f ColorFormat) HasAlpha() bool { return f.info().alpha }

// BytesPerPixel returns the size of one pixel for packed, non-subsampled
// formats and 0 for everything else.
func (f ColorFormat) BytesPerPixel() int {
	in := f.info()
	if in.planar || in.subsampled || in.depth%8 != 0 {
		return 0
	}
	return in.depth / 8
}

// Space returns the color space of f. It is the function form of
// ColorFormat.Space.
func Space(f ColorFormat) ColorSpace { return f.Space() }

// Depth returns the bits per pixel of f.
func Depth(f ColorFormat) int { return f.Depth() }

// Name returns the display name of f.
func Name(f ColorFormat) string { return f.Name() }

// Formats returns every concrete format in tag order.
func Formats() []ColorFormat {
	out := make([]ColorFormat, 0, formatCount-1)
	for f := Unknown + 1; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}
