//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/pixrot/pixfmt"
)

// Mode is a texturing unit pixel mode.
type Mode uint8

// Hardware modes. ModeNone marks formats the unit cannot sample.
const (
	ModeNone Mode = iota
	ModeRGB565
	ModeRGB888
	ModeARGB4444
	ModeRGBA4444
	ModeARGB8888
	ModeRGBA8888
)

type modeInfo struct {
	name    string
	bpp     int
	texture gputypes.TextureFormat
}

var modeTable = [...]modeInfo{
	ModeNone:     {name: "none", texture: gputypes.TextureFormatUndefined},
	ModeRGB565:   {name: "rgb565", bpp: 2, texture: gputypes.TextureFormatUndefined},
	ModeRGB888:   {name: "rgb888", bpp: 3, texture: gputypes.TextureFormatUndefined},
	ModeARGB4444: {name: "argb4444", bpp: 2, texture: gputypes.TextureFormatUndefined},
	ModeRGBA4444: {name: "rgba4444", bpp: 2, texture: gputypes.TextureFormatUndefined},
	ModeARGB8888: {name: "argb8888", bpp: 4, texture: gputypes.TextureFormatUndefined},
	ModeRGBA8888: {name: "rgba8888", bpp: 4, texture: gputypes.TextureFormatRGBA8Unorm},
}

// ModeOf maps a color format to its hardware mode. The 1-bit and 5-bit alpha
// variants, pure alpha and every YUV format have no mode: the unit cannot
// sample them correctly.
func ModeOf(f pixfmt.ColorFormat) (Mode, bool) {
	switch f {
	case pixfmt.RGB565:
		return ModeRGB565, true
	case pixfmt.RGB888:
		return ModeRGB888, true
	case pixfmt.ARGB4444:
		return ModeARGB4444, true
	case pixfmt.RGBA4444:
		return ModeRGBA4444, true
	case pixfmt.ARGB8888:
		return ModeARGB8888, true
	case pixfmt.RGBA8888:
		return ModeRGBA8888, true
	}
	return ModeNone, false
}

func (m Mode) info() modeInfo {
	if int(m) >= len(modeTable) {
		return modeTable[ModeNone]
	}
	return modeTable[m]
}

// BytesPerPixel returns the texel size, or 0 for ModeNone.
func (m Mode) BytesPerPixel() int { return m.info().bpp }

// TextureFormat returns the WebGPU texture format with the same memory
// layout, or TextureFormatUndefined when none exists.
func (m Mode) TextureFormat() gputypes.TextureFormat { return m.info().texture }

// String returns the mode name.
func (m Mode) String() string { return m.info().name }
