//go:build !nogpu

package gpu

import (
	_ "embed"

	"github.com/gogpu/naga"
	"github.com/pkg/errors"
)

//go:embed shaders/rotate.wgsl
var rotateShaderWGSL string

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// CompileRotateShader compiles the rotation compute shader to SPIR-V bytes.
func CompileRotateShader() ([]byte, error) {
	spirv, err := naga.Compile(rotateShaderWGSL)
	if err != nil {
		return nil, errors.Wrap(err, "gpu: compile rotate shader")
	}
	if len(spirv) < 4 || spirvWord(spirv, 0) != spirvMagic {
		return nil, errors.New("gpu: compiled rotate shader is not SPIR-V")
	}
	return spirv, nil
}

// spirvWord reads little-endian word i of a SPIR-V byte stream.
func spirvWord(b []byte, i int) uint32 {
	return uint32(b[i*4]) |
		uint32(b[i*4+1])<<8 |
		uint32(b[i*4+2])<<16 |
		uint32(b[i*4+3])<<24
}
