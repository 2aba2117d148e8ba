package pixrot

import (
	"os"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Environment variables read by DetectCaps.
const (
	EnvNoSIMD = "PIXROT_NO_SIMD"
	EnvNoGPU  = "PIXROT_NO_GPU"
)

// Caps describes the execution resources available to an Engine.
// It is detected once at start-up and passed in, so backend choice is a
// run-time value that tests can fake.
type Caps struct {
	// SIMD reports a usable vector unit.
	SIMD bool

	// Extension names the vector extension backing SIMD ("asimd", "sve",
	// "sse4.1", "avx2"), or "" when SIMD is false.
	Extension string

	// GPU allows the engine to use a registered accelerator.
	GPU bool
}

// DetectCaps inspects the CPU and the environment.
func DetectCaps() Caps {
	c := Caps{GPU: true}

	switch runtime.GOARCH {
	case "arm64":
		switch {
		case cpu.ARM64.HasSVE:
			c.SIMD, c.Extension = true, "sve"
		case cpu.ARM64.HasASIMD:
			c.SIMD, c.Extension = true, "asimd"
		}
	case "amd64", "386":
		switch {
		case cpu.X86.HasAVX2:
			c.SIMD, c.Extension = true, "avx2"
		case cpu.X86.HasSSE41:
			c.SIMD, c.Extension = true, "sse4.1"
		}
	}

	if envSet(EnvNoSIMD) && c.SIMD {
		Logger().Warn("pixrot: SIMD disabled by environment", "extension", c.Extension)
		c.SIMD, c.Extension = false, ""
	}
	if envSet(EnvNoGPU) {
		Logger().Warn("pixrot: GPU disabled by environment")
		c.GPU = false
	}
	return c
}

func envSet(name string) bool {
	v := os.Getenv(name)
	return v != "" && v != "0"
}
