// Package pixrot converts and rotates raw pixel buffers.
//
// # Overview
//
// pixrot works on caller-owned byte buffers described by a color format from
// package pixfmt. Rotation runs on one of three interchangeable backends:
//
//   - Scalar: a per-pixel copy, always available
//   - SIMD: eight-lane masked gather and scatter (package lanes)
//   - GPU: a registered hardware texturing accelerator
//
// All backends produce byte-identical output. After a CPU backend writes the
// destination, the engine cleans the written byte range from the CPU cache
// through the configured CacheCleaner, so a DMA engine or GPU reading the
// buffer next sees the new contents.
//
// # Quick Start
//
//	img, err := pixrot.Create(640, 640, 480, pixfmt.RGB565)
//	if err != nil {
//	    return err
//	}
//	defer pixrot.Destroy(img)
//
//	out, _ := pixrot.Create(480, 480, 640, pixfmt.RGB565)
//	defer pixrot.Destroy(out)
//
//	err = pixrot.RotateImage(img, out, pixrot.Angle90)
//
// # Backend Selection
//
// NewEngine detects CPU capabilities with DetectCaps unless WithCaps is
// given. Each call picks the GPU when an accelerator can rotate the format,
// else SIMD when the CPU has a vector unit, else scalar. Planar and chroma
// subsampled formats have no backend and fail with ErrUnsupportedFormat.
// WithBackend forces one backend; a forced backend that cannot serve a
// request fails instead of substituting another.
//
// Accelerators are installed with RegisterAccelerator, usually through
// package gpu:
//
//	if err := gpu.Register(driverTexturer); err != nil {
//	    // rotations stay on the CPU
//	}
//
// The environment variables PIXROT_NO_SIMD=1 and PIXROT_NO_GPU=1 turn the
// corresponding backend off at detection time.
//
// # Errors
//
// Every operation validates its inputs in a fixed order (buffers, formats,
// geometry, format support, angle) and returns on the first violation
// without touching the destination. Errors wrap one of the package
// sentinels; use errors.Is or CodeOf to classify them.
package pixrot
