package pixrot

import (
	"github.com/pkg/errors"
)

// Sentinel errors. Returned errors wrap one of these with context.
var (
	// ErrNullPointer is returned when a buffer argument is nil or empty.
	ErrNullPointer = errors.New("pixrot: null buffer")

	// ErrFormatMismatch is returned when two images that must share a format
	// do not.
	ErrFormatMismatch = errors.New("pixrot: format mismatch")

	// ErrSizeMismatch is returned when geometry or buffer sizes do not match
	// what the operation requires.
	ErrSizeMismatch = errors.New("pixrot: size mismatch")

	// ErrUnsupportedFormat is returned when the selected backend does not
	// implement the format.
	ErrUnsupportedFormat = errors.New("pixrot: unsupported format")

	// ErrNotSupported is returned for structurally invalid requests, such as
	// an angle a backend has no case for.
	ErrNotSupported = errors.New("pixrot: not supported")

	// ErrAllocFailed is returned when the allocator cannot provide a buffer.
	ErrAllocFailed = errors.New("pixrot: allocation failed")
)

// Code is the closed result taxonomy of the engine.
type Code int

// Result codes.
const (
	CodeOK Code = iota
	CodeNullPointer
	CodeFormatMismatch
	CodeSizeMismatch
	CodeUnsupportedFormat
	CodeNotSupported
	CodeAllocFailed
	// CodeUnknown classifies errors that wrap no pixrot sentinel, such as
	// failures reported by an accelerator.
	CodeUnknown
)

var codeNames = [...]string{
	CodeOK:                "Ok",
	CodeNullPointer:       "NullPointer",
	CodeFormatMismatch:    "FormatMismatch",
	CodeSizeMismatch:      "SizeMismatch",
	CodeUnsupportedFormat: "UnsupportedFormat",
	CodeNotSupported:      "NotSupported",
	CodeAllocFailed:       "AllocFailed",
	CodeUnknown:           "Unknown",
}

// String returns the code name.
func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return "Unknown"
	}
	return codeNames[c]
}

var codeSentinels = []struct {
	err  error
	code Code
}{
	{ErrNullPointer, CodeNullPointer},
	{ErrFormatMismatch, CodeFormatMismatch},
	{ErrSizeMismatch, CodeSizeMismatch},
	{ErrUnsupportedFormat, CodeUnsupportedFormat},
	{ErrNotSupported, CodeNotSupported},
	{ErrAllocFailed, CodeAllocFailed},
}

// CodeOf classifies err. A nil error is CodeOK.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	for _, s := range codeSentinels {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return CodeUnknown
}
