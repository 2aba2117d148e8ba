//go:build !nogpu

package gpu

import (
	"github.com/pkg/errors"

	"github.com/gogpu/pixrot"
)

// Status is the result of a texturing unit request.
type Status int

// Hardware statuses.
const (
	StatusOK Status = iota
	StatusBadParam
	StatusUnsupportedMode
	StatusBusy
	StatusTimeout
	StatusDeviceLost
)

// ErrHardware is wrapped by errors for statuses that are failures of the
// unit itself rather than of the request.
var ErrHardware = errors.New("gpu: texturing unit failure")

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadParam:
		return "bad parameter"
	case StatusUnsupportedMode:
		return "unsupported mode"
	case StatusBusy:
		return "busy"
	case StatusTimeout:
		return "timeout"
	case StatusDeviceLost:
		return "device lost"
	}
	return "unknown"
}

// Err maps the status to an engine error. StatusOK maps to nil.
func (s Status) Err() error {
	switch s {
	case StatusOK:
		return nil
	case StatusBadParam:
		return errors.Wrap(pixrot.ErrNotSupported, "gpu: texturing unit rejected parameters")
	case StatusUnsupportedMode:
		return errors.Wrap(pixrot.ErrUnsupportedFormat, "gpu: texturing unit rejected mode")
	}
	return errors.Wrapf(ErrHardware, "status %v", s)
}
