package av

import "errors"

// Sentinel errors for av package operations.
// Errors from the video and limits packages are wrapped, not replaced, so
// errors.Is works against their sentinels too.
var (
	// ErrNilTarget indicates NewOutput was given no render target.
	ErrNilTarget = errors.New("render target is nil")

	// ErrUnknownControl indicates an equalizer name other than brightness,
	// contrast, saturation or hue.
	ErrUnknownControl = errors.New("unknown picture control")

	// ErrOutputClosed indicates the output has been shut down.
	ErrOutputClosed = errors.New("output is closed")
)
