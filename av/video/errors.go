package video

import "errors"

// Sentinel errors for video package operations.
// These errors enable reliable error classification using errors.Is().

// Frame submission errors.
var (
	// ErrNilFrame indicates SubmitFrame was called without a frame.
	ErrNilFrame = errors.New("video frame cannot be nil")

	// ErrUnsupportedFormat indicates a pixel format QueryFormat rejects.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrMissingSurface indicates a hardware frame without its surface handle.
	ErrMissingSurface = errors.New("hardware frame has no surface")
)

// Presenter lifecycle errors.
var (
	// ErrNilRenderTarget indicates a presenter was built without a render target.
	ErrNilRenderTarget = errors.New("render target cannot be nil")

	// ErrPresenterClosed indicates Quit has been called.
	ErrPresenterClosed = errors.New("presenter has quit")
)
