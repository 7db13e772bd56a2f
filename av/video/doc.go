// Package video hands decoded frames from the decode pipeline to a render
// target without tearing and without letting the decoder run ahead.
//
// # Architecture Overview
//
//	Decoder ──SubmitFrame──▶ Presenter ──Present──▶ RenderTarget
//	            │                │
//	            ▼                ▼
//	     OnFormatChanged   color.Property (matrix cache)
//
// The Presenter owns a single frame slot. The decode goroutine fills it with
// SubmitFrame; the display goroutine calls Present once per refresh, which
// hands the frame and its colour matrix to the render target and then waits
// until the target reports the frame as drawn.
//
// # Format Negotiation
//
// Before decoding, ask which pixel formats can be presented:
//
//	if video.QueryFormat(video.FormatNV12).Has(video.CapSupported) {
//	    // configure the decoder for NV12 output
//	}
//
// Supported formats are planar I420, NV12/NV21, packed YUYV/UYVY, packed
// RGBA/BGRA and the opaque VDPAU, VA-API and VDA surfaces. Anything else
// returns zero capabilities and is refused by SubmitFrame.
//
// # Presenting Frames
//
//	presenter, err := video.NewPresenter(target, colors, video.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	presenter.OnFormatChanged(func(d video.FormatDescriptor) {
//	    // reallocate textures for d.Width x d.Height
//	})
//
//	// decode goroutine
//	presenter.Reconfig(video.DisplayConfig{Width: 1920, Height: 1080})
//	err = presenter.SubmitFrame(frame)
//	err = presenter.WaitForConsumption(ctx)
//
//	// display goroutine, once per refresh
//	presenter.Present()
//
// A change of frame size or pixel format, or of display size through
// Reconfig, is announced exactly once through OnFormatChanged before the
// render target sees the new frame, and the next PresentedFrame carries
// FormatChanged.
//
// # Back-pressure
//
// Present waits while the render target is visible and still has the frame
// queued. The wait polls every Options.PollInterval (50µs by default); targets
// implementing ConsumptionSignaler wake it immediately instead. A hidden
// target or Quit ends the wait at once.
//
// # Shutdown
//
// Quit is idempotent and safe from any goroutine. It releases a blocked
// Present or WaitForConsumption and turns every later Present into a no-op
// that never touches the render target.
//
// # Deterministic Testing
//
// For reproducible tests, inject a custom TimeProvider through Options.
//
// # Thread Safety
//
// Presenter is safe for concurrent use. FrameView planes are shared with the
// render target read-only; the decoder must not reuse a submitted buffer.
package video
