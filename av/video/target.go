package video

import "github.com/opd-ai/videoout/av/color"

// PresentedFrame is what the presenter hands to a render target.
type PresentedFrame struct {
	View   FrameView
	Format FormatDescriptor
	Matrix color.ColorMatrix

	// Flip requests a vertical flip (upside-down source).
	Flip bool

	// FormatChanged is set on the first presentation after the format or
	// display geometry changed; the target must reallocate before drawing.
	FormatChanged bool
}

// RenderTarget is the surface that owns textures and draws frames.
//
// Present must return without blocking indefinitely. IsFramePending reports
// whether the last presented frame is still queued for drawing.
type RenderTarget interface {
	Present(frame PresentedFrame)
	IsFramePending() bool
	IsVisible() bool
}

// ConsumptionSignaler is implemented by render targets that can announce a
// drawn frame. The presenter then blocks on the channel instead of relying
// on the poll interval alone.
type ConsumptionSignaler interface {
	FrameConsumed() <-chan struct{}
}

// DisplayConfig is the output geometry and default colour metadata set by
// Reconfig.
type DisplayConfig struct {
	Width  int
	Height int
	Flip   bool

	// Used for frames whose own colour metadata is auto.
	Colorimetry color.Colorimetry
	Levels      color.LevelRange
}
