package av

import (
	"time"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/av/video"
	"github.com/opd-ai/videoout/limits"
)

// Options contains Output configuration.
type Options struct {
	// Initial picture controls in -1..1, 0 is neutral. Values outside the
	// range are clamped when the matrix is built.
	Brightness float32
	Contrast   float32
	Saturation float32
	Hue        float32

	// PollInterval bounds each sleep while waiting for the render target.
	PollInterval time.Duration

	// Frames larger than this are rejected.
	MaxFrameWidth  int
	MaxFrameHeight int

	// TimeProvider overrides the clock; nil uses the system clock.
	TimeProvider video.TimeProvider
}

// NewOptions returns Options with neutral picture controls.
func NewOptions() *Options {
	return &Options{
		PollInterval:   video.DefaultPollInterval,
		MaxFrameWidth:  limits.MaxFrameWidth,
		MaxFrameHeight: limits.MaxFrameHeight,
	}
}

func (o *Options) controls() color.PictureControls {
	return color.PictureControls{
		Brightness: o.Brightness,
		Contrast:   o.Contrast,
		Saturation: o.Saturation,
		Hue:        o.Hue,
	}
}

func (o *Options) presenterOptions() video.Options {
	return video.Options{
		PollInterval: o.PollInterval,
		MaxWidth:     o.MaxFrameWidth,
		MaxHeight:    o.MaxFrameHeight,
		TimeProvider: o.TimeProvider,
	}
}
