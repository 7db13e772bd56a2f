package av

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/av/video"
)

// Output is a video output: a render target, the presenter feeding it and
// the picture controls applied to every frame.
//
// The decoder goroutine calls DrawImage and Reconfig, the display goroutine
// calls FlipPage. Picture controls may be changed from any goroutine.
type Output struct {
	presenter *video.Presenter
	colors    *color.Property
}

// NewOutput creates an output drawing to target. A nil options uses
// NewOptions.
func NewOutput(target video.RenderTarget, options *Options) (*Output, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if options == nil {
		options = NewOptions()
	}

	colors := color.NewProperty(options.controls())
	presenter, err := video.NewPresenter(target, colors, options.presenterOptions())
	if err != nil {
		return nil, fmt.Errorf("create presenter: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewOutput",
		"brightness": options.Brightness,
		"contrast":   options.Contrast,
		"saturation": options.Saturation,
		"hue":        options.Hue,
	}).Info("Video output created")

	return &Output{
		presenter: presenter,
		colors:    colors,
	}, nil
}

// QueryFormat reports whether the output can display pixel format f.
func QueryFormat(f video.PixelFormat) video.Capability {
	return video.QueryFormat(f)
}

// Reconfig sets the display geometry and default colour metadata. The next
// frame is announced through OnFormatChanged.
func (o *Output) Reconfig(cfg video.DisplayConfig) {
	o.presenter.Reconfig(cfg)
}

// DrawImage queues frame for the next FlipPage, replacing any frame that
// was not presented yet.
func (o *Output) DrawImage(frame *video.DecodedFrame) error {
	err := o.presenter.SubmitFrame(frame)
	if errors.Is(err, video.ErrPresenterClosed) {
		return fmt.Errorf("%w: %w", ErrOutputClosed, err)
	}
	return err
}

// FlipPage presents the queued frame and blocks until the render target
// has drawn it, the target is hidden or Quit is called.
func (o *Output) FlipPage() {
	o.presenter.Present()
}

// WaitForConsumption blocks until the queued frame was presented, ctx ends
// or the output is closed.
func (o *Output) WaitForConsumption(ctx context.Context) error {
	err := o.presenter.WaitForConsumption(ctx)
	if errors.Is(err, video.ErrPresenterClosed) {
		return fmt.Errorf("%w: %w", ErrOutputClosed, err)
	}
	return err
}

// Redraw re-presents the last frame, e.g. after a picture control change
// while paused. It reports whether there was a frame to redraw.
func (o *Output) Redraw() bool {
	return o.presenter.Redraw()
}

// Quit shuts the output down and releases any blocked FlipPage. It is safe
// to call more than once.
func (o *Output) Quit() {
	o.presenter.Quit()
}

// SetBrightness sets brightness in -1..1.
func (o *Output) SetBrightness(v float32) { o.colors.SetBrightness(v) }

// SetContrast sets contrast in -1..1.
func (o *Output) SetContrast(v float32) { o.colors.SetContrast(v) }

// SetSaturation sets saturation in -1..1.
func (o *Output) SetSaturation(v float32) { o.colors.SetSaturation(v) }

// SetHue sets hue in -1..1, mapped to -π..π.
func (o *Output) SetHue(v float32) { o.colors.SetHue(v) }

// SetPictureControls replaces all four controls at once.
func (o *Output) SetPictureControls(pc color.PictureControls) { o.colors.SetControls(pc) }

// PictureControls returns the current controls.
func (o *Output) PictureControls() color.PictureControls { return o.colors.Controls() }

// SetEqualizer sets a picture control by name.
func (o *Output) SetEqualizer(name string, value float32) error {
	switch strings.ToLower(name) {
	case "brightness":
		o.colors.SetBrightness(value)
	case "contrast":
		o.colors.SetContrast(value)
	case "saturation":
		o.colors.SetSaturation(value)
	case "hue":
		o.colors.SetHue(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return nil
}

// Equalizer returns a picture control by name.
func (o *Output) Equalizer(name string) (float32, error) {
	pc := o.colors.Controls()
	switch strings.ToLower(name) {
	case "brightness":
		return pc.Brightness, nil
	case "contrast":
		return pc.Contrast, nil
	case "saturation":
		return pc.Saturation, nil
	case "hue":
		return pc.Hue, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
}

// Format returns the negotiated frame format.
func (o *Output) Format() video.FormatDescriptor { return o.presenter.Format() }

// Display returns the configuration set by the last Reconfig.
func (o *Output) Display() video.DisplayConfig { return o.presenter.Display() }

// Matrix returns the colour matrix applied to the queued frame.
func (o *Output) Matrix() color.ColorMatrix { return o.presenter.Matrix() }

// State returns the presenter state.
func (o *Output) State() video.PresenterState { return o.presenter.State() }

// Stats returns presentation counters.
func (o *Output) Stats() video.Stats { return o.presenter.Stats() }

// OnFormatChanged registers a callback for format changes.
func (o *Output) OnFormatChanged(fn func(video.FormatDescriptor)) {
	o.presenter.OnFormatChanged(fn)
}

// OnReconfigured registers a callback for Reconfig calls.
func (o *Output) OnReconfigured(fn func(video.DisplayConfig)) {
	o.presenter.OnReconfigured(fn)
}

// OnPictureChanged registers a callback for picture control changes.
func (o *Output) OnPictureChanged(fn func(color.PictureControls)) {
	o.colors.OnChanged(fn)
}
