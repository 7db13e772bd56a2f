package video

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/limits"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how long Present sleeps between checks of the
// render target's pending flag.
const DefaultPollInterval = 50 * time.Microsecond

// PresenterState is the lifecycle of the frame held by a Presenter.
type PresenterState int32

const (
	// StateIdle means no frame is waiting to be presented.
	StateIdle PresenterState = iota
	// StateFormatPending means a format change is being announced.
	StateFormatPending
	// StateReady means a frame is waiting for Present.
	StateReady
	// StatePresenting means Present handed the frame over and is waiting
	// for the render target to consume it.
	StatePresenting
)

// String returns the state name.
func (s PresenterState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormatPending:
		return "format-pending"
	case StateReady:
		return "ready"
	case StatePresenting:
		return "presenting"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Options configures a Presenter.
type Options struct {
	// PollInterval bounds each sleep of the back-pressure wait.
	PollInterval time.Duration
	// MaxWidth and MaxHeight reject oversized frames.
	MaxWidth  int
	MaxHeight int
	// TimeProvider is used for stats and the poll ticker.
	TimeProvider TimeProvider
}

// DefaultOptions returns the options used when none are given:
// a 50µs poll interval and the limits package frame size caps.
func DefaultOptions() Options {
	return Options{
		PollInterval: DefaultPollInterval,
		MaxWidth:     limits.MaxFrameWidth,
		MaxHeight:    limits.MaxFrameHeight,
	}
}

// Presenter hands decoded frames to a render target one at a time.
//
// The decode goroutine calls SubmitFrame and Reconfig; the display goroutine
// calls Present once per refresh. The frame slot holds at most one frame:
// submitting again before Present replaces it. Present blocks until the
// render target has drawn the frame, the target is hidden or Quit is called,
// so the decoder can never run more than one frame ahead of the display.
type Presenter struct {
	target       RenderTarget
	signaler     ConsumptionSignaler
	colors       *color.Property
	opts         Options
	timeProvider TimeProvider

	mu            sync.Mutex
	state         PresenterState
	display       DisplayConfig
	format        FormatDescriptor
	geometryDirty bool
	formatChanged bool
	hasFrame      bool
	pending       bool
	seq           uint64
	view          FrameView
	colorimetry   color.Colorimetry
	levels        color.LevelRange
	matrix        color.ColorMatrix

	// consumed carries at most one "slot emptied" token for WaitForConsumption.
	consumed chan struct{}
	quit     chan struct{}
	quitOnce sync.Once

	cbMu            sync.RWMutex
	onFormatChanged []func(FormatDescriptor)
	onReconfigured  []func(DisplayConfig)

	stats presenterStats
}

// NewPresenter creates a presenter drawing to target. colors supplies the
// picture controls; nil means neutral controls. Zero option fields take
// their DefaultOptions values.
func NewPresenter(target RenderTarget, colors *color.Property, opts Options) (*Presenter, error) {
	if target == nil {
		return nil, ErrNilRenderTarget
	}
	if colors == nil {
		colors = color.NewProperty(color.Neutral())
	}

	defaults := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaults.PollInterval
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = defaults.MaxWidth
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = defaults.MaxHeight
	}

	p := &Presenter{
		target:       target,
		colors:       colors,
		opts:         opts,
		timeProvider: getTimeProvider(opts.TimeProvider),
		matrix:       color.Identity(),
		consumed:     make(chan struct{}, 1),
		quit:         make(chan struct{}),
	}
	if s, ok := target.(ConsumptionSignaler); ok {
		p.signaler = s
	}
	colors.OnChanged(p.refreshMatrix)

	logrus.WithFields(logrus.Fields{
		"function":      "NewPresenter",
		"poll_interval": opts.PollInterval,
		"max_width":     opts.MaxWidth,
		"max_height":    opts.MaxHeight,
		"signaling":     p.signaler != nil,
	}).Info("Frame presenter created")

	return p, nil
}

// OnFormatChanged registers a callback invoked when the frame format or
// display geometry changes. It runs on the submitting goroutine before the
// new frame becomes visible to the render target.
func (p *Presenter) OnFormatChanged(fn func(FormatDescriptor)) {
	if fn == nil {
		return
	}
	p.cbMu.Lock()
	defer p.cbMu.Unlock()
	p.onFormatChanged = append(p.onFormatChanged, fn)
}

// OnReconfigured registers a callback invoked after every Reconfig.
func (p *Presenter) OnReconfigured(fn func(DisplayConfig)) {
	if fn == nil {
		return
	}
	p.cbMu.Lock()
	defer p.cbMu.Unlock()
	p.onReconfigured = append(p.onReconfigured, fn)
}

// SubmitFrame takes ownership of a decoded frame and makes it the next frame
// to present. A frame still waiting from an earlier submit is dropped.
//
// Frames of formats rejected by QueryFormat or with planes too small for
// their geometry are refused; the previous frame stays current.
func (p *Presenter) SubmitFrame(frame *DecodedFrame) error {
	if frame == nil {
		p.stats.rejected.Add(1)
		return ErrNilFrame
	}
	if p.IsClosed() {
		return ErrPresenterClosed
	}
	if QueryFormat(frame.Format) == 0 {
		p.stats.rejected.Add(1)
		logrus.WithFields(logrus.Fields{
			"function": "Presenter.SubmitFrame",
			"frame_id": frame.ID,
			"format":   frame.Format.String(),
		}).Warn("Rejecting frame with unsupported pixel format")
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, frame.Format)
	}

	view, err := newFrameView(frame, p.opts.MaxWidth, p.opts.MaxHeight)
	if err != nil {
		p.stats.rejected.Add(1)
		logrus.WithFields(logrus.Fields{
			"function": "Presenter.SubmitFrame",
			"frame_id": frame.ID,
			"format":   frame.Format.String(),
			"width":    frame.Width,
			"height":   frame.Height,
			"error":    err.Error(),
		}).Warn("Rejecting malformed frame")
		return fmt.Errorf("frame %d: %w", frame.ID, err)
	}

	p.mu.Lock()
	colorimetry, levels := resolveColor(frame, p.display)
	desc := newFormatDescriptor(frame, p.display, colorimetry, levels)
	changed := p.geometryDirty || !p.format.Equal(desc)
	if changed {
		p.geometryDirty = false
		p.state = StateFormatPending
	}
	p.mu.Unlock()

	if changed {
		p.stats.formats.Add(1)
		logrus.WithFields(logrus.Fields{
			"function": "Presenter.SubmitFrame",
			"frame_id": frame.ID,
			"format":   desc.String(),
		}).Info("Video format changed")
		p.notifyFormatChanged(desc)
	}

	matrix := p.colors.Matrix(colorimetry, levels)

	p.mu.Lock()
	if p.pending {
		p.stats.dropped.Add(1)
		logrus.WithFields(logrus.Fields{
			"function":    "Presenter.SubmitFrame",
			"frame_id":    frame.ID,
			"replaced_id": p.view.FrameID,
		}).Debug("Replacing frame that was never presented")
	}
	// The descriptor is published with the view it describes.
	p.seq++
	p.view = view
	p.format = desc
	p.matrix = matrix
	p.colorimetry = colorimetry
	p.levels = levels
	p.hasFrame = true
	p.pending = true
	if changed {
		p.formatChanged = true
	}
	p.state = StateReady
	p.drainConsumedLocked()
	p.mu.Unlock()

	p.stats.submitted.Add(1)
	return nil
}

// Present hands the pending frame to the render target and waits until the
// target has consumed it. It is a no-op when nothing is pending or after
// Quit. The wait ends early when the target becomes hidden or Quit is called.
func (p *Presenter) Present() {
	if p.IsClosed() {
		return
	}

	p.mu.Lock()
	if !p.pending {
		p.mu.Unlock()
		return
	}
	frame := PresentedFrame{
		View:          p.view,
		Format:        p.format,
		Matrix:        p.matrix,
		Flip:          p.display.Flip,
		FormatChanged: p.formatChanged,
	}
	seq := p.seq
	p.formatChanged = false
	p.state = StatePresenting
	p.mu.Unlock()

	p.target.Present(frame)
	wait := p.waitForTarget()

	if p.IsClosed() {
		logrus.WithFields(logrus.Fields{
			"function": "Presenter.Present",
			"frame_id": frame.View.FrameID,
		}).Debug("Presenter quit before the frame was consumed")
		return
	}

	p.mu.Lock()
	current := p.seq == seq
	if current {
		p.pending = false
		p.state = StateIdle
	}
	p.mu.Unlock()

	if current {
		p.signalConsumed()
	}
	p.stats.recordPresent(wait, p.timeProvider.Now())

	logrus.WithFields(logrus.Fields{
		"function":       "Presenter.Present",
		"frame_id":       frame.View.FrameID,
		"format_changed": frame.FormatChanged,
		"wait":           wait,
	}).Debug("Frame presented")
}

// waitForTarget blocks while the target is visible and still has the frame
// queued. It returns how long it waited.
func (p *Presenter) waitForTarget() time.Duration {
	if !p.target.IsVisible() || !p.target.IsFramePending() {
		return 0
	}

	start := p.timeProvider.Now()
	ticker := p.timeProvider.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	var consumed <-chan struct{}
	if p.signaler != nil {
		consumed = p.signaler.FrameConsumed()
	}

	for p.target.IsVisible() && p.target.IsFramePending() {
		if p.IsClosed() {
			break
		}
		select {
		case <-p.quit:
		case <-consumed:
		case <-ticker.C:
		}
	}
	return p.timeProvider.Now().Sub(start)
}

// WaitForConsumption blocks the producer until the submitted frame has been
// presented. It returns ErrPresenterClosed after Quit and ctx.Err() when the
// context ends first.
func (p *Presenter) WaitForConsumption(ctx context.Context) error {
	for {
		p.mu.Lock()
		pending := p.pending
		p.mu.Unlock()

		if !pending {
			return nil
		}
		if p.IsClosed() {
			return ErrPresenterClosed
		}

		select {
		case <-p.consumed:
		case <-p.quit:
			return ErrPresenterClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Redraw presents the current frame again without waiting, e.g. after the
// surface was exposed. It reports whether a frame was drawn.
func (p *Presenter) Redraw() bool {
	if p.IsClosed() {
		return false
	}

	p.mu.Lock()
	if !p.hasFrame {
		p.mu.Unlock()
		return false
	}
	frame := PresentedFrame{
		View:          p.view,
		Format:        p.format,
		Matrix:        p.matrix,
		Flip:          p.display.Flip,
		FormatChanged: p.formatChanged,
	}
	p.mu.Unlock()

	p.target.Present(frame)
	p.stats.redraws.Add(1)
	return true
}

// Reconfig updates the display geometry and orientation. A change of size
// forces the next submitted frame to be announced as a format change.
func (p *Presenter) Reconfig(cfg DisplayConfig) {
	p.mu.Lock()
	resized := cfg.Width != p.display.Width || cfg.Height != p.display.Height
	if resized {
		p.geometryDirty = true
	}
	p.display = cfg
	p.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":    "Presenter.Reconfig",
		"width":       cfg.Width,
		"height":      cfg.Height,
		"flip":        cfg.Flip,
		"colorimetry": cfg.Colorimetry.String(),
		"levels":      cfg.Levels.String(),
		"resized":     resized,
	}).Info("Display reconfigured")

	p.cbMu.RLock()
	callbacks := make([]func(DisplayConfig), len(p.onReconfigured))
	copy(callbacks, p.onReconfigured)
	p.cbMu.RUnlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

// Quit unblocks any Present in progress and turns later calls into no-ops.
// It is safe to call more than once and from any goroutine.
func (p *Presenter) Quit() {
	p.quitOnce.Do(func() {
		close(p.quit)
		logrus.WithFields(logrus.Fields{
			"function": "Presenter.Quit",
		}).Info("Frame presenter quit")
	})
}

// IsClosed reports whether Quit has been called.
func (p *Presenter) IsClosed() bool {
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}

// State returns the current presenter state.
func (p *Presenter) State() PresenterState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsPending reports whether a submitted frame has not been presented yet.
func (p *Presenter) IsPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Format returns the descriptor of the current frame format.
func (p *Presenter) Format() FormatDescriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format
}

// Display returns the last display configuration.
func (p *Presenter) Display() DisplayConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.display
}

// Matrix returns the colour matrix attached to the current frame.
func (p *Presenter) Matrix() color.ColorMatrix {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.matrix
}

// Stats returns a snapshot of presenter counters.
func (p *Presenter) Stats() Stats {
	return p.stats.snapshot()
}

// refreshMatrix recomputes the matrix of the current frame after a picture
// control change so Redraw and a pending Present use the new controls.
func (p *Presenter) refreshMatrix(color.PictureControls) {
	p.mu.Lock()
	if !p.hasFrame {
		p.mu.Unlock()
		return
	}
	colorimetry, levels, seq := p.colorimetry, p.levels, p.seq
	p.mu.Unlock()

	m := p.colors.Matrix(colorimetry, levels)

	p.mu.Lock()
	if p.seq == seq {
		p.matrix = m
	}
	p.mu.Unlock()
}

func (p *Presenter) notifyFormatChanged(desc FormatDescriptor) {
	p.cbMu.RLock()
	callbacks := make([]func(FormatDescriptor), len(p.onFormatChanged))
	copy(callbacks, p.onFormatChanged)
	p.cbMu.RUnlock()

	for _, fn := range callbacks {
		fn(desc)
	}
}

// drainConsumedLocked discards a token left over from an earlier frame.
// p.mu must be held.
func (p *Presenter) drainConsumedLocked() {
	select {
	case <-p.consumed:
	default:
	}
}

func (p *Presenter) signalConsumed() {
	select {
	case p.consumed <- struct{}{}:
	default:
	}
}

// resolveColor picks the colour parameters for frame, falling back to the
// display configuration for values the decoder left on auto. Packed RGB
// formats are always treated as RGB input.
func resolveColor(frame *DecodedFrame, display DisplayConfig) (color.Colorimetry, color.LevelRange) {
	colorimetry, levels := frame.Colorimetry, frame.Levels
	if colorimetry == color.ColorimetryAuto {
		colorimetry = display.Colorimetry
	}
	if levels == color.LevelsAuto {
		levels = display.Levels
	}
	if frame.Format.IsRGB() {
		colorimetry = color.RGB
		if levels == color.LevelsAuto {
			levels = color.LevelsPC
		}
	}
	return colorimetry, levels
}
