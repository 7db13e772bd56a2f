package render

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/opd-ai/videoout/av/video"
)

var (
	// ErrOpaqueSurface indicates a hardware frame the CPU cannot read.
	ErrOpaqueSurface = errors.New("frame is an opaque hardware surface")

	// ErrUnreadableFormat indicates a pixel layout with no software reader.
	ErrUnreadableFormat = errors.New("no software reader for pixel format")
)

// TargetStats counts render target activity.
type TargetStats struct {
	Presented     uint64
	Drawn         uint64
	Reallocations uint64
	Failures      uint64
}

// SoftwareTarget is a CPU render target. Present queues a frame; Consume,
// called once per display refresh (or by Run), converts it to RGBA and
// clears the pending flag.
type SoftwareTarget struct {
	mu      sync.Mutex
	visible bool
	pending bool
	seq     uint64
	frame   video.PresentedFrame
	image   *image.RGBA
	scaler  draw.Scaler
	stats   TargetStats

	consumed chan struct{}
}

// NewSoftwareTarget creates a visible target using bilinear scaling.
func NewSoftwareTarget() *SoftwareTarget {
	logrus.WithFields(logrus.Fields{
		"function": "NewSoftwareTarget",
	}).Debug("Creating software render target")

	return &SoftwareTarget{
		visible:  true,
		scaler:   draw.BiLinear,
		consumed: make(chan struct{}, 1),
	}
}

// SetScaler selects the interpolation used to fit the display size,
// e.g. draw.NearestNeighbor or draw.CatmullRom.
func (t *SoftwareTarget) SetScaler(s draw.Scaler) {
	if s == nil {
		s = draw.BiLinear
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scaler = s
}

// Present queues frame for the next Consume.
func (t *SoftwareTarget) Present(frame video.PresentedFrame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if frame.FormatChanged {
		t.image = nil
		t.stats.Reallocations++
		logrus.WithFields(logrus.Fields{
			"function": "SoftwareTarget.Present",
			"format":   frame.Format.String(),
		}).Info("Reallocating render surface")
	}
	t.frame = frame
	t.pending = true
	t.seq++
	t.stats.Presented++
}

// IsFramePending reports whether a presented frame has not been drawn yet.
func (t *SoftwareTarget) IsFramePending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// IsVisible reports whether the surface is shown.
func (t *SoftwareTarget) IsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}

// SetVisible shows or hides the surface.
func (t *SoftwareTarget) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = visible
}

// FrameConsumed is signalled after every Consume that drew a frame.
func (t *SoftwareTarget) FrameConsumed() <-chan struct{} {
	return t.consumed
}

// Consume draws the pending frame. It reports whether there was one.
// Hardware surfaces are acknowledged without conversion; conversion errors
// still clear the pending flag so a bad frame never stalls the presenter.
func (t *SoftwareTarget) Consume() (bool, error) {
	t.mu.Lock()
	if !t.pending {
		t.mu.Unlock()
		return false, nil
	}
	frame, seq, scaler := t.frame, t.seq, t.scaler
	t.mu.Unlock()

	var img *image.RGBA
	var err error
	if frame.View.Format.IsHardware() {
		logrus.WithFields(logrus.Fields{
			"function": "SoftwareTarget.Consume",
			"frame_id": frame.View.FrameID,
			"format":   frame.View.Format.String(),
		}).Debug("Skipping conversion of hardware surface")
	} else {
		img, err = ConvertFrame(frame, scaler)
	}

	t.mu.Lock()
	if img != nil {
		t.image = img
	}
	if err != nil {
		t.stats.Failures++
	} else {
		t.stats.Drawn++
	}
	if t.seq == seq {
		t.pending = false
	}
	t.mu.Unlock()

	select {
	case t.consumed <- struct{}{}:
	default:
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "SoftwareTarget.Consume",
			"frame_id": frame.View.FrameID,
			"error":    err.Error(),
		}).Warn("Failed to draw frame")
		return true, err
	}
	return true, nil
}

// Run consumes frames every interval until ctx ends.
func (t *SoftwareTarget) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, _ = t.Consume()
		}
	}
}

// Image returns the last drawn image, or nil.
func (t *SoftwareTarget) Image() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.image
}

// Stats returns a snapshot of the target counters.
func (t *SoftwareTarget) Stats() TargetStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
