package render

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/av/video"
)

func TestSoftwareTarget_Defaults(t *testing.T) {
	target := NewSoftwareTarget()

	assert.True(t, target.IsVisible())
	assert.False(t, target.IsFramePending())
	assert.Nil(t, target.Image())

	drew, err := target.Consume()
	assert.False(t, drew)
	assert.NoError(t, err)
}

func TestSoftwareTarget_PresentAndConsume(t *testing.T) {
	target := NewSoftwareTarget()

	frame := i420Frame(4, 4, 235, 128, 128)
	frame.FormatChanged = true
	target.Present(frame)
	assert.True(t, target.IsFramePending())

	drew, err := target.Consume()
	require.NoError(t, err)
	assert.True(t, drew)
	assert.False(t, target.IsFramePending())

	select {
	case <-target.FrameConsumed():
	default:
		t.Fatal("consumption was not signalled")
	}

	img := target.Image()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())

	stats := target.Stats()
	assert.Equal(t, uint64(1), stats.Presented)
	assert.Equal(t, uint64(1), stats.Drawn)
	assert.Equal(t, uint64(1), stats.Reallocations)
	assert.Zero(t, stats.Failures)
}

func TestSoftwareTarget_HardwareSurfaceAcknowledged(t *testing.T) {
	target := NewSoftwareTarget()
	target.Present(video.PresentedFrame{
		View: video.FrameView{Format: video.FormatVAAPI, Width: 64, Height: 64, Surface: uintptr(9)},
	})

	drew, err := target.Consume()
	assert.True(t, drew)
	assert.NoError(t, err)
	assert.False(t, target.IsFramePending())
	assert.Nil(t, target.Image())
}

func TestSoftwareTarget_BadFrameDoesNotStall(t *testing.T) {
	target := NewSoftwareTarget()
	target.Present(video.PresentedFrame{View: video.FrameView{Format: video.FormatUnknown, Width: 2, Height: 2}})

	drew, err := target.Consume()
	assert.True(t, drew)
	assert.True(t, errors.Is(err, ErrUnreadableFormat))
	assert.False(t, target.IsFramePending())
	assert.Equal(t, uint64(1), target.Stats().Failures)
}

func TestSoftwareTarget_Visibility(t *testing.T) {
	target := NewSoftwareTarget()
	target.SetVisible(false)
	assert.False(t, target.IsVisible())
	target.SetVisible(true)
	assert.True(t, target.IsVisible())
}

func TestSoftwareTarget_RunStopsWithContext(t *testing.T) {
	target := NewSoftwareTarget()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- target.Run(ctx, time.Millisecond) }()

	target.Present(i420Frame(2, 2, 16, 128, 128))
	require.Eventually(t, func() bool { return !target.IsFramePending() }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSoftwareTarget_DrivesPresenter(t *testing.T) {
	target := NewSoftwareTarget()
	colors := color.NewProperty(color.Neutral())

	presenter, err := video.NewPresenter(target, colors, video.Options{PollInterval: time.Millisecond})
	require.NoError(t, err)
	defer presenter.Quit()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = target.Run(ctx, time.Millisecond) }()

	presenter.Reconfig(video.DisplayConfig{Width: 8, Height: 8, Flip: true})

	frame := &video.DecodedFrame{
		ID:          1,
		Format:      video.FormatI420,
		Width:       4,
		Height:      4,
		Colorimetry: color.BT601,
		Levels:      color.LevelsTV,
	}
	frame.Planes[0] = fill(16, 235)
	frame.Planes[1] = fill(4, 128)
	frame.Planes[2] = fill(4, 128)
	require.NoError(t, presenter.SubmitFrame(frame))

	presented := make(chan struct{})
	go func() {
		presenter.Present()
		close(presented)
	}()

	select {
	case <-presented:
	case <-time.After(2 * time.Second):
		t.Fatal("Present did not return after the target drew the frame")
	}

	img := target.Image()
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 0, 0))
	assert.Equal(t, uint64(1), target.Stats().Reallocations)
}
