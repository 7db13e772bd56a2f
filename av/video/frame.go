package video

import (
	"fmt"
	"time"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/limits"
)

// DecodedFrame is a frame handed over by the decode pipeline.
//
// The presenter takes ownership on SubmitFrame: the decoder must not write to
// the planes afterwards. ID increases monotonically per stream.
type DecodedFrame struct {
	ID     uint64
	Format PixelFormat
	Width  int
	Height int

	// Planes and Strides describe CPU-readable formats. A zero stride
	// means rows are tightly packed.
	Planes  [3][]byte
	Strides [3]int

	// Surface carries the opaque handle of hardware formats.
	Surface any

	// Colorimetry and Levels as reported by the decoder; auto values fall
	// back to the display configuration.
	Colorimetry color.Colorimetry
	Levels      color.LevelRange

	Timestamp time.Duration
}

// FrameView is the lightweight per-frame wrapper passed to render targets:
// plane slices trimmed to the visible rows plus their strides.
type FrameView struct {
	FrameID   uint64
	Format    PixelFormat
	Width     int
	Height    int
	Planes    [3][]byte
	Strides   [3]int
	Surface   any
	Timestamp time.Duration
}

// PlaneCount returns the number of populated planes.
func (v FrameView) PlaneCount() int {
	return v.Format.PlaneCount()
}

// newFrameView validates frame against its format and size limits and builds
// the view handed to the render target.
func newFrameView(frame *DecodedFrame, maxWidth, maxHeight int) (FrameView, error) {
	if err := limits.ValidateFrameDimensions(frame.Width, frame.Height, maxWidth, maxHeight); err != nil {
		return FrameView{}, err
	}

	view := FrameView{
		FrameID:   frame.ID,
		Format:    frame.Format,
		Width:     frame.Width,
		Height:    frame.Height,
		Surface:   frame.Surface,
		Timestamp: frame.Timestamp,
	}

	if frame.Format.IsHardware() {
		if frame.Surface == nil {
			return FrameView{}, fmt.Errorf("%w: %s frame without surface", ErrMissingSurface, frame.Format)
		}
		return view, nil
	}

	for i := 0; i < frame.Format.PlaneCount(); i++ {
		rowBytes, rows := frame.Format.planeGeometry(i, frame.Width, frame.Height)
		stride := frame.Strides[i]
		if stride == 0 {
			stride = rowBytes
		}
		if err := limits.ValidatePlane(frame.Planes[i], stride, rowBytes, rows); err != nil {
			return FrameView{}, fmt.Errorf("plane %d: %w", i, err)
		}
		view.Planes[i] = frame.Planes[i][:limits.MinPlaneSize(stride, rowBytes, rows)]
		view.Strides[i] = stride
	}
	return view, nil
}
