// Package limits provides centralized frame size limits for the video output.
// This ensures consistent validation across different components of the system.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MaxFrameWidth is the widest frame accepted by default.
	MaxFrameWidth = 8192

	// MaxFrameHeight is the tallest frame accepted by default.
	MaxFrameHeight = 8192

	// MaxFrameBytes is the absolute maximum size of a single plane (256MB).
	MaxFrameBytes = 256 * 1024 * 1024
)

var (
	// ErrInvalidDimensions indicates a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrFrameTooLarge indicates a frame or plane exceeds the size limit.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrPlaneTooSmall indicates a plane buffer is shorter than its layout requires.
	ErrPlaneTooSmall = errors.New("plane too small")

	// ErrInvalidStride indicates a stride shorter than one row of pixels.
	ErrInvalidStride = errors.New("invalid stride")
)

// ValidateFrameDimensions checks width and height against maxWidth and
// maxHeight. A zero limit selects MaxFrameWidth / MaxFrameHeight.
func ValidateFrameDimensions(width, height, maxWidth, maxHeight int) error {
	if maxWidth <= 0 {
		maxWidth = MaxFrameWidth
	}
	if maxHeight <= 0 {
		maxHeight = MaxFrameHeight
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > maxWidth || height > maxHeight {
		return fmt.Errorf("%w: %dx%d exceeds limit %dx%d", ErrFrameTooLarge, width, height, maxWidth, maxHeight)
	}
	return nil
}

// MinPlaneSize returns the number of bytes needed to hold rows rows of
// rowBytes bytes spaced stride bytes apart. The last row need not be padded.
func MinPlaneSize(stride, rowBytes, rows int) int {
	if rows <= 0 {
		return 0
	}
	return stride*(rows-1) + rowBytes
}

// ValidatePlane checks that plane can hold rows rows of rowBytes bytes laid
// out stride bytes apart.
// Returns an error with context including the actual and required sizes.
func ValidatePlane(plane []byte, stride, rowBytes, rows int) error {
	if stride < rowBytes {
		return fmt.Errorf("%w: stride %d shorter than row of %d bytes", ErrInvalidStride, stride, rowBytes)
	}
	need := MinPlaneSize(stride, rowBytes, rows)
	if need > MaxFrameBytes {
		return fmt.Errorf("%w: plane of %d bytes exceeds limit %d", ErrFrameTooLarge, need, MaxFrameBytes)
	}
	if len(plane) < need {
		return fmt.Errorf("%w: got %d bytes, need %d", ErrPlaneTooSmall, len(plane), need)
	}
	return nil
}
