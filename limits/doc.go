// Package limits provides centralized frame size constants and validation
// functions for the video output pipeline. This package ensures consistent
// size enforcement between the presenter and render targets.
//
// # Frame Size Limits
//
//   - MaxFrameWidth / MaxFrameHeight (8192): the largest frame the pipeline
//     accepts. 8K UHD (7680x4320) and DCI 8K fit; anything larger is treated
//     as corrupt decoder output.
//
//   - MaxFrameBytes (256MB): the absolute maximum for a single plane. This
//     guards render targets against allocating from bogus stride values.
//
// # Validation Functions
//
//	err := limits.ValidateFrameDimensions(width, height, 0, 0)
//	if err != nil {
//	    // ErrInvalidDimensions or ErrFrameTooLarge
//	}
//
// Plane buffers are validated against their stride and visible rows:
//
//	err := limits.ValidatePlane(plane, stride, rowBytes, rows)
//
// # Error Types
//
//   - ErrInvalidDimensions: zero or negative width/height
//   - ErrFrameTooLarge: dimensions or plane size beyond the configured limit
//   - ErrPlaneTooSmall: the buffer cannot hold the rows its stride describes
//   - ErrInvalidStride: stride shorter than one row of pixels
package limits
