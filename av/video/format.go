package video

import (
	"fmt"

	"github.com/opd-ai/videoout/av/color"
)

// PixelFormat identifies the memory layout of a decoded frame.
type PixelFormat uint32

const (
	// FormatUnknown is the zero value and is never supported.
	FormatUnknown PixelFormat = iota
	// FormatI420 is planar 4:2:0: full Y plane, quarter-size U and V planes.
	FormatI420
	// FormatNV12 is semi-planar 4:2:0 with interleaved U,V.
	FormatNV12
	// FormatNV21 is semi-planar 4:2:0 with interleaved V,U.
	FormatNV21
	// FormatYUYV is packed 4:2:2 ordered Y0 U Y1 V.
	FormatYUYV
	// FormatUYVY is packed 4:2:2 ordered U Y0 V Y1.
	FormatUYVY
	// FormatRGBA is packed 8-bit R,G,B,A.
	FormatRGBA
	// FormatBGRA is packed 8-bit B,G,R,A.
	FormatBGRA
	// FormatVDPAU is an opaque VDPAU video surface.
	FormatVDPAU
	// FormatVAAPI is an opaque VA-API surface.
	FormatVAAPI
	// FormatVDA is an opaque VideoDecodeAcceleration surface.
	FormatVDA
)

var pixelFormatNames = map[PixelFormat]string{
	FormatUnknown: "unknown",
	FormatI420:    "i420",
	FormatNV12:    "nv12",
	FormatNV21:    "nv21",
	FormatYUYV:    "yuyv",
	FormatUYVY:    "uyvy",
	FormatRGBA:    "rgba",
	FormatBGRA:    "bgra",
	FormatVDPAU:   "vdpau",
	FormatVAAPI:   "vaapi",
	FormatVDA:     "vda",
}

// String returns the short format name.
func (f PixelFormat) String() string {
	if name, ok := pixelFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", uint32(f))
}

// IsHardware reports whether frames of this format carry an opaque surface
// instead of CPU-readable planes.
func (f PixelFormat) IsHardware() bool {
	return f == FormatVDPAU || f == FormatVAAPI || f == FormatVDA
}

// IsRGB reports whether the format stores RGB components.
func (f PixelFormat) IsRGB() bool {
	return f == FormatRGBA || f == FormatBGRA
}

// PlaneCount returns how many CPU planes a frame of this format has.
func (f PixelFormat) PlaneCount() int {
	switch f {
	case FormatI420:
		return 3
	case FormatNV12, FormatNV21:
		return 2
	case FormatYUYV, FormatUYVY, FormatRGBA, FormatBGRA:
		return 1
	default:
		return 0
	}
}

// planeGeometry returns the visible bytes per row and number of rows of
// plane i for a width x height frame.
func (f PixelFormat) planeGeometry(i, width, height int) (rowBytes, rows int) {
	halfW := (width + 1) / 2
	halfH := (height + 1) / 2
	switch f {
	case FormatI420:
		if i == 0 {
			return width, height
		}
		return halfW, halfH
	case FormatNV12, FormatNV21:
		if i == 0 {
			return width, height
		}
		return halfW * 2, halfH
	case FormatYUYV, FormatUYVY:
		return halfW * 4, height
	case FormatRGBA, FormatBGRA:
		return width * 4, height
	default:
		return 0, 0
	}
}

// Capability is the bitmask returned by format negotiation.
type Capability uint32

const (
	// CapSupported means frames of the format may be submitted.
	CapSupported Capability = 1 << iota
	// CapSupportedByHW means the render target converts the format on the GPU.
	CapSupportedByHW
	// CapFlip means the render target can flip the image vertically.
	CapFlip
)

// Has reports whether all bits of o are set.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

// QueryFormat returns the capabilities for a pixel format. Unsupported
// formats return zero and must never be submitted.
func QueryFormat(f PixelFormat) Capability {
	switch f {
	case FormatVDPAU, FormatVDA, FormatVAAPI,
		FormatI420, FormatNV12, FormatNV21,
		FormatYUYV, FormatUYVY,
		FormatBGRA, FormatRGBA:
		return CapSupported | CapSupportedByHW | CapFlip
	default:
		return 0
	}
}

// FormatDescriptor is the geometry/layout fingerprint of the frames being
// presented. A change means the render target must reallocate.
type FormatDescriptor struct {
	PixelFormat   PixelFormat
	Width         int
	Height        int
	DisplayWidth  int
	DisplayHeight int
	Colorimetry   color.Colorimetry
	Levels        color.LevelRange
}

// Equal reports whether two descriptors share dimensions and pixel layout.
// Display size and colour parameters are not compared.
func (d FormatDescriptor) Equal(o FormatDescriptor) bool {
	return d.PixelFormat == o.PixelFormat && d.Width == o.Width && d.Height == o.Height
}

// IsZero reports whether no frame has been described yet.
func (d FormatDescriptor) IsZero() bool {
	return d == FormatDescriptor{}
}

// String formats the descriptor for logs.
func (d FormatDescriptor) String() string {
	return fmt.Sprintf("%s %dx%d (display %dx%d, %s/%s)",
		d.PixelFormat, d.Width, d.Height, d.DisplayWidth, d.DisplayHeight, d.Colorimetry, d.Levels)
}

func newFormatDescriptor(frame *DecodedFrame, display DisplayConfig, colorimetry color.Colorimetry, levels color.LevelRange) FormatDescriptor {
	d := FormatDescriptor{
		PixelFormat:   frame.Format,
		Width:         frame.Width,
		Height:        frame.Height,
		DisplayWidth:  display.Width,
		DisplayHeight: display.Height,
		Colorimetry:   colorimetry,
		Levels:        levels,
	}
	if d.DisplayWidth <= 0 || d.DisplayHeight <= 0 {
		d.DisplayWidth, d.DisplayHeight = frame.Width, frame.Height
	}
	return d
}
