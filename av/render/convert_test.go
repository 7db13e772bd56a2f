package render

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"github.com/opd-ai/videoout/av/color"
	"github.com/opd-ai/videoout/av/video"
)

func fill(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

// i420Frame builds a tightly packed I420 frame with uniform planes.
func i420Frame(width, height int, y, cb, cr byte) video.PresentedFrame {
	cw, ch := (width+1)/2, (height+1)/2
	view := video.FrameView{
		Format:  video.FormatI420,
		Width:   width,
		Height:  height,
		Strides: [3]int{width, cw, cw},
	}
	view.Planes[0] = fill(width*height, y)
	view.Planes[1] = fill(cw*ch, cb)
	view.Planes[2] = fill(cw*ch, cr)
	return video.PresentedFrame{
		View:   view,
		Format: video.FormatDescriptor{PixelFormat: video.FormatI420, Width: width, Height: height},
		Matrix: color.ComputeMatrix(color.BT601, color.LevelsTV, 0, 0, 0, 0),
	}
}

func packedFrame(format video.PixelFormat, width, height int, data []byte, matrix color.ColorMatrix) video.PresentedFrame {
	bpp := 4
	if format == video.FormatYUYV || format == video.FormatUYVY {
		bpp = 2
	}
	view := video.FrameView{
		Format:  format,
		Width:   width,
		Height:  height,
		Strides: [3]int{width * bpp},
	}
	view.Planes[0] = data
	return video.PresentedFrame{
		View:   view,
		Format: video.FormatDescriptor{PixelFormat: format, Width: width, Height: height},
		Matrix: matrix,
	}
}

func pixel(img *image.RGBA, x, y int) [4]uint8 {
	i := img.PixOffset(x, y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

func assertNear(t *testing.T, want, got [4]uint8) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, float64(want[i]), float64(got[i]), 1, "component %d of %v vs %v", i, want, got)
	}
}

func TestConvertFrame_StudioRangeExtremes(t *testing.T) {
	tests := []struct {
		name string
		y    byte
		want [4]uint8
	}{
		{"reference white", 235, [4]uint8{255, 255, 255, 255}},
		{"reference black", 16, [4]uint8{0, 0, 0, 255}},
		{"below black clamps", 4, [4]uint8{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ConvertFrame(i420Frame(4, 4, tt.y, 128, 128), nil)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
			assert.Equal(t, tt.want, pixel(img, 3, 3))
		})
	}
}

func TestConvertFrame_OddDimensions(t *testing.T) {
	img, err := ConvertFrame(i420Frame(5, 3, 235, 128, 128), nil)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 4, 2))
}

func TestConvertFrame_SemiPlanarChromaOrder(t *testing.T) {
	build := func(format video.PixelFormat, uv []byte) video.PresentedFrame {
		f := i420Frame(2, 2, 120, 0, 0)
		f.View.Format = format
		f.View.Planes[1] = uv
		f.View.Planes[2] = nil
		f.View.Strides = [3]int{2, 2, 0}
		return f
	}

	nv12, err := ConvertFrame(build(video.FormatNV12, []byte{90, 200}), nil)
	require.NoError(t, err)
	nv21, err := ConvertFrame(build(video.FormatNV21, []byte{200, 90}), nil)
	require.NoError(t, err)

	assert.Equal(t, nv12.Pix, nv21.Pix)
	p := pixel(nv12, 0, 0)
	assert.Greater(t, p[0], p[2], "Cr above mid must push towards red")
}

func TestConvertFrame_PackedYUVOrder(t *testing.T) {
	m := color.ComputeMatrix(color.BT601, color.LevelsTV, 0, 0, 0, 0)

	yuyv, err := ConvertFrame(packedFrame(video.FormatYUYV, 2, 1, []byte{50, 90, 200, 200}, m), nil)
	require.NoError(t, err)
	uyvy, err := ConvertFrame(packedFrame(video.FormatUYVY, 2, 1, []byte{90, 50, 200, 200}, m), nil)
	require.NoError(t, err)

	assert.Equal(t, yuyv.Pix, uyvy.Pix)
	left, right := pixel(yuyv, 0, 0), pixel(yuyv, 1, 0)
	assert.Greater(t, right[1], left[1], "second luma sample is brighter")
}

func TestConvertFrame_RGBInputPassesThrough(t *testing.T) {
	m := color.ComputeMatrix(color.RGB, color.LevelsPC, 0, 0, 0, 0)

	rgba, err := ConvertFrame(packedFrame(video.FormatRGBA, 1, 1, []byte{200, 100, 50, 255}, m), nil)
	require.NoError(t, err)
	assertNear(t, [4]uint8{200, 100, 50, 255}, pixel(rgba, 0, 0))

	bgra, err := ConvertFrame(packedFrame(video.FormatBGRA, 1, 1, []byte{50, 100, 200, 255}, m), nil)
	require.NoError(t, err)
	assertNear(t, [4]uint8{200, 100, 50, 255}, pixel(bgra, 0, 0))
}

func TestConvertFrame_ScalesToDisplay(t *testing.T) {
	f := i420Frame(4, 4, 235, 128, 128)
	f.Format.DisplayWidth = 8
	f.Format.DisplayHeight = 6

	for _, scaler := range []draw.Scaler{nil, draw.NearestNeighbor, draw.CatmullRom} {
		img, err := ConvertFrame(f, scaler)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
		assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 7, 5))
	}
}

func TestConvertFrame_Flip(t *testing.T) {
	data := []byte{
		255, 255, 255, 255,
		0, 0, 0, 255,
	}
	f := packedFrame(video.FormatRGBA, 1, 2, data, color.Identity())

	img, err := ConvertFrame(f, nil)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 0, 0))

	f.Flip = true
	img, err = ConvertFrame(f, nil)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, pixel(img, 0, 0))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(img, 0, 1))
}

func TestConvertFrame_Errors(t *testing.T) {
	hw := video.PresentedFrame{View: video.FrameView{Format: video.FormatVDPAU, Width: 4, Height: 4, Surface: 1}}
	_, err := ConvertFrame(hw, nil)
	assert.True(t, errors.Is(err, ErrOpaqueSurface))

	unknown := video.PresentedFrame{View: video.FrameView{Format: video.FormatUnknown, Width: 4, Height: 4}}
	_, err = ConvertFrame(unknown, nil)
	assert.True(t, errors.Is(err, ErrUnreadableFormat))
}

func TestConvertFrame_PictureControlsApply(t *testing.T) {
	f := i420Frame(2, 2, 126, 128, 128)
	plain, err := ConvertFrame(f, nil)
	require.NoError(t, err)

	f.Matrix = color.ComputeMatrix(color.BT601, color.LevelsTV, 0.25, 0, 0, 0)
	bright, err := ConvertFrame(f, nil)
	require.NoError(t, err)

	assert.Greater(t, pixel(bright, 0, 0)[0], pixel(plain, 0, 0)[0])
}
