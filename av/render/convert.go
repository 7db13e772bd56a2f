package render

import (
	"fmt"
	"image"

	"github.com/goki/mat32"
	"golang.org/x/image/draw"

	"github.com/opd-ai/videoout/av/video"
)

// sampler reads the three encoded components of pixel (x, y), normalised
// to 0..1, in the order the colour matrix expects them.
type sampler func(x, y int) (c0, c1, c2 float32)

const inv255 = 1.0 / 255.0

func norm(b byte) float32 {
	return float32(b) * inv255
}

// newSampler returns the reader for v's pixel layout.
func newSampler(v video.FrameView) (sampler, error) {
	p0, p1, p2 := v.Planes[0], v.Planes[1], v.Planes[2]
	s0, s1, s2 := v.Strides[0], v.Strides[1], v.Strides[2]

	switch v.Format {
	case video.FormatI420:
		return func(x, y int) (float32, float32, float32) {
			cy := y / 2
			cx := x / 2
			return norm(p0[y*s0+x]), norm(p1[cy*s1+cx]), norm(p2[cy*s2+cx])
		}, nil
	case video.FormatNV12, video.FormatNV21:
		cbOff, crOff := 0, 1
		if v.Format == video.FormatNV21 {
			cbOff, crOff = 1, 0
		}
		return func(x, y int) (float32, float32, float32) {
			i := (y/2)*s1 + (x/2)*2
			return norm(p0[y*s0+x]), norm(p1[i+cbOff]), norm(p1[i+crOff])
		}, nil
	case video.FormatYUYV:
		return func(x, y int) (float32, float32, float32) {
			i := y*s0 + (x/2)*4
			return norm(p0[i+(x&1)*2]), norm(p0[i+1]), norm(p0[i+3])
		}, nil
	case video.FormatUYVY:
		return func(x, y int) (float32, float32, float32) {
			i := y*s0 + (x/2)*4
			return norm(p0[i+1+(x&1)*2]), norm(p0[i]), norm(p0[i+2])
		}, nil
	case video.FormatRGBA:
		return func(x, y int) (float32, float32, float32) {
			i := y*s0 + x*4
			return norm(p0[i]), norm(p0[i+1]), norm(p0[i+2])
		}, nil
	case video.FormatBGRA:
		return func(x, y int) (float32, float32, float32) {
			i := y*s0 + x*4
			return norm(p0[i+2]), norm(p0[i+1]), norm(p0[i])
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnreadableFormat, v.Format)
	}
}

// ConvertFrame draws f into a new RGBA image through its colour matrix,
// scaled to the display size with scaler and flipped when requested.
// A nil scaler selects bilinear filtering.
func ConvertFrame(f video.PresentedFrame, scaler draw.Scaler) (*image.RGBA, error) {
	v := f.View
	if v.Format.IsHardware() {
		return nil, fmt.Errorf("%w: %s", ErrOpaqueSurface, v.Format)
	}
	sample, err := newSampler(v)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	m := f.Matrix
	for y := 0; y < v.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+v.Width*4]
		for x := 0; x < v.Width; x++ {
			r, g, b := m.Transform(sample(x, y))
			i := x * 4
			row[i] = to8(r)
			row[i+1] = to8(g)
			row[i+2] = to8(b)
			row[i+3] = 0xff
		}
	}

	out := img
	dw, dh := f.Format.DisplayWidth, f.Format.DisplayHeight
	if dw > 0 && dh > 0 && (dw != v.Width || dh != v.Height) {
		if scaler == nil {
			scaler = draw.BiLinear
		}
		out = image.NewRGBA(image.Rect(0, 0, dw, dh))
		scaler.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	}

	if f.Flip {
		flipVertical(out)
	}
	return out, nil
}

func to8(v float32) uint8 {
	return uint8(mat32.Clamp(v, 0, 1)*255 + 0.5)
}

func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowLen := img.Bounds().Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
