package color

import (
	"github.com/goki/mat32"
	"github.com/sirupsen/logrus"
)

// ComputeMatrix derives the display transform for frames encoded with the
// given colorimetry and level range, with the picture controls applied.
//
// The controls are user-facing values nominally in [-1, 1]; 0 is neutral for
// all four. Contrast and saturation map to a [0, 2] scale, hue maps to
// [-π, π] radians and brightness is clamped to [-1, 1] before being divided
// by the luma span.
//
// Unsupported colorimetry or level ranges yield the identity matrix so the
// frame is rendered as-is. ComputeMatrix touches no shared state and is safe
// to call from any goroutine.
func ComputeMatrix(colorimetry Colorimetry, levels LevelRange, brightness, contrast, saturation, hue float32) ColorMatrix {
	k, b, ok := resolve(colorimetry, levels)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function":    "ComputeMatrix",
			"colorimetry": colorimetry.String(),
			"levels":      levels.String(),
		}).Debug("Unsupported color parameters, using identity matrix")
		return Identity()
	}

	mat := ycbcrToRGB(k, b).Mul(shc(saturation, hue, contrast))
	if colorimetry == RGB {
		mat = rgbPassthrough(mat, k, b)
	}

	t := mat32.Clamp(brightness, -1, 1) / (b.YHigh - b.YLow)
	mat.set(0, 3, t)
	mat.set(1, 3, t)
	mat.set(2, 3, t)

	if colorimetry != RGB {
		mid := b.ChromaMid()
		mat.set(3, 0, b.YLow)
		mat.set(3, 1, mid)
		mat.set(3, 2, mid)
	}
	return mat
}

// resolve looks up the coefficients and bounds used for a colorimetry/level
// pair. RGB input is decoded with BT.601 studio-range tables because
// rgbPassthrough undoes that step again.
func resolve(colorimetry Colorimetry, levels LevelRange) (Coefficients, Bounds, bool) {
	if _, ok := levels.Bounds(); !ok {
		return Coefficients{}, Bounds{}, false
	}
	if colorimetry == RGB {
		k, _ := BT601.Coefficients()
		b, _ := LevelsTV.Bounds()
		return k, b, true
	}
	k, ok := colorimetry.Coefficients()
	if !ok {
		return Coefficients{}, Bounds{}, false
	}
	b, _ := levels.Bounds()
	return k, b, true
}

// rgbPassthrough post-multiplies the YCbCr decode by its inverse, so RGB
// input is first moved into YCbCr where saturation and hue apply, then moved
// back. The order is decode × SHC × encode for column vectors; swapping it
// would only be correct for neutral controls.
func rgbPassthrough(mat ColorMatrix, k Coefficients, b Bounds) ColorMatrix {
	return mat.Mul(rgbToYCbCr(k, b))
}

// ycbcrToRGB is the colour-difference reconstruction basis.
func ycbcrToRGB(k Coefficients, b Bounds) ColorMatrix {
	dy := 1 / (b.YHigh - b.YLow)
	dc := 2 / (b.CHigh - b.CLow)
	kg := k.Kg()
	return FromRows([4][4]float32{
		{dy, 0, (1 - k.Kr) * dc, 0},
		{dy, -dc * (1 - k.Kb) * k.Kb / kg, -dc * (1 - k.Kr) * k.Kr / kg, 0},
		{dy, dc * (1 - k.Kb), 0, 0},
		{0, 0, 0, 1},
	})
}

// rgbToYCbCr is the inverse of ycbcrToRGB for the same tables.
func rgbToYCbCr(k Coefficients, b Bounds) ColorMatrix {
	dy := b.YHigh - b.YLow
	dc := (b.CHigh - b.CLow) / 2
	kg := k.Kg()
	return FromRows([4][4]float32{
		{dy * k.Kr, dy * kg, dy * k.Kb, 0},
		{-dc * k.Kr / (1 - k.Kb), -dc * kg / (1 - k.Kb), dc, 0},
		{dc, -dc * kg / (1 - k.Kr), -dc * k.Kb / (1 - k.Kr), 0},
		{0, 0, 0, 1},
	})
}

// shc rotates the chroma plane by the hue angle, scales it by saturation and
// then scales the whole basis by contrast.
func shc(saturation, hue, contrast float32) ColorMatrix {
	s := mat32.Clamp(saturation+1, 0, 2)
	c := mat32.Clamp(contrast+1, 0, 2)
	h := mat32.Clamp(hue*mat32.Pi, -mat32.Pi, mat32.Pi)
	sin, cos := mat32.Sin(h), mat32.Cos(h)
	return FromRows([4][4]float32{
		{1, 0, 0, 0},
		{0, s * cos, s * sin, 0},
		{0, -s * sin, s * cos, 0},
		{0, 0, 0, 1},
	}).Scale(c)
}
