package color

import "fmt"

// Colorimetry identifies the luma/chroma weighting standard a frame was
// encoded with.
type Colorimetry uint8

const (
	// ColorimetryAuto means the decoder did not report a standard.
	ColorimetryAuto Colorimetry = iota
	// BT601 is ITU-R BT.601 (SD video).
	BT601
	// BT709 is ITU-R BT.709 (HD video).
	BT709
	// SMPTE240M is the SMPTE 240M interim HD standard.
	SMPTE240M
	// RGB marks frames that already carry RGB components.
	RGB
	// XYZ marks CIE XYZ frames (not supported by the transform).
	XYZ
	// YCgCo marks YCgCo frames (not supported by the transform).
	YCgCo
)

// String returns a short human readable name.
func (c Colorimetry) String() string {
	switch c {
	case ColorimetryAuto:
		return "auto"
	case BT601:
		return "bt.601"
	case BT709:
		return "bt.709"
	case SMPTE240M:
		return "smpte-240m"
	case RGB:
		return "rgb"
	case XYZ:
		return "xyz"
	case YCgCo:
		return "ycgco"
	default:
		return fmt.Sprintf("colorimetry(%d)", uint8(c))
	}
}

// Coefficients holds the blue and red luma weights of a standard.
// The green weight is always derived as 1 - Kb - Kr.
type Coefficients struct {
	Kb float32
	Kr float32
}

// Kg returns the derived green luma weight.
func (k Coefficients) Kg() float32 {
	return 1 - k.Kb - k.Kr
}

// lumaCoefficients is indexed by Colorimetry. Zero entries are unsupported.
var lumaCoefficients = [...]Coefficients{
	BT601:     {Kb: 0.114, Kr: 0.299},
	BT709:     {Kb: 0.0722, Kr: 0.2126},
	SMPTE240M: {Kb: 0.087, Kr: 0.212},
}

// Coefficients returns the luma weights for c. ok is false for standards
// the transform cannot decode (auto, RGB, XYZ, YCgCo and unknown values).
func (c Colorimetry) Coefficients() (k Coefficients, ok bool) {
	if int(c) >= len(lumaCoefficients) {
		return Coefficients{}, false
	}
	k = lumaCoefficients[c]
	return k, k.Kb != 0 && k.Kr != 0
}

// LevelRange identifies the numeric span used by the encoded components.
type LevelRange uint8

const (
	// LevelsAuto means the decoder did not report a range.
	LevelsAuto LevelRange = iota
	// LevelsTV is studio range: luma 16-235, chroma 16-240 of 255.
	LevelsTV
	// LevelsPC is full range: 0-255 for every component.
	LevelsPC
)

// String returns a short human readable name.
func (l LevelRange) String() string {
	switch l {
	case LevelsAuto:
		return "auto"
	case LevelsTV:
		return "tv"
	case LevelsPC:
		return "pc"
	default:
		return fmt.Sprintf("levels(%d)", uint8(l))
	}
}

// Bounds are the normalized (0..1) limits of the luma and chroma components.
type Bounds struct {
	YLow  float32
	YHigh float32
	CLow  float32
	CHigh float32
}

// ChromaMid returns the neutral chroma value.
func (b Bounds) ChromaMid() float32 {
	return (b.CLow + b.CHigh) / 2
}

var levelBounds = [...]Bounds{
	LevelsAuto: {YLow: 0, YHigh: 1, CLow: 0, CHigh: 1},
	LevelsTV:   {YLow: 16. / 255., YHigh: 235. / 255., CLow: 16. / 255., CHigh: 240. / 255.},
	LevelsPC:   {YLow: 0, YHigh: 1, CLow: 0, CHigh: 1},
}

// Bounds returns the component limits of l. ok is false for ranges the
// transform refuses to guess (auto and unknown values); the returned bounds
// are then the full 0..1 span.
func (l LevelRange) Bounds() (b Bounds, ok bool) {
	if int(l) >= len(levelBounds) {
		return levelBounds[LevelsPC], false
	}
	return levelBounds[l], l != LevelsAuto
}
