package color

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// PictureControls are the four user-adjustable picture settings.
// Every value is nominally in [-1, 1] with 0 meaning "no change".
type PictureControls struct {
	Brightness float32
	Contrast   float32
	Saturation float32
	Hue        float32
}

// Neutral returns controls that leave the image untouched.
func Neutral() PictureControls {
	return PictureControls{}
}

// IsNeutral reports whether all controls are at their neutral value.
func (pc PictureControls) IsNeutral() bool {
	return pc == PictureControls{}
}

// Matrix computes the display transform for these controls.
func (pc PictureControls) Matrix(colorimetry Colorimetry, levels LevelRange) ColorMatrix {
	return ComputeMatrix(colorimetry, levels, pc.Brightness, pc.Contrast, pc.Saturation, pc.Hue)
}

type matrixKey struct {
	colorimetry Colorimetry
	levels      LevelRange
}

// Property holds the current picture controls and caches the matrix most
// recently derived from them.
//
// Any setter invalidates the cache and notifies OnChanged callbacks after the
// lock has been released. Property is safe for concurrent use.
type Property struct {
	mu       sync.RWMutex
	controls PictureControls
	key      matrixKey
	matrix   ColorMatrix
	valid    bool

	cbMu      sync.RWMutex
	onChanged []func(PictureControls)
}

// NewProperty creates a property initialised with controls.
func NewProperty(controls PictureControls) *Property {
	logrus.WithFields(logrus.Fields{
		"function":   "NewProperty",
		"brightness": controls.Brightness,
		"contrast":   controls.Contrast,
		"saturation": controls.Saturation,
		"hue":        controls.Hue,
	}).Debug("Creating color property")

	return &Property{controls: controls}
}

// Controls returns a snapshot of the current picture controls.
func (p *Property) Controls() PictureControls {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.controls
}

// SetControls replaces all four controls at once.
func (p *Property) SetControls(controls PictureControls) {
	p.update(func(pc *PictureControls) { *pc = controls })
}

// SetBrightness updates the brightness control.
func (p *Property) SetBrightness(v float32) {
	p.update(func(pc *PictureControls) { pc.Brightness = v })
}

// SetContrast updates the contrast control.
func (p *Property) SetContrast(v float32) {
	p.update(func(pc *PictureControls) { pc.Contrast = v })
}

// SetSaturation updates the saturation control.
func (p *Property) SetSaturation(v float32) {
	p.update(func(pc *PictureControls) { pc.Saturation = v })
}

// SetHue updates the hue control.
func (p *Property) SetHue(v float32) {
	p.update(func(pc *PictureControls) { pc.Hue = v })
}

// OnChanged registers a callback invoked after any control changes.
func (p *Property) OnChanged(fn func(PictureControls)) {
	if fn == nil {
		return
	}
	p.cbMu.Lock()
	defer p.cbMu.Unlock()
	p.onChanged = append(p.onChanged, fn)
}

func (p *Property) update(apply func(*PictureControls)) {
	p.mu.Lock()
	old := p.controls
	apply(&p.controls)
	current := p.controls
	changed := old != current
	if changed {
		p.valid = false
	}
	p.mu.Unlock()

	if !changed {
		return
	}

	logrus.WithFields(logrus.Fields{
		"function":   "Property.update",
		"brightness": current.Brightness,
		"contrast":   current.Contrast,
		"saturation": current.Saturation,
		"hue":        current.Hue,
	}).Debug("Picture controls changed, matrix cache invalidated")

	p.cbMu.RLock()
	callbacks := make([]func(PictureControls), len(p.onChanged))
	copy(callbacks, p.onChanged)
	p.cbMu.RUnlock()

	for _, fn := range callbacks {
		fn(current)
	}
}

// Matrix returns the transform for the given colour parameters, computing it
// only when the controls or parameters differ from the cached entry.
func (p *Property) Matrix(colorimetry Colorimetry, levels LevelRange) ColorMatrix {
	key := matrixKey{colorimetry: colorimetry, levels: levels}

	p.mu.RLock()
	if p.valid && p.key == key {
		m := p.matrix
		p.mu.RUnlock()
		return m
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.valid && p.key == key {
		return p.matrix
	}
	p.matrix = p.controls.Matrix(colorimetry, levels)
	p.key = key
	p.valid = true
	return p.matrix
}
