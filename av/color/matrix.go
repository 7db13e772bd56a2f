package color

import (
	"fmt"
	"strings"

	"github.com/goki/mat32"
)

// ColorMatrix is an immutable 4x4 affine transform from encoded component
// space to display RGB.
//
// Rows and columns are ordered (component0, component1, component2,
// homogeneous). Rows 0-2 column 3 hold the brightness offset added after the
// linear part. Row 3 columns 0-2 hold the black level and neutral chroma
// that are subtracted from the input before the linear part is applied.
//
// Storage is a column-major mat32.Mat4 so Array can be uploaded to a shader
// uniform as is.
type ColorMatrix struct {
	m mat32.Mat4
}

// Identity returns the identity transform, used as the fallback for any
// unsupported colorimetry or level range.
func Identity() ColorMatrix {
	var cm ColorMatrix
	cm.m.SetIdentity()
	return cm
}

// FromRows builds a matrix from row-major values.
func FromRows(rows [4][4]float32) ColorMatrix {
	var cm ColorMatrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cm.set(r, c, rows[r][c])
		}
	}
	return cm
}

// At returns the element at row r, column c.
func (cm ColorMatrix) At(r, c int) float32 {
	return cm.m[c*4+r]
}

func (cm *ColorMatrix) set(r, c int, v float32) {
	cm.m[c*4+r] = v
}

// Rows returns the matrix in row-major order.
func (cm ColorMatrix) Rows() [4][4]float32 {
	var rows [4][4]float32
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			rows[r][c] = cm.At(r, c)
		}
	}
	return rows
}

// Array returns the 16 elements in column-major order.
func (cm ColorMatrix) Array() [16]float32 {
	return cm.m
}

// Mul returns cm × o. mat32 computes a × b in MulMatrices(a, b) for its
// column-major layout, whatever its doc comment says.
func (cm ColorMatrix) Mul(o ColorMatrix) ColorMatrix {
	return ColorMatrix{m: *cm.m.Mul(&o.m)}
}

// Scale returns the matrix with every element multiplied by s.
func (cm ColorMatrix) Scale(s float32) ColorMatrix {
	out := cm
	out.m.MulScalar(s)
	return out
}

// IsIdentity reports whether cm is exactly the identity matrix.
func (cm ColorMatrix) IsIdentity() bool {
	return cm == Identity()
}

// Offset returns the values subtracted from each input component.
func (cm ColorMatrix) Offset() (c0, c1, c2 float32) {
	return cm.At(3, 0), cm.At(3, 1), cm.At(3, 2)
}

// Translation returns the values added to each output channel.
func (cm ColorMatrix) Translation() (r, g, b float32) {
	return cm.At(0, 3), cm.At(1, 3), cm.At(2, 3)
}

// Transform maps one normalized input sample to display RGB. The result is
// not clamped.
func (cm ColorMatrix) Transform(c0, c1, c2 float32) (r, g, b float32) {
	o0, o1, o2 := cm.Offset()
	v0, v1, v2 := c0-o0, c1-o1, c2-o2
	r = cm.At(0, 0)*v0 + cm.At(0, 1)*v1 + cm.At(0, 2)*v2 + cm.At(0, 3)
	g = cm.At(1, 0)*v0 + cm.At(1, 1)*v1 + cm.At(1, 2)*v2 + cm.At(1, 3)
	b = cm.At(2, 0)*v0 + cm.At(2, 1)*v1 + cm.At(2, 2)*v2 + cm.At(2, 3)
	return r, g, b
}

// String formats the matrix row by row.
func (cm ColorMatrix) String() string {
	var sb strings.Builder
	for r, row := range cm.Rows() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[% .4f % .4f % .4f % .4f]", row[0], row[1], row[2], row[3])
	}
	return sb.String()
}
