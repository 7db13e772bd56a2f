package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorMatrix_RowsAndArray(t *testing.T) {
	rows := [4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	m := FromRows(rows)

	assert.Equal(t, rows, m.Rows())
	assert.Equal(t, float32(7), m.At(1, 2))

	// Column-major: the second array element is row 1, column 0.
	arr := m.Array()
	assert.Equal(t, float32(5), arr[1])
	assert.Equal(t, float32(2), arr[4])
}

func TestColorMatrix_Mul(t *testing.T) {
	m := FromRows([4][4]float32{
		{1, 2, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	n := FromRows([4][4]float32{
		{1, 0, 0, 0},
		{3, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})

	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))

	product := m.Mul(n)
	assert.Equal(t, float32(7), product.At(0, 0))
	assert.Equal(t, float32(2), product.At(0, 1))
	assert.Equal(t, float32(3), product.At(1, 0))

	// Order matters.
	assert.NotEqual(t, product, n.Mul(m))
}

func TestColorMatrix_MulTranslationColumn(t *testing.T) {
	translate := FromRows([4][4]float32{
		{1, 0, 0, 5},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	scale := Identity().Scale(2)

	ts := translate.Mul(scale)
	assert.Equal(t, float32(2), ts.At(0, 0))
	assert.Equal(t, float32(10), ts.At(0, 3))

	st := scale.Mul(translate)
	assert.Equal(t, float32(10), st.At(0, 3))
	assert.Equal(t, float32(2), st.At(3, 3))

	rs := translate.Mul(Identity())
	assert.Equal(t, float32(5), rs.At(0, 3))
	assert.Zero(t, rs.At(3, 0))
}

func TestColorMatrix_Scale(t *testing.T) {
	m := FromRows([4][4]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	})
	scaled := m.Scale(0.5)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, m.At(r, c)*0.5, scaled.At(r, c))
		}
	}
	assert.Equal(t, float32(1), m.At(0, 0), "receiver is unchanged")
}

func TestColorMatrix_Identity(t *testing.T) {
	id := Identity()
	assert.True(t, id.IsIdentity())

	r, g, b := id.Transform(0.1, 0.2, 0.3)
	assert.Equal(t, float32(0.1), r)
	assert.Equal(t, float32(0.2), g)
	assert.Equal(t, float32(0.3), b)

	assert.False(t, id.Scale(2).IsIdentity())
}

func TestColorMatrix_String(t *testing.T) {
	s := Identity().String()
	assert.Contains(t, s, "1.0000")
	assert.Len(t, splitLines(s), 4)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
