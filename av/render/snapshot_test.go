package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestSnapshotFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    SnapshotFormat
		wantErr bool
	}{
		{"frame.png", SnapshotPNG, false},
		{"/tmp/Frame.TIFF", SnapshotTIFF, false},
		{"frame.tif", SnapshotTIFF, false},
		{"frame.bmp", SnapshotBMP, false},
		{"frame.jpg", 0, true},
		{"frame", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := SnapshotFormatFromPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownSnapshotFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSnapshot_NoImage(t *testing.T) {
	var buf bytes.Buffer
	err := NewSoftwareTarget().Snapshot(&buf, SnapshotPNG)
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestSnapshot_Decodes(t *testing.T) {
	target := NewSoftwareTarget()
	target.Present(i420Frame(6, 4, 235, 128, 128))
	_, err := target.Consume()
	require.NoError(t, err)

	decoders := map[SnapshotFormat]func(*bytes.Reader) (image.Image, error){
		SnapshotPNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		SnapshotTIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
		SnapshotBMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, target.Snapshot(&buf, format))

			img, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())

			r, g, b, _ := img.At(5, 3).RGBA()
			assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
		})
	}
}

func TestEncodeSnapshot_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeSnapshot(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), SnapshotFormat(42))
	assert.True(t, errors.Is(err, ErrUnknownSnapshotFormat))
	assert.Equal(t, "format(42)", SnapshotFormat(42).String())
}
