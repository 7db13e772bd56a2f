package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SnapshotFormat is the file format used by Snapshot.
type SnapshotFormat int

const (
	// SnapshotPNG writes a lossless PNG.
	SnapshotPNG SnapshotFormat = iota
	// SnapshotTIFF writes a deflate-compressed TIFF.
	SnapshotTIFF
	// SnapshotBMP writes an uncompressed BMP.
	SnapshotBMP
)

var (
	// ErrNoImage indicates no frame has been drawn yet.
	ErrNoImage = errors.New("no frame has been drawn")

	// ErrUnknownSnapshotFormat indicates an unsupported snapshot format.
	ErrUnknownSnapshotFormat = errors.New("unknown snapshot format")
)

// String returns the format name.
func (f SnapshotFormat) String() string {
	switch f {
	case SnapshotPNG:
		return "png"
	case SnapshotTIFF:
		return "tiff"
	case SnapshotBMP:
		return "bmp"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// SnapshotFormatFromPath picks the format from a file extension.
func SnapshotFormatFromPath(path string) (SnapshotFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SnapshotPNG, nil
	case ".tif", ".tiff":
		return SnapshotTIFF, nil
	case ".bmp":
		return SnapshotBMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSnapshotFormat, filepath.Ext(path))
	}
}

// EncodeSnapshot writes img to w in format.
func EncodeSnapshot(w io.Writer, img image.Image, format SnapshotFormat) error {
	switch format {
	case SnapshotPNG:
		return png.Encode(w, img)
	case SnapshotTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case SnapshotBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSnapshotFormat, format)
	}
}

// Snapshot writes the last drawn image to w.
func (t *SoftwareTarget) Snapshot(w io.Writer, format SnapshotFormat) error {
	img := t.Image()
	if img == nil {
		return ErrNoImage
	}
	if err := EncodeSnapshot(w, img, format); err != nil {
		return fmt.Errorf("encode %s snapshot: %w", format, err)
	}
	return nil
}
