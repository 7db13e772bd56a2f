// Package color derives the matrices that turn decoded video samples into
// display RGB.
//
// A decoded frame carries luma/chroma samples encoded according to a
// colorimetry standard (BT.601, BT.709, SMPTE 240M) and a level range
// (studio/TV or full/PC). ComputeMatrix folds the standard's colour-difference
// reconstruction and the user's picture controls into a single 4x4 affine
// matrix:
//
//	m := color.ComputeMatrix(color.BT709, color.LevelsTV, 0, 0, 0, 0)
//	r, g, b := m.Transform(y, cb, cr)
//
// The picture controls are brightness, contrast, saturation and hue, each a
// user-facing value in [-1, 1] where 0 is neutral. Saturation and hue act in
// the chroma plane, contrast scales the whole basis and brightness is added
// after the linear part.
//
// # Fallbacks
//
// Unsupported colorimetry (auto, XYZ, YCgCo) or an auto level range produce
// the identity matrix. Nothing in this package returns an error: a frame with
// unknown metadata is rendered as-is.
//
// # RGB input
//
// Frames that already hold RGB are decoded with the BT.601 studio-range tables
// and then re-encoded with the inverse basis, so the picture controls still
// apply while neutral controls leave the pixels unchanged.
//
// # Caching
//
// Property keeps the current controls for a player and caches the last matrix
// it produced. Changing a control invalidates the cache and notifies
// subscribers so a presenter can refresh the matrix attached to its frame.
package color
