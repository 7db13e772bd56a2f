// Package render provides a software render target for the video presenter.
//
// SoftwareTarget implements video.RenderTarget and video.ConsumptionSignaler
// on the CPU: each frame is converted to RGBA through the colour matrix the
// presenter attached to it, scaled to the display size with
// golang.org/x/image/draw and flipped when the source is upside down.
//
//	target := render.NewSoftwareTarget()
//	go target.Run(ctx, 16*time.Millisecond)
//
//	presenter, _ := video.NewPresenter(target, colors, video.DefaultOptions())
//
// It is used for headless playback, thumbnails and tests; GPU targets upload
// the planes and the matrix to a shader instead.
package render
