// Package av is the video output: it hands decoded frames to a render
// target without tearing and converts them to display RGB with the user's
// picture controls applied.
//
// # Architecture
//
// The av package ties together three sub-packages:
//
//   - av/color: colour transform matrices and the picture-control property
//   - av/video: frame formats, validation and the frame presenter
//   - av/render: a software render target built on golang.org/x/image/draw
//
// # Usage
//
//	target := render.NewSoftwareTarget()
//	go target.Run(ctx, 16*time.Millisecond)
//
//	out, err := av.NewOutput(target, av.NewOptions())
//	if err != nil {
//	    return err
//	}
//	defer out.Quit()
//
//	out.Reconfig(video.DisplayConfig{Width: 1280, Height: 720})
//
//	// decoder goroutine
//	if err := out.DrawImage(frame); err != nil {
//	    log.Printf("dropping frame: %v", err)
//	}
//
//	// display goroutine
//	out.FlipPage()
//
// # Picture Controls
//
// Brightness, contrast, saturation and hue take values in -1..1 with 0 as
// neutral. They can be changed at any time with the setters or by name via
// SetEqualizer; the colour matrix is rebuilt for the next frame.
//
// # Format Negotiation
//
// Use QueryFormat before decoding to learn whether a pixel format can be
// shown. OnFormatChanged fires once, before the first frame of a new format
// or geometry reaches the render target.
//
// # Shutdown
//
// Quit releases a FlipPage blocked on the render target; later DrawImage
// calls fail with ErrOutputClosed and FlipPage becomes a no-op.
package av
