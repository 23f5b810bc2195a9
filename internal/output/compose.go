// Package output composes the current frame onto a fixed-size canvas and
// publishes it to other applications over HTTP and WebSocket.
package output

import (
	"image"

	"golang.org/x/image/draw"
)

// AspectPolicy controls how a frame is fitted onto the output canvas.
type AspectPolicy int

const (
	Fit     AspectPolicy = iota // keep aspect ratio, letterbox in black
	Stretch                     // fill the canvas, distorting if needed
)

func (p AspectPolicy) String() string {
	if p == Stretch {
		return "stretch"
	}
	return "fit"
}

// FitRect returns the centred rectangle a src-sized image occupies inside a
// dst-sized canvas when scaled to fit while keeping its aspect ratio.
func FitRect(src, dst image.Point) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || dst.X <= 0 || dst.Y <= 0 {
		return image.Rectangle{}
	}
	scale := min(float64(dst.X)/float64(src.X), float64(dst.Y)/float64(src.Y))
	w := int(float64(src.X)*scale + 0.5)
	h := int(float64(src.Y)*scale + 0.5)
	x := (dst.X - w) / 2
	y := (dst.Y - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Compose renders src onto a black w×h canvas. A nil src yields a black
// canvas.
func Compose(src image.Image, w, h int, policy AspectPolicy, scaler draw.Scaler) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	if src == nil {
		return dst
	}

	sb := src.Bounds()
	target := dst.Bounds()
	if policy == Fit {
		target = FitRect(sb.Size(), target.Size())
	}
	if target.Empty() {
		return dst
	}
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, target, src, sb, draw.Over, nil)
	return dst
}
