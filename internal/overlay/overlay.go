// Package overlay draws detection results on top of grayscale images:
// circles found by the Hough detector and lines joining registration
// matches. Shapes are anti-aliased with golang.org/x/image/vector.
//
// Coordinates are pixel indices; (x, y) addresses the centre of pixel x, y.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/seudip/dip"
)

// Common mark colours.
var (
	Red   = color.RGBA{R: 255, A: 255}
	Green = color.RGBA{G: 255, A: 255}
)

// Canvas is an RGBA image that shapes are composited onto.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// New returns a canvas holding a colour copy of g.
func New(g *dip.Gray) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(img, img.Bounds(), g.ToImage(), image.Point{}, draw.Src)
	return &Canvas{img: img, z: vector.NewRasterizer(g.Width, g.Height)}
}

// SideBySide returns a canvas with a on the left and b on the right. The
// canvas is as tall as the taller image; the remainder is black.
func SideBySide(a, b *dip.Gray) *Canvas {
	w, h := a.Width+b.Width, max(a.Height, b.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, a.Width, a.Height), a.ToImage(), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(a.Width, 0, w, b.Height), b.ToImage(), image.Point{}, draw.Src)
	return &Canvas{img: img, z: vector.NewRasterizer(w, h)}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Ring strokes the circle of radius r about (cx, cy) with the given width.
func (c *Canvas) Ring(cx, cy, r, width float64, col color.Color) {
	x, y := cx+0.5, cy+0.5
	circle(c.z, x, y, r+width/2, false)
	if inner := r - width/2; inner > 0 {
		circle(c.z, x, y, inner, true)
	}
	c.fill(col)
}

// Disc fills the circle of radius r about (cx, cy).
func (c *Canvas) Disc(cx, cy, r float64, col color.Color) {
	circle(c.z, cx+0.5, cy+0.5, r, false)
	c.fill(col)
}

// Line strokes the segment from (x1, y1) to (x2, y2) with the given width
// and butt ends.
func (c *Canvas) Line(x1, y1, x2, y2, width float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	// Offset perpendicular to the segment by half the width.
	ox, oy := -dy/n*width/2, dx/n*width/2
	x1, y1, x2, y2 = x1+0.5, y1+0.5, x2+0.5, y2+0.5

	c.z.MoveTo(float32(x1+ox), float32(y1+oy))
	c.z.LineTo(float32(x2+ox), float32(y2+oy))
	c.z.LineTo(float32(x2-ox), float32(y2-oy))
	c.z.LineTo(float32(x1-ox), float32(y1-oy))
	c.z.ClosePath()
	c.fill(col)
}

// fill composites the accumulated path in col and clears the rasterizer.
func (c *Canvas) fill(col color.Color) {
	b := c.img.Bounds()
	c.z.DrawOp = draw.Over
	c.z.Draw(c.img, b, image.NewUniform(col), image.Point{})
	c.z.Reset(b.Dx(), b.Dy())
}

// circle adds a closed four-cubic approximation of a circle. reverse winds
// it the other way so it cuts a hole in an enclosing circle.
func circle(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	o := r * k
	s := 1.0
	if reverse {
		s = -1
	}

	pt := func(x, y float64) (float32, float32) { return float32(cx + x), float32(cy + s*y) }
	cube := func(ax, ay, bx, by, ex, ey float64) {
		x1, y1 := pt(ax, ay)
		x2, y2 := pt(bx, by)
		x3, y3 := pt(ex, ey)
		z.CubeTo(x1, y1, x2, y2, x3, y3)
	}

	z.MoveTo(pt(r, 0))
	cube(r, o, o, r, 0, r)
	cube(-o, r, -r, o, -r, 0)
	cube(-r, -o, -o, -r, 0, -r)
	cube(o, -r, r, -o, r, 0)
	z.ClosePath()
}
