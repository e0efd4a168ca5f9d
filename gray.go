package dip

import (
	"fmt"
	"image"
	"image/color"
)

// Gray is an 8-bit single channel image.
//
// Pixels are stored row-major with no padding, so the sample at (x, y) is
// Pix[y*Width+x]. The invariant len(Pix) == Width*Height holds for every
// Gray returned by this package.
type Gray struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewGray creates a zero-filled image with the given dimensions.
// Non-positive dimensions produce an empty image.
func NewGray(width, height int) *Gray {
	if width <= 0 || height <= 0 {
		return &Gray{}
	}
	return &Gray{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// GrayFromPix wraps an existing pixel slice without copying.
// Returns ErrInvalidSize if len(pix) != width*height.
func GrayFromPix(width, height int, pix []uint8) (*Gray, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d samples", ErrInvalidSize, width, height, len(pix))
	}
	return &Gray{Pix: pix, Width: width, Height: height}, nil
}

// Empty reports whether the image is nil or has no pixels.
func (g *Gray) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0 || len(g.Pix) != g.Width*g.Height
}

// Bounds returns the image dimensions as (width, height).
func (g *Gray) Bounds() (int, int) {
	return g.Width, g.Height
}

// At returns the sample at (x, y), or 0 outside the image.
func (g *Gray) At(x, y int) uint8 {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the sample at (x, y). Writes outside the image are ignored.
func (g *Gray) Set(x, y int, v uint8) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Row returns the samples of row y, or nil if y is out of range.
func (g *Gray) Row(y int) []uint8 {
	if y < 0 || y >= g.Height {
		return nil
	}
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Clone returns a deep copy of the image.
func (g *Gray) Clone() *Gray {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Gray{Pix: pix, Width: g.Width, Height: g.Height}
}

// ToImage converts the image to a standard library *image.Gray anchored at
// the origin. The pixel slice is copied.
func (g *Gray) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Row(y))
	}
	return img
}

// GrayFromImage converts any image to an 8-bit grayscale image using the
// standard luma model. *image.Gray sources are copied row by row.
func GrayFromImage(img image.Image) *Gray {
	b := img.Bounds()
	g := NewGray(b.Dx(), b.Dy())
	if g.Empty() {
		return g
	}

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < g.Height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(g.Row(y), src.Pix[off:off+g.Width])
		}
		return g
	}

	for y := 0; y < g.Height; y++ {
		row := g.Row(y)
		for x := range row {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			row[x] = c.Y
		}
	}
	return g
}
