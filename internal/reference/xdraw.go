//go:build !gocv

package reference

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Name identifies the library behind Warp.
func Name() string {
	return "golang.org/x/image/draw"
}

func warp(src *image.Gray, m [6]float64, size image.Point, interp Interp) (*image.Gray, error) {
	dst := image.NewGray(image.Rect(0, 0, size.X, size.Y))

	var t draw.Transformer = draw.BiLinear
	if interp == NearestNeighbor {
		t = draw.NearestNeighbor
	}

	// draw.Src leaves destination pixels outside the mapped source at zero,
	// the constant border of the exercises.
	t.Transform(dst, f64.Aff3(m), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
