//go:build gocv

package reference

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Name identifies the library behind Warp.
func Name() string {
	return "gocv.io/x/gocv"
}

func warp(src *image.Gray, m [6]float64, size image.Point, interp Interp) (*image.Gray, error) {
	b := src.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := src.PixOffset(b.Min.X, y)
		pix = append(pix, src.Pix[off:off+b.Dx()]...)
	}

	in, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8U, pix)
	if err != nil {
		return nil, fmt.Errorf("reference: wrap source: %w", err)
	}
	defer in.Close()

	mat := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer mat.Close()
	for i, v := range m {
		mat.SetDoubleAt(i/3, i%3, v)
	}

	out := gocv.NewMat()
	defer out.Close()

	flags := gocv.InterpolationLinear
	if interp == NearestNeighbor {
		flags = gocv.InterpolationNearestNeighbor
	}
	gocv.WarpAffineWithParams(in, &out, mat, size, flags, gocv.BorderConstant, color.RGBA{})

	dst := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	copy(dst.Pix, out.ToBytes())
	return dst, nil
}
