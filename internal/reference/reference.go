// Package reference produces library-side warps that the resampling
// commands write next to their own output as the "easy_*" images.
//
// The default build draws with golang.org/x/image/draw. Building with the
// gocv tag switches to OpenCV's warpAffine through gocv.io/x/gocv, which is
// what the original exercises compare against.
package reference

import (
	"errors"
	"image"
	"math"
)

// ErrSingular is returned when the forward matrix has no inverse.
var ErrSingular = errors.New("reference: singular matrix")

// Interp selects the library interpolation.
type Interp uint8

const (
	// Linear is bilinear interpolation.
	Linear Interp = iota

	// NearestNeighbor picks the closest source pixel.
	NearestNeighbor
)

// Warp maps src through the forward affine matrix m = (a, b, c, d, e, f)
// onto a size.X x size.Y canvas filled with zero where no source pixel maps.
func Warp(src *image.Gray, m [6]float64, size image.Point, interp Interp) (*image.Gray, error) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return nil, ErrSingular
	}
	if size.X <= 0 || size.Y <= 0 {
		size = src.Bounds().Size()
	}
	return warp(src, m, size, interp)
}

// Invert returns the inverse of the forward affine matrix m.
func Invert(m [6]float64) ([6]float64, error) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return [6]float64{}, ErrSingular
	}
	inv := 1 / det
	return [6]float64{
		m[4] * inv, -m[1] * inv, (m[1]*m[5] - m[2]*m[4]) * inv,
		-m[3] * inv, m[0] * inv, (m[2]*m[3] - m[0]*m[5]) * inv,
	}, nil
}
