package dip

import "math"

// Interpolation defines how a fractional source coordinate is sampled.
type Interpolation uint8

const (
	// Bilinear blends the four lattice neighbours of the coordinate.
	Bilinear Interpolation = iota

	// Nearest selects the closest lattice pixel (rounding half up).
	Nearest
)

// String returns a string representation of the interpolation mode.
func (m Interpolation) String() string {
	switch m {
	case Bilinear:
		return "Bilinear"
	case Nearest:
		return "Nearest"
	default:
		return "Unknown"
	}
}

// sample dispatches to the sampler selected by m.
func (m Interpolation) sample(src *Gray, x, y float64) uint8 {
	if m == Nearest {
		return SampleNearest(src, x, y)
	}
	return SampleBilinear(src, x, y)
}

// SampleBilinear performs bilinear interpolation at pixel coordinates (x, y).
//
// The coordinate is first clamped into [0, w-1] x [0, h-1], so integer
// coordinates return the exact source sample and coordinates outside the
// image replicate the nearest edge. The blended value is rounded half away
// from zero and saturated into [0, 255].
func SampleBilinear(src *Gray, x, y float64) uint8 {
	w, h := src.Bounds()
	x = clampFloat(x, 0, float64(w-1))
	y = clampFloat(y, 0, float64(h-1))

	x1 := clamp(int(math.Floor(x)), 0, w-1)
	y1 := clamp(int(math.Floor(y)), 0, h-1)
	x2 := clamp(x1+1, 0, w-1)
	y2 := clamp(y1+1, 0, h-1)

	dx := x - float64(x1)
	dy := y - float64(y1)

	f11 := float64(src.Pix[y1*w+x1])
	f12 := float64(src.Pix[y1*w+x2])
	f21 := float64(src.Pix[y2*w+x1])
	f22 := float64(src.Pix[y2*w+x2])

	value := f11*(1-dx)*(1-dy) +
		f12*dx*(1-dy) +
		f21*(1-dx)*dy +
		f22*dx*dy

	return saturate(value)
}

// SampleNearest returns the lattice pixel closest to (x, y), clamped to the
// image.
func SampleNearest(src *Gray, x, y float64) uint8 {
	w, h := src.Bounds()
	xi := clamp(int(math.Floor(x+0.5)), 0, w-1)
	yi := clamp(int(math.Floor(y+0.5)), 0, h-1)
	return src.Pix[yi*w+xi]
}

// saturate rounds v and clamps it into the uint8 range.
func saturate(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}

// clamp clamps an integer value to [minVal, maxVal].
//
//nolint:unparam // minVal is always 0 currently, but function is general-purpose
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
