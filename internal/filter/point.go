package filter

import (
	"fmt"
	"math"

	"github.com/seudip/dip"
)

// LUT is a 256-entry intensity mapping.
type LUT [256]uint8

// Apply maps every pixel of src through the table.
func (l *LUT) Apply(src *dip.Gray) *dip.Gray {
	dst := dip.NewGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = l[v]
	}
	return dst
}

// GammaLUT returns the power-law table round(255 * (v/255)^gamma).
func GammaLUT(gamma float64) (*LUT, error) {
	if gamma < 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return nil, fmt.Errorf("%w: gamma %g", ErrInvalidParameter, gamma)
	}
	var l LUT
	for i := range l {
		l[i] = roundClamp(255 * math.Pow(float64(i)/255, gamma))
	}
	return &l, nil
}

// Gamma applies the power-law transform to src.
func Gamma(src *dip.Gray, gamma float64) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	l, err := GammaLUT(gamma)
	if err != nil {
		return nil, err
	}
	return l.Apply(src), nil
}

// Histogram counts the pixels of each intensity.
func Histogram(src *dip.Gray) [256]int {
	var hist [256]int
	if src == nil {
		return hist
	}
	for _, v := range src.Pix {
		hist[v]++
	}
	return hist
}

// EqualizeLUT returns the table round(cdf[i] / n * 255) for hist.
func EqualizeLUT(hist [256]int) *LUT {
	var l LUT
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return &l
	}

	cdf := 0
	for i, c := range hist {
		cdf += c
		l[i] = roundClamp(float64(cdf) / float64(total) * 255)
	}
	return &l
}

// Equalize spreads the intensities of src through its cumulative histogram.
func Equalize(src *dip.Gray) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	return EqualizeLUT(Histogram(src)).Apply(src), nil
}

// Threshold returns 255 where src > t and 0 elsewhere.
func Threshold(src *dip.Gray, t int) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	var l LUT
	for i := range l {
		if i > t {
			l[i] = 255
		}
	}
	return l.Apply(src), nil
}

// HistogramImage draws hist as black bars on white, scaled so the tallest
// bin fills the height. The image is 256 pixels wide.
func HistogramImage(hist [256]int, height int) *dip.Gray {
	if height <= 0 {
		height = 200
	}
	g := dip.NewGray(256, height)
	for i := range g.Pix {
		g.Pix[i] = 255
	}

	peak := 0
	for _, c := range hist {
		peak = max(peak, c)
	}
	if peak == 0 {
		return g
	}

	for x, c := range hist {
		bar := int(math.Round(float64(c) / float64(peak) * float64(height)))
		for y := height - bar; y < height; y++ {
			g.Set(x, y, 0)
		}
	}
	return g
}
