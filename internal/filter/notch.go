package filter

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/seudip/dip"
)

// NotchResult holds the outputs of NotchFilter. Every image is min-max
// normalised to 0..255.
type NotchResult struct {
	// Filtered is the image with the notched frequencies removed.
	Filtered *dip.Gray

	// Noise is the image rebuilt from the notched frequencies only.
	Noise *dip.Gray

	// Spectrum is the centred log-magnitude spectrum of the input.
	Spectrum *dip.Gray

	// FilteredSpectrum is Spectrum after the notch was applied.
	FilteredSpectrum *dip.Gray

	// Mask shows the pass (255) and stop (0) regions of the filter.
	Mask *dip.Gray
}

// NotchMask returns the centred w x h pass mask of a vertical notch: a
// stop band of half width bandHalfWidth along the vertical axis through the
// centre (w/2, h/2), leaving rows closer than skipRadius to the centre
// untouched. A negative bandHalfWidth passes everything.
func NotchMask(w, h, bandHalfWidth, skipRadius int) [][]float64 {
	cx, cy := w/2, h/2
	mask := make([][]float64, h)
	for y := range mask {
		mask[y] = make([]float64, w)
		for x := range mask[y] {
			mask[y][x] = 1
			if bandHalfWidth >= 0 && abs(x-cx) <= bandHalfWidth && abs(y-cy) >= skipRadius {
				mask[y][x] = 0
			}
		}
	}
	return mask
}

// NotchFilter removes periodic interference that shows up as a vertical
// line of peaks in the centred spectrum of src.
//
// The spectrum is centred by multiplying the image by (-1)^(x+y) before the
// 2D DFT and undoing it after the inverse. That shift is exactly half the
// spectrum only for even sizes, so odd widths and heights are padded with a
// zero column or row. Spectrum, FilteredSpectrum and Mask have the padded
// size; Filtered and Noise are cropped back to the size of src.
func NotchFilter(src *dip.Gray, bandHalfWidth, skipRadius int) (*NotchResult, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}

	w, h := evenSize(src.Width), evenSize(src.Height)
	spatial := make([][]float64, h)
	for y := range spatial {
		spatial[y] = make([]float64, w)
		if y >= src.Height {
			continue
		}
		for x, v := range src.Row(y) {
			spatial[y][x] = float64(v) * checker(x, y)
		}
	}

	freq := fft.FFT2Real(spatial)
	mask := NotchMask(w, h, bandHalfWidth, skipRadius)

	pass := make([][]complex128, h)
	stop := make([][]complex128, h)
	for y := range freq {
		pass[y] = make([]complex128, w)
		stop[y] = make([]complex128, w)
		for x, c := range freq[y] {
			m := mask[y][x]
			pass[y][x] = c * complex(m, 0)
			stop[y][x] = c * complex(1-m, 0)
		}
	}

	maskImg := make([][]float64, h)
	for y := range mask {
		maskImg[y] = make([]float64, w)
		for x, m := range mask[y] {
			maskImg[y][x] = 255 * m
		}
	}

	return &NotchResult{
		Filtered:         normalize(crop(inverse(pass), src.Width, src.Height)),
		Noise:            normalize(crop(inverse(stop), src.Width, src.Height)),
		Spectrum:         normalize(logMagnitude(freq)),
		FilteredSpectrum: normalize(logMagnitude(pass)),
		Mask:             normalize(maskImg),
	}, nil
}

// inverse returns the real part of the inverse DFT with the centring
// undone.
func inverse(freq [][]complex128) [][]float64 {
	spatial := fft.IFFT2(freq)
	out := make([][]float64, len(spatial))
	for y, row := range spatial {
		out[y] = make([]float64, len(row))
		for x, c := range row {
			out[y][x] = real(c) * checker(x, y)
		}
	}
	return out
}

func logMagnitude(freq [][]complex128) [][]float64 {
	out := make([][]float64, len(freq))
	for y, row := range freq {
		out[y] = make([]float64, len(row))
		for x, c := range row {
			out[y][x] = math.Log(1 + cmplx.Abs(c))
		}
	}
	return out
}

// normalize scales vals linearly so the minimum maps to 0 and the maximum
// to 255. A constant input maps to 0.
func normalize(vals [][]float64) *dip.Gray {
	h := len(vals)
	w := len(vals[0])
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range vals {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	g := dip.NewGray(w, h)
	if hi <= lo {
		return g
	}
	scale := 255 / (hi - lo)
	for y, row := range vals {
		out := g.Row(y)
		for x, v := range row {
			out[x] = saturate((v - lo) * scale)
		}
	}
	return g
}

// crop returns the top-left w x h part of vals.
func crop(vals [][]float64, w, h int) [][]float64 {
	out := vals[:h]
	for y := range out {
		out[y] = out[y][:w]
	}
	return out
}

func evenSize(n int) int {
	return n + n%2
}

func checker(x, y int) float64 {
	if (x+y)%2 == 0 {
		return 1
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
