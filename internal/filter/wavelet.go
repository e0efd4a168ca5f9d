package filter

import (
	"fmt"
	"math"

	"github.com/seudip/dip"
)

// db4 is the Daubechies scaling filter with four vanishing moments.
var db4 = []float64{
	0.23037781330885523,
	0.7148465705525415,
	0.6308807679295904,
	-0.02798376941698385,
	-0.18703481171888114,
	0.030841381835986965,
	0.032883011666982945,
	-0.010597401784997278,
}

// db4High is the quadrature mirror of db4.
var db4High = func() []float64 {
	g := make([]float64, len(db4))
	for n := range g {
		g[n] = db4[len(db4)-1-n]
		if n%2 == 1 {
			g[n] = -g[n]
		}
	}
	return g
}()

// WaveletDenoise soft-thresholds the detail coefficients of a levels-deep
// periodic db4 decomposition of src and reconstructs it.
//
// Pixels are scaled to 0..1 first, so threshold is in those units. Sizes
// that are not a multiple of 2^levels are padded by mirroring and cropped
// afterwards.
func WaveletDenoise(src *dip.Gray, levels int, threshold float64) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if levels < 1 || levels > 16 {
		return nil, fmt.Errorf("%w: %d wavelet levels", ErrInvalidParameter, levels)
	}
	if threshold < 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("%w: threshold %g", ErrInvalidParameter, threshold)
	}

	block := 1 << levels
	w := (src.Width + block - 1) / block * block
	h := (src.Height + block - 1) / block * block
	xs := BorderReflect.offsets(src.Width, 0, w-src.Width)
	ys := BorderReflect.offsets(src.Height, 0, h-src.Height)

	c := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := src.Row(ys[y])
		for x := 0; x < w; x++ {
			c[y*w+x] = float64(row[xs[x]]) / 255
		}
	}

	for l, cw, ch := 0, w, h; l < levels; l, cw, ch = l+1, cw/2, ch/2 {
		dwt2(c, w, cw, ch)
	}

	// The top-left approximation block is left alone.
	aw, ah := w>>levels, h>>levels
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < aw && y < ah {
				continue
			}
			c[y*w+x] = softThreshold(c[y*w+x], threshold)
		}
	}

	for l := levels - 1; l >= 0; l-- {
		idwt2(c, w, w>>l, h>>l)
	}

	dst := dip.NewGray(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		out := dst.Row(y)
		for x := range out {
			out[x] = saturate(c[y*w+x] * 255)
		}
	}
	return dst, nil
}

func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}

// dwt2 transforms the top-left cw x ch block of the stride-w buffer c in
// place: rows then columns, each leaving approximation coefficients in the
// first half and details in the second.
func dwt2(c []float64, w, cw, ch int) {
	forRows(ch, func(y int) {
		row := c[y*w : y*w+cw]
		copy(row, analyze(row))
	})
	col := make([]float64, ch)
	for x := 0; x < cw; x++ {
		for y := range col {
			col[y] = c[y*w+x]
		}
		for y, v := range analyze(col) {
			c[y*w+x] = v
		}
	}
}

// idwt2 undoes dwt2 on the top-left cw x ch block.
func idwt2(c []float64, w, cw, ch int) {
	col := make([]float64, ch)
	for x := 0; x < cw; x++ {
		for y := range col {
			col[y] = c[y*w+x]
		}
		for y, v := range synthesize(col) {
			c[y*w+x] = v
		}
	}
	forRows(ch, func(y int) {
		row := c[y*w : y*w+cw]
		copy(row, synthesize(row))
	})
}

// analyze splits an even-length signal into periodic approximation and
// detail halves.
func analyze(s []float64) []float64 {
	n := len(s)
	half := n / 2
	out := make([]float64, n)
	for k := 0; k < half; k++ {
		var a, d float64
		for i, hv := range db4 {
			v := s[(2*k+i)%n]
			a += hv * v
			d += db4High[i] * v
		}
		out[k] = a
		out[half+k] = d
	}
	return out
}

// synthesize is the inverse of analyze.
func synthesize(s []float64) []float64 {
	n := len(s)
	half := n / 2
	out := make([]float64, n)
	for k := 0; k < half; k++ {
		a, d := s[k], s[half+k]
		for i, hv := range db4 {
			out[(2*k+i)%n] += hv*a + db4High[i]*d
		}
	}
	return out
}
