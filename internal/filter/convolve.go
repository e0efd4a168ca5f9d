package filter

import (
	"fmt"
	"slices"

	"github.com/seudip/dip"
)

// Convolve correlates src with k (the kernel is not flipped), extending the
// image with border. Results are rounded half to even and saturated.
func Convolve(src *dip.Gray, k Kernel, border Border) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if k.Width <= 0 || k.Height <= 0 || len(k.Data) != k.Width*k.Height {
		return nil, fmt.Errorf("%w: malformed kernel", ErrInvalidParameter)
	}
	return fromFloat(src.Width, src.Height, correlate(src, k, border)), nil
}

// correlate returns the unsaturated correlation of src with k.
func correlate(src *dip.Gray, k Kernel, border Border) []float64 {
	w, h := src.Width, src.Height
	ax, ay := k.Width/2, k.Height/2
	xs := border.offsets(w, ax, k.Width-1-ax)
	ys := border.offsets(h, ay, k.Height-1-ay)
	out := make([]float64, w*h)

	forRows(h, func(y int) {
		row := out[y*w : (y+1)*w]
		for ky := 0; ky < k.Height; ky++ {
			srow := src.Row(ys[y+ky])
			weights := k.Data[ky*k.Width : (ky+1)*k.Width]
			for x := range row {
				var sum float64
				for kx, wt := range weights {
					sum += float64(srow[xs[x+kx]]) * wt
				}
				row[x] += sum
			}
		}
	})
	return out
}

// separable applies the 1D kernel g horizontally then vertically to vals.
func separable(vals []float64, w, h int, g []float64, border Border) []float64 {
	r := len(g) / 2
	xs := border.offsets(w, r, len(g)-1-r)
	ys := border.offsets(h, r, len(g)-1-r)
	tmp := make([]float64, w*h)
	out := make([]float64, w*h)

	forRows(h, func(y int) {
		src := vals[y*w : (y+1)*w]
		dst := tmp[y*w : (y+1)*w]
		for x := range dst {
			var sum float64
			for i, wt := range g {
				sum += src[xs[x+i]] * wt
			}
			dst[x] = sum
		}
	})
	forRows(h, func(y int) {
		dst := out[y*w : (y+1)*w]
		for i, wt := range g {
			src := tmp[ys[y+i]*w : (ys[y+i]+1)*w]
			for x := range dst {
				dst[x] += src[x] * wt
			}
		}
	})
	return out
}

// GaussianBlur smooths src with the size x size Gaussian of the given sigma
// using two separable passes.
func GaussianBlur(src *dip.Gray, size int, sigma float64, border Border) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if !validWindow(size, 1) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, size)
	}
	g := CachedGaussianKernel1D(size, sigma)
	return fromFloat(src.Width, src.Height, separable(toFloat(src), src.Width, src.Height, g, border)), nil
}

// Median replaces each pixel by the median of its size x size window.
func Median(src *dip.Gray, size int, border Border) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if !validWindow(size, 1) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, size)
	}

	w, h := src.Width, src.Height
	r := size / 2
	xs := border.offsets(w, r, r)
	ys := border.offsets(h, r, r)
	dst := dip.NewGray(w, h)

	forRows(h, func(y int) {
		window := make([]uint8, 0, size*size)
		out := dst.Row(y)
		for x := range out {
			window = window[:0]
			for ky := 0; ky < size; ky++ {
				srow := src.Row(ys[y+ky])
				for kx := 0; kx < size; kx++ {
					window = append(window, srow[xs[x+kx]])
				}
			}
			slices.Sort(window)
			out[x] = window[len(window)/2]
		}
	})
	return dst, nil
}

// Laplacian computes the second derivative of src with the 4- or
// 8-neighbour kernel and the sharpened image src - k*laplace. Both results
// are clipped to 0..255. The border is reflect-101.
func Laplacian(src *dip.Gray, eight bool, k float64) (laplace, enhanced *dip.Gray, err error) {
	if src.Empty() {
		return nil, nil, dip.ErrEmptyImage
	}

	lap := correlate(src, LaplacianKernel(eight), BorderReflect101)
	sharp := make([]float64, len(lap))
	for i, v := range lap {
		sharp[i] = float64(src.Pix[i]) - k*v
	}
	return fromFloat(src.Width, src.Height, lap), fromFloat(src.Width, src.Height, sharp), nil
}

// HighBoost sharpens src by adding k times the unsharp mask
// (src - gaussian). It returns the smoothed image, the mask clipped to
// 0..255, and the boosted image.
func HighBoost(src *dip.Gray, k float64, size int, sigma float64) (smooth, mask, boosted *dip.Gray, err error) {
	if src.Empty() {
		return nil, nil, nil, dip.ErrEmptyImage
	}
	if !validWindow(size, 1) {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrInvalidWindow, size)
	}

	w, h := src.Width, src.Height
	orig := toFloat(src)
	blur := separable(orig, w, h, CachedGaussianKernel1D(size, sigma), BorderReflect101)

	m := make([]float64, len(orig))
	b := make([]float64, len(orig))
	for i, v := range orig {
		m[i] = v - blur[i]
		b[i] = v + k*m[i]
	}
	return fromFloat(w, h, blur), fromFloat(w, h, m), fromFloat(w, h, b), nil
}
