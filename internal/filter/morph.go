package filter

import (
	"fmt"

	"github.com/seudip/dip"
)

// Erode replaces each pixel by the minimum of its size x size square
// neighbourhood. Pixels closer than size/2 to the edge are set to zero.
func Erode(src *dip.Gray, size int) (*dip.Gray, error) {
	return morph(src, size, func(a, b uint8) uint8 { return min(a, b) }, 255)
}

// Dilate replaces each pixel by the maximum of its size x size square
// neighbourhood. Pixels closer than size/2 to the edge are set to zero.
func Dilate(src *dip.Gray, size int) (*dip.Gray, error) {
	return morph(src, size, func(a, b uint8) uint8 { return max(a, b) }, 0)
}

// Open erodes then dilates, removing bright detail smaller than the element.
func Open(src *dip.Gray, size int) (*dip.Gray, error) {
	e, err := Erode(src, size)
	if err != nil {
		return nil, err
	}
	return Dilate(e, size)
}

// Close dilates then erodes, filling dark gaps smaller than the element.
func Close(src *dip.Gray, size int) (*dip.Gray, error) {
	d, err := Dilate(src, size)
	if err != nil {
		return nil, err
	}
	return Erode(d, size)
}

func morph(src *dip.Gray, size int, pick func(a, b uint8) uint8, init uint8) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if !validWindow(size, 1) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, size)
	}

	w, h := src.Width, src.Height
	r := size / 2
	dst := dip.NewGray(w, h)
	if w <= 2*r || h <= 2*r {
		return dst, nil
	}

	forRows(h, func(y int) {
		if y < r || y >= h-r {
			return
		}
		out := dst.Row(y)
		for x := r; x < w-r; x++ {
			v := init
			for ky := y - r; ky <= y+r; ky++ {
				for _, s := range src.Row(ky)[x-r : x+r+1] {
					v = pick(v, s)
				}
			}
			out[x] = v
		}
	})
	return dst, nil
}
