package filter

import (
	"fmt"
	"math"

	"github.com/seudip/dip"
)

// anchor returns the top-left corner at which mark sits flush with the
// bottom-right corner of src.
func anchor(src, mark *dip.Gray) (int, int, error) {
	if src.Empty() || mark.Empty() {
		return 0, 0, dip.ErrEmptyImage
	}
	if mark.Width > src.Width || mark.Height > src.Height {
		return 0, 0, fmt.Errorf("%w: %dx%d into %dx%d",
			ErrWatermarkTooLarge, mark.Width, mark.Height, src.Width, src.Height)
	}
	return src.Width - mark.Width, src.Height - mark.Height, nil
}

// VisibleWatermark adds alpha times mark onto the bottom-right corner of
// src, saturating at 255. Pixels outside the mark are unchanged.
func VisibleWatermark(src, mark *dip.Gray, alpha float64) (*dip.Gray, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, fmt.Errorf("%w: alpha %g", ErrInvalidParameter, alpha)
	}
	ox, oy, err := anchor(src, mark)
	if err != nil {
		return nil, err
	}

	dst := src.Clone()
	for y := 0; y < mark.Height; y++ {
		out := dst.Row(oy + y)[ox:]
		for x, m := range mark.Row(y) {
			out[x] = saturate(float64(out[x]) + alpha*float64(m))
		}
	}
	return dst, nil
}

// EmbedWatermark hides the two most significant bits of mark in the two
// least significant bits of src under the bottom-right corner. Elsewhere
// the low bits are cleared.
func EmbedWatermark(src, mark *dip.Gray) (*dip.Gray, error) {
	ox, oy, err := anchor(src, mark)
	if err != nil {
		return nil, err
	}

	dst := dip.NewGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = v & 0xFC
	}
	for y := 0; y < mark.Height; y++ {
		out := dst.Row(oy + y)[ox:]
		for x, m := range mark.Row(y) {
			out[x] |= (m & 0xC0) >> 6
		}
	}
	return dst, nil
}

// ExtractWatermark recovers an embedded mark by scaling the two least
// significant bits of every pixel back to the top of the range.
func ExtractWatermark(src *dip.Gray) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	dst := dip.NewGray(src.Width, src.Height)
	for i, v := range src.Pix {
		dst.Pix[i] = (v & 0x03) * 64
	}
	return dst, nil
}
