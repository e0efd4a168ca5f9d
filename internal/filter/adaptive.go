package filter

import (
	"fmt"
	"slices"

	"github.com/seudip/dip"
)

// AdaptiveMedian removes impulse noise with a window that grows from 3x3
// up to smax x smax.
//
// For each pixel z the window grows until its median lies strictly between
// the window minimum and maximum. The pixel is then kept if it too lies
// strictly inside that range and replaced by the median otherwise. If no
// window qualifies, the median of the largest window is used. The border is
// replicated.
func AdaptiveMedian(src *dip.Gray, smax int) (*dip.Gray, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if !validWindow(smax, 3) {
		return nil, fmt.Errorf("%w: max window %d must be odd and at least 3", ErrInvalidWindow, smax)
	}

	w, h := src.Width, src.Height
	pad := smax / 2
	xs := BorderReplicate.offsets(w, pad, pad)
	ys := BorderReplicate.offsets(h, pad, pad)
	dst := dip.NewGray(w, h)

	forRows(h, func(y int) {
		window := make([]uint8, 0, smax*smax)
		out := dst.Row(y)
		for x := range out {
			z := int(src.At(x, y))
			result := z

			for s := 3; s <= smax; s += 2 {
				half := s / 2
				window = window[:0]
				for ry := -half; ry <= half; ry++ {
					srow := src.Row(ys[y+pad+ry])
					for rx := -half; rx <= half; rx++ {
						window = append(window, srow[xs[x+pad+rx]])
					}
				}
				slices.Sort(window)
				zmin := int(window[0])
				zmax := int(window[len(window)-1])
				zmed := int(window[len(window)/2])
				result = zmed

				if zmin < zmed && zmed < zmax {
					if zmin < z && z < zmax {
						result = z
					}
					break
				}
			}
			out[x] = uint8(result)
		}
	})
	return dst, nil
}
