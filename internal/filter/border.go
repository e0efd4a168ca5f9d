package filter

import (
	"math"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/parallel"
)

// Border selects how neighbourhoods are extended past the image edge.
type Border uint8

const (
	// BorderReflect mirrors including the edge pixel: fedcba|abcdefgh|hgfedcb.
	BorderReflect Border = iota

	// BorderReflect101 mirrors about the edge pixel: gfedcb|abcdefgh|gfedcba.
	BorderReflect101

	// BorderReplicate repeats the edge pixel: aaaaaa|abcdefgh|hhhhhhh.
	BorderReplicate
)

// String returns the border name.
func (b Border) String() string {
	switch b {
	case BorderReflect:
		return "Reflect"
	case BorderReflect101:
		return "Reflect101"
	case BorderReplicate:
		return "Replicate"
	default:
		return "Unknown"
	}
}

// index maps a possibly out-of-range coordinate into [0, n).
func (b Border) index(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	if n == 1 {
		return 0
	}

	switch b {
	case BorderReplicate:
		return min(max(i, 0), n-1)
	case BorderReflect101:
		for i < 0 || i >= n {
			if i < 0 {
				i = -i
			} else {
				i = 2*n - i - 2
			}
		}
	default:
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - i - 1
			}
		}
	}
	return i
}

// offsets precomputes border-mapped indices for a window of radius before
// and after, so inner loops avoid branching: offsets[i+before+k] is the
// source index for position i with window offset k-before.
func (b Border) offsets(n, before, after int) []int {
	out := make([]int, n+before+after)
	for i := range out {
		out[i] = b.index(i-before, n)
	}
	return out
}

// forRows runs fn for every row of a height-h image on the worker pool.
func forRows(h int, fn func(y int)) {
	parallel.ForEachRows(h, parallel.Workers(0, h), func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			fn(y)
		}
	})
}

// saturate rounds half to even and clamps to 0..255, the conversion the
// neighbourhood exercises apply to floating point results.
func saturate(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.RoundToEven(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// roundClamp rounds half away from zero and clamps to 0..255.
func roundClamp(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// fromFloat saturates a row-major float buffer into a new image.
func fromFloat(w, h int, vals []float64) *dip.Gray {
	g := dip.NewGray(w, h)
	for i, v := range vals {
		g.Pix[i] = saturate(v)
	}
	return g
}

// toFloat copies the image pixels into a float buffer.
func toFloat(g *dip.Gray) []float64 {
	out := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		out[i] = float64(v)
	}
	return out
}

// validWindow reports whether n is odd and at least minSize.
func validWindow(n, minSize int) bool {
	return n >= minSize && n%2 == 1
}
