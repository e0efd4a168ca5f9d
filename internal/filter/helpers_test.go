package filter

import (
	"testing"

	"github.com/seudip/dip"
)

// Test helper functions shared across filter tests.

// filled creates a w x h image of a single value.
func filled(w, h int, v uint8) *dip.Gray {
	g := dip.NewGray(w, h)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// fromRows builds an image from literal rows.
func fromRows(t *testing.T, rows ...[]uint8) *dip.Gray {
	t.Helper()
	var pix []uint8
	for _, r := range rows {
		pix = append(pix, r...)
	}
	g, err := dip.GrayFromPix(len(rows[0]), len(rows), pix)
	if err != nil {
		t.Fatalf("GrayFromPix() error = %v", err)
	}
	return g
}

// allEqual reports the first pixel of g that differs from v.
func allEqual(t *testing.T, name string, g *dip.Gray, v uint8) {
	t.Helper()
	for i, p := range g.Pix {
		if p != v {
			t.Errorf("%s: pixel (%d, %d) = %d, want %d", name, i%g.Width, i/g.Width, p, v)
			return
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
