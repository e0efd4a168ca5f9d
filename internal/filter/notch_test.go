package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/seudip/dip"
)

// interference is a horizontal ramp plus a cosine that varies down the
// rows, whose spectrum peaks lie on the vertical axis.
func interference(w, h int) *dip.Gray {
	g := dip.NewGray(w, h)
	for y := 0; y < h; y++ {
		noise := 50 * math.Cos(2*math.Pi*float64(y)/4)
		for x := 0; x < w; x++ {
			g.Set(x, y, uint8(math.Round(60+4*float64(x)+noise)))
		}
	}
	return g
}

func TestNotchMask(t *testing.T) {
	mask := NotchMask(16, 16, 1, 3)
	tests := []struct {
		x, y int
		want float64
	}{
		{8, 8, 1},  // centre
		{8, 10, 1}, // inside skip radius
		{8, 11, 0},
		{7, 0, 0},
		{9, 15, 0},
		{10, 0, 1}, // outside band
		{0, 8, 1},
	}
	for _, tt := range tests {
		if got := mask[tt.y][tt.x]; got != tt.want {
			t.Errorf("mask[%d][%d] = %v, want %v", tt.y, tt.x, got, tt.want)
		}
	}

	for _, row := range NotchMask(4, 4, -1, 0) {
		for _, v := range row {
			if v != 1 {
				t.Fatal("negative band half width should pass everything")
			}
		}
	}
}

func TestNotchFilterSeparatesInterference(t *testing.T) {
	const w, h = 32, 32
	res, err := NotchFilter(interference(w, h), 1, 4)
	if err != nil {
		t.Fatalf("NotchFilter() error = %v", err)
	}

	// The ramp survives unchanged in every row.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if d := absDiff(res.Filtered.At(x, y), res.Filtered.At(x, 0)); d > 1 {
				t.Fatalf("filtered (%d, %d) = %d differs from row 0 (%d)",
					x, y, res.Filtered.At(x, y), res.Filtered.At(x, 0))
			}
		}
	}
	if res.Filtered.At(0, 5) > 1 || res.Filtered.At(w-1, 5) < 254 {
		t.Errorf("filtered ramp ends = %d, %d, want 0 and 255", res.Filtered.At(0, 5), res.Filtered.At(w-1, 5))
	}

	// The removed part is the cosine alone: constant along each row.
	for x := 0; x < w; x++ {
		if res.Noise.At(x, 0) < 254 || res.Noise.At(x, 2) > 1 {
			t.Fatalf("noise column %d = %d, %d, want 255 and 0", x, res.Noise.At(x, 0), res.Noise.At(x, 2))
		}
	}

	if res.Spectrum.Width != w || res.FilteredSpectrum.Height != h || res.Mask.At(w/2, 0) != 0 {
		t.Error("unexpected spectrum or mask images")
	}
}

func TestNotchFilterEmpty(t *testing.T) {
	if _, err := NotchFilter(&dip.Gray{}, 2, 10); !errors.Is(err, dip.ErrEmptyImage) {
		t.Errorf("NotchFilter(empty) error = %v, want ErrEmptyImage", err)
	}
}

func TestNormalizeConstant(t *testing.T) {
	g := normalize([][]float64{{3, 3}, {3, 3}})
	allEqual(t, "constant", g, 0)
}

func TestNotchFilterOddSize(t *testing.T) {
	const w, h = 31, 29
	src := dip.NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, uint8(4*x+3*y))
		}
	}

	res, err := NotchFilter(src, -1, 0)
	if err != nil {
		t.Fatalf("NotchFilter() error = %v", err)
	}

	if res.Spectrum.Width != 32 || res.Spectrum.Height != 30 {
		t.Fatalf("spectrum size = %dx%d, want padded 32x30", res.Spectrum.Width, res.Spectrum.Height)
	}
	if res.Filtered.Width != w || res.Filtered.Height != h || res.Noise.Width != w {
		t.Fatalf("filtered size = %dx%d, want %dx%d", res.Filtered.Width, res.Filtered.Height, w, h)
	}

	// The non-negative image puts its largest coefficient at DC, which
	// centring moves to (16, 15).
	if got := res.Spectrum.At(16, 15); got != 255 {
		t.Errorf("spectrum at centre = %d, want DC peak 255", got)
	}

	// Passing everything rebuilds the ramp without the padding.
	const top = 4*(w-1) + 3*(h-1)
	for _, p := range [][2]int{{0, 0}, {w - 1, h - 1}, {10, 3}, {30, 0}, {0, 28}} {
		want := math.Round(float64(4*p[0]+3*p[1]) * 255 / top)
		if d := math.Abs(float64(res.Filtered.At(p[0], p[1])) - want); d > 1 {
			t.Errorf("filtered (%d, %d) = %d, want %v", p[0], p[1], res.Filtered.At(p[0], p[1]), want)
		}
	}
	allEqual(t, "noise", res.Noise, 0)
}
