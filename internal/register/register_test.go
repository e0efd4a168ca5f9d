package register

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/seudip/dip"
)

// truth maps moving coordinates onto fixed ones in the tests below.
var truth = dip.NewTransform([3][3]float64{
	{1.1, 0.3, -12},
	{-0.2, 0.9, 7.5},
	{0, 0, 1},
})

// gridMatches returns exact correspondences under truth on a 5x4 grid.
func gridMatches() []Match {
	var out []Match
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			mx, my := float64(20+30*x), float64(15+25*y)
			fx, fy := truth.Apply(mx, my)
			out = append(out, Match{X1: fx, Y1: fy, X2: mx, Y2: my})
		}
	}
	return out
}

func sameTransform(t *testing.T, got, want dip.Transform, tol float64) {
	t.Helper()
	g, w := got.Matrix(), want.Matrix()
	for i := range 2 {
		for j := range 3 {
			if math.Abs(g[i][j]-w[i][j]) > tol {
				t.Fatalf("transform = %v, want %v", got, want)
			}
		}
	}
}

func TestReadMatches(t *testing.T) {
	in := `10 20 30 40
11,21,31,41

# comment line
1 2 3
12, 22 , 32	42
bad 1 2 3
`
	got, err := ReadMatches(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadMatches() error = %v", err)
	}
	want := []Match{{10, 20, 30, 40}, {11, 21, 31, 41}, {12, 22, 32, 42}}
	if len(got) != len(want) {
		t.Fatalf("ReadMatches() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEstimateAffineExact(t *testing.T) {
	got, err := EstimateAffine(gridMatches())
	if err != nil {
		t.Fatalf("EstimateAffine() error = %v", err)
	}
	sameTransform(t, got, truth, 1e-9)
}

func TestEstimateAffineErrors(t *testing.T) {
	m := gridMatches()
	if _, err := EstimateAffine(m[:2]); !errors.Is(err, ErrTooFewMatches) {
		t.Errorf("two matches: error = %v, want ErrTooFewMatches", err)
	}

	collinear := []Match{{0, 0, 0, 0}, {1, 1, 1, 1}, {2, 2, 2, 2}, {5, 5, 5, 5}}
	if _, err := EstimateAffine(collinear); !errors.Is(err, ErrDegenerate) {
		t.Errorf("collinear: error = %v, want ErrDegenerate", err)
	}
}

func TestEstimateAffineRANSACRejectsOutliers(t *testing.T) {
	m := gridMatches()
	outliers := []int{2, 7, 11, 18}
	for _, i := range outliers {
		m[i].X1 += 40
		m[i].Y1 -= 25
	}

	got, inliers, err := EstimateAffineRANSAC(m, DefaultRANSAC())
	if err != nil {
		t.Fatalf("EstimateAffineRANSAC() error = %v", err)
	}
	sameTransform(t, got, truth, 1e-6)

	for i, ok := range inliers {
		wantOK := true
		for _, o := range outliers {
			if i == o {
				wantOK = false
			}
		}
		if ok != wantOK {
			t.Errorf("inliers[%d] = %v, want %v", i, ok, wantOK)
		}
	}

	// Plain least squares is pulled off by the same outliers.
	ls, _ := EstimateAffine(m)
	if x, _ := ls.Apply(20, 15); math.Abs(x-(1.1*20+0.3*15-12)) < 1 {
		t.Error("least squares unexpectedly unaffected by outliers")
	}
}

func TestEstimateAffineRANSACErrors(t *testing.T) {
	if _, _, err := EstimateAffineRANSAC(nil, DefaultRANSAC()); !errors.Is(err, ErrTooFewMatches) {
		t.Errorf("nil: error = %v, want ErrTooFewMatches", err)
	}
	if _, _, err := EstimateAffineRANSAC(gridMatches(), RANSAC{Threshold: 0, Iterations: 10}); err == nil {
		t.Error("zero threshold: expected an error")
	}
}

func TestRegisterWarpAligns(t *testing.T) {
	// Build the moving image by shearing a fixed pattern, then recover it.
	fixed := dip.NewGray(64, 48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			fixed.Set(x, y, uint8(20+2*x+y))
		}
	}
	shear := dip.Shear(0.2, 0)
	moving, err := dip.Warp(fixed, shear)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}

	var m []Match
	for _, p := range [][2]float64{{5, 5}, {50, 8}, {10, 40}, {60, 44}, {30, 20}} {
		mx, my := shear.Apply(p[0], p[1])
		m = append(m, Match{X1: p[0], Y1: p[1], X2: mx, Y2: my})
	}
	tr, _, err := EstimateAffineRANSAC(m, DefaultRANSAC())
	if err != nil {
		t.Fatalf("EstimateAffineRANSAC() error = %v", err)
	}

	aligned, err := dip.Warp(moving, tr)
	if err != nil {
		t.Fatalf("Warp(aligned) error = %v", err)
	}
	// Column 0 of the moving image is background; elsewhere the ramp
	// survives both interpolations to within rounding.
	for x := 1; x < 60; x++ {
		if d := int(aligned.At(x, 2)) - int(fixed.At(x, 2)); d < -1 || d > 1 {
			t.Fatalf("aligned(%d, 2) = %d, want %d", x, aligned.At(x, 2), fixed.At(x, 2))
		}
	}
}

func TestBlend(t *testing.T) {
	a, _ := dip.GrayFromPix(3, 1, []uint8{0, 100, 255})
	b, _ := dip.GrayFromPix(3, 1, []uint8{1, 200, 255})
	got, err := Blend(a, b, 0.5)
	if err != nil {
		t.Fatalf("Blend() error = %v", err)
	}
	// 0.5 rounds to even.
	if got.At(0, 0) != 0 || got.At(1, 0) != 150 || got.At(2, 0) != 255 {
		t.Errorf("Blend() = %v, want [0 150 255]", got.Pix)
	}

	if _, err := Blend(a, dip.NewGray(2, 1), 0.5); !errors.Is(err, dip.ErrInvalidSize) {
		t.Errorf("size mismatch: error = %v, want ErrInvalidSize", err)
	}
}
