package dip

import (
	"errors"
	"testing"
)

// patternGray fills a w x h image with a deterministic, never-zero pattern.
func patternGray(w, h int) *Gray {
	g := NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, uint8(1+(x*37+y*91+(x*y)%17)%254))
		}
	}
	return g
}

func TestResizeFourByFourToEightByEight(t *testing.T) {
	dst, err := Resize(testGray4(), 2, 2)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if dst.Width != 8 || dst.Height != 8 {
		t.Fatalf("Resize() size = %dx%d, want 8x8", dst.Width, dst.Height)
	}

	want := [8][8]uint8{
		{10, 13, 18, 23, 28, 33, 38, 40},
		{20, 23, 28, 33, 38, 43, 48, 50},
		{40, 43, 48, 53, 58, 63, 68, 70},
		{60, 63, 68, 73, 78, 83, 88, 90},
		{80, 83, 88, 93, 98, 103, 108, 110},
		{100, 103, 108, 113, 118, 123, 128, 130},
		{120, 123, 128, 133, 138, 143, 148, 150},
		{130, 133, 138, 143, 148, 153, 158, 160},
	}
	for y := range 8 {
		for x := range 8 {
			if got := dst.At(x, y); got != want[y][x] {
				t.Errorf("dst(%d, %d) = %d, want %d", x, y, got, want[y][x])
			}
		}
	}
}

func TestWarpIdentityIsExact(t *testing.T) {
	src := patternGray(13, 9)
	for _, interp := range []Interpolation{Bilinear, Nearest} {
		dst, err := Warp(src, Identity(), WithInterpolation(interp))
		if err != nil {
			t.Fatalf("Warp(identity) error = %v", err)
		}
		stats, err := Diff(src, dst)
		if err != nil {
			t.Fatalf("Diff() error = %v", err)
		}
		if !stats.Equal() {
			t.Errorf("%v: identity warp changed %d pixels (max %d)", interp, stats.Mismatched, stats.MaxAbs)
		}
	}
}

func TestMoveRoundTrip(t *testing.T) {
	const w, h, tx, ty = 20, 15, 3, 2
	src := patternGray(w, h)

	moved, err := Move(src, tx, ty)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	back, err := Move(moved, -tx, -ty)
	if err != nil {
		t.Fatalf("Move() back error = %v", err)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := back.At(x, y)
			if x+tx <= w-1 && y+ty <= h-1 {
				if want := src.At(x, y); got != want {
					t.Errorf("back(%d, %d) = %d, want source %d", x, y, got, want)
				}
			} else if got != 0 {
				t.Errorf("back(%d, %d) = %d, want background 0", x, y, got)
			}
		}
	}

	// The first pass drops the uncovered band on the top and left.
	if moved.At(0, 0) != 0 || moved.At(tx, ty) != src.At(0, 0) {
		t.Errorf("moved(0,0)=%d moved(%d,%d)=%d, want 0 and %d",
			moved.At(0, 0), tx, ty, moved.At(tx, ty), src.At(0, 0))
	}
}

func TestResizeUpThenDown(t *testing.T) {
	const w, h = 32, 32
	src := NewGray(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, uint8(4*x+3*y))
		}
	}

	up, err := Resize(src, 2, 2)
	if err != nil {
		t.Fatalf("Resize(2) error = %v", err)
	}
	down, err := Resize(up, 0.5, 0.5)
	if err != nil {
		t.Fatalf("Resize(0.5) error = %v", err)
	}
	if down.Width != w || down.Height != h {
		t.Fatalf("round trip size = %dx%d, want %dx%d", down.Width, down.Height, w, h)
	}

	stats, err := Diff(src, down)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if stats.MeanAbs > 1.5 || stats.MaxAbs > 4 {
		t.Errorf("round trip error mean=%.3f max=%d, want mean<=1.5 max<=4", stats.MeanAbs, stats.MaxAbs)
	}
}

func TestShearSingularRejected(t *testing.T) {
	dst, err := ShearImage(patternGray(8, 8), 1, 1)
	if !errors.Is(err, ErrSingularTransform) {
		t.Fatalf("ShearImage(1, 1) error = %v, want ErrSingularTransform", err)
	}
	if dst != nil {
		t.Error("ShearImage(1, 1) returned a partial image")
	}
}

func TestShearInverse(t *testing.T) {
	src := patternGray(24, 24)
	const shx, shy = 0.3, 0.0

	sheared, err := ShearImage(src, shx, shy)
	if err != nil {
		t.Fatalf("ShearImage() error = %v", err)
	}
	det := 1 - shx*shy
	back, err := ShearImage(sheared, -shx/det, -shy/det)
	if err != nil {
		t.Fatalf("inverse ShearImage() error = %v", err)
	}

	// Row 0 is not sheared at all, so it survives both passes exactly.
	for x := 0; x < 24; x++ {
		if back.At(x, 0) != src.At(x, 0) {
			t.Errorf("back(%d, 0) = %d, want %d", x, back.At(x, 0), src.At(x, 0))
		}
	}
}

func TestRotate(t *testing.T) {
	src := patternGray(31, 17)

	for _, angle := range []float64{0, 360} {
		dst, err := Rotate(src, angle)
		if err != nil {
			t.Fatalf("Rotate(%g) error = %v", angle, err)
		}
		stats, _ := Diff(src, dst)
		if !stats.Equal() {
			t.Errorf("Rotate(%g) changed %d pixels", angle, stats.Mismatched)
		}
	}

	// A 45 degree turn leaves the corners uncovered.
	dst, err := Rotate(src, 45)
	if err != nil {
		t.Fatalf("Rotate(45) error = %v", err)
	}
	if dst.At(0, 0) != 0 || dst.At(30, 16) != 0 {
		t.Errorf("Rotate(45) corners = %d, %d, want background", dst.At(0, 0), dst.At(30, 16))
	}
}

func TestWorkerCountDoesNotChangeOutput(t *testing.T) {
	src := patternGray(300, 200)
	ref, err := Rotate(src, 30, WithWorkers(1))
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	for _, workers := range []int{0, 2, 4, 9} {
		dst, err := Rotate(src, 30, WithWorkers(workers))
		if err != nil {
			t.Fatalf("Rotate(workers=%d) error = %v", workers, err)
		}
		if stats, _ := Diff(ref, dst); !stats.Equal() {
			t.Errorf("workers=%d differs from serial in %d pixels", workers, stats.Mismatched)
		}
	}
}

func TestBoundaryPolicies(t *testing.T) {
	src := testGray4()

	bg, err := Move(src, 1, 0, WithBackground(255))
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if bg.At(0, 2) != 255 || bg.At(1, 2) != 90 {
		t.Errorf("background move: (0,2)=%d (1,2)=%d, want 255 and 90", bg.At(0, 2), bg.At(1, 2))
	}

	clamped, err := Move(src, 1, 0, WithBoundary(BoundaryClamp))
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if clamped.At(0, 2) != 90 || clamped.At(1, 2) != 90 {
		t.Errorf("clamped move: (0,2)=%d (1,2)=%d, want 90 and 90", clamped.At(0, 2), clamped.At(1, 2))
	}
}

func TestScaleCanvas(t *testing.T) {
	src := testGray4()

	up, err := ScaleCanvas(src, 2, 2)
	if err != nil {
		t.Fatalf("ScaleCanvas(2) error = %v", err)
	}
	if up.Width != 4 || up.At(1, 0) != 15 || up.At(3, 3) != 85 {
		t.Errorf("ScaleCanvas(2): w=%d (1,0)=%d (3,3)=%d, want 4, 15, 85", up.Width, up.At(1, 0), up.At(3, 3))
	}

	down, err := ScaleCanvas(src, 0.5, 0.5)
	if err != nil {
		t.Fatalf("ScaleCanvas(0.5) error = %v", err)
	}
	if down.At(1, 1) != 110 || down.At(2, 0) != 0 {
		t.Errorf("ScaleCanvas(0.5): (1,1)=%d (2,0)=%d, want 110 and 0", down.At(1, 1), down.At(2, 0))
	}
}

func TestWarpWithSize(t *testing.T) {
	dst, err := Warp(testGray4(), Identity(), WithSize(6, 2))
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if dst.Width != 6 || dst.Height != 2 {
		t.Fatalf("size = %dx%d, want 6x2", dst.Width, dst.Height)
	}
	if dst.At(3, 1) != 80 || dst.At(5, 1) != 0 {
		t.Errorf("(3,1)=%d (5,1)=%d, want 80 and 0", dst.At(3, 1), dst.At(5, 1))
	}
}

func TestResampleErrors(t *testing.T) {
	src := testGray4()
	tests := []struct {
		name string
		run  func() (*Gray, error)
		want error
	}{
		{"nil-source", func() (*Gray, error) { return Warp(nil, Identity()) }, ErrEmptyImage},
		{"empty-source", func() (*Gray, error) { return Resize(&Gray{}, 2, 2) }, ErrEmptyImage},
		{"zero-scale", func() (*Gray, error) { return Resize(src, 0, 2) }, ErrInvalidScale},
		{"negative-canvas-scale", func() (*Gray, error) { return ScaleCanvas(src, -1, 1) }, ErrInvalidScale},
		{"bad-size", func() (*Gray, error) { return Warp(src, Identity(), WithSize(-1, 4)) }, ErrInvalidSize},
		{"singular", func() (*Gray, error) { return Warp(src, Scaling(0, 0)) }, ErrSingularTransform},
		{"rotate-empty", func() (*Gray, error) { return Rotate(nil, 10) }, ErrEmptyImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := tt.run()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if dst != nil {
				t.Error("expected no output on error")
			}
		})
	}
}

func TestNearestMoveMatchesBilinear(t *testing.T) {
	src := patternGray(40, 30)
	a, _ := Move(src, 7, -5)
	b, _ := Move(src, 7, -5, WithInterpolation(Nearest))
	if stats, _ := Diff(a, b); !stats.Equal() {
		t.Errorf("integer move differs between samplers in %d pixels", stats.Mismatched)
	}
}

func BenchmarkRotate(b *testing.B) {
	src := patternGray(512, 512)
	for _, workers := range []int{1, 0} {
		name := "serial"
		if workers == 0 {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Rotate(src, 30, WithWorkers(workers))
			}
		})
	}
}
