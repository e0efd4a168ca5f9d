package reference

import (
	"errors"
	"image"
	"math"
	"testing"
)

func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8(1 + 3*x + 5*y)
		}
	}
	return img
}

func TestWarpIdentity(t *testing.T) {
	src := gradient(12, 8)
	dst, err := Warp(src, [6]float64{1, 0, 0, 0, 1, 0}, image.Point{}, NearestNeighbor)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Fatalf("identity warp differs at %d: %d != %d", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestWarpTranslateLeavesZeroBorder(t *testing.T) {
	src := gradient(12, 8)
	dst, err := Warp(src, [6]float64{1, 0, 3, 0, 1, 2}, image.Pt(12, 8), NearestNeighbor)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	if dst.GrayAt(0, 0).Y != 0 || dst.GrayAt(2, 1).Y != 0 {
		t.Errorf("uncovered pixels = %d, %d, want 0", dst.GrayAt(0, 0).Y, dst.GrayAt(2, 1).Y)
	}
	if got, want := dst.GrayAt(5, 4).Y, src.GrayAt(2, 2).Y; got != want {
		t.Errorf("dst(5,4) = %d, want %d", got, want)
	}
}

func TestWarpSingular(t *testing.T) {
	_, err := Warp(gradient(4, 4), [6]float64{1, 1, 0, 1, 1, 0}, image.Point{}, Linear)
	if !errors.Is(err, ErrSingular) {
		t.Errorf("Warp(singular) error = %v, want ErrSingular", err)
	}
}

func TestInvert(t *testing.T) {
	m := [6]float64{1, 0.3, 5, 0.2, 1, -4}
	inv, err := Invert(m)
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}
	x, y := 7.0, 3.0
	fx, fy := m[0]*x+m[1]*y+m[2], m[3]*x+m[4]*y+m[5]
	bx, by := inv[0]*fx+inv[1]*fy+inv[2], inv[3]*fx+inv[4]*fy+inv[5]
	if math.Abs(bx-x) > 1e-9 || math.Abs(by-y) > 1e-9 {
		t.Errorf("round trip = (%f, %f), want (7, 3)", bx, by)
	}
	if _, err := Invert([6]float64{}); !errors.Is(err, ErrSingular) {
		t.Errorf("Invert(zero) error = %v, want ErrSingular", err)
	}
}

func TestName(t *testing.T) {
	if Name() == "" {
		t.Error("Name() is empty")
	}
}

func TestResize(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 4))
	for i := range src.Pix {
		src.Pix[i] = 90
	}

	dst := Resize(src, 12, 8)
	if got := dst.Bounds().Size(); got != image.Pt(12, 8) {
		t.Fatalf("Resize() size = %v, want (12,8)", got)
	}
	for i, v := range dst.Pix {
		if v != 90 {
			t.Fatalf("pix[%d] = %d, want 90", i, v)
		}
	}
}
