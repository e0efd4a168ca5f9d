package filter

import (
	"errors"
	"testing"

	"github.com/seudip/dip"
)

// levels builds an image with equal counts of each value.
func levels(vals ...uint8) *dip.Gray {
	g := dip.NewGray(len(vals)*10, 4)
	for i := range g.Pix {
		g.Pix[i] = vals[(i%g.Width)/10]
	}
	return g
}

func TestOtsu(t *testing.T) {
	src := levels(50, 200)
	th, err := Otsu(src)
	if err != nil {
		t.Fatalf("Otsu() error = %v", err)
	}
	if th < 50 || th >= 200 {
		t.Fatalf("Otsu() = %d, want in [50, 200)", th)
	}

	bin, _ := Threshold(src, th)
	if bin.At(0, 0) != 0 || bin.At(15, 0) != 255 {
		t.Errorf("binarised = %d, %d, want 0, 255", bin.At(0, 0), bin.At(15, 0))
	}
}

func TestMultiOtsu(t *testing.T) {
	src := levels(20, 120, 220)
	k1, k2, err := MultiOtsu(src)
	if err != nil {
		t.Fatalf("MultiOtsu() error = %v", err)
	}
	if k1 != 20 || k2 != 120 {
		t.Errorf("MultiOtsu() = (%d, %d), want (20, 120)", k1, k2)
	}

	q, err := Quantize(src, k1, k2)
	if err != nil {
		t.Fatalf("Quantize() error = %v", err)
	}
	if q.At(0, 0) != 0 || q.At(10, 0) != 127 || q.At(20, 0) != 255 {
		t.Errorf("Quantize() = %d, %d, %d, want 0, 127, 255", q.At(0, 0), q.At(10, 0), q.At(20, 0))
	}
}

func TestMultiOtsuDegenerate(t *testing.T) {
	k1, k2, err := MultiOtsu(filled(4, 4, 90))
	if err != nil || k1 != 0 || k2 != 0 {
		t.Errorf("MultiOtsu(constant) = (%d, %d, %v), want (0, 0, nil)", k1, k2, err)
	}
	if _, _, err := MultiOtsu(nil); !errors.Is(err, dip.ErrEmptyImage) {
		t.Errorf("MultiOtsu(nil) error = %v, want ErrEmptyImage", err)
	}
}
