package dip

import (
	"errors"
	"math"
	"testing"
)

func TestDiff(t *testing.T) {
	a, _ := GrayFromPix(2, 2, []uint8{10, 20, 30, 40})
	b, _ := GrayFromPix(2, 2, []uint8{10, 25, 27, 40})

	stats, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	if stats.Mismatched != 2 || stats.MaxAbs != 5 || math.Abs(stats.MeanAbs-2) > 1e-12 {
		t.Errorf("Diff() = %+v, want {Mismatched:2 MeanAbs:2 MaxAbs:5}", stats)
	}
	if stats.Equal() {
		t.Error("Equal() = true for differing images")
	}
}

func TestDiffErrors(t *testing.T) {
	if _, err := Diff(NewGray(2, 2), NewGray(3, 2)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Diff size mismatch error = %v, want ErrSizeMismatch", err)
	}
	if _, err := Diff(nil, NewGray(3, 2)); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Diff nil error = %v, want ErrEmptyImage", err)
	}
}
