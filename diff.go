package dip

import "fmt"

// DiffStats summarizes the per-pixel difference between two images.
type DiffStats struct {
	// Mismatched is the number of pixels whose values differ.
	Mismatched int

	// MeanAbs is the mean absolute difference over all pixels.
	MeanAbs float64

	// MaxAbs is the largest absolute difference.
	MaxAbs int
}

// Equal reports whether every pixel matched.
func (d DiffStats) Equal() bool {
	return d.Mismatched == 0
}

// Diff compares a and b pixel by pixel.
// Returns ErrSizeMismatch if the dimensions differ.
func Diff(a, b *Gray) (DiffStats, error) {
	if a.Empty() || b.Empty() {
		return DiffStats{}, ErrEmptyImage
	}
	if a.Width != b.Width || a.Height != b.Height {
		return DiffStats{}, fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrSizeMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	var stats DiffStats
	var sum int
	for i, av := range a.Pix {
		d := int(av) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d != 0 {
			stats.Mismatched++
		}
		sum += d
		stats.MaxAbs = max(stats.MaxAbs, d)
	}
	stats.MeanAbs = float64(sum) / float64(len(a.Pix))
	return stats, nil
}
