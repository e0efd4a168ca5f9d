//go:build !gocv

package register

import "github.com/seudip/dip"

// Detect is unavailable without the gocv build tag; pass a matches file
// instead.
func Detect(_, _ *dip.Gray) ([]Match, error) {
	return nil, ErrNoDetector
}
