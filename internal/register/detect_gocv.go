//go:build gocv

package register

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/seudip/dip"
)

// ratio is the Lowe ratio test bound on best / second-best distance.
const ratio = 0.75

// Detect finds ORB features in both images and keeps the matches whose
// Hamming distance passes the ratio test.
func Detect(fixed, moving *dip.Gray) ([]Match, error) {
	a, err := toMat(fixed)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	b, err := toMat(moving)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	orb := gocv.NewORB()
	defer orb.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	ka, da := orb.DetectAndCompute(a, mask)
	defer da.Close()
	kb, db := orb.DetectAndCompute(b, mask)
	defer db.Close()
	if da.Empty() || db.Empty() {
		return nil, fmt.Errorf("%w: no features found", ErrDegenerate)
	}

	bf := gocv.NewBFMatcherWithParams(gocv.NormHamming, false)
	defer bf.Close()

	var out []Match
	for _, m := range bf.KnnMatch(da, db, 2) {
		if len(m) < 2 || m[0].Distance >= ratio*m[1].Distance {
			continue
		}
		p, q := ka[m[0].QueryIdx], kb[m[0].TrainIdx]
		out = append(out, Match{X1: p.X, Y1: p.Y, X2: q.X, Y2: q.Y})
	}
	dip.Logger().Debug("register: orb", "fixed", len(ka), "moving", len(kb), "matches", len(out))
	return out, nil
}

func toMat(g *dip.Gray) (gocv.Mat, error) {
	if g.Empty() {
		return gocv.Mat{}, dip.ErrEmptyImage
	}
	m, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8U, g.Clone().Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("register: wrap image: %w", err)
	}
	return m, nil
}
