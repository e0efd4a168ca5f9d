// Package register aligns a moving image onto a fixed one from point
// correspondences.
//
// Matches come from a text file or, when built with the gocv tag, from ORB
// features matched by Hamming distance with a ratio test. The transform is
// an affine map from moving to fixed coordinates, fitted with RANSAC and
// refined by least squares over the inliers, so it can be passed straight
// to dip.Warp.
package register

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/seudip/dip"
)

var (
	// ErrTooFewMatches is returned when fewer than three matches are given.
	ErrTooFewMatches = errors.New("register: too few matches")

	// ErrDegenerate is returned when the matches do not determine an
	// affine map, for example because every point is collinear.
	ErrDegenerate = errors.New("register: degenerate matches")

	// ErrNoDetector is returned by Detect when feature detection is not
	// compiled in.
	ErrNoDetector = errors.New("register: feature detection needs the gocv build tag")
)

// Match pairs a point in the fixed image with one in the moving image.
type Match struct {
	X1, Y1 float64 // fixed
	X2, Y2 float64 // moving
}

// ReadMatches parses one match per line as "x1 y1 x2 y2", separated by
// spaces or commas. Blank lines and lines that do not hold four numbers are
// skipped.
func ReadMatches(r io.Reader) ([]Match, error) {
	var out []Match
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.FieldsFunc(sc.Text(), func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		if len(fields) < 4 {
			continue
		}
		var v [4]float64
		ok := true
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				ok = false
				break
			}
			v[i] = f
		}
		if ok {
			out = append(out, Match{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("register: read matches: %w", err)
	}
	return out, nil
}

// EstimateAffine fits the least-squares affine map taking every moving
// point onto its fixed point.
func EstimateAffine(matches []Match) (dip.Transform, error) {
	if len(matches) < 3 {
		return dip.Transform{}, fmt.Errorf("%w: %d", ErrTooFewMatches, len(matches))
	}

	// Normal equations: M [a b c]^T = ru and M [d e f]^T = rv.
	var m [3][3]float64
	var ru, rv [3]float64
	for _, p := range matches {
		row := [3]float64{p.X2, p.Y2, 1}
		for i := range row {
			for j := range row {
				m[i][j] += row[i] * row[j]
			}
			ru[i] += row[i] * p.X1
			rv[i] += row[i] * p.Y1
		}
	}

	u, err := solve3(m, ru)
	if err != nil {
		return dip.Transform{}, err
	}
	v, err := solve3(m, rv)
	if err != nil {
		return dip.Transform{}, err
	}
	return dip.NewTransform([3][3]float64{
		{u[0], u[1], u[2]},
		{v[0], v[1], v[2]},
		{0, 0, 1},
	}), nil
}

// solve3 solves m x = b by Gaussian elimination with partial pivoting.
func solve3(m [3][3]float64, b [3]float64) ([3]float64, error) {
	var scale float64
	for _, row := range m {
		for _, v := range row {
			scale = math.Max(scale, math.Abs(v))
		}
	}

	for col := range 3 {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) <= 1e-12*scale {
			return [3]float64{}, ErrDegenerate
		}
		m[col], m[pivot] = m[pivot], m[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < 3; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c < 3; c++ {
				m[r][c] -= f * m[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	var x [3]float64
	for r := 2; r >= 0; r-- {
		s := b[r]
		for c := r + 1; c < 3; c++ {
			s -= m[r][c] * x[c]
		}
		x[r] = s / m[r][r]
	}
	return x, nil
}

// RANSAC configures EstimateAffineRANSAC.
type RANSAC struct {
	// Threshold is the largest reprojection error, in pixels, of an inlier.
	Threshold float64

	// Iterations is the number of random three-point samples tried.
	Iterations int

	// Seed makes the sampling reproducible.
	Seed uint64
}

// DefaultRANSAC returns a 3 pixel threshold with 2000 samples.
func DefaultRANSAC() RANSAC {
	return RANSAC{Threshold: 3, Iterations: 2000, Seed: 1}
}

// EstimateAffineRANSAC fits an affine map robust to mismatched points. The
// sample with the most inliers wins and the map is refitted over those
// inliers. inliers[i] reports whether matches[i] agrees with the result.
func EstimateAffineRANSAC(matches []Match, opt RANSAC) (t dip.Transform, inliers []bool, err error) {
	n := len(matches)
	if n < 3 {
		return dip.Transform{}, nil, fmt.Errorf("%w: %d", ErrTooFewMatches, n)
	}
	if opt.Iterations < 1 || opt.Threshold <= 0 {
		return dip.Transform{}, nil, fmt.Errorf("register: invalid RANSAC settings %+v", opt)
	}

	rng := rand.New(rand.NewPCG(opt.Seed, opt.Seed^0x9e3779b97f4a7c15))
	best := -1
	var bestMask []bool
	sample := make([]Match, 3)
	for range opt.Iterations {
		i := rng.IntN(n)
		j := rng.IntN(n - 1)
		if j >= i {
			j++
		}
		k := rng.IntN(n - 2)
		for _, taken := range sortedPair(i, j) {
			if k >= taken {
				k++
			}
		}
		sample[0], sample[1], sample[2] = matches[i], matches[j], matches[k]

		cand, fitErr := EstimateAffine(sample)
		if fitErr != nil {
			continue
		}
		mask, count := agree(cand, matches, opt.Threshold)
		if count > best {
			best, bestMask = count, mask
			if count == n {
				break
			}
		}
	}
	if best < 3 {
		return dip.Transform{}, nil, ErrDegenerate
	}

	var in []Match
	for i, ok := range bestMask {
		if ok {
			in = append(in, matches[i])
		}
	}
	t, err = EstimateAffine(in)
	if err != nil {
		return dip.Transform{}, nil, err
	}
	inliers, count := agree(t, matches, opt.Threshold)
	dip.Logger().Debug("register: ransac", "matches", n, "inliers", count)
	return t, inliers, nil
}

func sortedPair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// agree marks the matches whose moving point t maps within threshold of
// the fixed point.
func agree(t dip.Transform, matches []Match, threshold float64) ([]bool, int) {
	mask := make([]bool, len(matches))
	count := 0
	for i, p := range matches {
		x, y := t.Apply(p.X2, p.Y2)
		if math.Hypot(x-p.X1, y-p.Y1) <= threshold {
			mask[i] = true
			count++
		}
	}
	return mask, count
}

// Blend returns the pixelwise weighted sum alpha*a + (1-alpha)*b, rounded
// half to even.
func Blend(a, b *dip.Gray, alpha float64) (*dip.Gray, error) {
	if a.Empty() || b.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("%w: %dx%d and %dx%d", dip.ErrInvalidSize, a.Width, a.Height, b.Width, b.Height)
	}
	out := dip.NewGray(a.Width, a.Height)
	for i := range out.Pix {
		v := math.RoundToEven(alpha*float64(a.Pix[i]) + (1-alpha)*float64(b.Pix[i]))
		out.Pix[i] = uint8(min(max(v, 0), 255))
	}
	return out, nil
}
