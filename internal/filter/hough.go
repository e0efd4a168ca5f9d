package filter

import (
	"fmt"
	"math"
	"slices"

	"github.com/seudip/dip"
	"github.com/seudip/dip/internal/parallel"
)

// Circle is a detected circle with its accumulator score.
type Circle struct {
	X, Y, R int
	Votes   int
}

// HoughParams configures HoughCircles.
type HoughParams struct {
	// MinRadius and MaxRadius bound the radii searched, inclusive.
	MinRadius, MaxRadius int

	// BlurSize and BlurSigma set the Gaussian pre-smoothing.
	BlurSize  int
	BlurSigma float64

	// EdgeThreshold is the Sobel gradient magnitude a pixel needs to vote.
	EdgeThreshold float64

	// MinVotes is the score a radius plane's peak must exceed.
	MinVotes int
}

// DefaultHoughParams returns the vessel detection settings.
func DefaultHoughParams() HoughParams {
	return HoughParams{
		MinRadius:     15,
		MaxRadius:     35,
		BlurSize:      9,
		BlurSigma:     2,
		EdgeThreshold: 100,
		MinVotes:      25,
	}
}

// Sobel returns the horizontal and vertical 3x3 Sobel derivatives of src
// with a reflect-101 border.
func Sobel(src *dip.Gray) (gx, gy []float64) {
	kx := Kernel{Width: 3, Height: 3, Data: []float64{-1, 0, 1, -2, 0, 2, -1, 0, 1}}
	ky := Kernel{Width: 3, Height: 3, Data: []float64{-1, -2, -1, 0, 0, 0, 1, 2, 1}}
	return correlate(src, kx, BorderReflect101), correlate(src, ky, BorderReflect101)
}

// HoughCircles finds at most one circle per radius with a gradient-directed
// accumulator.
//
// After smoothing, every pixel whose Sobel magnitude exceeds EdgeThreshold
// votes for the two points r pixels away along its gradient, on both sides
// because the circle may be brighter or darker than its surroundings. For
// each radius the first highest cell in row-major order becomes a circle
// when its count exceeds MinVotes. Circles are returned in radius order.
func HoughCircles(src *dip.Gray, p HoughParams) ([]Circle, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if p.MinRadius < 1 || p.MaxRadius < p.MinRadius {
		return nil, fmt.Errorf("%w: radius range [%d, %d]", ErrInvalidParameter, p.MinRadius, p.MaxRadius)
	}

	blurred, err := GaussianBlur(src, p.BlurSize, p.BlurSigma, BorderReflect101)
	if err != nil {
		return nil, err
	}
	gx, gy := Sobel(blurred)

	// Edge pixels and their unit gradients are shared by every radius.
	type edge struct {
		x, y     float64
		cos, sin float64
	}
	w, h := src.Width, src.Height
	var edges []edge
	for i := range gx {
		mag := math.Hypot(gx[i], gy[i])
		if mag > p.EdgeThreshold {
			edges = append(edges, edge{float64(i % w), float64(i / w), gx[i] / mag, gy[i] / mag})
		}
	}

	n := p.MaxRadius - p.MinRadius + 1
	found := make([]*Circle, n)
	work := make([]func(), n)
	for i := range work {
		r := p.MinRadius + i
		work[i] = func() {
			acc := make([]int32, w*h)
			fr := float64(r)
			for _, e := range edges {
				for _, side := range [2]float64{-1, 1} {
					cx := int(math.Round(e.x + side*fr*e.cos))
					cy := int(math.Round(e.y + side*fr*e.sin))
					if cx >= 0 && cx < w && cy >= 0 && cy < h {
						acc[cy*w+cx]++
					}
				}
			}

			best := 0
			for j, v := range acc {
				if v > acc[best] {
					best = j
				}
			}
			if int(acc[best]) > p.MinVotes {
				found[i] = &Circle{X: best % w, Y: best / w, R: r, Votes: int(acc[best])}
			}
		}
	}

	pool := parallel.NewWorkerPool(0)
	pool.ExecuteAll(work)
	pool.Close()

	var circles []Circle
	for _, c := range found {
		if c != nil {
			circles = append(circles, *c)
		}
	}
	dip.Logger().Debug("filter: hough", "edges", len(edges), "radii", n, "circles", len(circles))
	return circles, nil
}

// Strongest returns the circle with the most votes, preferring the smaller
// radius on ties. ok is false for an empty slice.
func Strongest(circles []Circle) (c Circle, ok bool) {
	if len(circles) == 0 {
		return Circle{}, false
	}
	return slices.MaxFunc(circles, func(a, b Circle) int {
		if a.Votes != b.Votes {
			return a.Votes - b.Votes
		}
		return b.R - a.R
	}), true
}
