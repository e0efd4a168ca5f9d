package filter

import (
	"fmt"
	"math"

	"github.com/seudip/dip"
)

// pyramidKernel is the 5-tap binomial smoothing both pyramid directions
// use. PyrUp doubles it per axis to make up for the inserted zeros.
var pyramidKernel = []float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}

// Plane is a row-major float image. Pyramid residuals are signed, so
// levels are kept as planes until they are written out.
type Plane struct {
	Width, Height int
	Data          []float64
}

// PlaneFromGray copies g into a plane.
func PlaneFromGray(g *dip.Gray) Plane {
	return Plane{Width: g.Width, Height: g.Height, Data: toFloat(g)}
}

// Gray rounds and saturates the plane to 8 bits.
func (p Plane) Gray() *dip.Gray {
	return fromFloat(p.Width, p.Height, p.Data)
}

// Normalized stretches the plane linearly to 0..255. A constant plane
// maps to 0.
func (p Plane) Normalized() *dip.Gray {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range p.Data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	g := dip.NewGray(p.Width, p.Height)
	if hi <= lo {
		return g
	}
	scale := 255 / (hi - lo)
	for i, v := range p.Data {
		g.Pix[i] = saturate((v - lo) * scale)
	}
	return g
}

// PyrDown smooths p with the binomial kernel and keeps every other row and
// column, giving a ceil(w/2) x ceil(h/2) plane.
func PyrDown(p Plane) Plane {
	blur := separable(p.Data, p.Width, p.Height, pyramidKernel, BorderReflect101)
	w, h := (p.Width+1)/2, (p.Height+1)/2
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = blur[2*y*p.Width+2*x]
		}
	}
	return Plane{Width: w, Height: h, Data: out}
}

// PyrUp expands p to w x h by inserting zero rows and columns and smoothing
// with the doubled binomial kernel. Each of w and h must be twice the plane
// size, or one less when odd.
func PyrUp(p Plane, w, h int) (Plane, error) {
	if abs(w-2*p.Width) > w%2 || abs(h-2*p.Height) > h%2 {
		return Plane{}, fmt.Errorf("%w: cannot expand %dx%d to %dx%d",
			ErrInvalidParameter, p.Width, p.Height, w, h)
	}

	up := make([]float64, w*h)
	for y := 0; y < p.Height && 2*y < h; y++ {
		for x := 0; x < p.Width && 2*x < w; x++ {
			up[2*y*w+2*x] = p.Data[y*p.Width+x]
		}
	}

	k := make([]float64, len(pyramidKernel))
	for i, v := range pyramidKernel {
		k[i] = 2 * v
	}
	return Plane{Width: w, Height: h, Data: separable(up, w, h, k, BorderReflect101)}, nil
}

// Pyramid holds the approximation and residual levels of an image.
// Level 0 is full size. Laplacian[i] = Gaussian[i] - PyrUp(Gaussian[i+1])
// except the last level, which is the coarsest approximation itself.
type Pyramid struct {
	Gaussian  []Plane
	Laplacian []Plane
}

// BuildPyramid decomposes src into levels approximation and residual
// planes.
func BuildPyramid(src *dip.Gray, levels int) (*Pyramid, error) {
	if src.Empty() {
		return nil, dip.ErrEmptyImage
	}
	if levels < 1 {
		return nil, fmt.Errorf("%w: %d pyramid levels", ErrInvalidParameter, levels)
	}

	p := &Pyramid{
		Gaussian:  make([]Plane, levels),
		Laplacian: make([]Plane, levels),
	}
	p.Gaussian[0] = PlaneFromGray(src)
	for i := 1; i < levels; i++ {
		p.Gaussian[i] = PyrDown(p.Gaussian[i-1])
	}

	for i := 0; i < levels-1; i++ {
		g := p.Gaussian[i]
		up, err := PyrUp(p.Gaussian[i+1], g.Width, g.Height)
		if err != nil {
			return nil, err
		}
		res := make([]float64, len(g.Data))
		for j, v := range g.Data {
			res[j] = v - up.Data[j]
		}
		p.Laplacian[i] = Plane{Width: g.Width, Height: g.Height, Data: res}
	}
	p.Laplacian[levels-1] = p.Gaussian[levels-1]

	dip.Logger().Debug("filter: pyramid", "levels", levels,
		"top", fmt.Sprintf("%dx%d", p.Gaussian[levels-1].Width, p.Gaussian[levels-1].Height))
	return p, nil
}

// Reconstruct rebuilds the full-size image from the residual levels,
// starting at the coarsest and adding each expanded level back.
func (p *Pyramid) Reconstruct() (Plane, error) {
	n := len(p.Laplacian)
	if n == 0 {
		return Plane{}, dip.ErrEmptyImage
	}

	cur := p.Laplacian[n-1]
	for i := n - 2; i >= 0; i-- {
		l := p.Laplacian[i]
		up, err := PyrUp(cur, l.Width, l.Height)
		if err != nil {
			return Plane{}, err
		}
		sum := make([]float64, len(l.Data))
		for j, v := range l.Data {
			sum[j] = v + up.Data[j]
		}
		cur = Plane{Width: l.Width, Height: l.Height, Data: sum}
	}
	return cur, nil
}
