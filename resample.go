package dip

import (
	"fmt"
	"math"

	"github.com/seudip/dip/internal/parallel"
)

// boundsTolerance absorbs round-off in inverse-mapped coordinates that land
// exactly on the first or last row/column.
const boundsTolerance = 1e-9

// Warp resamples src through t using the matrix convention: each destination
// pixel (x, y) reads the source at inverse(t) · (x, y, 1).
//
// The destination has the size of src unless WithSize is given. The default
// boundary policy is BoundaryBackground. The inverse is computed once; a
// singular t returns ErrSingularTransform before any pixel is written.
func Warp(src *Gray, t Transform, opts ...Option) (*Gray, error) {
	o := applyOptions(BoundaryBackground, opts)
	if src.Empty() {
		return nil, ErrEmptyImage
	}

	inv, err := t.Invert()
	if err != nil {
		return nil, err
	}

	w, h := o.width, o.height
	if w == 0 && h == 0 {
		w, h = src.Width, src.Height
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	a := inv.Affine()
	return run(src, w, h, o, func(x, y float64) (float64, float64) {
		return a[0]*x + a[1]*y + a[2], a[3]*x + a[4]*y + a[5]
	}), nil
}

// Resize scales src by (sx, sy) using the pixel-center convention: the
// destination pixel x reads the source at (x+0.5)/sx - 0.5.
//
// The destination size is round(w*sx) x round(h*sy), at least one pixel,
// unless WithSize is given. The default boundary policy is BoundaryClamp so
// the outermost destination pixels replicate the source edge.
func Resize(src *Gray, sx, sy float64, opts ...Option) (*Gray, error) {
	o := applyOptions(BoundaryClamp, opts)
	if src.Empty() {
		return nil, ErrEmptyImage
	}
	if !validScale(sx) || !validScale(sy) {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrInvalidScale, sx, sy)
	}

	w, h := o.width, o.height
	if w == 0 && h == 0 {
		w = max(1, int(math.Round(float64(src.Width)*sx)))
		h = max(1, int(math.Round(float64(src.Height)*sy)))
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}

	rx, ry := 1/sx, 1/sy
	return run(src, w, h, o, func(x, y float64) (float64, float64) {
		return (x+0.5)*rx - 0.5, (y+0.5)*ry - 0.5
	}), nil
}

// Move translates src by (tx, ty) on a canvas of the same size.
// Pixels uncovered by the shift receive the background value.
func Move(src *Gray, tx, ty float64, opts ...Option) (*Gray, error) {
	return Warp(src, Translation(tx, ty), opts...)
}

// Rotate rotates src by angle degrees counter-clockwise about the image
// centre (w/2, h/2) on a canvas of the same size. Corners rotated out of the
// source receive the background value.
func Rotate(src *Gray, angle float64, opts ...Option) (*Gray, error) {
	if src.Empty() {
		return nil, ErrEmptyImage
	}
	cx, cy := float64(src.Width)/2, float64(src.Height)/2
	return Warp(src, Rotation(cx, cy, angle), opts...)
}

// ShearImage shears src by (shx, shy) on a canvas of the same size, with the
// background policy. It returns ErrSingularTransform when shx*shy == 1.
func ShearImage(src *Gray, shx, shy float64, opts ...Option) (*Gray, error) {
	return Warp(src, Shear(shx, shy), opts...)
}

// ScaleCanvas scales src about the origin with the matrix convention, keeping
// the source canvas size: enlargements are cropped to the top-left and
// reductions leave a background margin.
func ScaleCanvas(src *Gray, sx, sy float64, opts ...Option) (*Gray, error) {
	if !validScale(sx) || !validScale(sy) {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrInvalidScale, sx, sy)
	}
	return Warp(src, Scaling(sx, sy), opts...)
}

// run allocates a w x h destination and fills it by mapping every pixel
// through mapFn and sampling src under the configured boundary policy.
func run(src *Gray, w, h int, o options, mapFn func(x, y float64) (float64, float64)) *Gray {
	dst := NewGray(w, h)
	workers := parallel.Workers(o.workers, h)

	Logger().Debug("dip: resample",
		"src", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"dst", fmt.Sprintf("%dx%d", w, h),
		"boundary", o.boundary,
		"interp", o.interp,
		"workers", workers)

	maxX := float64(src.Width - 1)
	maxY := float64(src.Height - 1)

	parallel.ForEachRows(h, workers, func(r parallel.RowRange) {
		for y := r.Start; y < r.End; y++ {
			row := dst.Pix[y*w : (y+1)*w]
			for x := range row {
				sx, sy := mapFn(float64(x), float64(y))

				if o.boundary == BoundaryBackground &&
					(sx < -boundsTolerance || sx > maxX+boundsTolerance ||
						sy < -boundsTolerance || sy > maxY+boundsTolerance ||
						math.IsNaN(sx) || math.IsNaN(sy)) {
					row[x] = o.background
					continue
				}

				row[x] = o.interp.sample(src, sx, sy)
			}
		}
	})

	return dst
}

func validScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}
