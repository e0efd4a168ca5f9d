package dip

import (
	"fmt"
	"math"
)

// singularEpsilon is the determinant magnitude below which a transform is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Transform represents a 2D affine transformation in homogeneous form.
// It is a 3x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Transform is an immutable value; every method returns a new Transform.
type Transform struct {
	m [3][3]float64
}

// NewTransform creates a transform from a full 3x3 matrix.
// Only affine matrices (last row 0 0 1) are meaningful to the resampler;
// the last row is stored as given.
func NewTransform(m [3][3]float64) Transform {
	return Transform{m: m}
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{m: [3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Translation creates a translation matrix that shifts points by (tx, ty).
func Translation(tx, ty float64) Transform {
	return Transform{m: [3][3]float64{
		{1, 0, tx},
		{0, 1, ty},
		{0, 0, 1},
	}}
}

// Scaling creates a scaling matrix about the origin.
func Scaling(sx, sy float64) Transform {
	return Transform{m: [3][3]float64{
		{sx, 0, 0},
		{0, sy, 0},
		{0, 0, 1},
	}}
}

// Rotation creates a rotation by angle degrees about (cx, cy).
// Positive angles rotate counter-clockwise as seen on screen (y axis down).
func Rotation(cx, cy, angle float64) Transform {
	rad := angle * math.Pi / 180
	alpha := math.Cos(rad)
	beta := math.Sin(rad)
	return Transform{m: [3][3]float64{
		{alpha, beta, (1-alpha)*cx - beta*cy},
		{-beta, alpha, beta*cx + (1-alpha)*cy},
		{0, 0, 1},
	}}
}

// Shear creates a shear matrix. shx skews along x proportionally to y,
// shy skews along y proportionally to x. The matrix is singular when
// shx*shy == 1.
func Shear(shx, shy float64) Transform {
	return Transform{m: [3][3]float64{
		{1, shx, 0},
		{shy, 1, 0},
		{0, 0, 1},
	}}
}

// Matrix returns a copy of the underlying 3x3 matrix.
func (t Transform) Matrix() [3][3]float64 {
	return t.m
}

// Affine returns the first two rows as (a, b, c, d, e, f).
func (t Transform) Affine() [6]float64 {
	return [6]float64{t.m[0][0], t.m[0][1], t.m[0][2], t.m[1][0], t.m[1][1], t.m[1][2]}
}

// Multiply returns t * other. The result applies other first, then t.
func (t Transform) Multiply(other Transform) Transform {
	var r Transform
	for i := range 3 {
		for j := range 3 {
			r.m[i][j] = t.m[i][0]*other.m[0][j] + t.m[i][1]*other.m[1][j] + t.m[i][2]*other.m[2][j]
		}
	}
	return r
}

// Then returns the transform that applies t first, then next.
func (t Transform) Then(next Transform) Transform {
	return next.Multiply(t)
}

// Determinant returns the determinant of the linear 2x2 part.
func (t Transform) Determinant() float64 {
	return t.m[0][0]*t.m[1][1] - t.m[0][1]*t.m[1][0]
}

// Invert returns the inverse transformation.
// Returns ErrSingularTransform if the determinant is within 1e-12 of zero.
func (t Transform) Invert() (Transform, error) {
	det := t.Determinant()
	if math.Abs(det) < singularEpsilon || math.IsNaN(det) {
		return Transform{}, fmt.Errorf("%w: determinant %g", ErrSingularTransform, det)
	}

	a, b, c := t.m[0][0], t.m[0][1], t.m[0][2]
	d, e, f := t.m[1][0], t.m[1][1], t.m[1][2]
	invDet := 1.0 / det

	return Transform{m: [3][3]float64{
		{e * invDet, -b * invDet, (b*f - c*e) * invDet},
		{-d * invDet, a * invDet, (c*d - a*f) * invDet},
		{0, 0, 1},
	}}, nil
}

// Apply maps the point (x, y) through the transformation.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.m[0][0]*x + t.m[0][1]*y + t.m[0][2],
		t.m[1][0]*x + t.m[1][1]*y + t.m[1][2]
}

// IsIdentity returns true if the transform is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// String formats the two affine rows.
func (t Transform) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]",
		t.m[0][0], t.m[0][1], t.m[0][2], t.m[1][0], t.m[1][1], t.m[1][2])
}
