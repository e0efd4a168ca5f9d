package dip

// Boundary selects what happens when a destination pixel maps outside the
// source image.
type Boundary uint8

const (
	// BoundaryBackground writes the background value for destination pixels
	// whose source coordinate falls outside [0, w-1] x [0, h-1].
	BoundaryBackground Boundary = iota

	// BoundaryClamp clamps the source coordinate into the image and samples
	// there, replicating edge pixels.
	BoundaryClamp
)

// String returns a string representation of the boundary policy.
func (b Boundary) String() string {
	switch b {
	case BoundaryBackground:
		return "Background"
	case BoundaryClamp:
		return "Clamp"
	default:
		return "Unknown"
	}
}

// Option configures a single resample call.
// Use functional options to customize Warp and Resize behavior.
//
// Example:
//
//	// Defaults: source-size output, background policy, bilinear sampling
//	dst, err := dip.Warp(src, t)
//
//	// Larger canvas, edge replication, four workers
//	dst, err := dip.Warp(src, t,
//		dip.WithSize(1024, 768),
//		dip.WithBoundary(dip.BoundaryClamp),
//		dip.WithWorkers(4))
type Option func(*options)

// options holds the configuration of a resample call.
type options struct {
	boundary   Boundary
	background uint8
	width      int
	height     int
	interp     Interpolation
	workers    int
}

// defaultOptions returns the options for an entry point whose default
// boundary policy is b.
func defaultOptions(b Boundary) options {
	return options{
		boundary: b,
		interp:   Bilinear,
		workers:  0, // Resolved by the driver from the image size
	}
}

func applyOptions(b Boundary, opts []Option) options {
	o := defaultOptions(b)
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithBoundary sets the out-of-bounds policy for the whole call.
func WithBoundary(b Boundary) Option {
	return func(o *options) {
		o.boundary = b
	}
}

// WithBackground sets the value written for dropped pixels under
// BoundaryBackground. The default is 0.
func WithBackground(v uint8) Option {
	return func(o *options) {
		o.background = v
	}
}

// WithSize sets the destination size. Without it, Warp produces an image the
// size of the source and Resize derives the size from the scale factors.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithInterpolation selects the sampler. The default is Bilinear.
func WithInterpolation(m Interpolation) Option {
	return func(o *options) {
		o.interp = m
	}
}

// WithWorkers sets how many goroutines share the destination rows.
// 1 runs inline on the caller's goroutine; 0 or negative picks GOMAXPROCS
// for images large enough to benefit.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
