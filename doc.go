// Package dip provides a small geometric resampling engine for 8-bit
// grayscale images.
//
// # Overview
//
// A resample call runs four stages: a [Transform] is built for the
// geometric operation, inverted once, every destination pixel is mapped back
// into the source image, and the source is sampled there with bilinear (or
// nearest-neighbour) interpolation.
//
// # Quick Start
//
//	import "github.com/seudip/dip"
//
//	src, err := dip.Load("SEU_gray.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Rotate 45 degrees counter-clockwise about the image centre.
//	dst, err := dip.Rotate(src, 45)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = dst.Save("custom_rotate.png")
//
// # Conventions
//
// Two coordinate conventions are exposed as separate entry points:
//   - [Warp] uses the matrix convention: source = inverse · (x, y, 1).
//   - [Resize] uses the pixel-center convention: source = (x+0.5)/scale - 0.5.
//
// # Boundaries
//
// Mapped coordinates that leave the source image are handled by a
// [Boundary] policy fixed for the whole call. [BoundaryBackground] writes the
// background value (0 unless [WithBackground] is given); [BoundaryClamp]
// replicates edge pixels. [Warp], [Move], [Rotate], [ShearImage] and
// [ScaleCanvas] default to the background policy, [Resize] defaults to
// clamping.
//
// # Concurrency
//
// Destination rows are independent, so [WithWorkers] partitions them across
// a worker pool. The output does not depend on the worker count.
package dip
