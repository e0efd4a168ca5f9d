// Package parallel runs independent row bands of an image on a worker pool.
//
// Resampling writes every destination pixel exactly once and reads only the
// immutable source, so the destination can be split into disjoint row
// ranges with no synchronization beyond the final join.
package parallel

import "runtime"

// MinRowsPerBand is the smallest band handed to a worker. Smaller images run
// inline, where goroutine start-up would cost more than the arithmetic.
const MinRowsPerBand = 16

// RowRange is the half-open row interval [Start, End).
type RowRange struct {
	Start, End int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// SplitRows partitions [0, height) into at most parts contiguous, disjoint,
// non-empty ranges whose lengths differ by at most one.
func SplitRows(height, parts int) []RowRange {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > height {
		parts = height
	}

	ranges := make([]RowRange, 0, parts)
	base, extra := height/parts, height%parts
	start := 0
	for i := range parts {
		n := base
		if i < extra {
			n++
		}
		ranges = append(ranges, RowRange{Start: start, End: start + n})
		start += n
	}
	return ranges
}

// Workers resolves a requested worker count for an image of the given
// height. Non-positive requests mean GOMAXPROCS; the result never exceeds
// the number of MinRowsPerBand bands and is at least 1.
func Workers(requested, height int) int {
	n := requested
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if maxBands := height / MinRowsPerBand; n > maxBands {
		n = maxBands
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ForEachRows calls fn once for every band of [0, height) split across
// workers goroutines and returns after all calls have completed. With one
// worker fn runs on the calling goroutine.
func ForEachRows(height, workers int, fn func(RowRange)) {
	if height <= 0 {
		return
	}
	if workers <= 1 {
		fn(RowRange{Start: 0, End: height})
		return
	}

	// Twice as many bands as workers gives the stealers something to take.
	bands := SplitRows(height, workers*2)
	work := make([]func(), len(bands))
	for i, r := range bands {
		work[i] = func() { fn(r) }
	}

	pool := NewWorkerPool(workers)
	defer pool.Close()
	pool.ExecuteAll(work)
}
