package filter

import "errors"

var (
	// ErrInvalidWindow is returned for window sizes that are not odd and
	// positive, or below the minimum an operation needs.
	ErrInvalidWindow = errors.New("filter: invalid window size")

	// ErrInvalidParameter is returned for out-of-range numeric parameters.
	ErrInvalidParameter = errors.New("filter: invalid parameter")

	// ErrWatermarkTooLarge is returned when the mark does not fit inside
	// the image it is anchored to.
	ErrWatermarkTooLarge = errors.New("filter: watermark larger than image")
)
