package dip

import "errors"

// Common errors for resampling operations.
var (
	// ErrEmptyImage is returned when the source image is nil or has no pixels.
	ErrEmptyImage = errors.New("dip: empty source image")

	// ErrInvalidSize is returned when a requested output size is non-positive
	// or a pixel buffer does not match its dimensions.
	ErrInvalidSize = errors.New("dip: invalid image size")

	// ErrInvalidScale is returned when a scale factor is zero, negative, NaN or infinite.
	ErrInvalidScale = errors.New("dip: invalid scale factor")

	// ErrSingularTransform is returned when a transform has no inverse.
	ErrSingularTransform = errors.New("dip: singular transform")

	// ErrSizeMismatch is returned when two images compared pixel by pixel
	// have different dimensions.
	ErrSizeMismatch = errors.New("dip: image size mismatch")
)
