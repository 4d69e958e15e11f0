package market

import "errors"

var (
	// ErrInvalidInput reports malformed or unorderable tick data, an unknown
	// granularity, or an operation applied to the wrong kind of series.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientData reports a window that the series cannot fill.
	ErrInsufficientData = errors.New("insufficient data")
)
