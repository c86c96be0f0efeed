package scytale

import "errors"

var (
	// ErrInvalidDiameter is returned by [DiameterFromFloat] and [ParseDiameter]
	// for values that have no meaningful column count (NaN, infinities,
	// unparsable text), and when decoding a grid whose diameter is below
	// [MinDiameter].
	ErrInvalidDiameter = errors.New("scytale: invalid diameter")

	// ErrNonRectangular is returned when decoding a grid with rows of
	// differing lengths.
	ErrNonRectangular = errors.New("scytale: all rows must have diameter cells")

	// ErrStalePosition is returned when decoding a grid whose cells do not
	// carry their own row and column.
	ErrStalePosition = errors.New("scytale: cell position does not match its location")
)
