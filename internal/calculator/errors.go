package calculator

import "errors"

var (
	// ErrInvalidPeriod is returned when a period is zero, negative or
	// inconsistent with the other periods of the same indicator.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrNonFinitePrice is returned when a price is NaN, infinite or larger
	// in magnitude than MaxAbsPrice.
	ErrNonFinitePrice = errors.New("non-finite price")

	// ErrUnorderedBars is returned when bar timestamps are not strictly increasing.
	ErrUnorderedBars = errors.New("bars not in ascending time order")
)
