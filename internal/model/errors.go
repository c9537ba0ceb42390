package model

import "errors"

// Pass-scoped failure kinds. Each is fatal for a single (ticker, day) pass;
// the pipeline converts a failed pass into an all-zero contribution and
// continues with the remaining days.
var (
	// ErrInsufficientData: no fully-executed orders, so no basis to bound
	// the price range for book reconstruction.
	ErrInsufficientData = errors.New("insufficient data to bound price range")

	// ErrMalformedEventSequence: an event references an order id that was
	// never introduced by an add event earlier in the sequence.
	ErrMalformedEventSequence = errors.New("malformed event sequence")

	// ErrVolumeInconsistency: a partial execution consumed the full
	// remaining quantity of its resting order, or more.
	ErrVolumeInconsistency = errors.New("trade volume exceeds resting order quantity")

	// ErrClassificationFailure: a trade survived classification with no sign.
	ErrClassificationFailure = errors.New("unsignable trade after classification")

	// ErrResampleGap: a price-like series has no observation at or before
	// the window start, so the grid cannot be seeded.
	ErrResampleGap = errors.New("series never reaches window start")

	// ErrInputNotFound: no source data for the requested instrument-day.
	ErrInputNotFound = errors.New("input data not found")
)
