// Package pipeline orchestrates per-(ticker, day) passes and their parallel
// dispatch.
//
// Each pass is a pure function of one day's event file: reconstruct the
// book, classify the trades, resample both series onto the second grid and
// compute the day's response sums. Passes share no mutable state, so the
// runner maps them over a bounded worker group and reduces the results by
// elementwise addition. A failed pass contributes zeros and is reported,
// never silently folded in as data.
package pipeline
