// Package normalize turns raw provider records into canonical domain
// entities. All functions are pure: they read only their arguments and
// return fresh values, so batches can be normalized concurrently without
// coordination.
//
// Entry points that stamp wall-clock bookkeeping fields have an At variant
// taking an explicit time, used by tests and by callers that batch-stamp a
// whole tick with one timestamp.
package normalize

import "errors"

// ErrInvalidInput marks structurally invalid raw records (missing or
// malformed identifier fields). Business-data irregularities never produce
// an error; they fall back to documented defaults instead.
var ErrInvalidInput = errors.New("invalid input")

// ratioOr returns num/den, or fallback when den is zero. Ratio fields must
// never carry NaN or Inf; each call site documents its neutral value.
func ratioOr(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
