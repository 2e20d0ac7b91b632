package completeness

import "errors"

// Estimator errors fall into two classes: construction errors, which are
// fatal and surfaced to the caller immediately, and per-candidate errors
// inside the goodness-of-fit sweep, which are absorbed (the candidate drops
// out of the low-residual search and the sweep continues).
//
// Match with errors.Is; wrapped variants carry context.
var (
	// ErrBinWidth reports an invalid bin width configuration (dm <= 0 or
	// not finite). Raised at construction.
	ErrBinWidth = errors.New("bin width must be a positive finite value")

	// ErrEmptyCatalog reports a catalog with no events. Raised at
	// construction: an empty catalog has no magnitude distribution to
	// estimate from.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrBadMagnitude reports a catalog event whose magnitude is NaN or
	// infinite. Raised at construction: a single bad sample would poison
	// every downstream mean and bin assignment.
	ErrBadMagnitude = errors.New("catalog contains a non-finite magnitude")

	// ErrInsufficientData reports a goodness-of-fit candidate cutoff with
	// too few events above it to estimate a b-value. Local to that
	// candidate; never aborts the sweep.
	ErrInsufficientData = errors.New("not enough events above cutoff to fit b-value")
)
