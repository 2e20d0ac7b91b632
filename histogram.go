package completeness

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Histogram bins a grid-rounded catalog onto a fixed-width magnitude grid
// and derives the right-tail survival counts the estimators work on.
//
// All fields are built once and treated as immutable:
//
//   - Grid: bin centers from the smallest to the largest rounded magnitude,
//     strictly increasing with constant step BinWidth.
//   - Counts: events per bin (the non-cumulative frequency distribution).
//   - Survival: for each bin center g, the number of events with magnitude
//     > g - BinWidth/2. This is a right-tail survival count, monotonically
//     non-increasing along the grid - not a CDF.
type Histogram struct {
	BinWidth float64
	Grid     []float64
	Counts   []float64
	Survival []float64
}

// newHistogram builds the grid and both distributions from an already
// rounded catalog. The catalog must be non-empty (enforced at construction
// of the Estimator).
func newHistogram(rounded Catalog, binWidth float64) Histogram {
	mags := rounded.Magnitudes()
	lo := floats.Min(mags)
	hi := floats.Max(mags)

	// Index bins by integer multiples of the bin width so accumulated
	// floating error cannot shift a magnitude into a neighboring bin.
	first := int(math.Round(lo / binWidth))
	last := int(math.Round(hi / binWidth))
	n := last - first + 1

	h := Histogram{
		BinWidth: binWidth,
		Grid:     make([]float64, n),
		Counts:   make([]float64, n),
		Survival: make([]float64, n),
	}
	for i := range h.Grid {
		h.Grid[i] = float64(first+i) * binWidth
	}
	for _, m := range mags {
		h.Counts[int(math.Round(m/binWidth))-first]++
	}

	// Survival[i] counts everything in bin i and above; accumulate from
	// the top of the grid down.
	var tail float64
	for i := n - 1; i >= 0; i-- {
		tail += h.Counts[i]
		h.Survival[i] = tail
	}
	return h
}

// derivative returns the discrete first derivative of the cumulative count
// sequence over the grid. Differencing the cumulative count recovers the
// per-bin count, so the value at grid index i (i >= 1) is Counts[i]; the
// first bin has no difference and is excluded. The returned slice aligns
// with Grid[1:].
func (h Histogram) derivative() []float64 {
	if len(h.Counts) < 2 {
		return nil
	}
	return h.Counts[1:]
}
