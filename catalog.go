package completeness

import (
	"fmt"
	"math"
	"time"
)

// Event is a single catalog entry. Only the magnitude participates in the
// estimation; the timestamp is carried so callers can keep working with the
// derived catalog afterwards.
type Event struct {
	DateTime  time.Time
	Magnitude float64
}

// Catalog is an ordered sequence of events whose magnitudes have been
// snapped to a bin grid. It is derived from caller data by RoundToGrid and
// treated as immutable afterwards.
type Catalog []Event

// RoundToGrid returns a derived catalog with every magnitude rounded to the
// nearest multiple of binWidth:
//
//	m' = round(m/dm) * dm
//
// The input slice is never modified; callers holding a reference to the
// original data see no aliasing effects.
func RoundToGrid(events []Event, binWidth float64) Catalog {
	rounded := make(Catalog, len(events))
	for i, ev := range events {
		rounded[i] = Event{
			DateTime:  ev.DateTime,
			Magnitude: roundToBin(ev.Magnitude, binWidth),
		}
	}
	return rounded
}

// Magnitudes returns the magnitude column as a fresh slice.
func (c Catalog) Magnitudes() []float64 {
	mags := make([]float64, len(c))
	for i, ev := range c {
		mags[i] = ev.Magnitude
	}
	return mags
}

// Above returns the magnitudes of events strictly above the threshold.
// With grid-rounded magnitudes and threshold = cutoff - dm/2 this selects
// the right tail at and above the cutoff bin.
func (c Catalog) Above(threshold float64) []float64 {
	var tail []float64
	for _, ev := range c {
		if ev.Magnitude > threshold {
			tail = append(tail, ev.Magnitude)
		}
	}
	return tail
}

// roundToBin snaps a magnitude to the nearest multiple of the bin width.
func roundToBin(m, binWidth float64) float64 {
	return math.Round(m/binWidth) * binWidth
}

// validate checks the construction invariants: a positive finite bin width
// and a non-empty catalog of finite magnitudes.
func validate(events []Event, binWidth float64) error {
	if !(binWidth > 0) || math.IsInf(binWidth, 0) {
		return fmt.Errorf("%w: got %v", ErrBinWidth, binWidth)
	}
	if len(events) == 0 {
		return ErrEmptyCatalog
	}
	for i, ev := range events {
		if math.IsNaN(ev.Magnitude) || math.IsInf(ev.Magnitude, 0) {
			return fmt.Errorf("%w: event %d has magnitude %v", ErrBadMagnitude, i, ev.Magnitude)
		}
	}
	return nil
}
