package completeness

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Goodness-of-fit sweep geometry and confidence bands.
//
// The sweep tests 15 cutoffs around the maximum curvature seed:
//
//	cutoff(i) = seed - 0.4 + (i-1)/10, i = 0..14
//
// i.e. seed-0.5 through seed+0.9 in 0.1 steps. The window is deliberately
// asymmetric around the seed; the offset is preserved exactly as published.
const (
	sweepSize   = 15
	sweepOffset = -0.4
	sweepStep   = 0.1

	// Residual thresholds in percent of observed counts.
	residual95 = 5.0  // 95% confidence band
	residual90 = 10.0 // 90% confidence band
)

// AkiUtsuB estimates the Gutenberg-Richter b-value from the magnitudes
// above a completeness cutoff, using the Aki-Utsu maximum likelihood
// estimator:
//
//	b = log10(e) / (mean(m) - (cutoff - binWidth/2))
//
// Reports ErrInsufficientData when the sample is empty or degenerate (mean
// at the cutoff floor), where the division would produce a non-finite
// value.
func AkiUtsuB(magnitudes []float64, cutoff, binWidth float64) (float64, error) {
	if len(magnitudes) == 0 {
		return 0, fmt.Errorf("%w: no events above %.2f", ErrInsufficientData, cutoff)
	}
	den := stat.Mean(magnitudes, nil) - (cutoff - binWidth/2)
	b := math.Log10(math.E) / den
	if den <= 0 || math.IsInf(b, 0) || math.IsNaN(b) {
		return 0, fmt.Errorf("%w: zero-width tail at cutoff %.2f", ErrInsufficientData, cutoff)
	}
	return b, nil
}

// GoodnessOfFit estimates the completeness magnitude by testing how well a
// Gutenberg-Richter model fits the observed distribution above a sweep of
// candidate cutoffs.
//
// PROS:
//   - Model-based: deviation from G-R is quantified, not eyeballed
//
// CONS:
//   - The 90% confidence band is not always reached
//   - May underestimate Mc
//
// For each candidate the b-value is fit with AkiUtsuB, the modeled
// cumulative curve 10^(a - b*m) is compared against the observed survival
// counts at and above the cutoff, and the deviation is summarized as a
// percent residual. The estimate is the lowest cutoff with residual <= 5
// (95% confidence), then <= 10 (90% confidence), then the maximum curvature
// seed as a fallback. Candidates with too little data drop out of the
// search instead of failing the estimate.
//
// With plotting configured, a scatter of residual vs. cutoff with the 5%
// band and the selected magnitude marked is written as
// "GoodnessOfFitResidual".
func (e *Estimator) GoodnessOfFit() float64 {
	seed := e.maximumCurvature(false, false)

	cutoffs := make([]float64, sweepSize)
	residuals := make([]float64, sweepSize)
	for i := range cutoffs {
		cutoffs[i] = seed + sweepOffset + (float64(i)-1)*sweepStep
		r, err := e.modelResidual(cutoffs[i])
		if err != nil {
			// Degraded candidate: +Inf keeps it out of every
			// low-residual search below.
			e.log.Debug("candidate cutoff skipped", "cutoff", cutoffs[i], "err", err)
			residuals[i] = math.Inf(1)
			continue
		}
		residuals[i] = r
	}

	e.log.Info("goodness of fit completeness magnitude estimation")

	mc := seed
	if i, ok := firstLowResidual(residuals, residual95); ok {
		mc = cutoffs[i]
		e.log.Info("completeness magnitude estimated",
			"completeness_magnitude", mc, "confidence", "95%")
	} else if i, ok := firstLowResidual(residuals, residual90); ok {
		mc = cutoffs[i]
		e.log.Info("completeness magnitude estimated",
			"completeness_magnitude", mc, "confidence", "90%")
	} else {
		e.log.Warn("no candidate within confidence bands, falling back to maximum curvature",
			"completeness_magnitude", mc)
	}

	if e.cfg.Plots != nil {
		if err := e.plotResiduals(cutoffs, residuals, mc); err != nil {
			e.log.Warn("residual figure failed", "err", err)
		}
	}
	return mc
}

// modelResidual fits a G-R model above the cutoff and returns the deviation
// between the modeled and observed cumulative curves, in percent of the
// observed counts, over the grid at and above the cutoff.
func (e *Estimator) modelResidual(cutoff float64) (float64, error) {
	tail := e.catalog.Above(cutoff - e.cfg.BinWidth/2)
	b, err := AkiUtsuB(tail, cutoff, e.cfg.BinWidth)
	if err != nil {
		return 0, err
	}
	a := math.Log10(float64(len(tail))) + b*cutoff

	// A hair of slack on the comparison so cutoffs that land on a grid
	// value include it despite floating error.
	var deviations, observed []float64
	for i, g := range e.hist.Grid {
		if g < cutoff-1e-9 {
			continue
		}
		model := math.Pow(10, a-b*g)
		deviations = append(deviations, math.Abs(e.hist.Survival[i]-model))
		observed = append(observed, e.hist.Survival[i])
	}
	if len(observed) == 0 {
		return 0, fmt.Errorf("%w: no grid bins at or above cutoff %.2f", ErrInsufficientData, cutoff)
	}
	return 100 * floats.Sum(deviations) / floats.Sum(observed), nil
}

// firstLowResidual returns the index of the first residual at or below the
// threshold. Candidates recorded as +Inf never match.
func firstLowResidual(residuals []float64, threshold float64) (int, bool) {
	for i, r := range residuals {
		if r <= threshold {
			return i, true
		}
	}
	return 0, false
}
