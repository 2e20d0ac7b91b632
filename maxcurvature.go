package completeness

// MaximumCurvature estimates the completeness magnitude as the point of
// maximum curvature of the frequency-magnitude distribution: the grid value
// where the first derivative of the cumulative count curve peaks.
//
// PROS:
//   - Non-parametric
//   - Straightforward
//   - Statistically robust
//
// CONS:
//   - Underestimates Mc in bulk data
//
// The returned value is always drawn from the magnitude grid. Ties resolve
// to the lowest magnitude. When the distribution mode and the inflection
// point disagree, the disagreement is logged and the inflection magnitude
// is returned.
//
// With plotting configured, a line plot of the derivative with a vertical
// marker at the inflection point is written as
// "MaximumCurvatureInflectionPoint".
func (e *Estimator) MaximumCurvature() float64 {
	return e.maximumCurvature(true, true)
}

// maximumCurvature is the internal form: the goodness-of-fit sweep calls it
// with figures and messaging suppressed to obtain its search seed.
func (e *Estimator) maximumCurvature(plot, verbose bool) float64 {
	modeMagnitude := e.hist.Grid[argmax(e.hist.Counts)]

	// Differencing the cumulative count drops the first bin, so the
	// inflection search runs over Grid[1:]. A single-bin catalog has no
	// derivative; its only bin is the answer.
	deriv := e.hist.derivative()
	inflectionMagnitude := modeMagnitude
	if len(deriv) > 0 {
		inflectionMagnitude = e.hist.Grid[1+argmax(deriv)]
	}

	if plot && e.cfg.Plots != nil {
		if err := e.plotInflection(deriv, inflectionMagnitude); err != nil {
			e.log.Warn("inflection figure failed", "err", err)
		}
	}

	if verbose {
		e.log.Info("maximum curvature completeness magnitude estimation")
		if modeMagnitude != inflectionMagnitude {
			e.log.Warn("mode and inflection point disagree, returning inflection magnitude",
				"inflection_magnitude", inflectionMagnitude,
				"mode_magnitude", modeMagnitude)
		} else {
			e.log.Info("completeness magnitude estimated",
				"completeness_magnitude", inflectionMagnitude)
		}
	}
	return inflectionMagnitude
}

// argmax returns the index of the largest value, first occurrence on ties.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
