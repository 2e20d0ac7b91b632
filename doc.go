// Package completeness estimates the completeness magnitude (Mc) of a
// seismic event catalog.
//
// # Overview
//
// Every seismic network misses small events: below some magnitude the
// catalog records only a fraction of what actually happened. The
// completeness magnitude Mc is the smallest magnitude above which the
// catalog is believed to record events without significant detection loss.
// Everything built on top of a catalog (b-values, rates, hazard) is only as
// good as the Mc it assumed.
//
// Two estimation techniques are provided:
//
//   - Maximum curvature: Mc is the magnitude where the frequency-magnitude
//     distribution's derivative peaks. Non-parametric, straightforward,
//     statistically robust - but tends to underestimate Mc in bulk data.
//   - Goodness of fit: sweep candidate cutoffs around the maximum curvature
//     estimate, fit a Gutenberg-Richter model above each cutoff, and pick
//     the lowest cutoff whose model matches the observed distribution
//     within a confidence band.
//
// # The Gutenberg-Richter law
//
// Above Mc, earthquake counts follow a power law:
//
//	log10 N(>=m) = a - b*m
//
// Where:
//   - a: activity rate (log10 of the count extrapolated to magnitude 0)
//   - b: size distribution slope (globally b ~= 1)
//   - N(>=m): number of events at or above magnitude m
//
// The b-value is estimated with the Aki-Utsu maximum likelihood method:
//
//	b = log10(e) / (mean(m) - (Mc - dm/2))
//
// where dm is the magnitude bin width.
//
// # Quick Start
//
// Build an estimator from an in-memory catalog and run both methods:
//
//	events := loadCatalog() // []completeness.Event
//
//	est, err := completeness.New(events, completeness.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mc := est.MaximumCurvature()
//	mc = est.GoodnessOfFit() // refines the maximum curvature seed
//
// # Diagnostics
//
// With a PlotConfig set, the estimators write diagnostic figures (the
// frequency-magnitude distributions, the derivative with its inflection
// point, the residual sweep) in one or more formats:
//
//	cfg := completeness.DefaultConfig()
//	cfg.Plots = &completeness.PlotConfig{
//	    Dir:     "out/figures",
//	    Formats: []string{"svg", "png"},
//	}
//
// Figures never change the returned magnitude: a failed save is logged and
// the estimate proceeds.
//
// # Interpretation
//
// The goodness-of-fit residual measures model-vs-observed deviation in
// percent of the observed counts:
//
//   - residual <= 5:  G-R fits at 95% confidence
//   - residual <= 10: G-R fits at 90% confidence
//   - neither reached: fall back to the maximum curvature estimate
//
// The 90% band is not always reached in real catalogs; the fallback keeps
// the method total.
//
// # Reference
//
// Mignan & Woessner, "Estimating the magnitude of completeness for
// earthquake catalogs", CORSSA (2012),
// http://dx.doi.org/10.5078/corssa-00180805
package completeness
