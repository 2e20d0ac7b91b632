package completeness

import (
	"log/slog"
)

// Config controls estimator construction.
type Config struct {
	// BinWidth is the magnitude discretization step dm. Every magnitude
	// comparison and rounding uses it. Must be positive and finite.
	BinWidth float64

	// Logger receives the human-readable estimation summaries. Nil means
	// slog.Default().
	Logger *slog.Logger

	// Plots enables diagnostic figures when non-nil. Figure rendering is
	// best-effort: a failed save is logged, never propagated into the
	// estimate.
	Plots *PlotConfig
}

// DefaultConfig returns sensible defaults: 0.1 magnitude units per bin, the
// default logger, no figures.
func DefaultConfig() Config {
	return Config{
		BinWidth: 0.1,
	}
}

// Estimator holds a catalog's derived magnitude distribution and estimates
// its completeness magnitude. All derived state is built once in New and
// never mutated; a single instance is safe to reuse but not to share across
// goroutines concurrently with itself (the estimators are pure, the figure
// writer is not).
type Estimator struct {
	cfg     Config
	log     *slog.Logger
	catalog Catalog
	hist    Histogram
}

// New builds an estimator from caller-owned events. The events are copied
// and their magnitudes rounded to the BinWidth grid; the input slice is not
// modified.
//
// Fails with ErrBinWidth for a non-positive bin width and with
// ErrEmptyCatalog or ErrBadMagnitude for an unusable catalog.
func New(events []Event, cfg Config) (*Estimator, error) {
	if err := validate(events, cfg.BinWidth); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rounded := RoundToGrid(events, cfg.BinWidth)
	return &Estimator{
		cfg:     cfg,
		log:     logger,
		catalog: rounded,
		hist:    newHistogram(rounded, cfg.BinWidth),
	}, nil
}

// Catalog returns the derived grid-rounded catalog.
func (e *Estimator) Catalog() Catalog {
	out := make(Catalog, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// Grid returns a copy of the magnitude bin centers.
func (e *Estimator) Grid() []float64 {
	out := make([]float64, len(e.hist.Grid))
	copy(out, e.hist.Grid)
	return out
}

// SurvivalCounts returns a copy of the right-tail survival counts aligned
// with Grid.
func (e *Estimator) SurvivalCounts() []float64 {
	out := make([]float64, len(e.hist.Survival))
	copy(out, e.hist.Survival)
	return out
}
