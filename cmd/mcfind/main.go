// mcfind estimates the completeness magnitude of every seismic catalog in a
// data directory and writes the diagnostic figures.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/quakelab/completeness"
)

var (
	dataDir      string
	fileExt      string
	binWidth     float64
	minMagnitude float64
	outDir       string
	formats      []string
	noPlots      bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "mcfind",
	Short: "Estimate the completeness magnitude of seismic catalogs",
	Long: `mcfind scans a data directory for catalog files (parquet or csv with
DateTime and Magnitude columns), estimates each catalog's completeness
magnitude with the maximum curvature and goodness-of-fit methods, and
writes the diagnostic figures.`,
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	rootCmd.Flags().StringVarP(&dataDir, "data", "d", ".", "directory containing catalog files")
	rootCmd.Flags().StringVar(&fileExt, "ext", ".parquet", "catalog file extension (.parquet or .csv)")
	rootCmd.Flags().Float64Var(&binWidth, "bin-width", 0.1, "magnitude bin width (dm)")
	rootCmd.Flags().Float64Var(&minMagnitude, "min-magnitude", -2, "drop events at or below this magnitude before estimating")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory for figures")
	rootCmd.Flags().StringSliceVar(&formats, "formats", []string{"svg", "png"}, "figure formats")
	rootCmd.Flags().BoolVar(&noPlots, "no-plots", false, "skip diagnostic figures")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		slog.SetDefault(slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{
				Level:      slog.LevelDebug,
				TimeFormat: "15:04:05",
			}),
		))
	}
	log := slog.Default()

	files, err := listCatalogFiles(dataDir, fileExt)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files in %s", fileExt, dataDir)
	}

	for _, file := range files {
		events, err := loadCatalog(file)
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
		kept := events[:0:0]
		for _, ev := range events {
			if ev.Magnitude > minMagnitude {
				kept = append(kept, ev)
			}
		}
		log.Info("catalog loaded", "file", file, "events", len(events), "kept", len(kept))

		cfg := completeness.Config{
			BinWidth: binWidth,
			Logger:   log.With("catalog", shortName(file, fileExt)),
		}
		if !noPlots {
			// One figure tree per catalog so a multi-file run never
			// overwrites its own output.
			plots := completeness.DefaultPlotConfig(filepath.Join(outDir, shortName(file, fileExt)))
			plots.Formats = formats
			cfg.Plots = plots
		}

		est, err := completeness.New(kept, cfg)
		if err != nil {
			return fmt.Errorf("estimator for %s: %w", file, err)
		}
		if !noPlots {
			if err := est.PlotMagnitudeDistribution(); err != nil {
				log.Warn("distribution figures failed", "err", err)
			}
		}

		maxCurv := est.MaximumCurvature()
		gof := est.GoodnessOfFit()
		log.Info("completeness magnitude",
			"catalog", shortName(file, fileExt),
			"maximum_curvature", maxCurv,
			"goodness_of_fit", gof)
	}
	return nil
}
