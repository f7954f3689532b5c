package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"terrain-ca/internal/sweep"
)

func main() {
	cfg := sweep.DefaultConfig()
	size := flag.Int("size", cfg.Size, "grid height and width")
	densities := flag.String("densities", formatDensities(cfg.Densities), "comma-separated seeding densities")
	runs := flag.Int("runs", cfg.Runs, "seeded runs per density")
	maxGen := flag.Int("max-gen", cfg.MaxGenerations, "iteration cap per run")
	window := flag.Int("window", cfg.CycleWindow, "fingerprint history window for cycle detection")
	workers := flag.Int("workers", 0, "concurrent runs (0 = NumCPU)")
	seed := flag.Int64("seed", cfg.BaseSeed, "base seed; run i uses seed+i")
	outDir := flag.String("out", "sweep-out", "output directory for CSV files")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	parsed, err := parseDensities(*densities)
	if err != nil {
		logger.Error("bad densities flag", "err", err)
		os.Exit(1)
	}
	cfg.Size = *size
	cfg.Densities = parsed
	cfg.Runs = *runs
	cfg.MaxGenerations = *maxGen
	cfg.CycleWindow = *window
	cfg.Workers = *workers
	cfg.BaseSeed = *seed

	logger.Info("starting sweep",
		"size", cfg.Size,
		"densities", len(cfg.Densities),
		"runs_per_density", cfg.Runs,
		"max_generations", cfg.MaxGenerations)

	results, summaries, err := sweep.Run(cfg)
	if err != nil {
		logger.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	if err := writeCSV(filepath.Join(*outDir, "runs.csv"), &results); err != nil {
		logger.Error("writing runs.csv", "err", err)
		os.Exit(1)
	}
	if err := writeCSV(filepath.Join(*outDir, "summary.csv"), &summaries); err != nil {
		logger.Error("writing summary.csv", "err", err)
		os.Exit(1)
	}
	logger.Info("sweep complete", "out", *outDir)

	for _, s := range summaries {
		fmt.Printf("density %.2f: settled %d/%d, generations %.1f±%.1f, period %.1f, population %.1f\n",
			s.Density, s.Settled, s.Runs, s.MeanGenerations, s.StdDevGenerations, s.MeanPeriod, s.MeanPopulation)
	}
}

func writeCSV(path string, rows any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return gocsv.MarshalFile(rows, f)
}

func parseDensities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing density %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func formatDensities(ds []float64) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = strconv.FormatFloat(d, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
