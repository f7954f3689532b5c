// Package sweep runs headless terrains across a range of seeding densities
// and measures how long each takes to settle into a still life or oscillator.
// Settling is detected the way the engine intends: by comparing each
// generation's fingerprint against a trailing window of earlier ones.
package sweep

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"terrain-ca/internal/core"
	"terrain-ca/pkg/terrain"
)

// Config controls a sweep.
type Config struct {
	Size           int
	Densities      []float64
	Runs           int // seeded runs per density
	MaxGenerations int // iteration cap per run
	CycleWindow    int // fingerprint history length for cycle detection
	Workers        int // concurrent runs; non-positive means NumCPU
	BaseSeed       int64
	Rule           terrain.Rule
}

// DefaultConfig returns a sweep over the interesting density band.
func DefaultConfig() Config {
	return Config{
		Size:           128,
		Densities:      []float64{0.05, 0.15, 0.25, 0.35, 0.45, 0.55},
		Runs:           20,
		MaxGenerations: 5000,
		CycleWindow:    64,
		BaseSeed:       1,
		Rule:           terrain.DefaultRule(),
	}
}

// RunResult records one seeded run.
type RunResult struct {
	Density     float64 `csv:"density"`
	Seed        int64   `csv:"seed"`
	Generations uint64  `csv:"generations"`
	Period      int     `csv:"period"`
	Population  int     `csv:"population"`
	Settled     bool    `csv:"settled"`
}

// Summary aggregates the runs of one density. Generation and period stats
// cover settled runs only; population covers all runs.
type Summary struct {
	Density           float64 `csv:"density"`
	Runs              int     `csv:"runs"`
	Settled           int     `csv:"settled"`
	MeanGenerations   float64 `csv:"gen_mean"`
	StdDevGenerations float64 `csv:"gen_stddev"`
	MeanPeriod        float64 `csv:"period_mean"`
	MeanPopulation    float64 `csv:"pop_mean"`
}

// Outcome describes how a single terrain evolved under Observe.
type Outcome struct {
	Generations uint64
	Period      int
	Population  int
	Settled     bool
}

// Observe iterates t until its fingerprint matches one in the trailing
// window, or until the generation cap. The fingerprint of the state t starts
// in seeds the window, so a terrain already at a fixed point settles with
// period 1 after one iteration.
func Observe(t *terrain.Terrain, maxGenerations, cycleWindow int) Outcome {
	if cycleWindow < 1 {
		cycleWindow = 1
	}
	window := make([]uint32, 0, cycleWindow+1)
	window = append(window, t.Fingerprint())

	for i := 0; i < maxGenerations; i++ {
		t.Iterate()
		stats := t.Stats()
		for j := len(window) - 1; j >= 0; j-- {
			if window[j] == stats.Fingerprint {
				return Outcome{
					Generations: stats.Generation,
					Period:      len(window) - j,
					Population:  stats.Population,
					Settled:     true,
				}
			}
		}
		if len(window) > cycleWindow {
			copy(window, window[1:])
			window = window[:len(window)-1]
		}
		window = append(window, stats.Fingerprint)
	}
	stats := t.Stats()
	return Outcome{Generations: stats.Generation, Population: stats.Population}
}

// Run executes the sweep and returns per-run rows plus per-density summaries.
// Runs are seeded deterministically from BaseSeed, so equal configs produce
// equal results regardless of worker count.
func Run(cfg Config) ([]RunResult, []Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]RunResult, len(cfg.Densities)*cfg.Runs)
	var g errgroup.Group
	g.SetLimit(workers)
	for di, density := range cfg.Densities {
		for ri := 0; ri < cfg.Runs; ri++ {
			idx := di*cfg.Runs + ri
			seed := cfg.BaseSeed + int64(idx)
			g.Go(func() error {
				t, err := terrain.NewSeeded(cfg.Size, density, core.NewRNG(seed), cfg.Rule)
				if err != nil {
					return err
				}
				out := Observe(t, cfg.MaxGenerations, cfg.CycleWindow)
				results[idx] = RunResult{
					Density:     density,
					Seed:        seed,
					Generations: out.Generations,
					Period:      out.Period,
					Population:  out.Population,
					Settled:     out.Settled,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, Summarize(cfg.Densities, cfg.Runs, results), nil
}

// Summarize aggregates per-run rows into one Summary per density. The rows
// must be grouped by density in the order Run produces them.
func Summarize(densities []float64, runs int, results []RunResult) []Summary {
	summaries := make([]Summary, 0, len(densities))
	for di, density := range densities {
		rows := results[di*runs : (di+1)*runs]
		var gens, periods, pops []float64
		settled := 0
		for _, r := range rows {
			pops = append(pops, float64(r.Population))
			if r.Settled {
				settled++
				gens = append(gens, float64(r.Generations))
				periods = append(periods, float64(r.Period))
			}
		}
		s := Summary{
			Density:        density,
			Runs:           len(rows),
			Settled:        settled,
			MeanPopulation: stat.Mean(pops, nil),
		}
		if len(gens) > 0 {
			s.MeanGenerations = stat.Mean(gens, nil)
			s.MeanPeriod = stat.Mean(periods, nil)
		}
		if len(gens) > 1 {
			s.StdDevGenerations = stat.StdDev(gens, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func (cfg Config) validate() error {
	if cfg.Size <= 0 {
		return fmt.Errorf("sweep size %d: %w", cfg.Size, terrain.ErrInvalidConfiguration)
	}
	if len(cfg.Densities) == 0 {
		return fmt.Errorf("no densities: %w", terrain.ErrInvalidConfiguration)
	}
	for _, d := range cfg.Densities {
		if d < 0 || d > 1 {
			return fmt.Errorf("density %v outside [0, 1]: %w", d, terrain.ErrInvalidConfiguration)
		}
	}
	if cfg.Runs <= 0 {
		return fmt.Errorf("runs %d: %w", cfg.Runs, terrain.ErrInvalidConfiguration)
	}
	if cfg.MaxGenerations <= 0 {
		return fmt.Errorf("max generations %d: %w", cfg.MaxGenerations, terrain.ErrInvalidConfiguration)
	}
	if cfg.CycleWindow <= 0 {
		return fmt.Errorf("cycle window %d: %w", cfg.CycleWindow, terrain.ErrInvalidConfiguration)
	}
	return nil
}
