// Package sweep runs many scattered grids to rest in parallel and reports how
// long each took to settle.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"falling-sand/internal/ctxlog"
	"falling-sand/internal/sims/sand"
)

// Case is one starting condition: a blank grid scattered with sand.
type Case struct {
	Density float64
	Seed    int64
}

func (c Case) String() string {
	return fmt.Sprintf("density=%.2f seed=%d", c.Density, c.Seed)
}

// Result is the outcome of running one Case.
type Result struct {
	Case
	// Settled is false when MaxSteps ran out while grains were still moving.
	Settled bool
	// Generations counts steps run, including the final quiet one.
	Generations int
	Sand        int
	TotalMoves  int
}

// Config sizes the grids and bounds the work.
type Config struct {
	Width    int
	Height   int
	MaxSteps int
	Workers  int
}

// Cases expands every density against every seed.
func Cases(densities []float64, seeds []int64) []Case {
	out := make([]Case, 0, len(densities)*len(seeds))
	for _, d := range densities {
		for _, s := range seeds {
			out = append(out, Case{Density: d, Seed: s})
		}
	}
	return out
}

// Run evaluates cases on cfg.Workers goroutines. Results keep the order of
// cases. A cancelled ctx stops outstanding work and is returned as the error.
func Run(ctx context.Context, cfg Config, cases []Case) ([]Result, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	logger := ctxlog.FromContext(ctx)
	logger.Info("Sweep starting.", "cases", len(cases), "workers", workers,
		"width", cfg.Width, "height", cfg.Height, "max_steps", cfg.MaxSteps)

	results := make([]Result, len(cases))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, c := range cases {
		if ctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			res, err := settle(ctx, cfg, c)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Debug("Case finished.", "case", c.String(), "settled", res.Settled, "generations", res.Generations)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func settle(ctx context.Context, cfg Config, c Case) (Result, error) {
	g := sand.NewWithConfig(sand.Config{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    c.Seed,
		Scatter: c.Density,
	})
	g.Reset(0)

	res := Result{Case: c}
	for cfg.MaxSteps <= 0 || g.Generation() < cfg.MaxSteps {
		if g.Generation()%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		g.Step()
		res.TotalMoves += g.Moves()
		if g.Moves() == 0 {
			res.Settled = true
			break
		}
	}
	res.Generations = g.Generation()
	res.Sand = g.Count(sand.Sand)
	return res, nil
}

// Slowest returns up to n results ordered by generations, slowest first.
// Unsettled results sort ahead of settled ones.
func Slowest(results []Result, n int) []Result {
	sorted := append([]Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Settled != sorted[j].Settled {
			return !sorted[i].Settled
		}
		return sorted[i].Generations > sorted[j].Generations
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
