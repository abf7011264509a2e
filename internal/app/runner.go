package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"falling-sand/internal/core"
	"falling-sand/internal/ctxlog"
	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"
)

// Observer is notified after every generation the run loop completes.
type Observer interface {
	Observe(ctx context.Context, g *sand.Grid, took time.Duration) error
}

// Setup prepares a grid once before the first generation.
type Setup func(ctx context.Context, g *sand.Grid) error

// Runner drives a grid: clear, draw, step, report, wait.
type Runner struct {
	Display   render.Display
	Pacer     *core.Pacer
	Observers []Observer
	// MaxSteps stops the loop after that many generations; zero means run
	// until the context is cancelled.
	MaxSteps int
}

// Run applies setup to g and loops until ctx is cancelled or MaxSteps is
// reached. It returns the number of generations advanced. Cancellation is a
// normal stop and is not reported as an error.
func (r *Runner) Run(ctx context.Context, g *sand.Grid, setup Setup) (int, error) {
	logger := ctxlog.FromContext(ctx)
	if setup != nil {
		if err := setup(ctx, g); err != nil {
			return 0, fmt.Errorf("setup: %w", err)
		}
	}
	pacer := r.Pacer
	if pacer == nil {
		pacer = core.NewPacer(0)
	}

	logger.Info("Run loop starting.", "width", g.Width(), "height", g.Height(),
		"delay", pacer.Delay().String(), "max_steps", r.MaxSteps)

	iteration := 0
	for ctx.Err() == nil {
		if err := r.Display.Clear(); err != nil {
			return iteration, fmt.Errorf("clear display: %w", err)
		}
		if err := r.Display.Draw(g); err != nil {
			return iteration, fmt.Errorf("draw generation %d: %w", g.Generation(), err)
		}

		start := time.Now()
		g.Step()
		took := time.Since(start)

		if err := r.Display.Status(iteration); err != nil {
			return iteration, fmt.Errorf("print status: %w", err)
		}
		iteration++
		logger.Debug("Generation complete.", "generation", g.Generation(), "moves", g.Moves(), "took", took)

		for _, o := range r.Observers {
			if err := o.Observe(ctx, g, took); err != nil {
				return iteration, fmt.Errorf("observe generation %d: %w", g.Generation(), err)
			}
		}

		if r.MaxSteps > 0 && iteration >= r.MaxSteps {
			break
		}
		if err := pacer.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				break
			}
			return iteration, err
		}
	}

	logger.Info("Run loop stopped.", "generations", iteration)
	return iteration, nil
}
