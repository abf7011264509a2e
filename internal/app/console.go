package app

import (
	"context"
	"fmt"
	"io"

	"falling-sand/internal/core"
	"falling-sand/internal/ctxlog"
	"falling-sand/internal/metrics"
	"falling-sand/internal/record"
	"falling-sand/internal/render"
	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

// Prepare builds the starting grid described by cfg together with the setup
// the run loop applies before the first generation. Source names where the
// grid came from.
func Prepare(ctx context.Context, cfg *Config) (g *sand.Grid, setup Setup, source string, err error) {
	logger := ctxlog.FromContext(ctx)

	switch {
	case cfg.Scene != "":
		sc, err := scene.Load(ctx, cfg.Scene)
		if err != nil {
			return nil, nil, "", err
		}
		if g, err = sc.Build(); err != nil {
			return nil, nil, "", err
		}
		source = cfg.Scene
		setup = func(ctx context.Context, g *sand.Grid) error {
			if skipped := sc.Apply(ctx, g); skipped > 0 {
				logger.Warn("Scene placements outside the grid were ignored.", "skipped", skipped)
			}
			return nil
		}
	case cfg.Load != "":
		if g, err = sand.Load(cfg.Load); err != nil {
			return nil, nil, "", err
		}
		source = cfg.Load
	default:
		if err := sand.CheckSize(cfg.Width, cfg.Height); err != nil {
			return nil, nil, "", err
		}
		factory, ok := core.Lookup(cfg.Sim)
		if !ok {
			return nil, nil, "", fmt.Errorf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
		}
		sim := factory(cfg.SimConfig())
		if g, ok = sim.(*sand.Grid); !ok {
			return nil, nil, "", fmt.Errorf("sim %q cannot run in the console", cfg.Sim)
		}
		// The factory already scattered using the configured seed.
		return g, nil, "sim:" + cfg.Sim, nil
	}

	if cfg.Scatter > 0 {
		base := setup
		setup = func(ctx context.Context, g *sand.Grid) error {
			if base != nil {
				if err := base(ctx, g); err != nil {
					return err
				}
			}
			// The checkpoint keeps the unscattered start so a reseed
			// scatters afresh.
			g.SetScatter(cfg.Scatter, cfg.Seed)
			g.Reset(0)
			logger.Debug("Scattered sand.", "density", cfg.Scatter, "sand", g.Count(sand.Sand))
			return nil
		}
	}
	return g, setup, source, nil
}

func openDisplay(cfg *Config, stdout io.Writer, stop func()) (render.Display, error) {
	switch cfg.Display {
	case "", "text":
		return render.NewTextDisplay(stdout), nil
	case "tcell":
		d, err := render.OpenTcellDisplay()
		if err != nil {
			return nil, err
		}
		d.WatchQuit(stop)
		return d, nil
	default:
		return nil, fmt.Errorf("unknown display %q", cfg.Display)
	}
}

// RunConsole runs the simulation described by cfg on a console display until
// ctx is cancelled or cfg.Steps generations have run. Frames go to stdout,
// logs to stderr.
func RunConsole(ctx context.Context, cfg *Config, stdout, stderr io.Writer) (retErr error) {
	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, setup, source, err := Prepare(ctx, cfg)
	if err != nil {
		return err
	}

	var observers []Observer
	if cfg.MetricsAddr != "" {
		collector := metrics.New()
		observers = append(observers, collector)
		go func() {
			if err := collector.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("Metrics server failed.", "error", err)
			}
		}()
	}
	if cfg.Record != "" {
		rec, err := record.Open(cfg.Record, cfg.RecordEvery)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil && retErr == nil {
				retErr = fmt.Errorf("close recording: %w", err)
			}
		}()
		observers = append(observers, rec)
		base := setup
		setup = func(ctx context.Context, g *sand.Grid) error {
			if base != nil {
				if err := base(ctx, g); err != nil {
					return err
				}
			}
			_, err := rec.Begin(ctx, g, source)
			return err
		}
	}

	display, err := openDisplay(cfg, stdout, cancel)
	if err != nil {
		return err
	}

	runner := &Runner{
		Display:   display,
		Pacer:     core.NewPacer(cfg.Delay),
		Observers: observers,
		MaxSteps:  cfg.Steps,
	}
	_, runErr := runner.Run(ctx, g, setup)
	if err := display.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close display: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	if cfg.Save != "" {
		if err := g.Save(cfg.Save); err != nil {
			return err
		}
		logger.Info("Snapshot saved.", "path", cfg.Save, "generation", g.Generation())
	}
	return nil
}
