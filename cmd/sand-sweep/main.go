// Command sand-sweep measures how many generations scattered grids need to
// come to rest across a range of densities and seeds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"falling-sand/internal/app"
	"falling-sand/internal/ctxlog"
	"falling-sand/internal/sweep"
)

func main() {
	width := flag.Int("w", 64, "grid width")
	height := flag.Int("h", 64, "grid height")
	steps := flag.Int("steps", 1000, "give up on a case after this many generations")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	densities := flag.String("densities", "0.1,0.25,0.5,0.75", "comma separated scatter densities")
	seeds := flag.Int("seeds", 8, "seeds per density, numbered from 1")
	top := flag.Int("top", 5, "number of slowest cases to print")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	flag.Parse()

	ds, err := parseDensities(*densities)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sand-sweep: %v\n", err)
		os.Exit(2)
	}
	seedList := make([]int64, *seeds)
	for i := range seedList {
		seedList[i] = int64(i + 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger, err := app.NewLogger(*logLevel, "text", os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sand-sweep: %v\n", err)
		stop()
		os.Exit(2)
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	cases := sweep.Cases(ds, seedList)
	fmt.Printf("Sweeping %d cases (%d workers, %dx%d, %d steps)\n", len(cases), *workers, *width, *height, *steps)

	start := time.Now()
	results, err := sweep.Run(ctx, sweep.Config{Width: *width, Height: *height, MaxSteps: *steps, Workers: *workers}, cases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sand-sweep: %v\n", err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("\nSlowest %d (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i, res := range sweep.Slowest(results, *top) {
		fmt.Printf("%2d) generations=%d settled=%t sand=%d moves=%d %s\n",
			i+1, res.Generations, res.Settled, res.Sand, res.TotalMoves, res.Case)
	}
}

func parseDensities(raw string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		d, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("density %q: %w", field, err)
		}
		if d < 0 || d > 1 {
			return nil, fmt.Errorf("density %v outside [0, 1]", d)
		}
		out = append(out, d)
	}
	return out, nil
}
