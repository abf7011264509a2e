// Package metrics exports simulation progress as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"falling-sand/internal/ctxlog"
	"falling-sand/internal/sims/sand"
)

const namespace = "sand"

// Collector records one sample per generation.
type Collector struct {
	registry *prometheus.Registry

	generations prometheus.Counter
	moves       prometheus.Counter
	stepSeconds prometheus.Histogram
	cells       *prometheus.GaugeVec
}

// New builds a Collector backed by its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations advanced by the run loop.",
		}),
		moves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grain_moves_total",
			Help:      "Grains displaced across all generations.",
		}),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time spent in a single grid step.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells",
			Help:      "Cells currently holding each material.",
		}, []string{"material"}),
	}
	c.registry.MustRegister(c.generations, c.moves, c.stepSeconds, c.cells)
	return c
}

// Registry exposes the registry the collectors live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe records the generation that g just completed.
func (c *Collector) Observe(_ context.Context, g *sand.Grid, took time.Duration) error {
	c.generations.Inc()
	c.moves.Add(float64(g.Moves()))
	c.stepSeconds.Observe(took.Seconds())
	for _, m := range sand.Materials() {
		c.cells.WithLabelValues(m.String()).Set(float64(g.Count(m)))
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return c.serve(ctx, ln)
}

func (c *Collector) serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics.", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}
	return nil
}
