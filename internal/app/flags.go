package app

import (
	"flag"
	"strconv"
	"time"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scene string
	Load  string
	Save  string

	Width   int
	Height  int
	Seed    int64
	Scatter float64

	Delay time.Duration
	Steps int

	Display string
	Scale   int
	TPS     int

	LogLevel    string
	LogFormat   string
	MetricsAddr string
	Record      string
	RecordEvery int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:         "sand",
		Width:       20,
		Height:      30,
		Seed:        42,
		Delay:       150 * time.Millisecond,
		Display:     "text",
		Scale:       8,
		TPS:         30,
		LogLevel:    "warn",
		LogFormat:   "text",
		RecordEvery: 1,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Scene, "scene", c.Scene, "HCL scene file describing the starting grid")
	fs.StringVar(&c.Load, "load", c.Load, "snapshot file to start from")
	fs.StringVar(&c.Save, "save", c.Save, "snapshot file written when the run stops")
	fs.IntVar(&c.Width, "w", c.Width, "grid width for a blank start")
	fs.IntVar(&c.Height, "h", c.Height, "grid height for a blank start")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random scatter")
	fs.Float64Var(&c.Scatter, "scatter", c.Scatter, "fraction of empty cells filled with sand at start")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "pause between generations")
	fs.IntVar(&c.Steps, "steps", c.Steps, "stop after this many generations (0 runs until interrupted)")
	fs.StringVar(&c.Display, "display", c.Display, "console display: text or tcell")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier (GUI)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (GUI)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on this address")
	fs.StringVar(&c.Record, "record", c.Record, "SQLite database recording every generation")
	fs.IntVar(&c.RecordEvery, "record-every", c.RecordEvery, "record one generation in this many")
}

// SimConfig renders the grid options as the string map sim factories take.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"seed":    strconv.FormatInt(c.Seed, 10),
		"scatter": strconv.FormatFloat(c.Scatter, 'f', -1, 64),
	}
}
