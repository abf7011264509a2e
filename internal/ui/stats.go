package ui

import (
	"fmt"

	"falling-sand/internal/sims/sand"
)

// MaterialCount pairs a material with how many cells hold it.
type MaterialCount struct {
	Material sand.Material
	Count    int
}

// Stats is what the side panel shows for one frame.
type Stats struct {
	Name       string
	Iteration  int
	Generation int
	Moves      int
	Paused     bool
	Counts     []MaterialCount
}

// Collect reads the panel figures from g.
func Collect(g *sand.Grid, iteration int, paused bool) Stats {
	s := Stats{
		Name:       g.Name(),
		Iteration:  iteration,
		Generation: g.Generation(),
		Moves:      g.Moves(),
		Paused:     paused,
	}
	for _, m := range sand.Materials() {
		s.Counts = append(s.Counts, MaterialCount{Material: m, Count: g.Count(m)})
	}
	return s
}

// Header returns the text lines drawn above the material counts.
func (s Stats) Header() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s (%s)", s.Name, state),
		fmt.Sprintf("Iteration: %d", s.Iteration),
		fmt.Sprintf("Generation: %d", s.Generation),
		fmt.Sprintf("Moves: %d", s.Moves),
	}
}

// CountLine formats one material row of the panel.
func (c MaterialCount) CountLine() string {
	return fmt.Sprintf("%c %-8s %d", c.Material.Glyph(), c.Material, c.Count)
}

// WindowTitle names the GUI window for a simulation.
func WindowTitle(name string) string {
	return "falling-sand - " + name
}

// KeyHelp lists the GUI key bindings.
var KeyHelp = []string{
	"space  pause",
	"n      step",
	"r      reset",
	"s      reseed",
	"q/esc  quit",
}
