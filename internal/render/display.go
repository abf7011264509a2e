// Package render draws sand grids to consoles and pixel buffers.
package render

import (
	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
)

// Display is a surface the run loop draws generations onto.
type Display interface {
	// Clear blanks the surface before a new frame.
	Clear() error
	// Draw renders the current cells of sim.
	Draw(sim core.Sim) error
	// Status reports the iteration counter below the frame.
	Status(iteration int) error
	Close() error
}

// Glyph maps a render-buffer value to its console glyph.
func Glyph(v uint8) rune {
	return sand.Material(v).Glyph()
}
