// Package sand implements a falling-sand cellular automaton. Each step runs
// in two phases: material rules stage pending states against a frozen copy
// of the grid, then every staged state is committed at once.
package sand

import (
	"errors"

	"falling-sand/internal/core"
)

var (
	// ErrBadDimension reports a snapshot width or height that is not a
	// non-negative integer.
	ErrBadDimension = errors.New("invalid grid dimension")
	// ErrUnknownGlyph reports a snapshot glyph with no material.
	ErrUnknownGlyph = errors.New("unknown glyph")
	// ErrInvalidUTF8 reports a snapshot that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("snapshot is not valid UTF-8")
	// ErrTruncated reports a snapshot missing its header lines.
	ErrTruncated = errors.New("snapshot header truncated")
	// ErrUnknownMaterial reports a material name that does not exist.
	ErrUnknownMaterial = errors.New("unknown material")
)

var _ core.Sim = (*Grid)(nil)

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		g := NewWithConfig(FromMap(cfg))
		g.Reset(0)
		return g
	})
}
