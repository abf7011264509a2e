package sand

import (
	"fmt"

	"falling-sand/internal/core"
	pkgcore "falling-sand/pkg/core"
)

// Grid owns a row-major block of cells. Cells are double buffered: rules read
// the front buffer and stage into the back buffer, which becomes the front
// buffer once a step commits.
type Grid struct {
	cfg Config

	w, h int
	cur  []Cell
	nxt  []Cell

	initial []Cell
	display *core.ByteGrid

	generation int
	moves      int
}

// MaxCells caps the area of a grid so a hostile size cannot exhaust memory.
const MaxCells = 1 << 24

// CheckSize reports whether a width×height grid can be built.
func CheckSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d is negative", ErrBadDimension, width, height)
	}
	if width != 0 && height > MaxCells/width {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBadDimension, width, height, MaxCells)
	}
	return nil
}

// New returns a width×height grid of unlocked Empty cells.
func New(width, height int) *Grid {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	return NewWithConfig(cfg)
}

// NewWithConfig returns an empty grid sized by cfg. Negative sizes become
// zero and the height is cut down to stay within MaxCells; use CheckSize to
// reject such sizes instead. Scatter settings are applied by Reset.
func NewWithConfig(cfg Config) *Grid {
	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}
	if cfg.Width != 0 && cfg.Height > MaxCells/cfg.Width {
		cfg.Height = MaxCells / cfg.Width
	}
	total := cfg.Width * cfg.Height
	g := &Grid{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		cur:     make([]Cell, total),
		nxt:     make([]Cell, total),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
	}
	for i := range g.cur {
		g.cur[i] = NewCell(Empty, Pos(i/g.w, i%g.w))
	}
	g.Checkpoint()
	return g
}

// Name returns the simulation identifier.
func (g *Grid) Name() string { return "sand" }

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Generation returns the number of steps applied since the last Reset.
func (g *Grid) Generation() int { return g.generation }

// Moves returns how many grains were displaced by the most recent step.
func (g *Grid) Moves() int { return g.moves }

func (g *Grid) index(pos Position) (int, bool) {
	if pos.Row < 0 || pos.Col < 0 || pos.Row >= g.h || pos.Col >= g.w {
		return 0, false
	}
	return pos.Row*g.w + pos.Col, true
}

// InBounds reports whether pos addresses a cell of the grid.
func (g *Grid) InBounds(pos Position) bool {
	_, ok := g.index(pos)
	return ok
}

// Node returns a copy of the cell at pos.
func (g *Grid) Node(pos Position) (Cell, bool) {
	idx, ok := g.index(pos)
	if !ok {
		return Cell{}, false
	}
	return g.cur[idx], true
}

// NodeRef returns the cell at pos for in-place edits, or nil when pos is out
// of bounds. The cell position cannot be changed through the reference.
func (g *Grid) NodeRef(pos Position) *Cell {
	idx, ok := g.index(pos)
	if !ok {
		return nil
	}
	return &g.cur[idx]
}

// Material returns the material at pos, Empty when out of bounds.
func (g *Grid) Material(pos Position) Material {
	c, _ := g.Node(pos)
	return c.Material
}

// SetNode overwrites the cell at pos. The stored cell takes pos as its
// position regardless of the position c was created with. It reports false,
// leaving the grid unchanged, when pos is out of bounds or c holds an
// invalid material.
func (g *Grid) SetNode(pos Position, c Cell) bool {
	idx, ok := g.index(pos)
	if !ok || !c.Material.Valid() {
		return false
	}
	c.pos = pos
	c.pending = Empty
	c.staged = false
	g.cur[idx] = c
	return true
}

// SetSeed behaves like SetNode and additionally locks the cell so commits
// never change its material.
func (g *Grid) SetSeed(pos Position, c Cell) bool {
	c.Locked = true
	return g.SetNode(pos, c)
}

// Fill sets every cell to m and clears all locks.
func (g *Grid) Fill(m Material) {
	for i := range g.cur {
		g.cur[i] = NewCell(m, g.cur[i].pos)
	}
}

// Count returns the number of cells holding m.
func (g *Grid) Count(m Material) int {
	n := 0
	for i := range g.cur {
		if g.cur[i].Material == m {
			n++
		}
	}
	return n
}

// Cells exposes the materials as a row-major render buffer.
func (g *Grid) Cells() []uint8 {
	buf := g.display.Cells()
	for i := range g.cur {
		buf[i] = uint8(g.cur[i].Material)
	}
	return buf
}

// Checkpoint records the current cells as the state Reset returns to.
func (g *Grid) Checkpoint() {
	g.initial = append(g.initial[:0], g.cur...)
}

// SetScatter makes every later Reset scatter sand over Empty cells at
// density, seeded with seed whenever Reset is given zero.
func (g *Grid) SetScatter(density float64, seed int64) {
	g.cfg.Scatter = density
	g.cfg.Seed = seed
}

// Reset restores the last checkpoint. When the grid was configured with a
// scatter density, sand is scattered over Empty cells using seed, falling
// back to the configured seed when seed is zero.
func (g *Grid) Reset(seed int64) {
	copy(g.cur, g.initial)
	g.generation = 0
	g.moves = 0
	if g.cfg.Scatter <= 0 {
		return
	}
	effective := seed
	if effective == 0 {
		effective = g.cfg.Seed
	}
	Scatter(g, pkgcore.NewRNG(effective), Sand, g.cfg.Scatter)
}
