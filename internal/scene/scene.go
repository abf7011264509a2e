// Package scene loads HCL scene files that describe the starting state of a
// sand grid: its size or snapshot, fixed seeds, placed cells, walls and
// random scatter.
//
// Placement blocks are evaluated with the variables width and height bound to
// the grid dimensions, so a scene can write `row = height - 1`.
package scene

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"falling-sand/internal/ctxlog"
	"falling-sand/internal/sims/sand"
	pkgcore "falling-sand/pkg/core"
)

// Placement puts a material at one position, optionally as a locked seed.
type Placement struct {
	Pos      sand.Position
	Material sand.Material
	Seed     bool
}

// Scatter randomly fills Empty cells with a material.
type Scatter struct {
	Material sand.Material
	Density  float64
	Seed     int64
}

// Scene is the decoded, format-agnostic form of a scene file.
type Scene struct {
	Path     string
	Width    int
	Height   int
	Snapshot string

	Placements []Placement
	Scatters   []Scatter
}

type hclFile struct {
	Grid   *hclGrid `hcl:"grid,block"`
	Remain hcl.Body `hcl:",remain"`
}

type hclGrid struct {
	Width    *int    `hcl:"width,optional"`
	Height   *int    `hcl:"height,optional"`
	Snapshot *string `hcl:"snapshot,optional"`
}

type hclBody struct {
	Walls    []*hclWall    `hcl:"wall,block"`
	Nodes    []*hclPlace   `hcl:"node,block"`
	Seeds    []*hclPlace   `hcl:"seed,block"`
	Scatters []*hclScatter `hcl:"scatter,block"`
}

type hclPlace struct {
	Row      int     `hcl:"row"`
	Col      int     `hcl:"col"`
	Material *string `hcl:"material,optional"`
}

type hclWall struct {
	Row      *int    `hcl:"row,optional"`
	Col      *int    `hcl:"col,optional"`
	From     int     `hcl:"from"`
	To       int     `hcl:"to"`
	Material *string `hcl:"material,optional"`
}

type hclScatter struct {
	Density  float64 `hcl:"density"`
	Material *string `hcl:"material,optional"`
	Seed     *int64  `hcl:"seed,optional"`
}

// Load reads and decodes the scene file at path.
func Load(ctx context.Context, path string) (*Scene, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// Parse decodes scene source. Relative snapshot paths resolve against the
// directory of filename.
func Parse(ctx context.Context, src []byte, filename string) (*Scene, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene %s: %w", filename, diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene %s: %w", filename, diags)
	}
	if root.Grid == nil {
		return nil, fmt.Errorf("scene %s: missing grid block", filename)
	}

	sc := &Scene{Path: filename}
	if err := sc.resolveGrid(root.Grid); err != nil {
		return nil, fmt.Errorf("scene %s: %w", filename, err)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"width":  cty.NumberIntVal(int64(sc.Width)),
			"height": cty.NumberIntVal(int64(sc.Height)),
		},
	}
	var body hclBody
	if diags := gohcl.DecodeBody(root.Remain, evalCtx, &body); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene %s: %w", filename, diags)
	}
	if err := sc.collect(&body); err != nil {
		return nil, fmt.Errorf("scene %s: %w", filename, err)
	}

	logger.Debug("Scene decoded.", "path", filename, "width", sc.Width, "height", sc.Height,
		"placements", len(sc.Placements), "scatters", len(sc.Scatters))
	return sc, nil
}

func (sc *Scene) resolveGrid(g *hclGrid) error {
	if g.Snapshot != nil {
		if g.Width != nil || g.Height != nil {
			return fmt.Errorf("grid: snapshot cannot be combined with width or height")
		}
		sc.Snapshot = *g.Snapshot
		if !filepath.IsAbs(sc.Snapshot) {
			sc.Snapshot = filepath.Join(filepath.Dir(sc.Path), sc.Snapshot)
		}
		base, err := sand.Load(sc.Snapshot)
		if err != nil {
			return err
		}
		sc.Width, sc.Height = base.Width(), base.Height()
		return nil
	}
	if g.Width == nil || g.Height == nil {
		return fmt.Errorf("grid: width and height are required without a snapshot")
	}
	if err := sand.CheckSize(*g.Width, *g.Height); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	sc.Width, sc.Height = *g.Width, *g.Height
	return nil
}

func materialOr(name *string, fallback sand.Material) (sand.Material, error) {
	if name == nil {
		return fallback, nil
	}
	return sand.ParseMaterial(*name)
}

// collect flattens blocks into placements: walls first, then nodes, then
// seeds, so seeds win where they overlap.
func (sc *Scene) collect(body *hclBody) error {
	for i, w := range body.Walls {
		m, err := materialOr(w.Material, sand.Ceramic)
		if err != nil {
			return fmt.Errorf("wall %d: %w", i, err)
		}
		lo, hi := w.From, w.To
		if lo > hi {
			lo, hi = hi, lo
		}
		switch {
		case w.Row != nil && w.Col == nil:
			for col := lo; col <= hi; col++ {
				sc.Placements = append(sc.Placements, Placement{Pos: sand.Pos(*w.Row, col), Material: m})
			}
		case w.Col != nil && w.Row == nil:
			for row := lo; row <= hi; row++ {
				sc.Placements = append(sc.Placements, Placement{Pos: sand.Pos(row, *w.Col), Material: m})
			}
		default:
			return fmt.Errorf("wall %d: exactly one of row or col must be set", i)
		}
	}
	for i, n := range body.Nodes {
		m, err := materialOr(n.Material, sand.Sand)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		sc.Placements = append(sc.Placements, Placement{Pos: sand.Pos(n.Row, n.Col), Material: m})
	}
	for i, s := range body.Seeds {
		m, err := materialOr(s.Material, sand.Sand)
		if err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
		sc.Placements = append(sc.Placements, Placement{Pos: sand.Pos(s.Row, s.Col), Material: m, Seed: true})
	}
	for i, s := range body.Scatters {
		m, err := materialOr(s.Material, sand.Sand)
		if err != nil {
			return fmt.Errorf("scatter %d: %w", i, err)
		}
		if s.Density < 0 || s.Density > 1 {
			return fmt.Errorf("scatter %d: density %v outside [0, 1]", i, s.Density)
		}
		scatter := Scatter{Material: m, Density: s.Density, Seed: 1}
		if s.Seed != nil {
			scatter.Seed = *s.Seed
		}
		sc.Scatters = append(sc.Scatters, scatter)
	}
	return nil
}

// Build creates the starting grid: the snapshot when one is named, a blank
// grid otherwise. Placements are not applied.
func (sc *Scene) Build() (*sand.Grid, error) {
	if sc.Snapshot != "" {
		return sand.Load(sc.Snapshot)
	}
	return sand.New(sc.Width, sc.Height), nil
}

// Apply writes the scene's placements and scatters onto g and checkpoints
// the result. Out-of-bounds placements are skipped and counted.
func (sc *Scene) Apply(ctx context.Context, g *sand.Grid) (skipped int) {
	logger := ctxlog.FromContext(ctx)
	for _, p := range sc.Placements {
		cell := sand.NewCell(p.Material, p.Pos)
		var ok bool
		if p.Seed {
			ok = g.SetSeed(p.Pos, cell)
		} else {
			ok = g.SetNode(p.Pos, cell)
		}
		if !ok {
			skipped++
			logger.Warn("Placement outside grid skipped.", "row", p.Pos.Row, "col", p.Pos.Col, "material", p.Material.String())
		}
	}
	for _, s := range sc.Scatters {
		n := sand.Scatter(g, pkgcore.NewRNG(s.Seed), s.Material, s.Density)
		logger.Debug("Scattered material.", "material", s.Material.String(), "cells", n)
	}
	g.Checkpoint()
	return skipped
}
