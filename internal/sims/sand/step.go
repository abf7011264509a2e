package sand

// frozen reads a cell from the front buffer. During a step the front buffer
// is never written, so every rule observes the same pre-step world.
func (g *Grid) frozen(pos Position) (Cell, bool) {
	idx, ok := g.index(pos)
	if !ok {
		return Cell{}, false
	}
	return g.cur[idx], true
}

// propose stages m for pos in the back buffer. The first proposal for a cell
// within a step wins; later ones are refused.
func (g *Grid) propose(pos Position, m Material) bool {
	idx, ok := g.index(pos)
	if !ok {
		return false
	}
	c := &g.nxt[idx]
	if c.staged {
		return false
	}
	c.stage(m)
	return true
}

// Step advances the grid by one generation: every rule proposes against the
// frozen front buffer in row-major order, then all proposals commit at once.
func (g *Grid) Step() {
	copy(g.nxt, g.cur)
	g.moves = 0

	for i := range g.cur {
		self := g.cur[i]
		n := Sample(g, self.pos)
		ruleFor(self.Material)(self, n, g)
	}

	for i := range g.nxt {
		g.nxt[i].commit()
	}
	g.cur, g.nxt = g.nxt, g.cur
	g.generation++
}
