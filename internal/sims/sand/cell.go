package sand

// Position addresses a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position { return Position{Row: row, Col: col} }

// Cell is a single grid location. Its position is fixed when it is stored in
// a Grid; pending holds at most one staged material per step.
type Cell struct {
	Material Material
	Locked   bool

	pos     Position
	pending Material
	staged  bool
}

// NewCell returns an unlocked cell holding m at pos.
func NewCell(m Material, pos Position) Cell {
	return Cell{Material: m, pos: pos}
}

// Pos returns the coordinates the cell occupies.
func (c Cell) Pos() Position { return c.pos }

// Pending returns the staged material, if any.
func (c Cell) Pending() (Material, bool) { return c.pending, c.staged }

func (c *Cell) stage(m Material) {
	c.pending = m
	c.staged = true
}

// commit applies the staged material unless the cell is locked. The staged
// value is dropped either way.
func (c *Cell) commit() {
	if c.staged && !c.Locked {
		c.Material = c.pending
	}
	c.pending = Empty
	c.staged = false
}
