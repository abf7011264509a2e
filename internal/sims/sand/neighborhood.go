package sand

import "fmt"

// Direction names one of the eight Moore neighbors.
type Direction uint8

const (
	TopLeft Direction = iota
	TopMid
	TopRight
	MidLeft
	MidRight
	BotLeft
	BotMid
	BotRight
)

// Directions lists the neighbors in index order.
var Directions = [8]Direction{TopLeft, TopMid, TopRight, MidLeft, MidRight, BotLeft, BotMid, BotRight}

var directionOffsets = [8]Position{
	TopLeft:  {Row: -1, Col: -1},
	TopMid:   {Row: -1, Col: 0},
	TopRight: {Row: -1, Col: 1},
	MidLeft:  {Row: 0, Col: -1},
	MidRight: {Row: 0, Col: 1},
	BotLeft:  {Row: 1, Col: -1},
	BotMid:   {Row: 1, Col: 0},
	BotRight: {Row: 1, Col: 1},
}

var directionNames = [8]string{
	"TopLeft", "TopMid", "TopRight", "MidLeft", "MidRight", "BotLeft", "BotMid", "BotRight",
}

// DirectionFromIndex converts 0..7 into a Direction.
func DirectionFromIndex(i int) (Direction, bool) {
	if i < 0 || i >= len(Directions) {
		return 0, false
	}
	return Directions[i], true
}

// Offset returns the row/column delta from a cell to this neighbor.
func (d Direction) Offset() (dr, dc int) {
	o := directionOffsets[d]
	return o.Row, o.Col
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Neighborhood holds read-only snapshots of the eight neighbors of a cell.
// Neighbors outside the grid are absent.
type Neighborhood struct {
	cells   [8]Cell
	present [8]bool
}

// Get returns the neighbor in direction d.
func (n *Neighborhood) Get(d Direction) (Cell, bool) {
	if int(d) >= len(n.cells) {
		return Cell{}, false
	}
	return n.cells[d], n.present[d]
}

// Present counts the neighbors that exist.
func (n *Neighborhood) Present() int {
	count := 0
	for _, ok := range n.present {
		if ok {
			count++
		}
	}
	return count
}

// Sample collects the neighborhood of pos from the grid's frozen state.
func Sample(g *Grid, pos Position) Neighborhood {
	var n Neighborhood
	for _, d := range Directions {
		dr, dc := d.Offset()
		c, ok := g.frozen(Pos(pos.Row+dr, pos.Col+dc))
		n.cells[d] = c
		n.present[d] = ok
	}
	return n
}
