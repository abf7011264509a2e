package render

import (
	"bufio"
	"fmt"
	"io"

	"falling-sand/internal/core"
)

// clearSequence erases the terminal and homes the cursor.
const clearSequence = "\x1B[2J\x1B[1;1H\n"

// TextDisplay writes frames as glyph rows to a plain writer using ANSI
// escapes for clearing.
type TextDisplay struct {
	w *bufio.Writer
}

// NewTextDisplay returns a TextDisplay writing to w.
func NewTextDisplay(w io.Writer) *TextDisplay {
	return &TextDisplay{w: bufio.NewWriter(w)}
}

func (d *TextDisplay) Clear() error {
	if _, err := d.w.WriteString(clearSequence); err != nil {
		return err
	}
	return d.w.Flush()
}

func (d *TextDisplay) Draw(sim core.Sim) error {
	size := sim.Size()
	cells := sim.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			d.w.WriteRune(Glyph(cells[y*size.W+x]))
		}
		d.w.WriteByte('\n')
	}
	return d.w.Flush()
}

func (d *TextDisplay) Status(iteration int) error {
	if _, err := fmt.Fprintf(d.w, "Iteration: %d\n", iteration); err != nil {
		return err
	}
	return d.w.Flush()
}

func (d *TextDisplay) Close() error { return d.w.Flush() }
