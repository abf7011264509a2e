package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
)

var materialStyles = map[sand.Material]tcell.Style{
	sand.Empty:   tcell.StyleDefault,
	sand.Sand:    tcell.StyleDefault.Foreground(tcell.ColorTan).Bold(true),
	sand.Ceramic: tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// TcellDisplay draws frames onto a tcell screen.
type TcellDisplay struct {
	screen    tcell.Screen
	statusRow int
}

// OpenTcellDisplay initialises the controlling terminal as a display.
func OpenTcellDisplay() (*TcellDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewTcellDisplay(screen)
}

// NewTcellDisplay initialises screen and wraps it as a display.
func NewTcellDisplay(screen tcell.Screen) (*TcellDisplay, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	return &TcellDisplay{screen: screen}, nil
}

// Screen exposes the underlying tcell screen.
func (d *TcellDisplay) Screen() tcell.Screen { return d.screen }

func (d *TcellDisplay) Clear() error {
	d.screen.Clear()
	return nil
}

func (d *TcellDisplay) Draw(sim core.Sim) error {
	size := sim.Size()
	cells := sim.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			v := cells[y*size.W+x]
			d.screen.SetContent(x, y, Glyph(v), nil, materialStyles[sand.Material(v)])
		}
	}
	d.statusRow = size.H
	d.screen.Show()
	return nil
}

func (d *TcellDisplay) Status(iteration int) error {
	line := fmt.Sprintf("Iteration: %d", iteration)
	for x, r := range []rune(line) {
		d.screen.SetContent(x, d.statusRow, r, nil, tcell.StyleDefault)
	}
	d.screen.Show()
	return nil
}

// WatchQuit calls stop once the user presses q, Esc or Ctrl-C. It returns
// when the screen is closed.
func (d *TcellDisplay) WatchQuit(stop func()) {
	go func() {
		for {
			ev := d.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					stop()
				}
			case *tcell.EventResize:
				d.screen.Sync()
			}
		}
	}()
}

func (d *TcellDisplay) Close() error {
	d.screen.Fini()
	return nil
}
