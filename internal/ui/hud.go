//go:build ebiten

package ui

import (
	"image/color"

	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
	swatchSize   = 10
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor       = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	helpColor       = color.RGBA{R: 140, G: 140, B: 150, A: 255}
)

// HUD renders the stats panel to the right of the simulation view.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	palette    []color.RGBA
	pixel      *ebiten.Image
}

// NewHUD constructs a HUD with the given panel width. A width of zero
// disables the panel.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{width: width, palette: render.MaterialPalette()}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, stats Stats) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	for i, line := range stats.Header() {
		clr := textColor
		if i == 0 {
			clr = titleColor
		}
		text.Draw(h.panel, line, face, panelPadding, y, clr)
		y += lineHeight
	}

	y += lineHeight / 2
	for _, c := range stats.Counts {
		h.drawSwatch(panelPadding, y-swatchSize, c.Material)
		text.Draw(h.panel, c.CountLine(), face, panelPadding+swatchSize+6, y, textColor)
		y += lineHeight
	}

	y += lineHeight / 2
	for _, line := range KeyHelp {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, line, face, panelPadding, y, helpColor)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawSwatch(x, y int, m sand.Material) {
	if h.pixel == nil || int(m) >= len(h.palette) {
		return
	}
	c := h.palette[m]
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(swatchSize, swatchSize)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	h.panel.DrawImage(h.pixel, op)
}
