package render

import (
	"image/color"

	"falling-sand/internal/sims/sand"
)

var materialColors = map[sand.Material]color.RGBA{
	sand.Empty:   {R: 12, G: 12, B: 20, A: 255},
	sand.Sand:    {R: 214, G: 174, B: 128, A: 255},
	sand.Ceramic: {R: 128, G: 128, B: 128, A: 255},
}

// MaterialPalette returns one color per material, indexed by material value.
func MaterialPalette() []color.RGBA {
	materials := sand.Materials()
	palette := make([]color.RGBA, len(materials))
	for _, m := range materials {
		palette[m] = materialColors[m]
	}
	return palette
}

// unknownColor marks render values with no palette entry, the pixel
// counterpart of the '?' glyph.
var unknownColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// fillPaletteRGBA writes one RGBA pixel per cell into buf.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	for i, v := range cells {
		col := unknownColor
		if int(v) < len(palette) {
			col = palette[v]
		}
		px := buf[i*4 : i*4+4]
		px[0], px[1], px[2], px[3] = col.R, col.G, col.B, col.A
	}
}
