package sand

import "fmt"

// Material enumerates the states a cell can hold.
type Material uint8

const (
	Empty Material = iota
	Sand
	Ceramic

	// materialCount sizes the rule and glyph tables. New materials go above it.
	materialCount
)

var materialGlyphs = [materialCount]rune{
	Empty:   ' ',
	Sand:    '+',
	Ceramic: '#',
}

var materialNames = [materialCount]string{
	Empty:   "empty",
	Sand:    "sand",
	Ceramic: "ceramic",
}

// Materials lists every known material in declaration order.
func Materials() []Material {
	out := make([]Material, 0, materialCount)
	for m := Material(0); m < materialCount; m++ {
		out = append(out, m)
	}
	return out
}

// Valid reports whether m is a known material.
func (m Material) Valid() bool { return m < materialCount }

// Glyph returns the snapshot/console glyph for m.
func (m Material) Glyph() rune {
	if !m.Valid() {
		return '?'
	}
	return materialGlyphs[m]
}

func (m Material) String() string {
	if !m.Valid() {
		return fmt.Sprintf("material(%d)", uint8(m))
	}
	return materialNames[m]
}

// MaterialFromGlyph maps a snapshot glyph back to its material.
func MaterialFromGlyph(r rune) (Material, bool) {
	for m, g := range materialGlyphs {
		if g == r {
			return Material(m), true
		}
	}
	return Empty, false
}

// ParseMaterial resolves a material by its lowercase name.
func ParseMaterial(name string) (Material, error) {
	for m, n := range materialNames {
		if n == name {
			return Material(m), nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}
