package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialGlyphsRoundTrip(t *testing.T) {
	for _, m := range Materials() {
		got, ok := MaterialFromGlyph(m.Glyph())
		require.True(t, ok, "glyph for %s must decode", m)
		assert.Equal(t, m, got)
	}

	_, ok := MaterialFromGlyph('x')
	assert.False(t, ok)
}

func TestMaterialGlyphAlphabet(t *testing.T) {
	assert.Equal(t, ' ', Empty.Glyph())
	assert.Equal(t, '+', Sand.Glyph())
	assert.Equal(t, '#', Ceramic.Glyph())
	assert.Equal(t, '?', Material(200).Glyph())
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial("ceramic")
	require.NoError(t, err)
	assert.Equal(t, Ceramic, m)

	_, err = ParseMaterial("lava")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
}

func TestEveryMaterialHasRule(t *testing.T) {
	for _, m := range Materials() {
		assert.NotNil(t, rules[m], "missing rule for %s", m)
	}
}
