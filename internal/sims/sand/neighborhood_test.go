package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCornerHasFiveAbsentNeighbors(t *testing.T) {
	g := New(4, 4)
	n := Sample(g, Pos(0, 0))

	for _, d := range []Direction{TopLeft, TopMid, TopRight, MidLeft, BotLeft} {
		_, ok := n.Get(d)
		assert.False(t, ok, "%s should be absent at the corner", d)
	}
	for _, d := range []Direction{MidRight, BotMid, BotRight} {
		_, ok := n.Get(d)
		assert.True(t, ok, "%s should be present at the corner", d)
	}
	assert.Equal(t, 3, n.Present())
}

func TestSampleInteriorHasAllNeighbors(t *testing.T) {
	g := New(3, 3)
	n := Sample(g, Pos(1, 1))
	assert.Equal(t, 8, n.Present())

	for _, d := range Directions {
		c, ok := n.Get(d)
		require.True(t, ok)
		dr, dc := d.Offset()
		assert.Equal(t, Pos(1+dr, 1+dc), c.Pos(), "neighbor %s at wrong coordinates", d)
	}
}

func TestSampleFarCornerOverflow(t *testing.T) {
	g := New(5, 2)
	n := Sample(g, Pos(1, 4))
	for _, d := range []Direction{TopRight, MidRight, BotLeft, BotMid, BotRight} {
		_, ok := n.Get(d)
		assert.False(t, ok, "%s should be absent", d)
	}
	assert.Equal(t, 3, n.Present())
}

func TestSampleReadsMaterials(t *testing.T) {
	g := gridFromRows(t,
		"+# ",
		" # ",
		"#++",
	)
	n := Sample(g, Pos(1, 1))

	want := map[Direction]Material{
		TopLeft: Sand, TopMid: Ceramic, TopRight: Empty,
		MidLeft: Empty, MidRight: Empty,
		BotLeft: Ceramic, BotMid: Sand, BotRight: Sand,
	}
	for d, m := range want {
		c, ok := n.Get(d)
		require.True(t, ok)
		assert.Equal(t, m, c.Material, "direction %s", d)
	}
}

func TestDirectionFromIndex(t *testing.T) {
	for i, want := range Directions {
		got, ok := DirectionFromIndex(i)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	for _, i := range []int{-1, 8, 255} {
		_, ok := DirectionFromIndex(i)
		assert.False(t, ok, "index %d must be rejected", i)
	}
	assert.Equal(t, "BotRight", BotRight.String())
}
