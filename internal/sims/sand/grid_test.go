package sand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridIsEmptyAndPositioned(t *testing.T) {
	g := New(4, 3)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 12, g.Count(Empty))

	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			c, ok := g.Node(Pos(row, col))
			require.True(t, ok)
			assert.Equal(t, Pos(row, col), c.Pos())
			assert.False(t, c.Locked)
		}
	}
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(0, 0))
	assert.NoError(t, CheckSize(MaxCells, 1))
	assert.NoError(t, CheckSize(1<<40, 0))
	assert.ErrorIs(t, CheckSize(-1, 3), ErrBadDimension)
	assert.ErrorIs(t, CheckSize(MaxCells, 2), ErrBadDimension)
	assert.ErrorIs(t, CheckSize(1<<32, 1<<32), ErrBadDimension)
}

func TestNewClampsOversizedGrid(t *testing.T) {
	g := New(1<<32, 1<<32)
	assert.Equal(t, 1<<32, g.Width())
	assert.Zero(t, g.Height())
	assert.False(t, g.InBounds(Pos(0, 0)))
	_, ok := g.Node(Pos(0, 0))
	assert.False(t, ok)

	g = New(1024, 1<<20)
	assert.Equal(t, MaxCells/1024, g.Height())
}

func TestOutOfBoundsAccessIsAbsent(t *testing.T) {
	g := gridFromRows(t,
		"+ #",
		"   ",
	)
	before := g.String()

	for _, pos := range []Position{Pos(2, 0), Pos(0, 3), Pos(5, 5), Pos(-1, 0), Pos(0, -1)} {
		_, ok := g.Node(pos)
		assert.False(t, ok, "Node(%v)", pos)
		assert.Nil(t, g.NodeRef(pos), "NodeRef(%v)", pos)
		assert.False(t, g.SetNode(pos, NewCell(Sand, pos)), "SetNode(%v)", pos)
		assert.False(t, g.SetSeed(pos, NewCell(Sand, pos)), "SetSeed(%v)", pos)
	}

	assert.Equal(t, before, g.String())
	assert.Equal(t, 0, countLocked(g))
}

func TestSetNodeKeepsStoragePosition(t *testing.T) {
	g := New(3, 3)
	require.True(t, g.SetNode(Pos(2, 1), NewCell(Ceramic, Pos(0, 0))))

	c, ok := g.Node(Pos(2, 1))
	require.True(t, ok)
	assert.Equal(t, Ceramic, c.Material)
	assert.Equal(t, Pos(2, 1), c.Pos())
	assert.Equal(t, Empty, g.Material(Pos(0, 0)))
}

func TestSetNodeRejectsInvalidMaterial(t *testing.T) {
	g := New(2, 1)
	bad := NewCell(Material(42), Pos(0, 0))
	assert.False(t, g.SetNode(Pos(0, 0), bad))
	assert.False(t, g.SetSeed(Pos(0, 1), bad))
	assert.Equal(t, 2, g.Count(Empty))

	var buf strings.Builder
	require.NoError(t, g.Encode(&buf))
	_, err := Decode(strings.NewReader(buf.String()))
	assert.NoError(t, err, "a grid built through SetNode always round trips")
}

func TestSetSeedLocksCell(t *testing.T) {
	g := New(2, 2)
	require.True(t, g.SetSeed(Pos(0, 1), NewCell(Sand, Pos(0, 1))))

	c, _ := g.Node(Pos(0, 1))
	assert.True(t, c.Locked)
	assert.Equal(t, Sand, c.Material)
}

func TestNodeRefEditsInPlace(t *testing.T) {
	g := New(2, 2)
	ref := g.NodeRef(Pos(1, 0))
	require.NotNil(t, ref)
	ref.Material = Sand
	ref.Locked = true

	c, _ := g.Node(Pos(1, 0))
	assert.Equal(t, Sand, c.Material)
	assert.True(t, c.Locked)
	assert.Equal(t, Pos(1, 0), c.Pos())
}

func TestCellsRenderBuffer(t *testing.T) {
	g := gridFromRows(t,
		"+#",
		" +",
	)
	assert.Equal(t, []uint8{uint8(Sand), uint8(Ceramic), uint8(Empty), uint8(Sand)}, g.Cells())
}

func TestResetRestoresCheckpoint(t *testing.T) {
	g := gridFromRows(t,
		"+",
		" ",
		" ",
	)
	g.Step()
	g.Step()
	require.Equal(t, Sand, g.Material(Pos(2, 0)))
	require.Equal(t, 2, g.Generation())

	g.Reset(0)
	assert.Equal(t, rowsOf("+", " ", " "), g.String())
	assert.Equal(t, 0, g.Generation())
}

func TestResetScattersDeterministically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 8
	cfg.Scatter = 0.3

	a := NewWithConfig(cfg)
	a.Reset(42)
	b := NewWithConfig(cfg)
	b.Reset(42)

	assert.Equal(t, a.String(), b.String())
	assert.Positive(t, a.Count(Sand))
	assert.Less(t, a.Count(Sand), 16*8)
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "40", "h": "-3", "seed": "9", "scatter": "0.25"})
	assert.Equal(t, 40, c.Width)
	assert.Equal(t, DefaultConfig().Height, c.Height)
	assert.Equal(t, int64(9), c.Seed)
	assert.InDelta(t, 0.25, c.Scatter, 1e-9)

	assert.Equal(t, DefaultConfig(), FromMap(nil))
}

func countLocked(g *Grid) int {
	n := 0
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if c, _ := g.Node(Pos(row, col)); c.Locked {
				n++
			}
		}
	}
	return n
}
