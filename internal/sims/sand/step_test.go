package sand

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcore "falling-sand/pkg/core"
)

func assertRows(t *testing.T, g *Grid, rows ...string) {
	t.Helper()
	if diff := cmp.Diff(rowsOf(rows...), g.String()); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSandFallsStraightDown(t *testing.T) {
	g := New(3, 2)
	require.True(t, g.SetNode(Pos(0, 1), NewCell(Sand, Pos(0, 1))))

	g.Step()

	assert.Equal(t, Empty, g.Material(Pos(0, 1)))
	assert.Equal(t, Sand, g.Material(Pos(1, 1)))
	assert.Equal(t, 1, g.Count(Sand))
	assert.Equal(t, 1, g.Moves())
}

func TestSandFallsDownRightWhenBlocked(t *testing.T) {
	g := gridFromRows(t,
		" + ",
		" # ",
	)
	g.Step()
	assertRows(t, g,
		"   ",
		" #+",
	)
}

func TestSandFallsDownLeftLast(t *testing.T) {
	g := gridFromRows(t,
		" + ",
		" ##",
	)
	g.Step()
	assertRows(t, g,
		"   ",
		"+##",
	)
}

func TestSandRestsOnBottomRow(t *testing.T) {
	g := gridFromRows(t,
		"   ",
		"+ +",
	)
	g.Step()
	assertRows(t, g,
		"   ",
		"+ +",
	)
	assert.Equal(t, 0, g.Moves())
}

func TestSandRestsWhenAllDownwardBlocked(t *testing.T) {
	g := gridFromRows(t,
		" + ",
		"#+#",
	)
	for i := 0; i < 4; i++ {
		g.Step()
	}
	assertRows(t, g,
		" + ",
		"#+#",
	)
}

func TestSandColumnSettles(t *testing.T) {
	g := gridFromRows(t,
		"+",
		" ",
		" ",
		" ",
	)
	for i := 0; i < 3; i++ {
		g.Step()
	}
	assertRows(t, g, " ", " ", " ", "+")
}

func TestStepObservesFrozenState(t *testing.T) {
	// The upper grain sees the lower grain as occupied for this step, so it
	// slides right instead of following it down.
	g := gridFromRows(t,
		"+  ",
		"+  ",
		"   ",
	)
	g.Step()
	assertRows(t, g,
		"   ",
		" + ",
		"+  ",
	)
}

func TestLockedSeedNeverChanges(t *testing.T) {
	g := New(1, 3)
	require.True(t, g.SetSeed(Pos(0, 0), NewCell(Sand, Pos(0, 0))))

	for i := 0; i < 6; i++ {
		g.Step()
		c, ok := g.Node(Pos(0, 0))
		require.True(t, ok)
		assert.Equal(t, Sand, c.Material, "seed changed after step %d", i+1)
		assert.True(t, c.Locked)
		_, staged := c.Pending()
		assert.False(t, staged, "pending state leaked past commit")
	}
	assertRows(t, g, "+", "+", "+")
}

func TestLockedSinkSwallowsSand(t *testing.T) {
	g := gridFromRows(t,
		"+",
		" ",
	)
	require.True(t, g.SetSeed(Pos(1, 0), NewCell(Empty, Pos(1, 0))))

	g.Step()
	assertRows(t, g, " ", " ")
}

func TestCeramicAndEmptyAreStatic(t *testing.T) {
	rows := []string{
		"# # #",
		" ### ",
		"#   #",
		"#####",
	}
	g := gridFromRows(t, rows...)
	for i := 0; i < 25; i++ {
		g.Step()
	}
	assertRows(t, g, rows...)
	assert.Equal(t, 0, g.Moves())
}

func TestConvergingGrainsFirstClaimWins(t *testing.T) {
	// Three grains can all reach (1,1). Only the first in scan order takes
	// it; the others have nowhere else to go and stay.
	g := gridFromRows(t,
		"+++",
		"# #",
	)
	g.Step()
	assertRows(t, g,
		" ++",
		"#+#",
	)
	assert.Equal(t, 3, g.Count(Sand))
	assert.Equal(t, 1, g.Moves())
}

func TestLosingGrainTriesNextDirection(t *testing.T) {
	// (0,0) claims (1,1) via down-right; (0,1) loses straight-down and falls
	// down-right to (1,2) instead.
	g := gridFromRows(t,
		"++ ",
		"#  ",
	)
	g.Step()
	assertRows(t, g,
		"   ",
		"#++",
	)
}

func TestSandIsConserved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	g := NewWithConfig(cfg)
	for col := 3; col < 20; col += 4 {
		g.SetNode(Pos(10, col), NewCell(Ceramic, Pos(10, col)))
	}
	Scatter(g, pkgcore.NewRNG(7), Sand, 0.35)
	want := g.Count(Sand)
	ceramic := g.Count(Ceramic)
	require.Positive(t, want)

	for i := 0; i < 60; i++ {
		g.Step()
		require.Equal(t, want, g.Count(Sand), "sand count changed at step %d", i+1)
		require.Equal(t, ceramic, g.Count(Ceramic))
	}
}

func TestStepIsDeterministic(t *testing.T) {
	build := func() *Grid {
		g := New(12, 12)
		Scatter(g, pkgcore.NewRNG(99), Sand, 0.4)
		return g
	}
	a, b := build(), build()
	for i := 0; i < 20; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 20, a.Generation())
}

func TestPendingClearedAfterStep(t *testing.T) {
	g := gridFromRows(t,
		"+ +",
		"   ",
	)
	g.Step()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			c, _ := g.Node(Pos(row, col))
			_, staged := c.Pending()
			assert.False(t, staged, "cell (%d,%d) still has pending state", row, col)
		}
	}
}
