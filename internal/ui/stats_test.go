package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falling-sand/internal/sims/sand"
)

func TestCollect(t *testing.T) {
	g := sand.New(3, 2)
	g.SetNode(sand.Pos(0, 1), sand.NewCell(sand.Sand, sand.Pos(0, 1)))
	g.SetNode(sand.Pos(1, 0), sand.NewCell(sand.Ceramic, sand.Pos(1, 0)))
	g.Step()

	s := Collect(g, 7, true)
	assert.Equal(t, []string{
		"sand (paused)",
		"Iteration: 7",
		"Generation: 1",
		"Moves: 1",
	}, s.Header())

	require.Len(t, s.Counts, 3)
	assert.Equal(t, MaterialCount{Material: sand.Empty, Count: 4}, s.Counts[0])
	assert.Equal(t, MaterialCount{Material: sand.Sand, Count: 1}, s.Counts[1])
	assert.Equal(t, MaterialCount{Material: sand.Ceramic, Count: 1}, s.Counts[2])
}

func TestCountLine(t *testing.T) {
	assert.Equal(t, "+ sand     12", MaterialCount{Material: sand.Sand, Count: 12}.CountLine())
	assert.Equal(t, "# ceramic  0", MaterialCount{Material: sand.Ceramic}.CountLine())
}

func TestHeaderRunning(t *testing.T) {
	assert.Equal(t, "sand (running)", Stats{Name: "sand"}.Header()[0])
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "falling-sand - sand", WindowTitle("sand"))
	assert.NotContains(t, WindowTitle("sand"), "\u2014")
}
