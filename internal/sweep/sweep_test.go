package sweep

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCases(t *testing.T) {
	got := Cases([]float64{0.1, 0.5}, []int64{1, 2})
	want := []Case{
		{Density: 0.1, Seed: 1},
		{Density: 0.1, Seed: 2},
		{Density: 0.5, Seed: 1},
		{Density: 0.5, Seed: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cases mismatch (-want +got):\n%s", diff)
	}
}

func TestRunSettlesAndIsDeterministic(t *testing.T) {
	cfg := Config{Width: 12, Height: 10, MaxSteps: 200, Workers: 3}
	cases := Cases([]float64{0, 0.2, 0.6}, []int64{3, 9})

	first, err := Run(context.Background(), cfg, cases)
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, cases)
	require.NoError(t, err)

	require.Len(t, first, len(cases))
	assert.Equal(t, first, second)
	for i, res := range first {
		assert.Equal(t, cases[i], res.Case, "results keep case order")
		assert.True(t, res.Settled, res.Case.String())
	}
	assert.Zero(t, first[0].Sand)
	assert.Equal(t, 1, first[0].Generations, "an empty grid is quiet after one step")
}

func TestRunStepLimit(t *testing.T) {
	cfg := Config{Width: 4, Height: 40, MaxSteps: 2, Workers: 1}
	res, err := Run(context.Background(), cfg, []Case{{Density: 0.5, Seed: 1}})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.False(t, res[0].Settled)
	assert.Equal(t, 2, res[0].Generations)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Width: 4, Height: 4}, Cases([]float64{0.5}, []int64{1, 2}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlowest(t *testing.T) {
	results := []Result{
		{Case: Case{Seed: 1}, Settled: true, Generations: 4},
		{Case: Case{Seed: 2}, Settled: false, Generations: 9},
		{Case: Case{Seed: 3}, Settled: true, Generations: 7},
	}
	got := Slowest(results, 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Seed)
	assert.Equal(t, int64(3), got[1].Seed)
	assert.Equal(t, int64(1), results[0].Seed, "input is not reordered")
}
