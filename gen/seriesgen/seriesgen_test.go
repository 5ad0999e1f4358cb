package seriesgen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/gen/seriesgen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

const layout = "2006-01-02T15:04:05Z07:00"

func TestIncrementingAdvancesByFixedDelta(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := seriesgen.NewIncrementing(start, time.Minute, layout)
	r := rng.FromInt64(1)

	var prev time.Time
	for i := 0; i < 5; i++ {
		step := g.Next(r)
		require.True(t, step.Done)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		ts, err := time.Parse(layout, s)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, time.Minute, ts.Sub(prev))
		}
		prev = ts
	}
}

func TestPoissonArrivalsAreMonotonic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := seriesgen.NewPoisson(start, 10, layout)
	r := rng.FromInt64(2)

	var prev time.Time
	for i := 0; i < 20; i++ {
		step := g.Next(r)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		ts, err := time.Parse(layout, s)
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, ts.After(prev) || ts.Equal(prev))
		}
		prev = ts
	}
}

func TestCyclicalStaysMonotonic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := seriesgen.NewCyclical(start, 5, 3, time.Hour, layout)
	r := rng.FromInt64(3)

	var prev time.Time
	for i := 0; i < 20; i++ {
		step := g.Next(r)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		ts, err := time.Parse(layout, s)
		require.NoError(t, err)
		if i > 0 {
			assert.False(t, ts.Before(prev))
		}
		prev = ts
	}
}

func TestZipMergesByEarliestNextValue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := seriesgen.NewIncrementing(start, 2*time.Minute, layout)
	b := seriesgen.NewIncrementing(start.Add(time.Minute), 2*time.Minute, layout)
	g := seriesgen.NewZip([]gen.Generator[token.Token]{a, b})
	r := rng.FromInt64(4)

	var prev time.Time
	for i := 0; i < 6; i++ {
		step := g.Next(r)
		require.True(t, step.Done)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		ts, err := time.Parse(layout, s)
		require.NoError(t, err)
		if i > 0 {
			assert.False(t, ts.Before(prev), "zip output must be non-decreasing")
		}
		prev = ts
	}
}
