package datetimegen_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/gen/datetimegen"
	"github.com/synthgraph/synthgraph/rng"
)

func TestSampleFallsWithinInterval(t *testing.T) {
	begin := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	format := datetimegen.DefaultFormat(datetimegen.NaiveDate)
	g := datetimegen.New(begin, end, format)
	r := rng.FromInt64(1)
	for i := 0; i < 200; i++ {
		step := g.Next(r)
		require.True(t, step.Done)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		parsed, err := time.Parse(format, s)
		require.NoError(t, err)
		assert.False(t, parsed.Before(begin))
		assert.False(t, parsed.After(end))
	}
}

func TestDegenerateIntervalAlwaysReturnsBegin(t *testing.T) {
	begin := time.Date(2021, 6, 15, 12, 0, 0, 0, time.UTC)
	format := datetimegen.DefaultFormat(datetimegen.NaiveDateTime)
	g := datetimegen.New(begin, begin, format)
	r := rng.FromInt64(2)
	step := g.Next(r)
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.Equal(t, begin.Format(format), s)
}

func TestDefaultFormatsAreDistinctPerPrecision(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range []datetimegen.Precision{
		datetimegen.NaiveDate,
		datetimegen.NaiveTime,
		datetimegen.NaiveDateTime,
		datetimegen.OffsetDateTime,
	} {
		f := datetimegen.DefaultFormat(p)
		assert.False(t, seen[f], "format %q reused across precisions", f)
		seen[f] = true
	}
}
