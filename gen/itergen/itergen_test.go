package itergen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/gen/itergen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

func TestNonCyclicExhausts(t *testing.T) {
	vals := []token.Token{token.NewI64(1), token.NewI64(2)}
	g := itergen.New(vals, false)
	r := rng.FromInt64(1)

	for _, want := range vals {
		step := g.Next(r)
		require.True(t, step.Done)
		got, err := step.Ret.AsI64()
		require.NoError(t, err)
		wantV, _ := want.AsI64()
		assert.Equal(t, wantV, got)
	}

	step := g.Next(r)
	require.True(t, step.Done)
	assert.True(t, step.Ret.IsError())
	msg, err := step.Ret.AsError()
	require.NoError(t, err)
	assert.Equal(t, (&errs.Exhausted{Kind: "iter"}).Error(), msg)

	// Exhaustion is sticky: it does not reset or wrap back around.
	step = g.Next(r)
	assert.True(t, step.Ret.IsError())
}

func TestCyclicWrapsAround(t *testing.T) {
	vals := []token.Token{token.NewI64(1), token.NewI64(2)}
	g := itergen.New(vals, true)
	r := rng.FromInt64(1)

	var seen []int64
	for i := 0; i < 5; i++ {
		step := g.Next(r)
		v, err := step.Ret.AsI64()
		require.NoError(t, err)
		seen = append(seen, v)
	}
	assert.Equal(t, []int64{1, 2, 1, 2, 1}, seen)
}

func TestEmptyIsExhaustedImmediately(t *testing.T) {
	g := itergen.New(nil, true)
	step := g.Next(rng.FromInt64(1))
	assert.True(t, step.Ret.IsError())
}
