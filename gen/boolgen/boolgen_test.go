package boolgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/gen/boolgen"
	"github.com/synthgraph/synthgraph/rng"
)

func TestFrequencyConverges(t *testing.T) {
	g := boolgen.NewFrequency(0.8)
	r := rng.FromInt64(1)
	trues := 0
	const n = 2000
	for i := 0; i < n; i++ {
		step := g.Next(r)
		require.True(t, step.Done)
		v, err := step.Ret.AsBool()
		require.NoError(t, err)
		if v {
			trues++
		}
	}
	assert.InDelta(t, 0.8, float64(trues)/float64(n), 0.05)
}

func TestConstantAlwaysSame(t *testing.T) {
	g := boolgen.NewConstant(true)
	r := rng.FromInt64(2)
	for i := 0; i < 5; i++ {
		step := g.Next(r)
		v, err := step.Ret.AsBool()
		require.NoError(t, err)
		assert.True(t, v)
	}
}

func TestCategoricalOnlyEmitsDeclaredValues(t *testing.T) {
	g := boolgen.NewCategorical([]boolgen.Weighted{
		{Value: false, Weight: 1},
		{Value: true, Weight: 9},
	})
	r := rng.FromInt64(3)
	counts := map[bool]int{}
	for i := 0; i < 200; i++ {
		step := g.Next(r)
		v, err := step.Ret.AsBool()
		require.NoError(t, err)
		counts[v]++
	}
	assert.Greater(t, counts[true], counts[false])
}
