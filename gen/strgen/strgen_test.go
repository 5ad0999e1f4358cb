package strgen_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/faker"
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/gen/strgen"
	"github.com/synthgraph/synthgraph/regexsample"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

func TestPatternMatchesRegex(t *testing.T) {
	re := regexp.MustCompile(`^[a-c]{3}-[0-9]{2}$`)
	g := strgen.NewPattern(`[a-c]{3}-[0-9]{2}`, regexsample.Default{})
	r := rng.FromInt64(1)
	for i := 0; i < 50; i++ {
		step := g.Next(r)
		require.True(t, step.Done)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		assert.Regexp(t, re, s)
	}
}

func TestConstantAlwaysSame(t *testing.T) {
	g := strgen.NewConstant("fixed")
	r := rng.FromInt64(2)
	step := g.Next(r)
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.Equal(t, "fixed", s)
}

func TestCategoricalOnlyEmitsDeclaredValues(t *testing.T) {
	g := strgen.NewCategorical([]strgen.Weighted{
		{Value: "rare", Weight: 1},
		{Value: "common", Weight: 9},
	})
	r := rng.FromInt64(3)
	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		step := g.Next(r)
		s, err := step.Ret.AsString()
		require.NoError(t, err)
		counts[s]++
	}
	assert.Len(t, counts, 2)
	assert.Greater(t, counts["common"], counts["rare"])
}

func TestFakerDelegatesToProvider(t *testing.T) {
	g := strgen.NewFaker(faker.Default{}, "name.first_name", nil)
	r := rng.FromInt64(4)
	step := g.Next(r)
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.NotEmpty(t, s)
}

func TestFakerUnknownNameSurfacesAsErrorToken(t *testing.T) {
	g := strgen.NewFaker(faker.Default{}, "bogus.generator", nil)
	step := g.Next(rng.FromInt64(5))
	assert.True(t, step.Ret.IsError())
}

func TestTruncatedClipsToGraphemeCount(t *testing.T) {
	inner := strgen.NewConstant("héllo wörld")
	g := strgen.NewTruncated(inner, 5)
	step := g.Next(rng.FromInt64(6))
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestTruncatedZeroLengthIsEmpty(t *testing.T) {
	inner := strgen.NewConstant("anything")
	g := strgen.NewTruncated(inner, 0)
	step := g.Next(rng.FromInt64(7))
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestFormatRendersArgsInOrder(t *testing.T) {
	args := []gen.Generator[token.Token]{
		strgen.NewConstant("left"),
		strgen.NewConstant("right"),
	}
	g := strgen.NewFormat("%s-%s", args)
	step := g.Next(rng.FromInt64(8))
	s, err := step.Ret.AsString()
	require.NoError(t, err)
	assert.Equal(t, "left-right", s)
}
