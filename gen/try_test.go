package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// fixedResult completes immediately with the given Result, never yielding.
type fixedResult[V any] struct {
	result Result[V]
}

func (f *fixedResult[V]) Next(r *rng.Source) Step[Result[V]] {
	return Complete(f.result)
}

func TestTryOncePassesThroughYieldsAndSucceeds(t *testing.T) {
	r := rng.FromInt64(1)
	inner := &fixedSeqResult{toks: []token.Token{token.NewI64(1), token.NewI64(2)}, result: Ok(struct{}{})}
	g := TryOnce[struct{}](inner)

	step := g.Next(r)
	require.False(t, step.Done)
	assert.Equal(t, token.NewI64(1), step.Yield)

	step = g.Next(r)
	require.False(t, step.Done)
	assert.Equal(t, token.NewI64(2), step.Yield)

	step = g.Next(r)
	require.True(t, step.Done)
	require.NoError(t, step.Ret.Err)
	assert.Equal(t, token.NewI64(2), step.Ret.Value)
}

func TestTryOncePropagatesInnerError(t *testing.T) {
	r := rng.FromInt64(1)
	wantErr := errors.New("boom")
	inner := &fixedSeqResult{toks: []token.Token{token.NewI64(1)}, result: Fail[struct{}](wantErr)}
	g := TryOnce[struct{}](inner)

	g.Next(r) // consume the single yield
	step := g.Next(r)
	require.True(t, step.Done)
	assert.ErrorIs(t, step.Ret.Err, wantErr)
}

func TestAndThenTryShortCircuitsOnError(t *testing.T) {
	r := rng.FromInt64(1)
	wantErr := errors.New("first failed")
	g := AndThenTry[int, int](&fixedResult[int]{result: Fail[int](wantErr)}, func(v int) Generator[Result[int]] {
		t.Fatal("continuation must not run when the first generator failed")
		return nil
	})
	step := g.Next(r)
	require.True(t, step.Done)
	assert.ErrorIs(t, step.Ret.Err, wantErr)
}

func TestAndThenTryChainsOnSuccess(t *testing.T) {
	r := rng.FromInt64(1)
	g := AndThenTry[int, int](&fixedResult[int]{result: Ok(5)}, func(v int) Generator[Result[int]] {
		return &fixedResult[int]{result: Ok(v * 2)}
	})
	step := g.Next(r)
	require.True(t, step.Done)
	require.NoError(t, step.Ret.Err)
	assert.Equal(t, 10, step.Ret.Value)
}

func TestOrElseTryUsesFallbackOnError(t *testing.T) {
	r := rng.FromInt64(1)
	g := OrElseTry[int](&fixedResult[int]{result: Fail[int](errors.New("primary down"))}, func(err error) Generator[Result[int]] {
		return &fixedResult[int]{result: Ok(99)}
	})
	step := g.Next(r)
	require.True(t, step.Done)
	require.NoError(t, step.Ret.Err)
	assert.Equal(t, 99, step.Ret.Value)
}

func TestOrElseTryPassesThroughSuccess(t *testing.T) {
	r := rng.FromInt64(1)
	g := OrElseTry[int](&fixedResult[int]{result: Ok(7)}, func(err error) Generator[Result[int]] {
		t.Fatal("fallback must not run on success")
		return nil
	})
	step := g.Next(r)
	require.True(t, step.Done)
	assert.Equal(t, 7, step.Ret.Value)
}

func TestTryAggregateCollectsThenSucceeds(t *testing.T) {
	r := rng.FromInt64(1)
	inner := &fixedSeqResult{toks: []token.Token{token.NewI64(1), token.NewI64(2)}, result: Ok(struct{}{})}
	g := TryAggregate[struct{}](inner)
	step := g.Next(r)
	require.True(t, step.Done)
	require.NoError(t, step.Ret.Err)
	assert.Equal(t, []token.Token{token.NewI64(1), token.NewI64(2)}, step.Ret.Value)
}

func TestTryAggregateAbortsOnError(t *testing.T) {
	r := rng.FromInt64(1)
	wantErr := errors.New("aggregate failed")
	inner := &fixedSeqResult{toks: []token.Token{token.NewI64(1)}, result: Fail[struct{}](wantErr)}
	g := TryAggregate[struct{}](inner)
	step := g.Next(r)
	require.True(t, step.Done)
	assert.ErrorIs(t, step.Ret.Err, wantErr)
	assert.Nil(t, step.Ret.Value)
}

// fixedSeqResult yields toks in order, then completes once with result.
type fixedSeqResult struct {
	toks   []token.Token
	result Result[struct{}]
	i      int
}

func (f *fixedSeqResult) Next(r *rng.Source) Step[Result[struct{}]] {
	if f.i < len(f.toks) {
		tok := f.toks[f.i]
		f.i++
		return Yielded[Result[struct{}]](tok)
	}
	return Complete(f.result)
}
