package tape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/tape"
	"github.com/synthgraph/synthgraph/token"
)

func TestAppendGetLenRoundTrip(t *testing.T) {
	tp := tape.New()
	tp.Append(tape.FromStep(gen.Yielded[int](token.NewI64(1))))
	tp.Append(tape.FromStep(gen.Complete(7)))

	require.Equal(t, 2, tp.Len())
	assert.False(t, tp.Get(0).Done)
	assert.Equal(t, token.NewI64(1), tp.Get(0).Yield)
	assert.True(t, tp.Get(1).Done)
	assert.Equal(t, 7, tp.Get(1).Ret)
}

func TestNewSliceStartsAtCurrentBufferEnd(t *testing.T) {
	tp := tape.New()
	tp.Append(tape.FromStep(gen.Complete(1)))
	slice := tp.NewSlice()
	start, end := tp.Range(slice)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestResetBumpsGenerationAndRebasesStart(t *testing.T) {
	tp := tape.New()
	slice := tp.NewSlice()
	tp.Append(tape.FromStep(gen.Complete(1)))
	tp.Append(tape.FromStep(gen.Complete(2)))

	assert.Equal(t, 0, tp.Generation(slice))
	start, end := tp.Range(slice)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	tp.Reset(slice)
	assert.Equal(t, 1, tp.Generation(slice))
	start, end = tp.Range(slice)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestGCDropsPrefixAndRebasesSlices(t *testing.T) {
	tp := tape.New()
	slice := tp.NewSlice()
	for i := 0; i < 5; i++ {
		tp.Append(tape.FromStep(gen.Complete(i)))
	}
	tp.GC(3)

	require.Equal(t, 2, tp.Len())
	assert.Equal(t, 3, tp.Get(0).Ret)
	assert.Equal(t, 4, tp.Get(1).Ret)

	start, _ := tp.Range(slice)
	assert.Equal(t, 0, start, "a slice whose start fell before the GC offset clamps to zero")
}

func TestGCIsNoOpOutsideValidRange(t *testing.T) {
	tp := tape.New()
	tp.Append(tape.FromStep(gen.Complete(1)))
	tp.GC(0)
	assert.Equal(t, 1, tp.Len())
	tp.GC(100)
	assert.Equal(t, 1, tp.Len())
}
