package compile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/compile"
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/scope"
)

func TestNilReporterAbortsOnFirstError(t *testing.T) {
	h := compile.NewHandler(nil)
	err1 := errors.New("first")

	got := h.HandleError(scope.Root().Field("a"), err1)
	require.Error(t, got)
	assert.True(t, h.Aborted())

	// A second error after abort must return the same abort error without
	// growing the collected list.
	got2 := h.HandleError(scope.Root().Field("b"), errors.New("second"))
	assert.Equal(t, got, got2)
	assert.Len(t, h.Errors(), 1)
}

func TestReporterThatReturnsNilCollectsAndContinues(t *testing.T) {
	h := compile.NewHandler(func(err errs.ErrorWithPos) error { return nil })

	require.NoError(t, h.HandleError(scope.Root().Field("a"), errors.New("first")))
	require.NoError(t, h.HandleError(scope.Root().Field("b"), errors.New("second")))

	assert.False(t, h.Aborted())
	assert.Len(t, h.Errors(), 2)
}

func TestReporterCanAbortOnAnyCall(t *testing.T) {
	abortErr := errors.New("stop here")
	calls := 0
	h := compile.NewHandler(func(err errs.ErrorWithPos) error {
		calls++
		if calls == 2 {
			return abortErr
		}
		return nil
	})

	require.NoError(t, h.HandleError(scope.Root().Field("a"), errors.New("first")))
	got := h.HandleError(scope.Root().Field("b"), errors.New("second"))
	assert.ErrorIs(t, got, abortErr)
	assert.True(t, h.Aborted())
}

func TestErrorsPreservesPositionForUnwrap(t *testing.T) {
	h := compile.NewHandler(func(err errs.ErrorWithPos) error { return nil })
	cyc := &errs.Cycle{From: scope.Root().Field("a"), To: scope.Root().Field("b")}

	require.NoError(t, h.HandleError(scope.Root().Field("a"), cyc))
	reported := h.Errors()
	require.Len(t, reported, 1)

	var got *errs.Cycle
	assert.ErrorAs(t, reported[0], &got)
	assert.Equal(t, scope.Root().Field("a"), reported[0].Position())
}
