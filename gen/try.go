package gen

import (
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Result is the fallible return value used by leaves that can fail (spec
// §3.2: "R is typically Result<Value, Error> for leaves that need to
// surface failures") and by the Try* combinators below that compose them
// with short-circuit-on-error semantics.
type Result[V any] struct {
	Value V
	Err   error
}

// Ok constructs a successful Result.
func Ok[V any](v V) Result[V] { return Result[V]{Value: v} }

// Fail constructs a failed Result.
func Fail[V any](err error) Result[V] { return Result[V]{Err: err} }

// TryOnce is Once specialized for a fallible inner generator: it passes
// through every yielded token, but if the inner generator completes with an
// error, that error is propagated immediately instead of the usual
// last-yielded-value return.
func TryOnce[V any](g Generator[Result[V]]) Generator[Result[token.Token]] {
	return &tryOnceGen[V]{inner: g}
}

type tryOnceGen[V any] struct {
	inner Generator[Result[V]]
	last  token.Token
}

func (t *tryOnceGen[V]) Next(r *rng.Source) Step[Result[token.Token]] {
	step := t.inner.Next(r)
	if !step.Done {
		t.last = step.Yield
		return Yielded[Result[token.Token]](step.Yield)
	}
	if step.Ret.Err != nil {
		return Complete(Fail[token.Token](step.Ret.Err))
	}
	return Complete(Ok(t.last))
}

// AndThenTry runs g to completion; if its result carries an error, that
// error short-circuits immediately without invoking f. Otherwise f is
// called with the success value to produce the continuation generator,
// which is run to completion as usual.
func AndThenTry[V, V2 any](g Generator[Result[V]], f func(V) Generator[Result[V2]]) Generator[Result[V2]] {
	return &andThenTryGen[V, V2]{inner: g, f: f}
}

type andThenTryGen[V, V2 any] struct {
	inner Generator[Result[V]]
	f     func(V) Generator[Result[V2]]
	next  Generator[Result[V2]]
}

func (a *andThenTryGen[V, V2]) Next(r *rng.Source) Step[Result[V2]] {
	if a.next == nil {
		step := a.inner.Next(r)
		if !step.Done {
			return Yielded[Result[V2]](step.Yield)
		}
		if step.Ret.Err != nil {
			return Complete(Fail[V2](step.Ret.Err))
		}
		a.next = a.f(step.Ret.Value)
	}
	step := a.next.Next(r)
	if !step.Done {
		return Yielded[Result[V2]](step.Yield)
	}
	a.next = nil
	return Complete(step.Ret)
}

// OrElseTry runs g to completion; if it fails, fallback(err) is invoked to
// produce a replacement generator which is run instead. A successful result
// passes straight through.
func OrElseTry[V any](g Generator[Result[V]], fallback func(error) Generator[Result[V]]) Generator[Result[V]] {
	return &orElseTryGen[V]{inner: g, fallback: fallback}
}

type orElseTryGen[V any] struct {
	inner       Generator[Result[V]]
	fallback    func(error) Generator[Result[V]]
	fallbackGen Generator[Result[V]]
}

func (o *orElseTryGen[V]) Next(r *rng.Source) Step[Result[V]] {
	if o.fallbackGen == nil {
		step := o.inner.Next(r)
		if !step.Done {
			return Yielded[Result[V]](step.Yield)
		}
		if step.Ret.Err == nil {
			return Complete(step.Ret)
		}
		o.fallbackGen = o.fallback(step.Ret.Err)
	}
	step := o.fallbackGen.Next(r)
	if !step.Done {
		return Yielded[Result[V]](step.Yield)
	}
	o.fallbackGen = nil
	return Complete(step.Ret)
}

// TryAggregate is Aggregate specialized for a fallible inner generator: it
// collects yielded tokens the same way, but aborts (returning the error
// without the partial collection) the moment the inner generator's result
// carries an error.
func TryAggregate[V any](g Generator[Result[V]]) Generator[Result[[]token.Token]] {
	return &tryAggregateGen[V]{inner: g}
}

type tryAggregateGen[V any] struct {
	inner Generator[Result[V]]
}

func (t *tryAggregateGen[V]) Next(r *rng.Source) Step[Result[[]token.Token]] {
	var collected []token.Token
	for {
		step := t.inner.Next(r)
		if step.Done {
			if step.Ret.Err != nil {
				return Complete(Fail[[]token.Token](step.Ret.Err))
			}
			return Complete(Ok(collected))
		}
		collected = append(collected, step.Yield)
	}
}
