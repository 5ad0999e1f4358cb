// Package gen defines the generator algebra (spec §4.2): a uniform
// streaming contract, Generator[R], and the composable set of combinators
// built on top of it. Every generator reports one state per call to Next:
// either it yielded a token.Token and has more work to do, or it completed
// with a return value of type R and must be ready to begin a fresh cycle on
// the very next call (the reset-on-complete invariant, spec §3.2, §8
// property 2).
//
// The yielded type is fixed to token.Token — "Y is almost always Token" per
// the data model — while the completion type R is generic, letting leaves
// return whatever is useful (struct{} for in-band generators, a slice of
// tokens for Aggregate, a Result[V] for fallible leaves) without boxing
// through interface{} at every combinator layer. graph.Node, the one type
// every compiled generator kind reduces to (C5), is Generator[struct{}]:
// value-returning leaves are lifted into it with graph.Leaf, so
// heterogeneous generator kinds can share one slice of children; see
// graph.Node's doc comment.
//
// This design is the single-threaded, explicit-state-machine counterpart to
// the teacher's walk.DescriptorsEnterAndExit callback-driven traversal:
// where the teacher pushes descriptors through a callback as it walks a
// fully materialized protobuf descriptor tree, a Generator pulls one token
// at a time from a combinator tree with no stack-saving coroutines, so a
// caller can freely interleave Next calls with other work (spec §5).
package gen

import (
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Step is the result of one call to Generator.Next: either a yielded token
// (Done == false) or a completion value (Done == true).
type Step[R any] struct {
	Done  bool
	Yield token.Token
	Ret   R
}

// Yielded constructs a non-terminal step carrying tok.
func Yielded[R any](tok token.Token) Step[R] {
	return Step[R]{Done: false, Yield: tok}
}

// Complete constructs a terminal step carrying ret. A generator that returns
// Complete must treat its next Next call as the start of a fresh cycle.
func Complete[R any](ret R) Step[R] {
	return Step[R]{Done: true, Ret: ret}
}

// Generator is the uniform streaming contract every sampler in synthgraph
// implements: pull one token.Token at a time from a shared pseudorandom
// source, or signal completion with a value of type R and reset for the
// next cycle.
type Generator[R any] interface {
	Next(r *rng.Source) Step[R]
}

// Func adapts a plain function into a Generator, useful for leaves whose
// entire state fits in a closure (e.g. the no-op end that Prefix and Suffix
// supply to Brace).
type Func[R any] func(r *rng.Source) Step[R]

// Next implements Generator.
func (f Func[R]) Next(r *rng.Source) Step[R] { return f(r) }
