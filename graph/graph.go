// Package graph implements the graph node (spec §4.3 C5) and the scoped
// driver (spec §4.7 C9): the single generic Node interface that every
// primitive sampler and link variant satisfies, the one type the compiler
// assembles (no tag enum; see Node),
// and the node that drives recorder children to completion in declared
// order before its own body samples.
//
// Grounded on gen.Generator's own "push state through a tree" shape for the
// concrete node kinds (primitive samplers already satisfy Node directly, no
// wrapping struct needed) and, for Scoped, on
// experimental/incremental/executor.go's task-dependency-before-task-body
// ordering idea (run what a computation depends on before running the
// computation itself) — adapted from that package's incremental-build
// dependency graph to synthgraph's per-cycle recorder/view dependency.
package graph

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Node is the common type every compiled schema node reduces to: a
// streaming generator whose return value carries no information of its
// own. Spec §3.3 describes Graph as a tagged sum over concrete generator
// kinds plus the link and driver wrappers; in Go, every one of those kinds
// already satisfies this single generic interface once leaves are lifted
// with Leaf, so no separate enum/tag is needed — enumerability (spec §9's
// "cheaply cloned for metadata, no vtable hop") is traded for Go's
// interface dispatch, which the teacher itself accepts throughout (e.g.
// experimental/ir's Type/Symbol sums use interface dispatch, not a closed
// tag switch).
type Node = gen.Generator[struct{}]

// Func adapts a plain function into a Node.
type Func func(r *rng.Source) gen.Step[struct{}]

// Next implements Node.
func (f Func) Next(r *rng.Source) gen.Step[struct{}] { return f(r) }

// leafNode lifts a value-returning scalar leaf (Number, String, Bool, …)
// into a Node: every yield passes through unchanged, and completion
// discards the leaf's return value (its payload already reached the
// stream as the leaf's one yield, or — for leaves that never stream, the
// common case for Number/Bool/String per their package docs — the
// completion IS the yield, so leafNode also re-emits it as a token before
// completing).
type leafNode struct {
	inner    gen.Generator[token.Token]
	finished bool
}

// Leaf lifts g, a scalar value-returning generator, into a Node: g's
// intermediate yields pass through, and its final return value is yielded
// once more (as a plain token) immediately before Leaf completes. This is
// how synthgraph turns the "once-style" single-shot leaves of spec §4.3
// (Number, Bool, String, Date-time, Series, Unique) into subgraphs an
// Object/Array/OneOf node can embed directly alongside streaming
// primitives, without every leaf constructor needing to know about Node.
func Leaf(g gen.Generator[token.Token]) Node {
	return &leafNode{inner: g}
}

func (l *leafNode) Next(r *rng.Source) gen.Step[struct{}] {
	if l.finished {
		l.finished = false
		return gen.Complete(struct{}{})
	}
	step := l.inner.Next(r)
	if !step.Done {
		return gen.Yielded[struct{}](step.Yield)
	}
	l.finished = true
	return gen.Yielded[struct{}](step.Ret)
}

// Driver drives some generator, of whatever return type it has, through
// exactly one full outer cycle, discarding its return value. It is the
// erasure boundary Scoped needs to hold a heterogeneous list of recorder
// children (spec §4.6 step 6, §4.7).
type Driver interface {
	DriveOnce(r *rng.Source)
}

type driverFunc[R any] struct {
	inner gen.Generator[R]
}

// NewDriver wraps inner so Scoped (or any other caller) can drive it to
// completion without caring about its return type.
func NewDriver[R any](inner gen.Generator[R]) Driver {
	return &driverFunc[R]{inner: inner}
}

func (d *driverFunc[R]) DriveOnce(r *rng.Source) {
	for {
		step := d.inner.Next(r)
		if step.Done {
			return
		}
	}
}

// suppressed drains inner to completion within a single outer Next call,
// discarding every intermediate yield, and reports completion immediately
// without ever yielding. It backs Hidden (spec §4.3: "wraps content,
// suppressing its emission while still generating it"): the builder
// installs any Recorder a Hidden field needs underneath suppressed, so the
// value is still captured to the tape before its tokens are discarded on
// the way up to the enclosing Object/Array.
type suppressed struct {
	inner Node
}

// Suppress wraps inner so it drives to completion without emitting any
// tokens to its caller.
func Suppress(inner Node) Node {
	return &suppressed{inner: inner}
}

func (s *suppressed) Next(r *rng.Source) gen.Step[struct{}] {
	for {
		step := s.inner.Next(r)
		if step.Done {
			return step
		}
	}
}

// Scoped wraps a subtree at a common-ancestor scope (spec §4.6 step 6, §4.7
// C9): on the first Next call of every outer cycle it drives every
// recorder child to completion, in declared order, before letting src
// sample at all. This guarantees that by the time src's body reads a
// reference through a View, the referenced recorder has already appended
// every value it will produce this cycle.
type Scoped struct {
	drivers []Driver
	src     Node
	primed  bool
}

// NewScoped constructs a Scoped node: drivers are run to completion, in
// order, once per outer cycle of src, before src itself is sampled.
func NewScoped(drivers []Driver, src Node) *Scoped {
	return &Scoped{drivers: drivers, src: src}
}

// Next implements Node.
func (s *Scoped) Next(r *rng.Source) gen.Step[struct{}] {
	if !s.primed {
		for _, d := range s.drivers {
			d.DriveOnce(r)
		}
		s.primed = true
	}
	step := s.src.Next(r)
	if step.Done {
		s.primed = false
	}
	return step
}
