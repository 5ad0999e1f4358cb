// Package uniquegen implements the Unique primitive generator (spec §4.3):
// wraps a child and rejects repeats within the current outer cycle up to a
// bounded retry count; on exhaustion, surfaces an Exhausted error into the
// token stream (spec §7 channel 2, runtime-recoverable).
package uniquegen

import (
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Content produces a fresh single-shot leaf generator for one sampling
// attempt; Unique is defined over scalar leaves (Generator[token.Token]
// that completes on its very first Next call), matching the primitive
// kinds the spec lists Unique as wrapping (e.g. "unique bool").
type Content func() gen.Generator[token.Token]

// New wraps content so that, within the lifetime of this generator (reset
// explicitly by calling Reset, typically by an enclosing Array at the
// start of each cycle), every emitted value is distinct from every value
// already emitted. After maxRetries failed attempts to find a fresh value
// it emits an Error token instead, per spec §4.3 and §7.
func New(content Content, maxRetries int) *Generator {
	return &Generator{content: content, maxRetries: maxRetries, seen: map[token.Token]struct{}{}}
}

// Generator is the exported concrete type so callers (notably arraygen,
// which owns the "outer cycle" an array's elements share) can call Reset.
type Generator struct {
	content    Content
	maxRetries int
	seen       map[token.Token]struct{}
}

// Reset clears the set of previously emitted values, starting a new
// uniqueness scope. Callers that embed Unique as array content should call
// this once per array cycle, before the array's length is drawn and its
// BeginSeq is emitted (as arraygen.NewWithCycleHook does).
func (g *Generator) Reset() {
	g.seen = map[token.Token]struct{}{}
}

// Next implements gen.Generator[token.Token].
func (g *Generator) Next(r *rng.Source) gen.Step[token.Token] {
	for attempt := 0; attempt < g.maxRetries; attempt++ {
		leaf := g.content()
		step := drain(leaf, r)
		if _, dup := g.seen[step]; !dup {
			g.seen[step] = struct{}{}
			return gen.Complete(step)
		}
	}
	return gen.Complete(token.NewError((&errs.Exhausted{Kind: "unique"}).Error()))
}

func drain(g gen.Generator[token.Token], r *rng.Source) token.Token {
	for {
		step := g.Next(r)
		if step.Done {
			return step.Ret
		}
	}
}
