// Package itergen implements the Iter primitive generator (spec §4.3):
// wraps an externally supplied iterator of values, optionally cyclic;
// emits an Exhausted error when the iterator is drained and not cyclic.
package itergen

import (
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

type iterGen struct {
	values []token.Token
	cyclic bool
	pos    int
}

// New wraps values as an Iter leaf: each cycle emits the next value in
// order. If cyclic, the position wraps back to the start once it reaches
// the end; otherwise, once drained, every subsequent cycle emits an
// Exhausted error token instead.
func New(values []token.Token, cyclic bool) gen.Generator[token.Token] {
	return &iterGen{values: values, cyclic: cyclic}
}

func (g *iterGen) Next(r *rng.Source) gen.Step[token.Token] {
	if len(g.values) == 0 {
		return gen.Complete(token.NewError((&errs.Exhausted{Kind: "iter"}).Error()))
	}
	if g.pos >= len(g.values) {
		if !g.cyclic {
			return gen.Complete(token.NewError((&errs.Exhausted{Kind: "iter"}).Error()))
		}
		g.pos = 0
	}
	v := g.values[g.pos]
	g.pos++
	return gen.Complete(v)
}
