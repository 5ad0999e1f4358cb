// Package nullgen implements the Null primitive generator (spec §4.3): a
// leaf that always emits the Null token.
package nullgen

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

type nullGen struct{}

// New constructs a generator that always completes with a Null token.
func New() gen.Generator[token.Token] { return nullGen{} }

func (nullGen) Next(r *rng.Source) gen.Step[token.Token] {
	return gen.Complete(token.NewNull())
}
