// Package boolgen implements the Boolean primitive generator (spec §4.3):
// Bernoulli with a user frequency, constant, or categorical.
package boolgen

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

type frequencyGen struct{ p float64 }

// NewFrequency emits true with probability p and false with probability 1-p.
func NewFrequency(p float64) gen.Generator[token.Token] {
	return &frequencyGen{p: p}
}

func (g *frequencyGen) Next(r *rng.Source) gen.Step[token.Token] {
	return gen.Complete(token.NewBool(r.Float64() < g.p))
}

type constantGen struct{ v bool }

// NewConstant emits v every cycle.
func NewConstant(v bool) gen.Generator[token.Token] { return &constantGen{v: v} }

func (g *constantGen) Next(r *rng.Source) gen.Step[token.Token] {
	return gen.Complete(token.NewBool(g.v))
}

// Weighted is one entry of a categorical boolean distribution.
type Weighted struct {
	Value  bool
	Weight float64
}

type categoricalGen struct {
	entries []Weighted
	total   float64
}

// NewCategorical emits one of entries' values, chosen with probability
// proportional to its weight.
func NewCategorical(entries []Weighted) gen.Generator[token.Token] {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	return &categoricalGen{entries: entries, total: total}
}

func (g *categoricalGen) Next(r *rng.Source) gen.Step[token.Token] {
	pick := r.Float64() * g.total
	var cum float64
	for _, e := range g.entries {
		cum += e.Weight
		if pick < cum {
			return gen.Complete(token.NewBool(e.Value))
		}
	}
	return gen.Complete(token.NewBool(g.entries[len(g.entries)-1].Value))
}
