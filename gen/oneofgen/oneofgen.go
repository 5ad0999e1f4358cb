// Package oneofgen implements the OneOf primitive generator (spec §4.3):
// weighted or uniform choice over alternatives. It does its own weighted
// pick rather than calling gen.OneOf, keeping that uniform core combinator
// free of any schema-level concept such as weights (see DESIGN.md's Open
// Question decision on this split).
package oneofgen

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
)

// Alternative pairs a content generator with its selection weight. Content
// is built once, at compile time, and reused across every cycle it is
// chosen in: every alternative is built unconditionally up front (even
// ones that end up never picked for a given cycle), so that a
// tape.Recorder nested inside any alternative is wired in before the
// enclosing common-ancestor scope closes, rather than on some later,
// lazily-triggered first use.
type Alternative struct {
	Weight  float64
	Content gen.Generator[struct{}]
}

type oneOfGen struct {
	alts   []Alternative
	total  float64
	active gen.Generator[struct{}]
	chosen bool
}

// New constructs a weighted OneOf: on each outer cycle it picks exactly one
// alternative with probability proportional to its weight, runs it to
// completion, and returns its return value. A zero-weight total falls back
// to uniform selection over alts.
func New(alts []Alternative) gen.Generator[struct{}] {
	var total float64
	for _, a := range alts {
		total += a.Weight
	}
	return &oneOfGen{alts: alts, total: total}
}

func (o *oneOfGen) Next(r *rng.Source) gen.Step[struct{}] {
	if !o.chosen {
		o.active = o.pick(r)
		o.chosen = true
	}
	step := o.active.Next(r)
	if !step.Done {
		return step
	}
	o.chosen = false
	o.active = nil
	return gen.Complete(struct{}{})
}

func (o *oneOfGen) pick(r *rng.Source) gen.Generator[struct{}] {
	if o.total <= 0 {
		return o.alts[r.IntN(len(o.alts))].Content
	}
	target := r.Float64() * o.total
	var cum float64
	for _, a := range o.alts {
		cum += a.Weight
		if target < cum {
			return a.Content
		}
	}
	return o.alts[len(o.alts)-1].Content
}
