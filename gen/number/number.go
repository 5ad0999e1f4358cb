// Package number implements the Number primitive generator (spec §4.3): a
// leaf that emits a single integer or float token per cycle, sampled either
// uniformly over a stepped range, as a constant, as a weighted categorical
// choice, or as an auto-incrementing id.
//
// Every variant here is a "single-shot" Generator[token.Token]: Next never
// yields and completes on its very first call of a cycle, since a Number
// leaf has no internal structure to stream — the completion value IS the
// emitted value, consistent with how once(G) turns a streaming generator
// into a value-returning one (gen.Once) but without the indirection, since
// Number never streams in the first place.
package number

import (
	"math"

	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// rangeKind selects the token kind a rangeGen emits: the sampled float64
// midpoint is always computed the same way, only its final encoding
// differs, matching the three number widths schema.Number declares.
type rangeKind int

const (
	rangeI64 rangeKind = iota
	rangeU64
	rangeF64
)

// Range samples a uniform value in [Low, High) and snaps it to the nearest
// multiple of Step above Low, using the rejection-free technique from spec
// §4.3: sample uniformly in [0, High-Low), then snap.
type rangeGen struct {
	low, high, step float64
	kind            rangeKind
}

// NewIntRange constructs a Range generator over signed integers: every
// emitted value v satisfies low <= v < high and (v - low) % step == 0.
func NewIntRange(low, high, step int64) gen.Generator[token.Token] {
	return &rangeGen{low: float64(low), high: float64(high), step: float64(step), kind: rangeI64}
}

// NewUintRange is NewIntRange for an unsigned-width Number node: the
// sampling is identical, only the emitted token kind differs, so a
// referrer's AsU64 extractor (and not just AsI64) can read it back.
func NewUintRange(low, high, step uint64) gen.Generator[token.Token] {
	return &rangeGen{low: float64(low), high: float64(high), step: float64(step), kind: rangeU64}
}

// NewFloatRange constructs a Range generator over float64s with the same
// conformance contract as NewIntRange.
func NewFloatRange(low, high, step float64) gen.Generator[token.Token] {
	return &rangeGen{low: low, high: high, step: step, kind: rangeF64}
}

func (g *rangeGen) Next(r *rng.Source) gen.Step[token.Token] {
	span := g.high - g.low
	raw := r.Float64() * span
	steps := math.Round(raw / g.step)
	v := g.low + steps*g.step
	if v >= g.high {
		v -= g.step
	}
	switch g.kind {
	case rangeI64:
		return gen.Complete(token.NewI64(int64(v)))
	case rangeU64:
		return gen.Complete(token.NewU64(uint64(v)))
	default:
		return gen.Complete(token.NewF64(v))
	}
}

// constantGen always emits the same token.
type constantGen struct{ tok token.Token }

// NewConstant emits tok every cycle.
func NewConstant(tok token.Token) gen.Generator[token.Token] {
	return &constantGen{tok: tok}
}

func (g *constantGen) Next(r *rng.Source) gen.Step[token.Token] {
	return gen.Complete(g.tok)
}

// Weighted is one entry of a categorical distribution.
type Weighted struct {
	Value  token.Token
	Weight float64
}

type categoricalGen struct {
	entries []Weighted
	total   float64
}

// NewCategorical emits one of entries per cycle, chosen with probability
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
			return gen.Complete(e.Value)
		}
	}
	return gen.Complete(g.entries[len(g.entries)-1].Value)
}

// idGen emits an auto-incrementing integer id, starting at startAt and
// incrementing by one every cycle — deliberately not reset between cycles,
// since an id sequence's whole purpose is to stay monotonic across the run.
type idGen struct {
	next int64
}

// NewID starts an auto-incrementing id sequence at startAt.
func NewID(startAt int64) gen.Generator[token.Token] {
	return &idGen{next: startAt}
}

func (g *idGen) Next(r *rng.Source) gen.Step[token.Token] {
	v := g.next
	g.next++
	return gen.Complete(token.NewI64(v))
}
