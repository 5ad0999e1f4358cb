// Package arraygen implements the Array primitive generator (spec §4.3): a
// length-producing sub-generator paired with an element sub-generator,
// emitting BeginSeq(len), the elements, then EndSeq.
package arraygen

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// element is every array slot's content subgraph, built once at compile
// time and redriven once per slot, and once more per slot on every later
// outer cycle of the array — the same single instance each time, since
// every Node already resets its own internal state on completion. Building
// it once (rather than behind a per-slot factory) ensures any
// tape.Recorder it installs is wired in before the enclosing
// common-ancestor scope closes, instead of on some later, lazily-triggered
// first use.
type arrayGen struct {
	length       gen.Generator[token.Token]
	element      gen.Generator[struct{}]
	onCycleStart func()

	phase   int // 0 = emit BeginSeq, 1 = stream elements, 2 = emit EndSeq, 3 = complete
	n       int
	emitted int
}

// New constructs an Array generator: length is run to completion once per
// cycle to obtain the element count (it must yield an integer-kind token),
// then element is redriven once per slot to stream that slot's subgraph.
func New(length gen.Generator[token.Token], element gen.Generator[struct{}]) gen.Generator[struct{}] {
	return &arrayGen{length: length, element: element}
}

// NewWithCycleHook is like New, but invokes onCycleStart exactly once per
// outer cycle, before the first element runs. The builder uses this to
// reset a Unique generator shared across an array's elements (spec §4.3's
// Unique "uniqueness scope" is the enclosing array's single cycle, so the
// seen-set must clear when a new cycle of the array begins, not carry over
// from the previous one).
func NewWithCycleHook(length gen.Generator[token.Token], element gen.Generator[struct{}], onCycleStart func()) gen.Generator[struct{}] {
	return &arrayGen{length: length, element: element, onCycleStart: onCycleStart}
}

func (a *arrayGen) Next(r *rng.Source) gen.Step[struct{}] {
	if a.phase == 0 {
		if a.onCycleStart != nil {
			a.onCycleStart()
		}
		lenStep := a.length.Next(r)
		for !lenStep.Done {
			// Length generators are conventionally single-shot leaves, but
			// tolerate a streaming length generator by draining it.
			lenStep = a.length.Next(r)
		}
		n, err := lenStep.Ret.AsI64()
		if err != nil {
			n, err = asUnsigned(lenStep.Ret)
			if err != nil {
				n = 0
			}
		}
		a.n = int(n)
		a.emitted = 0
		a.phase = 1
		length := a.n
		return gen.Yielded[struct{}](token.NewBeginSeq(&length))
	}

	if a.phase == 1 {
		for a.emitted < a.n {
			step := a.element.Next(r)
			if !step.Done {
				return gen.Yielded[struct{}](step.Yield)
			}
			a.emitted++
		}
		a.phase = 2
	}

	if a.phase == 2 {
		a.phase = 3
		return gen.Yielded[struct{}](token.NewEndSeq())
	}

	a.phase = 0
	return gen.Complete(struct{}{})
}

func asUnsigned(t token.Token) (int64, error) {
	u, err := t.AsU64()
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}
