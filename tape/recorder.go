package tape

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
)

// Recorder runs an inner generator, appends every state it produces to a
// Tape, and re-emits each state downstream unchanged. It holds one slice
// handle per declared referrer (spec §4.4): at the start of every cycle
// after the first (i.e. lazily, on the first Next call following the inner
// generator's previous completion) it bumps each of those slices'
// generation and rebases their start to the tape's new write position, so a
// sibling View reading the just-finished cycle still sees it right up until
// this recorder is driven again — resetting at completion instead would
// empty the slice's range before a same-cycle View ever gets to read it.
type Recorder[R any] struct {
	inner        gen.Generator[R]
	t            *Tape
	slices       []int
	pendingReset bool
}

// NewRecorder wraps inner, appending its states to t and bumping the named
// slices (one per declared referrer of this node) at the start of each new
// cycle.
func NewRecorder[R any](inner gen.Generator[R], t *Tape, slices []int) *Recorder[R] {
	return &Recorder[R]{inner: inner, t: t, slices: slices}
}

// Next implements gen.Generator[R], recording every state to the tape as a
// side effect.
func (rec *Recorder[R]) Next(r *rng.Source) gen.Step[R] {
	if rec.pendingReset {
		for _, s := range rec.slices {
			rec.t.Reset(s)
		}
		rec.pendingReset = false
	}
	step := rec.inner.Next(r)
	rec.t.Append(FromStep(step))
	if step.Done {
		rec.pendingReset = true
	}
	return step
}

// View is a read-only cursor over one of a Tape's named slices. On every
// Next call: if the stored generation is stale relative to the tape, it
// reloads (generation, range) from the slice; an empty range (the recorder
// produced nothing yet this cycle) completes with (false, zero value)
// immediately. Otherwise it advances through the range, returning buffered
// states verbatim, completion states included, and reports (false, zero
// value) once it reaches the end of its range. Turning those states into a
// Node's steps is left to graph.View.
type View struct {
	t          *Tape
	slice      int
	generation int
	pos        int
	loaded     bool
}

// NewView constructs a read-only cursor over t's named slice.
func NewView(t *Tape, slice int) *View {
	return &View{t: t, slice: slice, generation: -1}
}

// ViewStep mirrors gen.Step but for the type-erased tape.State the View
// replays, plus Ok reporting whether this call produced anything at all
// (false on a stale or empty range, per spec §4.4's "stale-path return").
type ViewStep struct {
	Ok    bool
	State State
}

// Next advances the view by one buffered state.
func (v *View) Next() ViewStep {
	curGen := v.t.Generation(v.slice)
	if !v.loaded || v.generation != curGen {
		v.generation = curGen
		start, end := v.t.Range(v.slice)
		v.pos = start
		v.loaded = true
		if start == end {
			return ViewStep{Ok: false}
		}
	}
	start, end := v.t.Range(v.slice)
	if v.pos >= end {
		return ViewStep{Ok: false}
	}
	if v.pos < start {
		v.pos = start
	}
	st := v.t.Get(v.pos)
	v.pos++
	return ViewStep{Ok: true, State: st}
}
