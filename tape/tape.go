// Package tape implements the tape substrate (spec §4.4): an append-only
// buffer of generator states plus a table of named slices, each tracked by
// a generation counter so a View can detect when its source has restarted
// since it last read.
//
// Grounded on original_source/core/src/compile/link.rs's Tape/Slice pair
// (push_back/reset/get_generation/new_range), adapted from Rust's
// Vec-backed buffer plus index-based slice table into the same shape in
// Go: a single owner (Recorder) with exclusive append access, and any
// number of read-only cursors (View) over named slices, consistent with
// the single-writer/multi-reader contract spec §5 calls for.
package tape

import "github.com/synthgraph/synthgraph/gen"

// State is one recorded generator step: either a yielded token or a
// completion value, type-erased to `any` so one Tape can record a subtree
// of heterogeneous generator kinds.
type State struct {
	Done  bool
	Yield any
	Ret   any
}

// FromStep converts a gen.Step[R] into a tape State, erasing R to any.
func FromStep[R any](s gen.Step[R]) State {
	if !s.Done {
		return State{Done: false, Yield: s.Yield}
	}
	return State{Done: true, Ret: s.Ret}
}

// Slice is a named, generation-tracked window into the tape's buffer,
// covering [start, owner's current buffer length) as of its last reset.
type Slice struct {
	generation int
	start      int
}

// Tape owns the append-only buffer and the slice table. It is not
// goroutine-safe by design: spec §5 requires only a single writer and N
// readers, and under synthgraph's single-threaded cooperative model that
// needs no locking at all. Nothing checks this contract at run time: a
// Tape has no goroutine or single-writer assertion.
type Tape struct {
	buffer []State
	slices []Slice
}

// New constructs an empty Tape.
func New() *Tape {
	return &Tape{}
}

// NewSlice allocates a new named slice starting at the tape's current
// write position and returns its handle (an index stable for the Tape's
// lifetime).
func (t *Tape) NewSlice() int {
	t.slices = append(t.slices, Slice{start: len(t.buffer)})
	return len(t.slices) - 1
}

// Append records state at the end of the buffer. Only the Recorder
// wrapping this tape's source generator should call this.
func (t *Tape) Append(state State) {
	t.buffer = append(t.buffer, state)
}

// Get returns the state at idx.
func (t *Tape) Get(idx int) State {
	return t.buffer[idx]
}

// Len reports the buffer's current length.
func (t *Tape) Len() int {
	return len(t.buffer)
}

// Reset bumps slice's generation and rebases its start to the tape's
// current write position, called by the Recorder at the beginning of every
// new cycle, once per declared referrer.
func (t *Tape) Reset(slice int) {
	t.slices[slice].generation++
	t.slices[slice].start = len(t.buffer)
}

// Generation reports slice's current generation counter.
func (t *Tape) Generation(slice int) int {
	return t.slices[slice].generation
}

// Range reports slice's current [start, end) window into the buffer, as of
// the most recent Reset.
func (t *Tape) Range(slice int) (start, end int) {
	return t.slices[slice].start, len(t.buffer)
}

// GC drops every buffered state before offset and rebases every slice's
// start index accordingly, per spec §5's optional tape garbage collection.
// The caller is responsible for ensuring no live View's current range
// begins before offset; GC does not itself check this, since the tape has
// no reference back to its views.
func (t *Tape) GC(offset int) {
	if offset <= 0 || offset > len(t.buffer) {
		return
	}
	t.buffer = append([]State(nil), t.buffer[offset:]...)
	for i := range t.slices {
		t.slices[i].start -= offset
		if t.slices[i].start < 0 {
			t.slices[i].start = 0
		}
	}
}
