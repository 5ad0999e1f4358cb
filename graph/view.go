package graph

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/tape"
	"github.com/synthgraph/synthgraph/token"
)

// View lifts a tape.View into a Node, implementing the reference-reading
// half of spec §4.4: it replays a slice's current generation verbatim, in
// order. This is the node the builder installs at a SameAs site whose
// target shares a deeper common ancestor with the referrer (spec §4.6's
// "aligned" case — e.g. scenario 1's per-element identity reference, or
// scenario 6's nested-array reference): the two sides advance through the
// same outer cycle in lockstep, so sequential replay is exactly "the
// multiset of values emitted at the target, in the order the target
// produced them."
//
// Per spec §4.4 and the Open Question resolution recorded in DESIGN.md: a
// stale or empty range completes immediately with no yield (the "Unwrapped"
// view shape instead yields one Null token first — see unwrapped below).
type View struct {
	v         *tape.View
	unwrapped bool
	toldNull  bool
	replayed  bool
}

// NewView constructs a View node over v, replaying values verbatim.
func NewView(v *tape.View) *View {
	return &View{v: v}
}

// NewUnwrappedView is like NewView, but when the source produced nothing
// this cycle it yields a single Null token before completing, rather than
// completing with nothing at all — used when a referrer field expects to
// emit exactly one value (spec §4.4: "used when a referrer expects a value
// but the source produced none").
func NewUnwrappedView(v *tape.View) *View {
	return &View{v: v, unwrapped: true}
}

// Next implements Node.
func (w *View) Next(r *rng.Source) gen.Step[struct{}] {
	vs := w.v.Next()
	if !vs.Ok {
		if w.unwrapped && !w.toldNull && !w.replayed {
			w.toldNull = true
			return gen.Yielded[struct{}](token.NewNull())
		}
		w.toldNull = false
		w.replayed = false
		return gen.Complete(struct{}{})
	}
	if !vs.State.Done {
		w.replayed = true
		return gen.Yielded[struct{}](vs.State.Yield.(token.Token))
	}
	if tok, ok := vs.State.Ret.(token.Token); ok {
		w.replayed = true
		return gen.Yielded[struct{}](tok)
	}
	// The replayed cycle's return carried no token payload (e.g. it was a
	// struct{}-returning subgraph whose value already streamed as yields);
	// nothing further to emit for this replayed state.
	return w.Next(r)
}

// Projection extracts, from one fully-recorded top-level collection cycle,
// every occurrence of a sub-path's leaf value, by structurally walking the
// buffered token stream and tracking BeginField names and nesting depth.
// It backs cross-collection references (spec §4.6's "the source's own
// root" declaration from crawl.declare): since the referenced collection is
// compiled and driven to completion exactly once per dataset run (see
// DESIGN.md's Open Question resolution on recorder placement), a
// projection over its single recorded cycle is how a sibling collection's
// field samples "one of the values already produced," per spec §8 property
// 3 (subset of the multiset) and scenario 2 (uniform distribution).
type Projection struct {
	t        *tape.Tape
	slice    int
	path     []string // BeginField name segments from the collection root to the target leaf.
	gen      int
	values   []token.Token
	computed bool
	yielded  bool
}

// NewProjection constructs a Projection over t's slice, extracting the
// leaf reachable by following path (a sequence of field names) from each
// top-level array element recorded in the slice's current generation.
func NewProjection(t *tape.Tape, slice int, path []string) *Projection {
	return &Projection{t: t, slice: slice, path: path, gen: -1}
}

func (p *Projection) ensure() {
	curGen := p.t.Generation(p.slice)
	if p.computed && p.gen == curGen {
		return
	}
	p.gen = curGen
	p.computed = true
	start, end := p.t.Range(p.slice)
	p.values = extractPath(p.t, start, end, p.path)
}

// Next implements Node: each cycle it (re-)samples one value uniformly at
// random (with replacement) from every occurrence the target produced in
// its own last completed cycle.
func (p *Projection) Next(r *rng.Source) gen.Step[struct{}] {
	if p.yielded {
		p.yielded = false
		return gen.Complete(struct{}{})
	}
	p.ensure()
	if len(p.values) == 0 {
		return gen.Complete(struct{}{})
	}
	v := p.values[r.IntN(len(p.values))]
	p.yielded = true
	return gen.Yielded[struct{}](v)
}

// extractPath walks the buffered tokens in [start,end), collecting the
// value that immediately follows a BeginField chain matching path every
// time it recurs (once per array element, typically). An empty path
// collects every top-level leaf return value instead (the target recorded
// scope was itself the leaf).
func extractPath(t *tape.Tape, start, end int, path []string) []token.Token {
	var out []token.Token
	matched := 0 // how many path segments are currently open
	for i := start; i < end; i++ {
		st := t.Get(i)
		if !st.Done {
			tok := st.Yield.(token.Token)
			if tok.Kind() == token.BeginField {
				name, _ := tok.AsBeginField()
				if matched < len(path) && name == path[matched] {
					matched++
					continue
				}
				continue
			}
			if len(path) == 0 && isScalar(tok) {
				out = append(out, tok)
			}
			if matched == len(path) && len(path) > 0 && isScalar(tok) {
				out = append(out, tok)
				matched = 0
			}
			continue
		}
		if len(path) == 0 {
			if tok, ok := st.Ret.(token.Token); ok {
				out = append(out, tok)
			}
		}
	}
	return out
}

func isScalar(t token.Token) bool {
	switch t.Kind() {
	case token.BeginMap, token.EndMap, token.BeginStruct, token.EndStruct,
		token.BeginField, token.BeginTuple, token.EndTuple, token.BeginSeq,
		token.EndSeq, token.BeginSome, token.NoneKind, token.UnitStruct,
		token.UnitVariant:
		return false
	default:
		return true
	}
}
