package gen

import (
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// --- once ---

// onceGen turns a streaming generator into one whose return value is its
// own last yielded token, per spec §4.2 once: "emits every value G yields;
// when G completes, emits the last yielded value one more time as the
// return, then resets."
type onceGen[R any] struct {
	inner Generator[R]
	last  token.Token
	seen  bool
}

// Once wraps g so that, instead of completing with g's own return value, it
// completes with the last token g yielded during this cycle.
func Once[R any](g Generator[R]) Generator[token.Token] {
	return &onceGen[R]{inner: g}
}

func (o *onceGen[R]) Next(r *rng.Source) Step[token.Token] {
	step := o.inner.Next(r)
	if !step.Done {
		o.last = step.Yield
		o.seen = true
		return Yielded[token.Token](step.Yield)
	}
	last := o.last
	o.seen = false
	return Complete(last)
}

// --- map ---

type mapGen[R, R2 any] struct {
	inner Generator[R]
	f     func(R) R2
}

// Map transforms g's return value through f; yields pass through unchanged.
func Map[R, R2 any](g Generator[R], f func(R) R2) Generator[R2] {
	return &mapGen[R, R2]{inner: g, f: f}
}

func (m *mapGen[R, R2]) Next(r *rng.Source) Step[R2] {
	step := m.inner.Next(r)
	if !step.Done {
		return Yielded[R2](step.Yield)
	}
	return Complete(m.f(step.Ret))
}

// --- and_then ---

type andThenGen[R, R2 any] struct {
	f     func(R) Generator[R2]
	inner Generator[R]
	next  Generator[R2] // non-nil once phase one has completed
}

// AndThen runs g to completion, calls f on its return to produce a second
// generator, then runs that to completion; AndThen's own return is the
// second generator's.
func AndThen[R, R2 any](g Generator[R], f func(R) Generator[R2]) Generator[R2] {
	return &andThenGen[R, R2]{inner: g, f: f}
}

func (a *andThenGen[R, R2]) Next(r *rng.Source) Step[R2] {
	if a.next == nil {
		step := a.inner.Next(r)
		if !step.Done {
			return Yielded[R2](step.Yield)
		}
		a.next = a.f(step.Ret)
	}
	step := a.next.Next(r)
	if !step.Done {
		return Yielded[R2](step.Yield)
	}
	a.next = nil
	return Complete(step.Ret)
}

// --- concat ---

// Pair holds the two return values produced by Concat.
type Pair[A, B any] struct {
	First  A
	Second B
}

type concatImpl[R1, R2 any] struct {
	left   Generator[R1]
	right  Generator[R2]
	leftR  R1
	onLeft bool
	phase  int // 0 = running left, 1 = running right, 2 = done (unreachable externally)
}

// Concat runs l to completion, then r; its return is the pair of both
// returns.
func Concat[R1, R2 any](l Generator[R1], r Generator[R2]) Generator[Pair[R1, R2]] {
	return &concatImpl[R1, R2]{left: l, right: r}
}

func (c *concatImpl[R1, R2]) Next(rnd *rng.Source) Step[Pair[R1, R2]] {
	if c.phase == 0 {
		step := c.left.Next(rnd)
		if !step.Done {
			return Yielded[Pair[R1, R2]](step.Yield)
		}
		c.leftR = step.Ret
		c.phase = 1
	}
	step := c.right.Next(rnd)
	if !step.Done {
		return Yielded[Pair[R1, R2]](step.Yield)
	}
	c.phase = 0
	return Complete(Pair[R1, R2]{First: c.leftR, Second: step.Ret})
}

// --- brace (and prefix/suffix) ---

type braceGen[RB, RG, RE any] struct {
	before  Generator[RB]
	body    Generator[RG]
	after   Generator[RE]
	phase   int // 0 = before, 1 = body, 2 = after
	pending *RG // body's return, stashed while draining `after`
}

// Brace runs before to completion (discarding its return), then body
// (keeping its return), then after (discarding its return); Brace's own
// return is body's. All three generators' yields pass through in sequence,
// which is how Object (C3) emits BeginStruct, then each field, then
// EndStruct as one composed generator.
func Brace[RB, RG, RE any](before Generator[RB], body Generator[RG], after Generator[RE]) Generator[RG] {
	return &braceGen[RB, RG, RE]{before: before, body: body, after: after}
}

func (b *braceGen[RB, RG, RE]) Next(r *rng.Source) Step[RG] {
	if b.phase == 0 {
		step := b.before.Next(r)
		if !step.Done {
			return Yielded[RG](step.Yield)
		}
		b.phase = 1
	}
	if b.phase == 1 {
		step := b.body.Next(r)
		if !step.Done {
			return Yielded[RG](step.Yield)
		}
		ret := step.Ret
		b.pending = &ret
		b.phase = 2
	}
	step := b.after.Next(r)
	if !step.Done {
		return Yielded[RG](step.Yield)
	}
	ret := *b.pending
	b.pending = nil
	b.phase = 0
	return Complete(ret)
}

// Prefix is Brace with no after generator (using a generator that completes
// immediately with struct{}{}).
func Prefix[RB, RG any](before Generator[RB], body Generator[RG]) Generator[RG] {
	return Brace[RB, RG, struct{}](before, body, Func[struct{}](func(*rng.Source) Step[struct{}] {
		return Complete(struct{}{})
	}))
}

// Suffix is Brace with no before generator.
func Suffix[RG, RE any](body Generator[RG], after Generator[RE]) Generator[RG] {
	return Brace[struct{}, RG, RE](Func[struct{}](func(*rng.Source) Step[struct{}] {
		return Complete(struct{}{})
	}), body, after)
}

// --- take ---

type takeGen[R any] struct {
	inner Generator[R]
	n     int
	count int
}

// Take runs g to completion n times, discarding each return, then completes
// with unit.
func Take[R any](g Generator[R], n int) Generator[struct{}] {
	return &takeGen[R]{inner: g, n: n}
}

func (t *takeGen[R]) Next(r *rng.Source) Step[struct{}] {
	for t.count < t.n {
		step := t.inner.Next(r)
		if !step.Done {
			return Yielded[struct{}](step.Yield)
		}
		t.count++
	}
	t.count = 0
	return Complete(struct{}{})
}

// --- aggregate ---

type aggregateGen[R any] struct {
	inner Generator[R]
}

// Aggregate runs g to completion exactly once, collecting every token it
// yielded into a slice, and completes with that slice — it never yields a
// token of its own, since the whole point is to turn a streaming leaf into
// one value-returning subexpression (e.g. collecting Array content length
// out-of-band).
func Aggregate[R any](g Generator[R]) Generator[[]token.Token] {
	return &aggregateGen[R]{inner: g}
}

func (a *aggregateGen[R]) Next(r *rng.Source) Step[[]token.Token] {
	var collected []token.Token
	for {
		step := a.inner.Next(r)
		if step.Done {
			return Complete(collected)
		}
		collected = append(collected, step.Yield)
	}
}

// --- one_of ---

type oneOfGen[R any] struct {
	children []Generator[R]
	active   int
	picked   bool
}

// OneOf uniformly picks one child generator per outer cycle, runs it to
// completion, and returns its return value. This is the combinator-level
// uniform choice; gen/oneofgen implements the weighted schema-level OneOf
// primitive separately, with its own selection logic.
func OneOf[R any](children []Generator[R]) Generator[R] {
	return &oneOfGen[R]{children: children}
}

func (o *oneOfGen[R]) Next(r *rng.Source) Step[R] {
	if !o.picked {
		o.active = r.IntN(len(o.children))
		o.picked = true
	}
	step := o.children[o.active].Next(r)
	if !step.Done {
		return Yielded[R](step.Yield)
	}
	o.picked = false
	return Complete(step.Ret)
}

// --- replay ---

type replayGen[R any] struct {
	inner    Generator[R]
	n        int
	replays  int
	buffer   []token.Token
	bufRet   R
	replayAt int // -1 while live, >= 0 while replaying from buffer
}

// Replay buffers one full live cycle of g, then replays the buffered yields
// and return n additional times before letting g run live again, at which
// point the buffer is purged and a new live cycle is captured.
func Replay[R any](g Generator[R], n int) Generator[R] {
	return &replayGen[R]{inner: g, n: n, replayAt: -1}
}

func (rp *replayGen[R]) Next(r *rng.Source) Step[R] {
	if rp.replayAt == -1 {
		// Live cycle: run g, recording every yield.
		step := rp.inner.Next(r)
		if !step.Done {
			rp.buffer = append(rp.buffer, step.Yield)
			return Yielded[R](step.Yield)
		}
		rp.bufRet = step.Ret
		if rp.n > 0 {
			rp.replayAt = 0
		} else {
			rp.buffer = nil
		}
		return Complete(rp.bufRet)
	}

	// Replaying from the buffer.
	if rp.replayAt < len(rp.buffer) {
		tok := rp.buffer[rp.replayAt]
		rp.replayAt++
		return Yielded[R](tok)
	}
	rp.replays++
	rp.replayAt = 0
	if rp.replays >= rp.n {
		rp.replays = 0
		rp.replayAt = -1
		rp.buffer = nil
	}
	return Complete(rp.bufRet)
}

// --- inspect ---

type inspectGen[R any] struct {
	inner Generator[R]
	f     func(Step[R])
}

// Inspect passes every state g produces through f for side effects (e.g.
// tracing), then forwards it unchanged.
func Inspect[R any](g Generator[R], f func(Step[R])) Generator[R] {
	return &inspectGen[R]{inner: g, f: f}
}

func (in *inspectGen[R]) Next(r *rng.Source) Step[R] {
	step := in.inner.Next(r)
	in.f(step)
	return step
}

// --- peekable ---

// Peekable wraps g with one state of lookahead: Peek returns the next step
// without consuming it, and Next returns it (computing it via g if Peek
// hasn't already been called).
type Peekable[R any] struct {
	inner  Generator[R]
	peeked *Step[R]
}

// NewPeekable wraps g in a Peekable.
func NewPeekable[R any](g Generator[R]) *Peekable[R] {
	return &Peekable[R]{inner: g}
}

// Peek returns the next step without consuming it.
func (p *Peekable[R]) Peek(r *rng.Source) Step[R] {
	if p.peeked == nil {
		step := p.inner.Next(r)
		p.peeked = &step
	}
	return *p.peeked
}

// Next implements Generator, consuming any peeked step first.
func (p *Peekable[R]) Next(r *rng.Source) Step[R] {
	if p.peeked != nil {
		step := *p.peeked
		p.peeked = nil
		return step
	}
	return p.inner.Next(r)
}
