// Package seriesgen implements the Series primitive generator (spec §4.3):
// time-stamp-emitting generators — incrementing (constant delta), Poisson
// (exponential inter-arrivals), cyclical (periodic rate modulation), and
// zip (merge of several series by picking the earliest next value).
//
// Unlike the other scalar leaves, a Series generator is deliberately
// stateful across cycles: its whole purpose is a monotonically advancing
// timestamp stream, so it does not reset on Complete the way the
// restartability property (spec §8 property 2) requires of ordinary
// leaves — this is intentional domain behavior, not an oversight, and is
// recorded as such in DESIGN.md.
package seriesgen

import (
	"math"
	"time"

	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Incrementing emits timestamps a fixed delta apart, starting at start.
type incrementingGen struct {
	next   time.Time
	delta  time.Duration
	format string
}

// NewIncrementing constructs a Series generator that emits start, then
// start+delta, start+2*delta, and so on.
func NewIncrementing(start time.Time, delta time.Duration, format string) gen.Generator[token.Token] {
	return &incrementingGen{next: start, delta: delta, format: format}
}

func (g *incrementingGen) Next(r *rng.Source) gen.Step[token.Token] {
	v := g.next
	g.next = g.next.Add(g.delta)
	return gen.Complete(token.NewString(v.Format(g.format)))
}

// Poisson emits timestamps with exponentially distributed inter-arrival
// times, so the process is memoryless with a constant average rate.
type poissonGen struct {
	next   time.Time
	rate   float64 // events per second
	format string
}

// NewPoisson constructs a Poisson-arrival Series starting at start with the
// given average rate (events per second).
func NewPoisson(start time.Time, rate float64, format string) gen.Generator[token.Token] {
	return &poissonGen{next: start, rate: rate, format: format}
}

func (g *poissonGen) Next(r *rng.Source) gen.Step[token.Token] {
	v := g.next
	interArrival := -math.Log(1-r.Float64()) / g.rate
	g.next = g.next.Add(time.Duration(interArrival * float64(time.Second)))
	return gen.Complete(token.NewString(v.Format(g.format)))
}

// Cyclical emits timestamps whose instantaneous rate is modulated
// sinusoidally around a base rate, over a period, so the stream speeds up
// and slows down rather than arriving at a constant pace.
type cyclicalGen struct {
	next       time.Time
	elapsed    time.Duration
	baseRate   float64
	amplitude  float64
	period     time.Duration
	format     string
}

// NewCyclical constructs a Series whose rate at time t is
// baseRate + amplitude*sin(2*pi*t/period).
func NewCyclical(start time.Time, baseRate, amplitude float64, period time.Duration, format string) gen.Generator[token.Token] {
	return &cyclicalGen{next: start, baseRate: baseRate, amplitude: amplitude, period: period, format: format}
}

func (g *cyclicalGen) Next(r *rng.Source) gen.Step[token.Token] {
	v := g.next
	phase := 2 * math.Pi * float64(g.elapsed) / float64(g.period)
	rate := g.baseRate + g.amplitude*math.Sin(phase)
	if rate <= 0 {
		rate = g.baseRate
	}
	interArrival := -math.Log(1-r.Float64()) / rate
	step := time.Duration(interArrival * float64(time.Second))
	g.next = g.next.Add(step)
	g.elapsed += step
	return gen.Complete(token.NewString(v.Format(g.format)))
}

// Zip merges several child series by always picking whichever has the
// earliest next value among the current candidates, then advancing only
// that child.
type zipGen struct {
	children []gen.Generator[token.Token]
	pending  []*token.Token
	format   string
}

// NewZip merges children, a set of already-constructed Series generators
// (of any variant), by earliest-next-value order.
func NewZip(children []gen.Generator[token.Token]) gen.Generator[token.Token] {
	return &zipGen{children: children, pending: make([]*token.Token, len(children))}
}

func (g *zipGen) Next(r *rng.Source) gen.Step[token.Token] {
	for i, p := range g.pending {
		if p == nil {
			step := g.children[i].Next(r)
			for !step.Done {
				step = g.children[i].Next(r)
			}
			tok := step.Ret
			g.pending[i] = &tok
		}
	}
	earliest := 0
	for i := 1; i < len(g.pending); i++ {
		if less(*g.pending[i], *g.pending[earliest]) {
			earliest = i
		}
	}
	v := *g.pending[earliest]
	g.pending[earliest] = nil
	return gen.Complete(v)
}

func less(a, b token.Token) bool {
	as, _ := a.AsString()
	bs, _ := b.AsString()
	return as < bs
}
