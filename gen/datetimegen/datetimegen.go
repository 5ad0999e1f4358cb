// Package datetimegen implements the Date-time primitive generator (spec
// §4.3): a leaf that samples uniformly over a [begin, end] interval in one
// of four precisions and emits the result as a formatted string token.
//
// No third-party date/time library appears anywhere in the retrieved
// example pack (see DESIGN.md), so this package is grounded on the standard
// library's time package, the same choice the pack itself makes everywhere
// it touches wall-clock time.
package datetimegen

import (
	"time"

	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Precision selects which of the four naive/offset date-time shapes is
// sampled; it only affects which Go reference layout is natural as a
// default, not the sampling algorithm itself.
type Precision int

const (
	// NaiveDate samples a calendar date with no time-of-day component.
	NaiveDate Precision = iota
	// NaiveTime samples a time-of-day with no date component.
	NaiveTime
	// NaiveDateTime samples a date and time with no UTC offset.
	NaiveDateTime
	// OffsetDateTime samples a date and time carrying a UTC offset.
	OffsetDateTime
)

type dateTimeGen struct {
	begin, end time.Time
	format     string
}

// New constructs a Date-time generator uniform over [begin, end], rendered
// with the given Go reference-time layout string. Every emitted value lies
// within the interval and round-trips through format, per spec §8 property 6.
func New(begin, end time.Time, format string) gen.Generator[token.Token] {
	return &dateTimeGen{begin: begin, end: end, format: format}
}

// DefaultFormat returns the conventional default layout for prec, used when
// a schema does not specify one explicitly.
func DefaultFormat(prec Precision) string {
	switch prec {
	case NaiveDate:
		return "2006-01-02"
	case NaiveTime:
		return "15:04:05"
	case OffsetDateTime:
		return "2006-01-02T15:04:05Z07:00"
	default:
		return "2006-01-02 15:04:05"
	}
}

func (g *dateTimeGen) Next(r *rng.Source) gen.Step[token.Token] {
	span := g.end.Sub(g.begin)
	if span <= 0 {
		return gen.Complete(token.NewString(g.begin.Format(g.format)))
	}
	offset := time.Duration(r.Int64N(int64(span)))
	sampled := g.begin.Add(offset)
	return gen.Complete(token.NewString(sampled.Format(g.format)))
}
