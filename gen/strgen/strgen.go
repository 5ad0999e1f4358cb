// Package strgen implements the String primitive generator (spec §4.3):
// regex-generated, constant, categorical, faker, and the truncation/format
// wrapper variants. The UUID and date-time formatted variants live in
// uuidgen and gen/datetimegen.
package strgen

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/synthgraph/synthgraph/faker"
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/regexsample"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

type patternGen struct {
	pattern string
	sampler regexsample.Sampler
}

// NewPattern emits a string matching pattern, sampled via sampler (use
// regexsample.Default{} when no external regex-fuzzing collaborator is
// configured).
func NewPattern(pattern string, sampler regexsample.Sampler) gen.Generator[token.Token] {
	return &patternGen{pattern: pattern, sampler: sampler}
}

func (g *patternGen) Next(r *rng.Source) gen.Step[token.Token] {
	s, err := g.sampler.Sample(r, g.pattern)
	if err != nil {
		return gen.Complete(token.NewError("strgen: " + err.Error()))
	}
	return gen.Complete(token.NewString(s))
}

type constantGen struct{ v string }

// NewConstant emits v every cycle.
func NewConstant(v string) gen.Generator[token.Token] { return &constantGen{v: v} }

func (g *constantGen) Next(r *rng.Source) gen.Step[token.Token] {
	return gen.Complete(token.NewString(g.v))
}

// Weighted is one entry of a categorical string distribution.
type Weighted struct {
	Value  string
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
			return gen.Complete(token.NewString(e.Value))
		}
	}
	return gen.Complete(token.NewString(g.entries[len(g.entries)-1].Value))
}

type fakerGen struct {
	provider faker.Provider
	name     string
	args     map[string]string
}

// NewFaker delegates to provider for the named generator, surfacing any
// error through the runtime-recoverable Error token channel (spec §7)
// rather than failing the whole cycle.
func NewFaker(provider faker.Provider, name string, args map[string]string) gen.Generator[token.Token] {
	return &fakerGen{provider: provider, name: name, args: args}
}

func (g *fakerGen) Next(r *rng.Source) gen.Step[token.Token] {
	v, err := g.provider.Sample(r, g.name, g.args)
	if err != nil {
		return gen.Complete(token.NewError("faker: " + err.Error()))
	}
	return gen.Complete(token.NewString(v))
}

type truncatedGen struct {
	inner     gen.Generator[token.Token]
	maxLength int
}

// NewTruncated wraps content so its emitted string is clipped to at most
// maxLength grapheme clusters, counted with uniseg so multi-byte/combining
// characters are never split mid-cluster.
func NewTruncated(content gen.Generator[token.Token], maxLength int) gen.Generator[token.Token] {
	return &truncatedGen{inner: content, maxLength: maxLength}
}

func (g *truncatedGen) Next(r *rng.Source) gen.Step[token.Token] {
	step := g.inner.Next(r)
	if !step.Done {
		return step
	}
	s, err := step.Ret.AsString()
	if err != nil {
		return gen.Complete(token.NewError("strgen: truncated content was not a string"))
	}
	return gen.Complete(token.NewString(truncateGraphemes(s, g.maxLength)))
}

func truncateGraphemes(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	gr := uniseg.NewGraphemes(s)
	var sb strings.Builder
	count := 0
	for gr.Next() {
		if count >= maxLength {
			break
		}
		sb.WriteString(gr.Str())
		count++
	}
	return sb.String()
}

type formatGen struct {
	template string
	args     []gen.Generator[token.Token]
}

// NewFormat renders template with fmt.Sprintf-style verbs, substituting one
// value per argument generator, each sampled to completion in order. String
// and number tokens are substituted as their plain Go values; any other
// token is substituted as its diagnostic String() rendering.
func NewFormat(template string, args []gen.Generator[token.Token]) gen.Generator[token.Token] {
	return &formatGen{template: template, args: args}
}

func (g *formatGen) Next(r *rng.Source) gen.Step[token.Token] {
	vals := make([]any, 0, len(g.args))
	for _, a := range g.args {
		for {
			step := a.Next(r)
			if step.Done {
				var v any = step.Ret.String()
				if s, err := step.Ret.AsString(); err == nil {
					v = s
				} else if i, err := step.Ret.AsI64(); err == nil {
					v = i
				} else if u, err := step.Ret.AsU64(); err == nil {
					v = u
				} else if f, err := step.Ret.AsF64(); err == nil {
					v = f
				}
				vals = append(vals, v)
				break
			}
		}
	}
	return gen.Complete(token.NewString(fmt.Sprintf(g.template, vals...)))
}
