// Package regexsample implements the regex-driven random walk used by the
// String primitive generator's Pattern variant (spec §4.3: "a precompiled
// regex is sampled via a non-backtracking random walk"). Regex-based
// sampling is explicitly called out as delegating to an external
// collaborator (spec §1 Non-goals), so this package defines a small
// interface and a default walker; callers may substitute their own sampler
// to reuse a third-party regex-fuzzing library without changing strgen.
//
// No regex-sampling library appears anywhere in the retrieved example pack
// (see DESIGN.md), so the default walker is grounded on the standard
// library's regexp/syntax parse tree, which is exactly what a
// non-backtracking structural walk needs: a parsed AST of literals,
// concatenations, alternations, repeats and character classes, rather than
// a compiled automaton.
package regexsample

import (
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/synthgraph/synthgraph/rng"
)

// Sampler draws one random string matching pattern.
type Sampler interface {
	Sample(r *rng.Source, pattern string) (string, error)
}

// Default is the package's non-backtracking random-walk sampler: it parses
// the pattern once with regexp/syntax and walks the resulting AST, making
// one random choice at each alternation/repeat node.
type Default struct{}

// Sample compiles pattern and walks it once.
func (Default) Sample(r *rng.Source, pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", fmt.Errorf("regexsample: %w", err)
	}
	var sb strings.Builder
	walk(r, re.Simplify(), &sb)
	return sb.String(), nil
}

const maxStarRepeat = 8

func walk(r *rng.Source, re *syntax.Regexp, sb *strings.Builder) {
	switch re.Op {
	case syntax.OpLiteral:
		for _, ru := range re.Rune {
			sb.WriteRune(ru)
		}
	case syntax.OpCharClass:
		sb.WriteRune(pickRune(r, re.Rune))
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		sb.WriteRune(rune('a' + r.IntN(26)))
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			walk(r, sub, sb)
		}
	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return
		}
		walk(r, re.Sub[r.IntN(len(re.Sub))], sb)
	case syntax.OpCapture:
		if len(re.Sub) == 1 {
			walk(r, re.Sub[0], sb)
		}
	case syntax.OpStar:
		n := r.IntN(maxStarRepeat + 1)
		repeatSub(r, re, sb, n)
	case syntax.OpPlus:
		n := 1 + r.IntN(maxStarRepeat)
		repeatSub(r, re, sb, n)
	case syntax.OpQuest:
		if r.IntN(2) == 0 {
			repeatSub(r, re, sb, 1)
		}
	case syntax.OpRepeat:
		max := re.Max
		if max < 0 {
			max = re.Min + maxStarRepeat
		}
		n := re.Min
		if span := max - re.Min; span > 0 {
			n += r.IntN(span + 1)
		}
		repeatSub(r, re, sb, n)
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary, syntax.OpEmptyMatch:
		// Zero-width assertions contribute nothing to the sampled text.
	default:
		for _, sub := range re.Sub {
			walk(r, sub, sb)
		}
	}
}

func repeatSub(r *rng.Source, re *syntax.Regexp, sb *strings.Builder, n int) {
	if len(re.Sub) != 1 {
		return
	}
	for i := 0; i < n; i++ {
		walk(r, re.Sub[0], sb)
	}
}

// pickRune chooses uniformly among the [lo,hi] rune ranges packed in pairs
// into ranges, per regexp/syntax's CharClass rune-pair encoding.
func pickRune(r *rng.Source, ranges []rune) rune {
	var total int64
	for i := 0; i < len(ranges); i += 2 {
		total += int64(ranges[i+1]-ranges[i]) + 1
	}
	if total <= 0 {
		return '?'
	}
	pick := r.Int64N(total)
	for i := 0; i < len(ranges); i += 2 {
		span := int64(ranges[i+1]-ranges[i]) + 1
		if pick < span {
			return ranges[i] + rune(pick)
		}
		pick -= span
	}
	return ranges[0]
}
