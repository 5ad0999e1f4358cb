// Package symtab implements the compiler's symbol table (spec §4.1 C6): a
// two-level map from a common-ancestor scope to, within it, a relative
// target address to a reference factory recording which relative referrer
// paths declared a SameAs reference to that target.
//
// Grounded on linker/symbols.go's Symbols type (the teacher's own
// two-level package→symbol→descriptor table) for the general shape of a
// nested ordered map keyed by path-like strings, and on
// internal/interval/map.go for the idiom of wrapping github.com/tidwall/btree's
// generic Map with a small typed facade rather than using it raw.
package symtab

import (
	"github.com/tidwall/btree"

	"github.com/synthgraph/synthgraph/scope"
)

// ReferenceFactory accumulates every relative referrer path that declared a
// SameAs reference to one target, plus (once resolved) the source slice
// supplying that target's recorded values.
type ReferenceFactory struct {
	DeclaredSources []scope.Scope
	SourceSlice     int
	SourceSet       bool
}

// Table is the two-level symbol table: outer key is a common-ancestor
// scope (formatted to a string, since scope.Scope is not itself an
// ordered primitive type that tidwall/btree.Map can key on), inner key is
// the relative target address within that common ancestor.
type Table struct {
	outer btree.Map[string, *inner]
}

type inner struct {
	m btree.Map[string, *ReferenceFactory]
}

// New constructs an empty symbol table.
func New() *Table {
	return &Table{}
}

// Declare records that referrer (relative to commonRoot) refers to target
// (also relative to commonRoot), per the crawler's stage-1 walk (spec
// §4.5 step 3). It is safe to call multiple times for the same
// (commonRoot, target) pair; each call appends referrer to that target's
// declared sources.
func (t *Table) Declare(commonRoot, target, referrer scope.Scope) *ReferenceFactory {
	key := scope.Format(commonRoot)
	in, ok := t.outer.Get(key)
	if !ok {
		in = &inner{}
		t.outer.Set(key, in)
	}
	tkey := scope.Format(target)
	rf, ok := in.m.Get(tkey)
	if !ok {
		rf = &ReferenceFactory{}
		in.m.Set(tkey, rf)
	}
	rf.DeclaredSources = append(rf.DeclaredSources, referrer)
	return rf
}

// Lookup returns the reference factory for target within commonRoot, if
// one has been declared.
func (t *Table) Lookup(commonRoot, target scope.Scope) (*ReferenceFactory, bool) {
	in, ok := t.outer.Get(scope.Format(commonRoot))
	if !ok {
		return nil, false
	}
	return in.m.Get(scope.Format(target))
}

// Targets returns every target scope (relative to commonRoot) declared
// within commonRoot, in sorted order.
func (t *Table) Targets(commonRoot scope.Scope) []string {
	in, ok := t.outer.Get(scope.Format(commonRoot))
	if !ok {
		return nil
	}
	var out []string
	in.m.Scan(func(key string, _ *ReferenceFactory) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Roots returns every common-ancestor scope (formatted) that has at least
// one declaration, in sorted order.
func (t *Table) Roots() []string {
	var out []string
	t.outer.Scan(func(key string, _ *inner) bool {
		out = append(out, key)
		return true
	})
	return out
}
