// Package crawl implements the compiler's stage-1 crawler (spec §4.5 C7): a
// recursive schema walk that discovers every SameAs reference, relativizes
// it against its common ancestor with the target, and populates the symbol
// table, rejecting self-references and longer mutual-reference cycles (spec
// §8 scenario 3: "a SameAs b, b SameAs a") as a Cycle at declaration time.
//
// Grounded on walk/walk.go's recursive descriptor walk for the overall
// depth-first traversal shape, adapted here to walk a schema.Node tree
// instead of a linked protobuf descriptor tree, carrying the current
// scope.Scope as the walk's positional accumulator instead of a
// SourcePos.
package crawl

import (
	"fmt"

	"github.com/synthgraph/synthgraph/compile/symtab"
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/schema"
	"github.com/synthgraph/synthgraph/scope"
)

// Result is the crawler's output: a populated symbol table plus, as a
// practical simplification this implementation makes explicit (see
// DESIGN.md), a coarser map from each top-level collection name to the
// set of other top-level collection names it references. Cross-collection
// SameAs references are driven by namespace.Compile at collection
// granularity; within a single collection, references rely on ordinary
// declaration order (see DESIGN.md's Open Question decision on builder
// scope).
//
// Flattened is the absolute-scope set named in spec §3.6: every scope the
// crawl ever declared a reference against (either as a referrer's common
// root or as a target's own collection root), recorded once in absolute
// form. The builder uses it to decide which scopes open a graph.Scoped
// region that drives the recorders declared beneath them.
type Result struct {
	Symbols        *symtab.Table
	CollectionDeps map[string]map[string]bool
	Flattened      map[string]scope.Scope

	// edges records, for every declared SameAs site, the absolute referrer
	// scope's chosen target scope, so declare can detect a mutual
	// reference cycle (A SameAs B, B SameAs A) at declaration time, not
	// only the immediate self-reference spec §4.5 step 2 names. Keyed by
	// scope.Format of the absolute referrer.
	edges map[string]scope.Scope
}

// Crawl walks every collection in ns, populating a fresh symbol table.
func Crawl(ns schema.Namespace) (*Result, error) {
	res := &Result{
		Symbols:        symtab.New(),
		CollectionDeps: map[string]map[string]bool{},
		Flattened:      map[string]scope.Scope{},
		edges:          map[string]scope.Scope{},
	}
	for name, arr := range ns {
		root := scope.Root().Field(name)
		if err := walk(res, name, root, arr); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func walk(res *Result, collection string, at scope.Scope, n schema.Node) error {
	switch v := n.(type) {
	case *schema.SameAs:
		return declare(res, collection, at, v.Ref)
	case *schema.Array:
		return walk(res, collection, at, v.Content)
	case *schema.Object:
		for _, f := range v.Fields {
			if err := walk(res, collection, at.Field(f.Name), f.Content); err != nil {
				return err
			}
		}
		return nil
	case *schema.OneOf:
		for _, alt := range v.Alternatives {
			if err := walk(res, collection, at, alt.Content); err != nil {
				return err
			}
		}
		return nil
	case *schema.Unique:
		return walk(res, collection, at, v.Content)
	case *schema.Hidden:
		return walk(res, collection, at, v.Content)
	default:
		// Null, Bool, Number, String, Series: leaves with no nested schema.
		return nil
	}
}

func declare(res *Result, collection string, referrer, target scope.Scope) error {
	common := referrer.CommonRoot(target)
	relReferrer, ok := referrer.RelativeTo(common)
	if !ok {
		return fmt.Errorf("crawl: %s not relative to its own common root", scope.Format(referrer))
	}
	if relReferrer.IsRoot() {
		return &errs.Cycle{From: referrer, To: target}
	}
	if cycleTo, ok := reaches(res.edges, target, referrer); ok {
		return &errs.Cycle{From: referrer, To: cycleTo}
	}
	res.edges[scope.Format(referrer)] = target
	relTarget, ok := target.RelativeTo(common)
	if !ok {
		return fmt.Errorf("crawl: %s not relative to common root with %s", scope.Format(target), scope.Format(referrer))
	}
	res.Symbols.Declare(common, relTarget, relReferrer)
	res.Flattened[scope.Format(common)] = common
	// Also declare at the target's own root (its top-level collection),
	// so the target collection is always known to be referenced even if
	// the common root sits deeper in the tree (spec §4.5 step 3). When the
	// common root already is that collection root, the declaration above
	// covers it.
	targetCollection := target.Segments()[0].Name
	targetRoot := scope.Root().Field(targetCollection)
	if relT, ok := target.RelativeTo(targetRoot); ok && !targetRoot.Equal(common) {
		res.Symbols.Declare(targetRoot, relT, relT)
		res.Flattened[scope.Format(targetRoot)] = targetRoot
	}

	if targetCollection != collection {
		deps, ok := res.CollectionDeps[collection]
		if !ok {
			deps = map[string]bool{}
			res.CollectionDeps[collection] = deps
		}
		deps[targetCollection] = true
	}
	return nil
}

// reaches reports whether, following already-declared referrer->target
// edges starting from start, the walk ever arrives at goal — i.e. whether
// declaring a new start->goal edge would close a cycle. It returns the
// scope that edge chain would cycle back through (the first repeated
// scope encountered), for the returned error's To field.
func reaches(edges map[string]scope.Scope, start, goal scope.Scope) (scope.Scope, bool) {
	cur := start
	for i := 0; i < len(edges)+1; i++ {
		if cur.Equal(goal) {
			return cur, true
		}
		next, ok := edges[scope.Format(cur)]
		if !ok {
			return scope.Scope{}, false
		}
		cur = next
	}
	return scope.Scope{}, false
}
