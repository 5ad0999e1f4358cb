// Package toposort provides a generic topological sort, used by
// namespace.Compile to order collections so that every cross-referenced
// collection is built and driven before the collections that depend on it (spec
// §4.6 step 6: "order: a topological ordering of references such that if
// one's closure... contains another's root, it comes first").
//
// Adapted from the teacher's own internal/toposort package: the DFS
// stack-with-two-visits algorithm is unchanged, but the teacher's version
// delegates its small slice helpers (last element, last-index-by-predicate)
// to its own internal/ext/slicesx package; that package is a large,
// general-purpose extension library whose other helpers have no home in
// this spec, so rather than drag the whole of internal/ext in unmodified
// for those one-line helpers, this version inlines them directly (see
// DESIGN.md for the corresponding dropped-dependency note).
package toposort

import (
	"fmt"
	"iter"
)

// Sort sorts a DAG topologically. Roots are the nodes whose dependencies we
// are querying. key returns a comparable key for each node. dag returns the
// children (dependencies) of a node. The result yields dependencies before
// dependents.
func Sort[Node any, Key comparable](
	roots []Node,
	key func(Node) Key,
	dag func(Node) iter.Seq[Node],
) iter.Seq[Node] {
	s := Sorter[Node, Key]{Key: key}
	return s.Sort(roots, dag)
}

// Sorter is reusable scratch space for a particular stencil of Sort.
type Sorter[Node any, Key comparable] struct {
	Key func(Node) Key

	state     map[Key]bool
	stack     []Node
	iterating bool
}

// Sort is like Sort, but reuses allocated resources stored in s.
func (s *Sorter[Node, Key]) Sort(
	roots []Node,
	dag func(Node) iter.Seq[Node],
) iter.Seq[Node] {
	if s.state == nil {
		s.state = make(map[Key]bool)
	} else {
		clear(s.state)
	}
	s.stack = s.stack[:0]

	return func(yield func(Node) bool) {
		if s.iterating {
			panic("internal/toposort: Sort() called reentrantly")
		}
		s.iterating = true
		defer func() { s.iterating = false }()

		for _, root := range roots {
			s.push(root)
			for len(s.stack) > 0 {
				node := s.stack[len(s.stack)-1]
				k := s.Key(node)
				yielded, visited := s.state[k]

				if !visited {
					s.state[k] = false
					for child := range dag(node) {
						s.push(child)
					}
					continue
				}

				s.stack = s.stack[:len(s.stack)-1]
				if !yielded {
					if !yield(node) {
						return
					}
					s.state[k] = true
				}
			}
		}
	}
}

func (s *Sorter[Node, Key]) push(v Node) {
	k := s.Key(v)
	switch yielded, visited := s.state[k]; {
	case !visited:
		s.stack = append(s.stack, v)
	case !yielded && visited:
		panic(fmt.Sprintf("internal/toposort: cycle detected at %v", k))
	case yielded:
		return
	}
}
