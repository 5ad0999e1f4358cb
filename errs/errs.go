// Package errs defines the typed errors surfaced to callers of synthgraph,
// in addition to the inline Error token described by the data model (spec
// §6.4, §7). Of these, the crawler and builder return Cycle, and the
// Unique and Iter leaves carry Exhausted's message inside an Error token;
// no compiler entry point in this module returns NotFound, BadRequest or
// TypeMismatch (an unknown reference path, for instance, fails with a
// plain error from compile/build). ErrorWithPos is the
// compile-time error shape, adapted from the teacher's
// reporter.ErrorWithPos / errorWithSourcePos, except that positions are
// schema scope.Scope values instead of source-file positions.
package errs

import (
	"fmt"

	"github.com/synthgraph/synthgraph/scope"
)

// NotFound describes a reference that names a path with no corresponding
// schema node.
type NotFound struct {
	Path scope.Scope
}

func (e *NotFound) Error() string { return fmt.Sprintf("not found: %s", e.Path) }

// BadRequest describes malformed schema input that isn't specifically
// one of the other typed errors (e.g. an invalid number range, a regex that
// fails to compile, date-time bounds with begin > end).
type BadRequest struct {
	Reason string
}

func (e *BadRequest) Error() string { return fmt.Sprintf("bad request: %s", e.Reason) }

// Cycle is returned when a declared reference would require a node to
// depend on itself: either the referrer's scope is an ancestor of the
// target (or vice versa) with no intermediate hop, or a chain of SameAs
// references leads back to the referrer, so there is no valid compile order.
type Cycle struct {
	From scope.Scope
	To   scope.Scope
}

func (e *Cycle) Error() string {
	return fmt.Sprintf("cycle: %s refers to %s", e.From, e.To)
}

// Exhausted is returned (or, more commonly, surfaced as an inline Error
// token — see token.NewError) when a generator with a bounded retry budget,
// such as Unique or a non-cyclic Iter, cannot produce another value.
type Exhausted struct {
	Kind string
}

func (e *Exhausted) Error() string { return fmt.Sprintf("exhausted: %s", e.Kind) }

// TypeMismatch is the caller-facing counterpart to token.TypeMismatchError,
// describing a type disagreement found by schema validation or graph
// construction rather than by token extraction (e.g. a Categorical weight
// keyed by a token of the wrong kind for its Number node's width).
type TypeMismatch struct {
	Expected string
	Actual   string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ErrorWithPos is an error about a schema that includes the scope at which
// it occurred. Error() renders both; Unwrap() returns only the underlying
// error, so errors.Is/As against the underlying error (e.g. *Cycle) still
// works through an ErrorWithPos wrapper.
type ErrorWithPos interface {
	error
	Position() scope.Scope
	Unwrap() error
}

type errorWithPos struct {
	pos scope.Scope
	err error
}

// At wraps err with the scope at which it was discovered.
func At(pos scope.Scope, err error) ErrorWithPos {
	return errorWithPos{pos: pos, err: err}
}

// Atf is shorthand for At(pos, fmt.Errorf(format, args...)).
func Atf(pos scope.Scope, format string, args ...any) ErrorWithPos {
	return errorWithPos{pos: pos, err: fmt.Errorf(format, args...)}
}

func (e errorWithPos) Error() string { return fmt.Sprintf("%s: %v", e.pos, e.err) }
func (e errorWithPos) Position() scope.Scope { return e.pos }
func (e errorWithPos) Unwrap() error { return e.err }

var _ ErrorWithPos = errorWithPos{}
