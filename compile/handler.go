// Package compile ties together the two-stage schema compiler: the crawler
// (package compile/crawl), the symbol table (package compile/symtab), and
// the builder (package compile/build). Handler is this package's error
// channel, adapted from the teacher's reporter.Handler: it lets a caller
// either abort compilation on the first structural error or collect many
// and keep going, exactly as protocompile.Compiler.Reporter does for
// protobuf source errors.
package compile

import (
	"sync"

	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/scope"
)

// ErrorReporter is invoked for every structural error the compiler
// encounters. If it returns a non-nil error, compilation aborts immediately
// with that error. If it returns nil, the Handler records the error but lets
// compilation continue, so the caller can report as many problems as
// possible in one pass.
type ErrorReporter func(err errs.ErrorWithPos) error

// Handler collects compile-time errors (spec §7.1) for one compilation run.
// It is safe for concurrent use, matching the teacher's reporter.Handler,
// even though the crawler and builder themselves run single-threaded; this
// only matters to callers that drive several independent namespace
// compilations concurrently and want to share one aggregate error sink.
type Handler struct {
	report ErrorReporter

	mu     sync.Mutex
	errors []errs.ErrorWithPos
	err    error
}

// NewHandler creates a Handler. A nil report makes every error abort
// immediately, which is the default used by namespace.Compile when the
// caller supplies none.
func NewHandler(report ErrorReporter) *Handler {
	return &Handler{report: report}
}

// HandleError reports err. If the handler has already aborted, the same
// abort error is returned without invoking report again. Otherwise report is
// invoked (if set); a non-nil return value both aborts this and all future
// calls and is returned here.
func (h *Handler) HandleError(pos scope.Scope, err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	ewp := errs.At(pos, err)
	h.errors = append(h.errors, ewp)
	if h.report != nil {
		if abortErr := h.report(ewp); abortErr != nil {
			h.err = abortErr
			return abortErr
		}
		return nil
	}
	h.err = ewp
	return ewp
}

// Errors returns every error reported so far, in report order.
func (h *Handler) Errors() []errs.ErrorWithPos {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]errs.ErrorWithPos(nil), h.errors...)
}

// Aborted reports whether a call to HandleError has returned a non-nil
// abort error.
func (h *Handler) Aborted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err != nil
}
