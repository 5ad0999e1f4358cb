// Package namespace is the top-level compilation entry point (spec §4.6,
// ambient addition per SPEC_FULL.md §2): it mirrors protocompile.Compiler's
// shape (a map of named inputs compiled once into a reusable artifact) for
// a schema.Namespace instead of a set of .proto files — crawling every
// collection, ordering them by cross-collection dependency, and building
// each one in turn so a dependent collection's builder can project from an
// already fully-recorded dependency.
package namespace

import (
	"context"
	"fmt"
	"iter"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/synthgraph/synthgraph/compile"
	"github.com/synthgraph/synthgraph/compile/build"
	"github.com/synthgraph/synthgraph/compile/crawl"
	"github.com/synthgraph/synthgraph/faker"
	"github.com/synthgraph/synthgraph/graph"
	"github.com/synthgraph/synthgraph/internal/toposort"
	"github.com/synthgraph/synthgraph/regexsample"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/schema"
	"github.com/synthgraph/synthgraph/scope"
	"github.com/synthgraph/synthgraph/synthgraphlog"
	"github.com/synthgraph/synthgraph/tape"
	"github.com/synthgraph/synthgraph/token"
)

// Options configures a Compile call. The zero Options compiles with the
// package's default faker/regex collaborators, no tape GC, and aborts on
// the first structural error.
type Options struct {
	// GCThreshold bounds how many trailing states each collection's tape
	// keeps once Compiled.GC is called; 0 disables GC (the default).
	// Corresponds to the spec's "schema.Namespace.GCThreshold" knob, moved
	// here since schema.Namespace is a plain map type and cannot itself
	// carry configuration fields.
	GCThreshold int

	Faker        faker.Provider
	RegexSampler regexsample.Sampler

	// Report, if set, is invoked for every structural error; see
	// compile.ErrorReporter. A nil Report aborts compilation on the first
	// error, matching compile.NewHandler's default.
	Report compile.ErrorReporter
}

// Compiled is a namespace that has been crawled and built: one driveable
// graph.Node per collection, in dependency order, plus each collection's
// recording tape (needed by any other collection's cross-collection
// Projection and by Compiled.GC).
type Compiled struct {
	order       []string
	nodes       map[string]graph.Node
	tapes       map[string]*tape.Tape
	gcThreshold int
}

// Compile crawls and builds every collection in ns, in dependency order
// (a collection that cross-references another is built after it). It
// collects as many structural errors as opts.Report allows before
// returning; if the handler never aborts but at least one error was
// reported, Compile still returns a non-nil error summarizing them.
func Compile(ns schema.Namespace, opts Options) (*Compiled, error) {
	ctx := context.Background()
	synthgraphlog.Info(ctx, "namespace: compile started", "collections", len(ns))
	if opts.Faker == nil {
		opts.Faker = faker.Default{}
	}
	if opts.RegexSampler == nil {
		opts.RegexSampler = regexsample.Default{}
	}
	handler := compile.NewHandler(opts.Report)

	result, err := crawl.Crawl(ns)
	if err != nil {
		synthgraphlog.Warn(ctx, "namespace: crawl rejected schema", "error", err)
		if herr := handler.HandleError(scope.Root(), err); herr != nil {
			return nil, herr
		}
		return nil, summarize(handler)
	}

	ord := collectionOrder(ns, result.CollectionDeps)
	synthgraphlog.Debug(ctx, "namespace: resolved build order", "order", ord)
	buildOpts := build.Options{Faker: opts.Faker, RegexSampler: opts.RegexSampler}

	sources := map[string]build.Source{}
	nodes := map[string]graph.Node{}
	tapes := map[string]*tape.Tape{}
	for _, name := range ord {
		node, tp, slice, err := build.Build(result, name, ns[name], sources, buildOpts)
		if err != nil {
			synthgraphlog.Warn(ctx, "namespace: collection failed to build", "collection", name, "error", err)
			if herr := handler.HandleError(scope.Root().Field(name), err); herr != nil {
				return nil, herr
			}
			continue
		}
		nodes[name] = node
		tapes[name] = tp
		sources[name] = build.Source{Tape: tp, Slice: slice}
	}

	if handler.Aborted() || len(handler.Errors()) > 0 {
		synthgraphlog.Error(ctx, "namespace: compile failed", "errors", len(handler.Errors()))
		return nil, summarize(handler)
	}
	synthgraphlog.Info(ctx, "namespace: compile finished", "collections", len(nodes))
	return &Compiled{order: ord, nodes: nodes, tapes: tapes, gcThreshold: opts.GCThreshold}, nil
}

func summarize(h *compile.Handler) error {
	errsList := h.Errors()
	if len(errsList) == 0 {
		return fmt.Errorf("namespace: compilation failed")
	}
	return fmt.Errorf("namespace: %d error(s), first: %w", len(errsList), errsList[0])
}

// Collections returns every collection name, in the dependency order
// Compile built them.
func (c *Compiled) Collections() []string {
	return append([]string(nil), c.order...)
}

// Node returns the driveable graph for name, if it was built successfully.
func (c *Compiled) Node(name string) (graph.Node, bool) {
	n, ok := c.nodes[name]
	return n, ok
}

// Generate drives every collection's graph to completion once, in
// dependency order, using r for every draw, and returns each collection's
// full token stream.
func (c *Compiled) Generate(r *rng.Source) map[string][]token.Token {
	out := make(map[string][]token.Token, len(c.order))
	for _, name := range c.order {
		node := c.nodes[name]
		var toks []token.Token
		for {
			step := node.Next(r)
			if step.Done {
				break
			}
			toks = append(toks, step.Yield)
		}
		out[name] = toks
	}
	return out
}

// GC trims every collection's tape down to its last gcThreshold recorded
// states, an explicit caller-invoked operation per spec §5 (never run
// automatically, since a collection's full-cycle recording may still be
// needed by another collection's cross-collection Projection). A zero
// GCThreshold (the default) makes this a no-op.
func (c *Compiled) GC() {
	if c.gcThreshold <= 0 {
		return
	}
	ctx := context.Background()
	for name, tp := range c.tapes {
		if offset := tp.Len() - c.gcThreshold; offset > 0 {
			tp.GC(offset)
			synthgraphlog.Debug(ctx, "namespace: trimmed tape", "collection", name, "offset", offset)
		}
	}
}

// collectionOrder topologically sorts ns's collection names so that every
// collection appears after every other collection it cross-references
// (deps), using the teacher-grounded internal/toposort. Ties (collections
// with no relative ordering constraint) break by name for determinism.
func collectionOrder(ns schema.Namespace, deps map[string]map[string]bool) []string {
	names := make([]string, 0, len(ns))
	for name := range ns {
		names = append(names, name)
	}
	sort.Strings(names)

	dag := func(name string) iter.Seq[string] {
		return func(yield func(string) bool) {
			children := make([]string, 0, len(deps[name]))
			for child := range deps[name] {
				children = append(children, child)
			}
			sort.Strings(children)
			for _, child := range children {
				if !yield(child) {
					return
				}
			}
		}
	}

	var out []string
	for name := range toposort.Sort(names, func(s string) string { return s }, dag) {
		out = append(out, name)
	}
	return out
}

// RunMany drives every job's graph to completion concurrently, one
// goroutine per job, merging results into a slice aligned with jobs (spec
// §5's "N independent graphs... merge outputs downstream", grounded on the
// teacher's golang.org/x/sync-based compiler.go executor). It returns the
// first job error encountered, if any, cancelling the rest via ctx.
func RunMany(ctx context.Context, jobs []Job) ([][]token.Token, error) {
	synthgraphlog.Debug(ctx, "namespace: RunMany started", "jobs", len(jobs))
	results := make([][]token.Token, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			var toks []token.Token
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				step := job.Node.Next(job.Rng)
				if step.Done {
					break
				}
				toks = append(toks, step.Yield)
			}
			results[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		synthgraphlog.Error(ctx, "namespace: RunMany failed", "error", err)
		return nil, err
	}
	synthgraphlog.Debug(ctx, "namespace: RunMany finished", "jobs", len(jobs))
	return results, nil
}

// Job pairs one independent graph with the rng.Source that drives it, the
// unit of work RunMany fans out.
type Job struct {
	Node graph.Node
	Rng  *rng.Source
}
