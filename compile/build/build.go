// Package build implements the compiler's stage-2 builder (spec §4.6 C8): a
// recursive schema-to-graph lowering that, guided by the symbol table the
// crawler populated, installs a tape.Recorder at every declared reference
// target, a graph.View or graph.Projection at every SameAs site, and wraps
// each common-ancestor subtree in a graph.Scoped so recorders run before
// the body that depends on them.
//
// Grounded on linker/linker.go's overall shape (a second pass over an
// already-crawled tree that resolves symbols discovered in the first pass
// into concrete linked values) and, for the per-node switch, on
// internal/editions/editions.go's exhaustive type switch over a closed AST
// node set.
package build

import (
	"fmt"
	"time"

	"github.com/synthgraph/synthgraph/compile/crawl"
	"github.com/synthgraph/synthgraph/compile/symtab"
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/faker"
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/gen/arraygen"
	"github.com/synthgraph/synthgraph/gen/boolgen"
	"github.com/synthgraph/synthgraph/gen/datetimegen"
	"github.com/synthgraph/synthgraph/gen/nullgen"
	"github.com/synthgraph/synthgraph/gen/number"
	"github.com/synthgraph/synthgraph/gen/objectgen"
	"github.com/synthgraph/synthgraph/gen/oneofgen"
	"github.com/synthgraph/synthgraph/gen/seriesgen"
	"github.com/synthgraph/synthgraph/gen/strgen"
	"github.com/synthgraph/synthgraph/gen/uniquegen"
	"github.com/synthgraph/synthgraph/graph"
	"github.com/synthgraph/synthgraph/regexsample"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/schema"
	"github.com/synthgraph/synthgraph/scope"
	"github.com/synthgraph/synthgraph/tape"
	"github.com/synthgraph/synthgraph/token"
	"github.com/synthgraph/synthgraph/uuidgen"
)

const defaultUniqueRetries = 10

// Source describes one already-compiled, already-recorded collection:
// Tape holds its full single-cycle recording (the whole array, BeginSeq
// through EndSeq) at Slice, available for a dependent collection's
// cross-collection SameAs references to project from (spec §4.6 step 6's
// "the source's own root").
type Source struct {
	Tape  *tape.Tape
	Slice int
}

// Options configures the external collaborators a Build invocation uses
// for the Faker and Pattern string variants. The zero Options uses the
// package defaults (faker.Default{}, regexsample.Default{}).
type Options struct {
	Faker        faker.Provider
	RegexSampler regexsample.Sampler
}

// Build lowers one collection's schema into a driveable graph.Node, given
// the crawler's Result and every dependency collection this one's
// cross-collection references resolve against (already built and fully
// recorded). It returns the node plus the tape and slice that record this
// collection's own full cycle, so a later collection can, in turn, depend
// on this one.
func Build(result *crawl.Result, collection string, arr *schema.Array, sources map[string]Source, opts Options) (graph.Node, *tape.Tape, int, error) {
	if opts.Faker == nil {
		opts.Faker = faker.Default{}
	}
	if opts.RegexSampler == nil {
		opts.RegexSampler = regexsample.Default{}
	}
	b := &builder{
		result:  result,
		sources: sources,
		tp:      tape.New(),
		drivers: map[string][]graph.Driver{},
		opts:    opts,
	}
	root := scope.Root().Field(collection)
	node, err := b.build(root, arr)
	if err != nil {
		return nil, nil, 0, err
	}
	slice := b.tp.NewSlice()
	rec := tape.NewRecorder[struct{}](node, b.tp, []int{slice})
	return rec, b.tp, slice, nil
}

type builder struct {
	result    *crawl.Result
	sources   map[string]Source
	tp        *tape.Tape
	openRoots []scope.Scope
	drivers   map[string][]graph.Driver
	opts      Options
}

// build lowers n, located at abs, to a Node. It is the single recursion
// point every schema kind's lowering goes through, so the common-ancestor
// Scoped/Recorder wiring (spec §4.6 steps 4-6) applies uniformly regardless
// of which kind of node happens to sit at a declared scope.
func (b *builder) build(abs scope.Scope, n schema.Node) (graph.Node, error) {
	hidden := false
	for {
		h, ok := n.(*schema.Hidden)
		if !ok {
			break
		}
		hidden = true
		n = h.Content
	}

	key := scope.Format(abs)
	isCommonRoot := false
	if cr, ok := b.result.Flattened[key]; ok && !cr.IsRoot() && cr.Equal(abs) {
		isCommonRoot = true
		b.openRoots = append(b.openRoots, abs)
	}

	var recordRF *symtab.ReferenceFactory
	var recordKey string
	for i := len(b.openRoots) - 1; i >= 0; i-- {
		cr := b.openRoots[i]
		rel, ok := abs.RelativeTo(cr)
		if !ok || (isCommonRoot && cr.Equal(abs)) {
			continue
		}
		if rf, ok := b.result.Symbols.Lookup(cr, rel); ok {
			recordRF = rf
			recordKey = scope.Format(cr)
			break
		}
	}

	node, err := b.buildKind(abs, n)
	if err != nil {
		return nil, err
	}

	if recordRF != nil {
		slice := b.tp.NewSlice()
		rec := tape.NewRecorder[struct{}](node, b.tp, []int{slice})
		recordRF.SourceSlice = slice
		recordRF.SourceSet = true
		b.drivers[recordKey] = append(b.drivers[recordKey], graph.NewDriver(rec))
		node = rec
	}

	if hidden {
		node = graph.Suppress(node)
	}

	if isCommonRoot {
		drivers := b.drivers[key]
		delete(b.drivers, key)
		b.openRoots = b.openRoots[:len(b.openRoots)-1]
		if len(drivers) > 0 {
			node = graph.NewScoped(drivers, node)
		}
	}

	return node, nil
}

func (b *builder) buildKind(abs scope.Scope, n schema.Node) (graph.Node, error) {
	switch v := n.(type) {
	case *schema.Null:
		return graph.Leaf(nullgen.New()), nil
	case *schema.Bool:
		return graph.Leaf(buildBool(v)), nil
	case *schema.Number:
		return graph.Leaf(buildNumber(v)), nil
	case *schema.String:
		g, err := b.buildStringGen(abs, v)
		if err != nil {
			return nil, err
		}
		return graph.Leaf(g), nil
	case *schema.Series:
		g, err := buildSeries(v)
		if err != nil {
			return nil, err
		}
		return graph.Leaf(g), nil
	case *schema.Array:
		return b.buildArray(abs, v)
	case *schema.Object:
		return b.buildObject(abs, v)
	case *schema.OneOf:
		return b.buildOneOf(abs, v)
	case *schema.SameAs:
		return b.buildSameAs(abs, v)
	case *schema.Unique:
		return b.buildUnique(abs, v)
	default:
		return nil, fmt.Errorf("compile/build: %s: unhandled schema node %T", scope.Format(abs), n)
	}
}

func (b *builder) buildArray(abs scope.Scope, v *schema.Array) (graph.Node, error) {
	length := buildNumber(v.Length)
	// Array content shares its parent's scope rather than appending
	// scope.Content(): every element occupies the same static schema
	// position (scope addresses schema positions, not runtime instances),
	// matching how compile/crawl's walk descends into Array.Content with
	// the same `at` it was given.
	contentScope := abs

	if u, ok := v.Content.(*schema.Unique); ok {
		maxRetries := u.MaxRetries
		if maxRetries <= 0 {
			maxRetries = defaultUniqueRetries
		}
		shared := uniquegen.New(func() gen.Generator[token.Token] {
			cg, err := b.leafTokenGen(contentScope, u.Content)
			if err != nil {
				panic(err)
			}
			return cg
		}, maxRetries)
		element := graph.Leaf(shared)
		return arraygen.NewWithCycleHook(length, element, shared.Reset), nil
	}

	// Built eagerly, in this same recursive pass, rather than behind a
	// per-slot factory invoked later from arrayGen.Next: a factory invoked
	// during sampling runs after this build() call (and any enclosing
	// common-ancestor scope) has already returned, so a reference target
	// nested in the content would never get its recorder installed.
	element, err := b.build(contentScope, v.Content)
	if err != nil {
		return nil, err
	}
	return arraygen.New(length, element), nil
}

func (b *builder) buildObject(abs scope.Scope, v *schema.Object) (graph.Node, error) {
	fields := make([]objectgen.Field, len(v.Fields))
	for i, f := range v.Fields {
		fieldScope := abs.Field(f.Name)
		// Built eagerly for the same reason as buildArray's element: a
		// per-cycle factory invoked from objectgen.Next would install any
		// nested reference target's recorder too late for an enclosing
		// Scoped to ever see it.
		node, err := b.build(fieldScope, f.Content)
		if err != nil {
			return nil, err
		}
		fields[i] = objectgen.Field{Name: f.Name, Optional: f.Optional, Content: node}
	}
	name := scope.Format(abs)
	if name == "" {
		name = "root"
	}
	return objectgen.New(name, fields), nil
}

func (b *builder) buildOneOf(abs scope.Scope, v *schema.OneOf) (graph.Node, error) {
	alts := make([]oneofgen.Alternative, len(v.Alternatives))
	for i, a := range v.Alternatives {
		// Built eagerly, every alternative unconditionally, for the same
		// reason as buildArray's element: oneOfGen.pick only drives the
		// alternative it chooses, but every alternative's reference
		// targets must still be recorded regardless of which one a given
		// cycle happens to pick.
		node, err := b.build(abs, a.Content)
		if err != nil {
			return nil, err
		}
		alts[i] = oneofgen.Alternative{Weight: a.Weight, Content: node}
	}
	return oneofgen.New(alts), nil
}

func (b *builder) buildUnique(abs scope.Scope, v *schema.Unique) (graph.Node, error) {
	maxRetries := v.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultUniqueRetries
	}
	g := uniquegen.New(func() gen.Generator[token.Token] {
		cg, err := b.leafTokenGen(abs, v.Content)
		if err != nil {
			panic(err)
		}
		return cg
	}, maxRetries)
	return graph.Leaf(g), nil
}

// buildSameAs lowers a reference site, dispatching on whether its common
// ancestor with the target is the schema root (a cross-collection
// reference, spec §4.6's "the source's own root" case, resolved as a
// uniform-sample Projection over an already-fully-recorded sibling
// collection) or a deeper scope within the same collection (a local
// reference, resolved as a verbatim View over a sibling Recorder installed
// earlier in this same build pass).
func (b *builder) buildSameAs(abs scope.Scope, v *schema.SameAs) (graph.Node, error) {
	target := v.Ref
	common := abs.CommonRoot(target)

	if common.IsRoot() {
		if len(target.Segments()) == 0 {
			return nil, fmt.Errorf("compile/build: %s: reference target %s has no collection", scope.Format(abs), scope.Format(target))
		}
		targetCollection := target.Segments()[0].Name
		src, ok := b.sources[targetCollection]
		if !ok {
			return nil, fmt.Errorf("compile/build: %s: collection %q must be built before its dependent", scope.Format(abs), targetCollection)
		}
		contentRoot := scope.Root().Field(targetCollection)
		rel, ok := target.RelativeTo(contentRoot)
		if !ok {
			return nil, fmt.Errorf("compile/build: %s: reference target %s is not inside collection %q's elements", scope.Format(abs), scope.Format(target), targetCollection)
		}
		path := fieldPath(rel)
		return unwrapEmpty(graph.NewProjection(src.Tape, src.Slice, path)), nil
	}

	relReferrer, ok := abs.RelativeTo(common)
	if !ok {
		return nil, fmt.Errorf("compile/build: %s: not relative to its own common root", scope.Format(abs))
	}
	if relReferrer.IsRoot() {
		return nil, &errs.Cycle{From: abs, To: target}
	}
	relTarget, ok := target.RelativeTo(common)
	if !ok {
		return nil, fmt.Errorf("compile/build: %s: target %s not relative to common root", scope.Format(abs), scope.Format(target))
	}
	rf, ok := b.result.Symbols.Lookup(common, relTarget)
	if !ok || !rf.SourceSet {
		return nil, fmt.Errorf("compile/build: %s: reference target %s was not recorded before its referrer (declare the target field earlier)", scope.Format(abs), scope.Format(target))
	}
	return graph.NewUnwrappedView(tape.NewView(b.tp, rf.SourceSlice)), nil
}

// leafTokenGen lowers n to a raw token generator rather than a Node, for
// the two contexts that need a value-returning generator directly: Unique
// content (which must compare emitted values for distinctness) and a
// Format string's positional arguments.
func (b *builder) leafTokenGen(abs scope.Scope, n schema.Node) (gen.Generator[token.Token], error) {
	switch v := n.(type) {
	case *schema.Null:
		return nullgen.New(), nil
	case *schema.Bool:
		return buildBool(v), nil
	case *schema.Number:
		return buildNumber(v), nil
	case *schema.String:
		return b.buildStringGen(abs, v)
	case *schema.Series:
		return buildSeries(v)
	default:
		return nil, fmt.Errorf("compile/build: %s: expected a scalar leaf, got %T", scope.Format(abs), n)
	}
}

func (b *builder) buildStringGen(abs scope.Scope, v *schema.String) (gen.Generator[token.Token], error) {
	switch v.Kind {
	case schema.StringPattern:
		return strgen.NewPattern(v.Pattern, b.opts.RegexSampler), nil
	case schema.StringConstant:
		return strgen.NewConstant(v.Constant), nil
	case schema.StringCategorical:
		entries := make([]strgen.Weighted, len(v.Categorical))
		for i, c := range v.Categorical {
			entries[i] = strgen.Weighted{Value: c.Value, Weight: c.Weight}
		}
		return strgen.NewCategorical(entries), nil
	case schema.StringFaker:
		return strgen.NewFaker(b.opts.Faker, v.FakerName, v.FakerArgs), nil
	case schema.StringUUID:
		return uuidgen.New(), nil
	case schema.StringDateTime:
		begin, err := time.Parse(time.RFC3339, v.DateTimeBegin)
		if err != nil {
			return nil, fmt.Errorf("compile/build: %s: invalid DateTimeBegin %q: %w", scope.Format(abs), v.DateTimeBegin, err)
		}
		end, err := time.Parse(time.RFC3339, v.DateTimeEnd)
		if err != nil {
			return nil, fmt.Errorf("compile/build: %s: invalid DateTimeEnd %q: %w", scope.Format(abs), v.DateTimeEnd, err)
		}
		format := v.DateTimeFormat
		if format == "" {
			format = datetimegen.DefaultFormat(datetimegen.Precision(v.DateTimePrecision))
		}
		return datetimegen.New(begin, end, format), nil
	case schema.StringTruncated:
		if v.TruncatedContent == nil {
			return nil, fmt.Errorf("compile/build: %s: Truncated requires Content", scope.Format(abs))
		}
		inner, err := b.buildStringGen(abs, v.TruncatedContent)
		if err != nil {
			return nil, err
		}
		return strgen.NewTruncated(inner, v.TruncatedLength), nil
	case schema.StringFormat:
		args := make([]gen.Generator[token.Token], len(v.FormatArgs))
		for i, a := range v.FormatArgs {
			ag, err := b.leafTokenGen(abs, a)
			if err != nil {
				return nil, err
			}
			args[i] = ag
		}
		return strgen.NewFormat(v.FormatTemplate, args), nil
	default:
		return nil, fmt.Errorf("compile/build: %s: unknown string kind %d", scope.Format(abs), v.Kind)
	}
}

func buildBool(v *schema.Bool) gen.Generator[token.Token] {
	switch v.Kind {
	case schema.BoolConstant:
		return boolgen.NewConstant(v.Constant)
	case schema.BoolCategorical:
		entries := make([]boolgen.Weighted, len(v.Categorical))
		for i, c := range v.Categorical {
			entries[i] = boolgen.Weighted{Value: c.Value, Weight: c.Weight}
		}
		return boolgen.NewCategorical(entries)
	default:
		return boolgen.NewFrequency(v.Frequency)
	}
}

func widthToken(w schema.NumberWidth, v float64) token.Token {
	switch w {
	case schema.WidthI64:
		return token.NewI64(int64(v))
	case schema.WidthU64:
		return token.NewU64(uint64(v))
	default:
		return token.NewF64(v)
	}
}

func buildNumber(v *schema.Number) gen.Generator[token.Token] {
	switch v.Kind {
	case schema.NumberConstant:
		return number.NewConstant(widthToken(v.Width, v.Constant))
	case schema.NumberCategorical:
		entries := make([]number.Weighted, len(v.Categorical))
		for i, c := range v.Categorical {
			entries[i] = number.Weighted{Value: widthToken(v.Width, c.Value), Weight: c.Weight}
		}
		return number.NewCategorical(entries)
	case schema.NumberID:
		return number.NewID(v.IDStartAt)
	default:
		switch v.Width {
		case schema.WidthF64:
			return number.NewFloatRange(v.Low, v.High, v.Step)
		case schema.WidthU64:
			return number.NewUintRange(uint64(v.Low), uint64(v.High), uint64(v.Step))
		default:
			return number.NewIntRange(int64(v.Low), int64(v.High), int64(v.Step))
		}
	}
}

func buildSeries(v *schema.Series) (gen.Generator[token.Token], error) {
	switch v.Variant {
	case schema.SeriesIncrementing:
		return seriesgen.NewIncrementing(v.Start, v.Delta, v.Format), nil
	case schema.SeriesPoisson:
		return seriesgen.NewPoisson(v.Start, v.RatePerSecond, v.Format), nil
	case schema.SeriesCyclical:
		return seriesgen.NewCyclical(v.Start, v.RatePerSecond, v.Amplitude, v.Period, v.Format), nil
	case schema.SeriesZip:
		children := make([]gen.Generator[token.Token], len(v.Zip))
		for i, c := range v.Zip {
			cg, err := buildSeries(c)
			if err != nil {
				return nil, err
			}
			children[i] = cg
		}
		return seriesgen.NewZip(children), nil
	default:
		return nil, fmt.Errorf("compile/build: unknown series variant %d", v.Variant)
	}
}

// fieldPath extracts the Field-kind segment names of rel, in order,
// dropping any synthetic Index ("content") segments: those never surface
// as a BeginField token, so graph.Projection's structural walk only needs
// the field-name chain between them.
func fieldPath(rel scope.Scope) []string {
	var out []string
	for _, seg := range rel.Segments() {
		if seg.Kind == scope.Field {
			out = append(out, seg.Name)
		}
	}
	return out
}

// unwrapped adapts a Node so that a cycle producing nothing (the target
// collection happened to record zero matching occurrences) yields a
// single Null rather than silently contributing no value to the enclosing
// Object/Array field — the same "a referrer expects a value" contract
// graph.NewUnwrappedView gives local references.
type unwrapped struct {
	inner graph.Node
	any   bool
	told  bool
}

func unwrapEmpty(inner graph.Node) graph.Node { return &unwrapped{inner: inner} }

func (u *unwrapped) Next(r *rng.Source) gen.Step[struct{}] {
	step := u.inner.Next(r)
	if !step.Done {
		u.any = true
		return step
	}
	if !u.any && !u.told {
		u.told = true
		return gen.Yielded[struct{}](token.NewNull())
	}
	u.any = false
	u.told = false
	return step
}
