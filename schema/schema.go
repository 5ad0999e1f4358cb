// Package schema defines the input schema AST (spec §6.1): a recursive
// node type describing what to generate, before compilation turns it into
// a graph of runtime generators.
//
// Grounded on ast2/defs.go and ast2/member.go's sum-of-concrete-struct-types
// style (one struct per node kind, a marker method binding them to a
// common interface) rather than a single struct with an embedded "kind"
// tag field, matching how the teacher represents its own schema-like AST.
package schema

import (
	"time"

	"github.com/synthgraph/synthgraph/scope"
)

// Node is any schema node. The marker method keeps the set of Node
// implementations closed to this package's declared kinds.
type Node interface {
	schemaNode()
}

// Namespace maps a top-level collection name to its schema node; every
// top-level value in a namespace must be an Array (spec §6.1: "a namespace
// is a mapping collection_name -> Node where each top-level value is an
// array").
type Namespace map[string]*Array

// Null always generates the null token.
type Null struct{}

func (*Null) schemaNode() {}

// BoolKind selects which of Bool's variants is active.
type BoolKind int

const (
	BoolConstant BoolKind = iota
	BoolFrequency
	BoolCategorical
)

// BoolWeighted is one entry of Bool's categorical variant.
type BoolWeighted struct {
	Value  bool
	Weight float64
}

// Bool is the Boolean schema node.
type Bool struct {
	Kind        BoolKind
	Constant    bool
	Frequency   float64
	Categorical []BoolWeighted
}

func (*Bool) schemaNode() {}

// NumberWidth names the integer/float width a Number node emits.
type NumberWidth int

const (
	WidthI64 NumberWidth = iota
	WidthU64
	WidthF64
)

// NumberKind selects which of Number's variants is active.
type NumberKind int

const (
	NumberRange NumberKind = iota
	NumberConstant
	NumberCategorical
	NumberID
)

// NumberWeighted is one entry of Number's categorical variant, keyed by a
// float64 so both integer and float categorical values share one shape;
// integer widths truncate at compile time.
type NumberWeighted struct {
	Value  float64
	Weight float64
}

// Number is the Number schema node.
type Number struct {
	Width       NumberWidth
	Kind        NumberKind
	Low, High   float64
	Step        float64
	Constant    float64
	Categorical []NumberWeighted
	IDStartAt   int64
}

func (*Number) schemaNode() {}

// StringKind selects which of String's variants is active.
type StringKind int

const (
	StringPattern StringKind = iota
	StringConstant
	StringCategorical
	StringFaker
	StringUUID
	StringDateTime
	StringTruncated
	StringFormat
)

// StringWeighted is one entry of String's categorical variant.
type StringWeighted struct {
	Value  string
	Weight float64
}

// String is the String schema node.
type String struct {
	Kind        StringKind
	Pattern     string
	Constant    string
	Categorical []StringWeighted

	// Faker.
	FakerName string
	FakerArgs map[string]string

	// DateTime.
	DateTimeFormat  string
	DateTimeBegin   string // RFC3339; parsed at compile time.
	DateTimeEnd     string
	DateTimePrecision int // mirrors datetimegen.Precision.

	// Truncated.
	TruncatedContent *String
	TruncatedLength  int

	// Format.
	FormatTemplate string
	FormatArgs     []Node
}

func (*String) schemaNode() {}

// Array pairs a length-producing Number node with an element content node.
type Array struct {
	Length  *Number
	Content Node
}

func (*Array) schemaNode() {}

// ObjectField is one field of an Object node.
type ObjectField struct {
	Name     string
	Optional bool
	Content  Node
}

// Object is a keyed chain of fields.
type Object struct {
	Fields []ObjectField
}

func (*Object) schemaNode() {}

// OneOfAlternative is one weighted alternative of a OneOf node.
type OneOfAlternative struct {
	Weight  float64
	Content Node
}

// OneOf chooses among weighted alternatives.
type OneOf struct {
	Alternatives []OneOfAlternative
}

func (*OneOf) schemaNode() {}

// SameAs declares a reference to another field, by absolute path.
type SameAs struct {
	Ref scope.Scope
}

func (*SameAs) schemaNode() {}

// Unique wraps content, rejecting repeats within its enclosing cycle.
type Unique struct {
	Content    Node
	MaxRetries int
}

func (*Unique) schemaNode() {}

// Hidden wraps content, suppressing its emission while still generating it
// (and recording it to the tape, so it remains referenceable via SameAs).
type Hidden struct {
	Content Node
}

func (*Hidden) schemaNode() {}

// SeriesVariant selects which of Series's variants is active.
type SeriesVariant int

const (
	SeriesIncrementing SeriesVariant = iota
	SeriesPoisson
	SeriesCyclical
	SeriesZip
)

// Series is the time-series schema node.
type Series struct {
	Variant SeriesVariant
	Format  string

	Start time.Time
	Delta time.Duration // Incrementing.

	RatePerSecond float64       // Poisson, and Cyclical's base rate.
	Amplitude     float64       // Cyclical.
	Period        time.Duration // Cyclical.

	Zip []*Series // Zip.
}

func (*Series) schemaNode() {}
