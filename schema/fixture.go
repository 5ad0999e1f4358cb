package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/synthgraph/synthgraph/scope"
)

// fixtureNamespace is the YAML-friendly shape a schema.Namespace fixture is
// read into before being converted to the runtime Node tree. It is
// deliberately permissive (most fields optional) since it only exists to
// drive tests and the example CLI, never the hot sampling path.
type fixtureNamespace map[string]*fixtureNode

type fixtureNode struct {
	Type string `yaml:"type"`

	// Bool / Number / String constant & frequency shorthand.
	Constant  any     `yaml:"constant"`
	Frequency float64 `yaml:"frequency"`

	// Number.
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	Step float64 `yaml:"step"`
	Id   int64   `yaml:"id_start_at"`

	// String.
	Pattern string `yaml:"pattern"`
	Faker   string `yaml:"faker"`

	// Array.
	Length  *fixtureNode `yaml:"length"`
	Content *fixtureNode `yaml:"content"`

	// Object.
	Fields map[string]fixtureField `yaml:"fields"`

	// SameAs.
	Ref string `yaml:"ref"`

	// Unique.
	MaxRetries int `yaml:"max_retries"`
}

type fixtureField struct {
	Optional bool         `yaml:"optional"`
	Content  *fixtureNode `yaml:"content"`
}

// LoadYAML reads a schema.Namespace from a YAML fixture file. This is
// test/example tooling only (spec §6 supplement): it is not a
// general-purpose import adapter (those are explicitly out of scope, spec
// §1 Non-goals) and is never invoked on the sampling hot path.
func LoadYAML(path string) (Namespace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var fixture fixtureNamespace
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	ns := make(Namespace, len(fixture))
	for name, node := range fixture {
		converted, err := convert(node)
		if err != nil {
			return nil, fmt.Errorf("schema: collection %q: %w", name, err)
		}
		arr, ok := converted.(*Array)
		if !ok {
			return nil, fmt.Errorf("schema: collection %q must be an array", name)
		}
		ns[name] = arr
	}
	return ns, nil
}

func convert(n *fixtureNode) (Node, error) {
	if n == nil {
		return &Null{}, nil
	}
	switch n.Type {
	case "null":
		return &Null{}, nil
	case "bool":
		if n.Frequency > 0 {
			return &Bool{Kind: BoolFrequency, Frequency: n.Frequency}, nil
		}
		v, _ := n.Constant.(bool)
		return &Bool{Kind: BoolConstant, Constant: v}, nil
	case "number":
		if n.High > n.Low {
			step := n.Step
			if step == 0 {
				step = 1
			}
			return &Number{Kind: NumberRange, Low: n.Low, High: n.High, Step: step}, nil
		}
		if n.Id != 0 {
			return &Number{Kind: NumberID, IDStartAt: n.Id}, nil
		}
		return &Number{Kind: NumberConstant, Constant: numericConstant(n.Constant)}, nil
	case "string":
		if n.Pattern != "" {
			return &String{Kind: StringPattern, Pattern: n.Pattern}, nil
		}
		if n.Faker != "" {
			return &String{Kind: StringFaker, FakerName: n.Faker}, nil
		}
		v, _ := n.Constant.(string)
		return &String{Kind: StringConstant, Constant: v}, nil
	case "uuid":
		return &String{Kind: StringUUID}, nil
	case "array":
		lenNode, err := convert(n.Length)
		if err != nil {
			return nil, err
		}
		lenNum, ok := lenNode.(*Number)
		if !ok {
			return nil, fmt.Errorf("array length must be a number node")
		}
		content, err := convert(n.Content)
		if err != nil {
			return nil, err
		}
		return &Array{Length: lenNum, Content: content}, nil
	case "object":
		obj := &Object{}
		for name, f := range n.Fields {
			content, err := convert(f.Content)
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, ObjectField{Name: name, Optional: f.Optional, Content: content})
		}
		return obj, nil
	case "same_as":
		s, err := scope.Parse(n.Ref)
		if err != nil {
			return nil, err
		}
		return &SameAs{Ref: s}, nil
	case "unique":
		content, err := convert(n.Content)
		if err != nil {
			return nil, err
		}
		retries := n.MaxRetries
		if retries == 0 {
			retries = 10
		}
		return &Unique{Content: content, MaxRetries: retries}, nil
	default:
		return nil, fmt.Errorf("unknown node type %q", n.Type)
	}
}

// numericConstant coerces a YAML-decoded scalar into a float64: yaml.v3
// decodes an `any`-typed field holding an integer literal (e.g.
// "constant: 2") as an int, not a float64, so a plain type assertion on
// float64 silently drops whole-number constants to zero.
func numericConstant(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
