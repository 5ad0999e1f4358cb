// Package objectgen implements the Object primitive generator (spec §4.3):
// a keyed chain of (BeginField(name), child_subgraph) pairs inside
// BeginStruct/EndStruct, with per-field "optional" flagging — an optional
// field is emitted (BeginField + child) or entirely omitted with p=0.5 per
// cycle.
package objectgen

import (
	"github.com/synthgraph/synthgraph/gen"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/token"
)

// Field is one entry of an Object's field list. Content is built once, at
// compile time, and reused across every outer cycle this Field partakes in
// (each underlying Node already resets its own internal state on
// completion, so a single built instance is safe to redrive repeatedly) —
// this also ensures any tape.Recorder a field's subtree installs is wired
// in before the enclosing common-ancestor scope closes, rather than on
// some later, lazily-triggered first use.
type Field struct {
	Name     string
	Optional bool
	Content  gen.Generator[struct{}]
}

type objectGen struct {
	name   string
	fields []Field

	phase    int // 0 = emit BeginStruct, 1 = stream fields, 2 = emit EndStruct, 3 = complete
	idx      int
	beganFld bool
}

// New constructs an Object generator named name (used only for the
// BeginStruct marker's diagnostic label) with the given ordered fields.
func New(name string, fields []Field) gen.Generator[struct{}] {
	return &objectGen{name: name, fields: fields}
}

func (o *objectGen) Next(r *rng.Source) gen.Step[struct{}] {
	if o.phase == 0 {
		o.idx = 0
		o.phase = 1
		return gen.Yielded[struct{}](token.NewBeginStruct(o.name, len(o.fields)))
	}

	if o.phase == 1 {
		for o.idx < len(o.fields) {
			f := o.fields[o.idx]
			if f.Optional && !o.beganFld {
				if r.IntN(2) == 0 {
					o.idx++
					continue
				}
			}
			if !o.beganFld {
				o.beganFld = true
				return gen.Yielded[struct{}](token.NewBeginField(f.Name))
			}
			step := f.Content.Next(r)
			if !step.Done {
				return gen.Yielded[struct{}](step.Yield)
			}
			o.beganFld = false
			o.idx++
		}
		o.phase = 2
	}

	if o.phase == 2 {
		o.phase = 3
		return gen.Yielded[struct{}](token.NewEndStruct())
	}

	o.phase = 0
	return gen.Complete(struct{}{})
}
