// Package token defines the tagged-sum value model shared by every
// generator in synthgraph. A Token is either a primitive value or one of the
// structural markers that delimit maps, structs, tuples, sequences and
// options. A well-formed stream of tokens balances every Begin* marker with
// its matching End* in LIFO order and decodes to exactly one serde-style
// value.
package token

import (
	"fmt"
	"math"
)

// Kind identifies which variant of Token a given value holds.
type Kind uint8

const (
	// Invalid is the zero value of Kind and is never produced by a
	// constructor in this package.
	Invalid Kind = iota

	Bool
	Char
	String
	Bytes
	Null

	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64

	BeginMap
	EndMap
	BeginStruct
	EndStruct
	BeginField
	BeginTuple
	EndTuple
	BeginSeq
	EndSeq
	BeginSome
	NoneKind
	UnitStruct
	UnitVariant
	ErrorKind
)

//go:generate stringer -type=Kind

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Bool:
		return "Bool"
	case Char:
		return "Char"
	case String:
		return "String"
	case Bytes:
		return "Bytes"
	case Null:
		return "Null"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case I128:
		return "I128"
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case U128:
		return "U128"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case BeginMap:
		return "BeginMap"
	case EndMap:
		return "EndMap"
	case BeginStruct:
		return "BeginStruct"
	case EndStruct:
		return "EndStruct"
	case BeginField:
		return "BeginField"
	case BeginTuple:
		return "BeginTuple"
	case EndTuple:
		return "EndTuple"
	case BeginSeq:
		return "BeginSeq"
	case EndSeq:
		return "EndSeq"
	case BeginSome:
		return "BeginSome"
	case NoneKind:
		return "None"
	case UnitStruct:
		return "UnitStruct"
	case UnitVariant:
		return "UnitVariant"
	case ErrorKind:
		return "Error"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is a single element of a token stream. It is deliberately built out
// of plain comparable fields only (no slices, no pointers) so that a Token
// is itself comparable and hashable: categorical samplers use Tokens as map
// keys, and float payloads compare by bit pattern so that two NaNs sharing a
// representation are considered equal, per the data model's requirement
// that tokens be usable as dictionary keys.
type Token struct {
	kind Kind

	b bool   // Bool payload.
	s string // String/Char/Bytes/BeginField name/BeginStruct name/UnitStruct name/UnitVariant name+variant/Error message payload.

	i  int64  // Signed integer payload (I8..I64), or the low 64 bits of I128.
	u  uint64 // Unsigned integer payload (U8..U64), or the low 64 bits of U128.
	hi uint64 // High 64 bits of I128/U128.
	fb uint64 // Float bit pattern: low 32 bits hold F32, full 64 bits hold F64.

	length    int  // Payload for BeginMap/BeginSeq/BeginTuple/BeginStruct length, and UnitVariant index.
	hasLength bool // Whether BeginMap/BeginSeq carry a known length.
}

// Kind reports which variant this Token holds.
func (t Token) Kind() Kind { return t.kind }

// --- Primitive constructors ---

// NewBool constructs a Bool token.
func NewBool(v bool) Token { return Token{kind: Bool, b: v} }

// NewChar constructs a Char token from a single rune.
func NewChar(r rune) Token { return Token{kind: Char, s: string(r)} }

// NewString constructs a String token.
func NewString(v string) Token { return Token{kind: String, s: v} }

// NewBytes constructs a Bytes token. The byte slice is copied into an
// immutable string so the resulting Token remains comparable.
func NewBytes(v []byte) Token { return Token{kind: Bytes, s: string(v)} }

// NewNull constructs the Null primitive token (distinct from the None
// structural marker, which denotes an absent Option value).
func NewNull() Token { return Token{kind: Null} }

// NewI8 through NewI64 construct signed integer tokens of the given width.
func NewI8(v int8) Token   { return Token{kind: I8, i: int64(v)} }
func NewI16(v int16) Token { return Token{kind: I16, i: int64(v)} }
func NewI32(v int32) Token { return Token{kind: I32, i: int64(v)} }
func NewI64(v int64) Token { return Token{kind: I64, i: v} }

// NewI128 constructs a 128-bit signed integer token from its high and low
// 64-bit halves (two's complement, hi holds the sign).
func NewI128(hi uint64, lo uint64) Token { return Token{kind: I128, hi: hi, u: lo} }

// NewU8 through NewU64 construct unsigned integer tokens of the given width.
func NewU8(v uint8) Token   { return Token{kind: U8, u: uint64(v)} }
func NewU16(v uint16) Token { return Token{kind: U16, u: uint64(v)} }
func NewU32(v uint32) Token { return Token{kind: U32, u: uint64(v)} }
func NewU64(v uint64) Token { return Token{kind: U64, u: v} }

// NewU128 constructs a 128-bit unsigned integer token from its high and low
// 64-bit halves.
func NewU128(hi, lo uint64) Token { return Token{kind: U128, hi: hi, u: lo} }

// NewF32 constructs a 32-bit float token. Equality of F32 tokens is by bit
// pattern, so distinct NaN payloads of the same bits compare equal and two
// differently-encoded NaNs compare unequal.
func NewF32(v float32) Token { return Token{kind: F32, fb: uint64(math.Float32bits(v))} }

// NewF64 constructs a 64-bit float token, compared by bit pattern.
func NewF64(v float64) Token { return Token{kind: F64, fb: math.Float64bits(v)} }

// --- Structural markers ---

// NewBeginMap opens a map. length is the number of entries if known ahead
// of time, or nil when the length is only known once EndMap is reached.
func NewBeginMap(length *int) Token {
	t := Token{kind: BeginMap}
	if length != nil {
		t.length, t.hasLength = *length, true
	}
	return t
}

// NewEndMap closes the most recently opened map.
func NewEndMap() Token { return Token{kind: EndMap} }

// NewBeginStruct opens a named struct with a known field count.
func NewBeginStruct(name string, length int) Token {
	return Token{kind: BeginStruct, s: name, length: length, hasLength: true}
}

// NewEndStruct closes the most recently opened struct.
func NewEndStruct() Token { return Token{kind: EndStruct} }

// NewBeginField opens a single field within the enclosing struct, named
// name. It is not itself closed by an End marker: the field's value
// immediately follows and its own Begin/End markers (if any) delimit it.
func NewBeginField(name string) Token { return Token{kind: BeginField, s: name} }

// NewBeginTuple opens a fixed-length, unnamed tuple.
func NewBeginTuple(length int) Token {
	return Token{kind: BeginTuple, length: length, hasLength: true}
}

// NewEndTuple closes the most recently opened tuple.
func NewEndTuple() Token { return Token{kind: EndTuple} }

// NewBeginSeq opens a sequence. length is the element count if known ahead
// of time, or nil when only known once EndSeq is reached.
func NewBeginSeq(length *int) Token {
	t := Token{kind: BeginSeq}
	if length != nil {
		t.length, t.hasLength = *length, true
	}
	return t
}

// NewEndSeq closes the most recently opened sequence.
func NewEndSeq() Token { return Token{kind: EndSeq} }

// NewBeginSome opens the present branch of an Option value.
func NewBeginSome() Token { return Token{kind: BeginSome} }

// NewNone denotes the absent branch of an Option value.
func NewNone() Token { return Token{kind: NoneKind} }

// NewUnitStruct denotes a zero-field struct named name.
func NewUnitStruct(name string) Token { return Token{kind: UnitStruct, s: name} }

// NewUnitVariant denotes the idx-th variant, named variant, of an enum
// called name.
func NewUnitVariant(name string, idx int, variant string) Token {
	return Token{kind: UnitVariant, s: name + "\x00" + variant, length: idx, hasLength: true}
}

// NewError marks a recoverable generation failure inline in the stream. The
// structural tokens surrounding it remain balanced, so a consumer may
// continue decoding or discard the partial value; see the error-handling
// design for the distinction between this channel and a fatal error
// returned directly from a generator's Next method.
func NewError(msg string) Token { return Token{kind: ErrorKind, s: msg} }
