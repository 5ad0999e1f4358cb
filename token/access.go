package token

import (
	"fmt"
	"math"
	"strings"
)

// TypeMismatchError is returned by an As* extractor when the token's Kind
// does not match the requested accessor.
type TypeMismatchError struct {
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("token: expected %s, got %s", e.Expected, e.Actual)
}

func mismatch(expected Kind, actual Kind) error {
	return &TypeMismatchError{Expected: expected, Actual: actual}
}

// --- Predicates, one per variant ---

func (t Token) IsBool() bool        { return t.kind == Bool }
func (t Token) IsChar() bool        { return t.kind == Char }
func (t Token) IsString() bool      { return t.kind == String }
func (t Token) IsBytes() bool       { return t.kind == Bytes }
func (t Token) IsNull() bool        { return t.kind == Null }
func (t Token) IsNumber() bool {
	switch t.kind {
	case I8, I16, I32, I64, I128, U8, U16, U32, U64, U128, F32, F64:
		return true
	default:
		return false
	}
}
func (t Token) IsBeginMap() bool    { return t.kind == BeginMap }
func (t Token) IsEndMap() bool      { return t.kind == EndMap }
func (t Token) IsBeginStruct() bool { return t.kind == BeginStruct }
func (t Token) IsEndStruct() bool   { return t.kind == EndStruct }
func (t Token) IsBeginField() bool  { return t.kind == BeginField }
func (t Token) IsBeginTuple() bool  { return t.kind == BeginTuple }
func (t Token) IsEndTuple() bool    { return t.kind == EndTuple }
func (t Token) IsBeginSeq() bool    { return t.kind == BeginSeq }
func (t Token) IsEndSeq() bool      { return t.kind == EndSeq }
func (t Token) IsBeginSome() bool   { return t.kind == BeginSome }
func (t Token) IsNone() bool        { return t.kind == NoneKind }
func (t Token) IsUnitStruct() bool  { return t.kind == UnitStruct }
func (t Token) IsUnitVariant() bool { return t.kind == UnitVariant }
func (t Token) IsError() bool       { return t.kind == ErrorKind }

// IsBeginMarker reports whether this token opens a structural scope that
// must eventually be matched by a corresponding End* token, per the
// well-formedness invariant of the data model.
func (t Token) IsBeginMarker() bool {
	switch t.kind {
	case BeginMap, BeginStruct, BeginTuple, BeginSeq:
		return true
	default:
		return false
	}
}

// IsEndMarker reports whether this token closes a structural scope.
func (t Token) IsEndMarker() bool {
	switch t.kind {
	case EndMap, EndStruct, EndTuple, EndSeq:
		return true
	default:
		return false
	}
}

// --- Extractors, one per variant, returning a TypeMismatchError on kind mismatch ---

func (t Token) AsBool() (bool, error) {
	if t.kind != Bool {
		return false, mismatch(Bool, t.kind)
	}
	return t.b, nil
}

func (t Token) AsChar() (rune, error) {
	if t.kind != Char {
		return 0, mismatch(Char, t.kind)
	}
	r := []rune(t.s)
	if len(r) == 0 {
		return 0, nil
	}
	return r[0], nil
}

func (t Token) AsString() (string, error) {
	if t.kind != String {
		return "", mismatch(String, t.kind)
	}
	return t.s, nil
}

func (t Token) AsBytes() ([]byte, error) {
	if t.kind != Bytes {
		return nil, mismatch(Bytes, t.kind)
	}
	return []byte(t.s), nil
}

func (t Token) AsI64() (int64, error) {
	switch t.kind {
	case I8, I16, I32, I64:
		return t.i, nil
	default:
		return 0, mismatch(I64, t.kind)
	}
}

func (t Token) AsU64() (uint64, error) {
	switch t.kind {
	case U8, U16, U32, U64:
		return t.u, nil
	default:
		return 0, mismatch(U64, t.kind)
	}
}

// AsI128 returns the high/low 64-bit halves of a 128-bit signed integer token.
func (t Token) AsI128() (hi uint64, lo uint64, err error) {
	if t.kind != I128 {
		return 0, 0, mismatch(I128, t.kind)
	}
	return t.hi, t.u, nil
}

// AsU128 returns the high/low 64-bit halves of a 128-bit unsigned integer token.
func (t Token) AsU128() (hi uint64, lo uint64, err error) {
	if t.kind != U128 {
		return 0, 0, mismatch(U128, t.kind)
	}
	return t.hi, t.u, nil
}

func (t Token) AsF32() (float32, error) {
	if t.kind != F32 {
		return 0, mismatch(F32, t.kind)
	}
	return math.Float32frombits(uint32(t.fb)), nil
}

func (t Token) AsF64() (float64, error) {
	if t.kind != F64 {
		return 0, mismatch(F64, t.kind)
	}
	return math.Float64frombits(t.fb), nil
}

// AsBeginMapLen returns the declared length of a BeginMap token and whether
// one was supplied.
func (t Token) AsBeginMapLen() (int, bool, error) {
	if t.kind != BeginMap {
		return 0, false, mismatch(BeginMap, t.kind)
	}
	return t.length, t.hasLength, nil
}

// AsBeginSeqLen returns the declared length of a BeginSeq token and whether
// one was supplied.
func (t Token) AsBeginSeqLen() (int, bool, error) {
	if t.kind != BeginSeq {
		return 0, false, mismatch(BeginSeq, t.kind)
	}
	return t.length, t.hasLength, nil
}

// AsBeginStruct returns the struct name and field count of a BeginStruct token.
func (t Token) AsBeginStruct() (name string, length int, err error) {
	if t.kind != BeginStruct {
		return "", 0, mismatch(BeginStruct, t.kind)
	}
	return t.s, t.length, nil
}

// AsBeginTupleLen returns the declared length of a BeginTuple token.
func (t Token) AsBeginTupleLen() (int, error) {
	if t.kind != BeginTuple {
		return 0, mismatch(BeginTuple, t.kind)
	}
	return t.length, nil
}

// AsBeginField returns the field name of a BeginField token.
func (t Token) AsBeginField() (string, error) {
	if t.kind != BeginField {
		return "", mismatch(BeginField, t.kind)
	}
	return t.s, nil
}

// AsUnitStruct returns the struct name of a UnitStruct token.
func (t Token) AsUnitStruct() (string, error) {
	if t.kind != UnitStruct {
		return "", mismatch(UnitStruct, t.kind)
	}
	return t.s, nil
}

// AsUnitVariant returns the enum name, variant index, and variant name of a
// UnitVariant token.
func (t Token) AsUnitVariant() (name string, idx int, variant string, err error) {
	if t.kind != UnitVariant {
		return "", 0, "", mismatch(UnitVariant, t.kind)
	}
	parts := strings.SplitN(t.s, "\x00", 2)
	return parts[0], t.length, parts[1], nil
}

// AsError returns the message carried by an Error token.
func (t Token) AsError() (string, error) {
	if t.kind != ErrorKind {
		return "", mismatch(ErrorKind, t.kind)
	}
	return t.s, nil
}

// String renders a Token for diagnostics; it is not part of the data model
// and has no bearing on equality or hashing.
func (t Token) String() string {
	switch t.kind {
	case Bool:
		return fmt.Sprintf("Bool(%v)", t.b)
	case Char:
		return fmt.Sprintf("Char(%q)", t.s)
	case String:
		return fmt.Sprintf("String(%q)", t.s)
	case Bytes:
		return fmt.Sprintf("Bytes(%d bytes)", len(t.s))
	case Null:
		return "Null"
	case I8, I16, I32, I64:
		return fmt.Sprintf("%s(%d)", t.kind, t.i)
	case U8, U16, U32, U64:
		return fmt.Sprintf("%s(%d)", t.kind, t.u)
	case I128:
		return fmt.Sprintf("I128(hi=%d,lo=%d)", t.hi, t.u)
	case U128:
		return fmt.Sprintf("U128(hi=%d,lo=%d)", t.hi, t.u)
	case F32:
		v, _ := t.AsF32()
		return fmt.Sprintf("F32(%v)", v)
	case F64:
		v, _ := t.AsF64()
		return fmt.Sprintf("F64(%v)", v)
	case BeginStruct:
		return fmt.Sprintf("BeginStruct(%s, %d)", t.s, t.length)
	case BeginField:
		return fmt.Sprintf("BeginField(%s)", t.s)
	case ErrorKind:
		return fmt.Sprintf("Error(%s)", t.s)
	default:
		return t.kind.String()
	}
}
