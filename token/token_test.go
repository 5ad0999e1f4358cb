package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	b := NewBool(true)
	v, err := b.AsBool()
	require.NoError(t, err)
	assert.True(t, v)

	s := NewString("hello")
	sv, err := s.AsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", sv)

	by := NewBytes([]byte{1, 2, 3})
	bv, err := by.AsBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, bv)
}

func TestFloatBitPatternEquality(t *testing.T) {
	nan1 := NewF64(math.NaN())
	nan2 := NewF64(math.NaN())
	// Go's math.NaN() always returns the same bit pattern, so these two
	// NaN tokens must compare equal under plain struct equality.
	assert.Equal(t, nan1, nan2)
	assert.True(t, nan1 == nan2)
}

func TestTokenIsHashable(t *testing.T) {
	m := map[Token]int{}
	m[NewString("a")] = 1
	m[NewI64(5)] = 2
	m[NewF64(1.5)] = 3
	assert.Equal(t, 1, m[NewString("a")])
	assert.Equal(t, 2, m[NewI64(5)])
	assert.Equal(t, 3, m[NewF64(1.5)])
}

func TestTypeMismatch(t *testing.T) {
	tok := NewBool(true)
	_, err := tok.AsString()
	require.Error(t, err)
	var tme *TypeMismatchError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, String, tme.Expected)
	assert.Equal(t, Bool, tme.Actual)
}

func TestBeginEndMarkers(t *testing.T) {
	n := 3
	seq := NewBeginSeq(&n)
	assert.True(t, seq.IsBeginMarker())
	length, has, err := seq.AsBeginSeqLen()
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, 3, length)

	end := NewEndSeq()
	assert.True(t, end.IsEndMarker())
}

func TestUnitVariantRoundTrip(t *testing.T) {
	uv := NewUnitVariant("Color", 2, "Blue")
	name, idx, variant, err := uv.AsUnitVariant()
	require.NoError(t, err)
	assert.Equal(t, "Color", name)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "Blue", variant)
}

func TestI128U128RoundTrip(t *testing.T) {
	i := NewI128(0xFFFFFFFFFFFFFFFF, 1)
	hi, lo, err := i.AsI128()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), hi)
	assert.Equal(t, uint64(1), lo)

	u := NewU128(0, 42)
	hi, lo, err = u.AsU128()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), hi)
	assert.Equal(t, uint64(42), lo)
}
