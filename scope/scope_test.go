package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []string{
		"users",
		"users.address.postcode",
		`users."address.postcode"`,
	}
	for _, c := range cases {
		s, err := Parse(c)
		require.NoError(t, err, c)
		assert.Equal(t, c, Format(s), c)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{"", "a.", "a..b", `a."b`, ".a"}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, c)
	}
}

func TestCommonRootSymmetry(t *testing.T) {
	a, _ := Parse("users.address.postcode")
	b, _ := Parse("users.address.city")
	r1 := a.CommonRoot(b)
	r2 := b.CommonRoot(a)
	assert.True(t, r1.Equal(r2))
	assert.True(t, a.HasPrefix(r1))
	assert.True(t, b.HasPrefix(r1))

	want, _ := Parse("users.address")
	assert.True(t, r1.Equal(want))
}

func TestRelativizeAndAppend(t *testing.T) {
	ancestor, _ := Parse("users")
	full, _ := Parse("users.address.postcode")
	rel, ok := full.RelativeTo(ancestor)
	require.True(t, ok)
	assert.Equal(t, "address.postcode", Format(rel))
	assert.True(t, ancestor.Append(rel).Equal(full))
}

func TestSelfReferenceIsRoot(t *testing.T) {
	a, _ := Parse("users.id")
	rel, ok := a.RelativeTo(a)
	require.True(t, ok)
	assert.True(t, rel.IsRoot())
}
