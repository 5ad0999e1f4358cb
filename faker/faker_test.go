package faker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/faker"
	"github.com/synthgraph/synthgraph/rng"
)

func TestDefaultSamplesEveryBuiltinName(t *testing.T) {
	r := rng.FromInt64(1)
	names := []string{"name.first_name", "name.last_name", "name.full_name", "internet.free_email", "lorem.word"}
	for _, name := range names {
		v, err := (faker.Default{}).Sample(r, name, nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, v, name)
	}
}

func TestDefaultUnknownNameReturnsError(t *testing.T) {
	r := rng.FromInt64(1)
	_, err := (faker.Default{}).Sample(r, "bogus.generator", nil)
	assert.Error(t, err)
}

func TestDefaultIsDeterministicForSameSeed(t *testing.T) {
	v1, err := (faker.Default{}).Sample(rng.FromInt64(42), "name.full_name", nil)
	require.NoError(t, err)
	v2, err := (faker.Default{}).Sample(rng.FromInt64(42), "name.full_name", nil)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}
