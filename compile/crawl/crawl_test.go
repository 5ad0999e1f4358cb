package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/compile/crawl"
	"github.com/synthgraph/synthgraph/errs"
	"github.com/synthgraph/synthgraph/schema"
	"github.com/synthgraph/synthgraph/scope"
)

func numberLeaf() *schema.Number {
	return &schema.Number{Kind: schema.NumberConstant, Constant: 1}
}

func TestCrawlDeclaresLocalReference(t *testing.T) {
	ns := schema.Namespace{
		"users": &schema.Array{
			Length: numberLeaf(),
			Content: &schema.Object{Fields: []schema.ObjectField{
				{Name: "id", Content: numberLeaf()},
				{Name: "alias", Content: &schema.SameAs{Ref: scope.Root().Field("users").Field("id")}},
			}},
		},
	}

	result, err := crawl.Crawl(ns)
	require.NoError(t, err)

	common := scope.Root().Field("users")
	rf, ok := result.Symbols.Lookup(common, scope.Root().Field("id"))
	require.True(t, ok, "id must be declared as a target under its common root")
	require.Len(t, rf.DeclaredSources, 1)
	assert.True(t, rf.DeclaredSources[0].Equal(scope.Root().Field("alias")))
	assert.Contains(t, result.Flattened, scope.Format(common))
}

func TestCrawlRejectsSelfReference(t *testing.T) {
	ns := schema.Namespace{
		"users": &schema.Array{
			Length: numberLeaf(),
			Content: &schema.Object{Fields: []schema.ObjectField{
				{Name: "loop", Content: &schema.SameAs{Ref: scope.Root().Field("users").Field("loop")}},
			}},
		},
	}

	_, err := crawl.Crawl(ns)
	require.Error(t, err)
	var cycle *errs.Cycle
	assert.ErrorAs(t, err, &cycle)
}

func TestCrawlRejectsMutualCycle(t *testing.T) {
	ns := schema.Namespace{
		"c": &schema.Array{
			Length: numberLeaf(),
			Content: &schema.Object{Fields: []schema.ObjectField{
				{Name: "a", Content: &schema.SameAs{Ref: scope.Root().Field("c").Field("b")}},
				{Name: "b", Content: &schema.SameAs{Ref: scope.Root().Field("c").Field("a")}},
			}},
		},
	}

	_, err := crawl.Crawl(ns)
	require.Error(t, err)
	var cycle *errs.Cycle
	assert.ErrorAs(t, err, &cycle)
}

func TestCrawlCrossCollectionDependency(t *testing.T) {
	ns := schema.Namespace{
		"users": &schema.Array{
			Length:  numberLeaf(),
			Content: &schema.Object{Fields: []schema.ObjectField{{Name: "name", Content: numberLeaf()}}},
		},
		"posts": &schema.Array{
			Length: numberLeaf(),
			Content: &schema.Object{Fields: []schema.ObjectField{
				{Name: "author", Content: &schema.SameAs{Ref: scope.Root().Field("users").Field("name")}},
			}},
		},
	}

	result, err := crawl.Crawl(ns)
	require.NoError(t, err)
	assert.True(t, result.CollectionDeps["posts"]["users"])
	assert.Nil(t, result.CollectionDeps["users"])
}
