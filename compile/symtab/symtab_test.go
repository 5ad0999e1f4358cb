package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgraph/synthgraph/compile/symtab"
	"github.com/synthgraph/synthgraph/scope"
)

func TestDeclareAndLookupRoundTrip(t *testing.T) {
	tbl := symtab.New()
	common := scope.Root().Field("users")
	target := scope.Root().Field("id")
	referrer := scope.Root().Field("alias")

	tbl.Declare(common, target, referrer)

	rf, ok := tbl.Lookup(common, target)
	require.True(t, ok)
	require.Len(t, rf.DeclaredSources, 1)
	assert.True(t, rf.DeclaredSources[0].Equal(referrer))
	assert.False(t, rf.SourceSet)
}

func TestDeclareAppendsMultipleReferrersToSameTarget(t *testing.T) {
	tbl := symtab.New()
	common := scope.Root().Field("users")
	target := scope.Root().Field("id")

	tbl.Declare(common, target, scope.Root().Field("alias1"))
	tbl.Declare(common, target, scope.Root().Field("alias2"))

	rf, ok := tbl.Lookup(common, target)
	require.True(t, ok)
	assert.Len(t, rf.DeclaredSources, 2)
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	tbl := symtab.New()
	_, ok := tbl.Lookup(scope.Root().Field("users"), scope.Root().Field("id"))
	assert.False(t, ok)
}

func TestTargetsAndRootsReflectDeclarations(t *testing.T) {
	tbl := symtab.New()
	usersCommon := scope.Root().Field("users")
	postsCommon := scope.Root().Field("posts")

	tbl.Declare(usersCommon, scope.Root().Field("id"), scope.Root().Field("alias"))
	tbl.Declare(usersCommon, scope.Root().Field("name"), scope.Root().Field("display"))
	tbl.Declare(postsCommon, scope.Root().Field("author"), scope.Root().Field("owner"))

	assert.ElementsMatch(t, []string{scope.Format(scope.Root().Field("id")), scope.Format(scope.Root().Field("name"))}, tbl.Targets(usersCommon))
	assert.ElementsMatch(t, []string{scope.Format(scope.Root().Field("author"))}, tbl.Targets(postsCommon))
	assert.ElementsMatch(t, []string{scope.Format(usersCommon), scope.Format(postsCommon)}, tbl.Roots())
}
