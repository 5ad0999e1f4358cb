// Package faker defines the opaque external-collaborator interface the
// String primitive generator's Faker variant delegates to (spec §4.3:
// "faker (opaque, delegates to an external collaborator but must be pure
// w.r.t. the rng)"). Faker generators are explicitly out of scope for the
// core (spec §1 Non-goals): this package supplies the seam — a Provider
// interface keyed by generator name plus arguments — and a small default
// catalog so the core is usable standalone.
//
// No faker/fake-data library appears anywhere in the retrieved example
// pack (see DESIGN.md); the default catalog below is therefore
// intentionally minimal and stdlib-only, matching the "thin default,
// pluggable real implementation" shape the spec calls for.
package faker

import (
	"fmt"

	"github.com/synthgraph/synthgraph/rng"
)

// Provider samples a named faker generator (e.g. "name.first_name",
// "internet.free_email") with the given arguments. Implementations must be
// pure with respect to r: the same rng stream must produce the same value.
type Provider interface {
	Sample(r *rng.Source, name string, args map[string]string) (string, error)
}

// Default is a minimal Provider covering a handful of common generator
// names, enough to exercise the Faker variant end to end without an
// external dependency.
type Default struct{}

var firstNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}
var lastNames = []string{"Smith", "Johnson", "Lee", "Patel", "Garcia", "Kim", "Nguyen", "Brown"}
var domains = []string{"example.com", "example.org", "example.net"}
var words = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit"}

// Sample implements Provider for the builtin catalog; unknown names return
// an error so the caller surfaces it through the runtime-recoverable error
// channel (spec §7).
func (Default) Sample(r *rng.Source, name string, args map[string]string) (string, error) {
	switch name {
	case "name.first_name":
		return firstNames[r.IntN(len(firstNames))], nil
	case "name.last_name":
		return lastNames[r.IntN(len(lastNames))], nil
	case "name.full_name":
		return firstNames[r.IntN(len(firstNames))] + " " + lastNames[r.IntN(len(lastNames))], nil
	case "internet.free_email":
		local := firstNames[r.IntN(len(firstNames))]
		return fmt.Sprintf("%s.%d@%s", local, r.IntN(10000), domains[r.IntN(len(domains))]), nil
	case "lorem.word":
		return words[r.IntN(len(words))], nil
	default:
		return "", fmt.Errorf("faker: unknown generator %q", name)
	}
}
