// Command synthgraph-tokendump is a tiny debug harness (SPEC_FULL.md §2):
// it compiles a schema.Namespace fixture, drives every collection (or just
// the one named by -collection) to completion, and prints the resulting
// token stream one token per line. It is not an import/export adapter —
// those remain explicitly out of scope — only a way to eyeball what a
// compiled graph actually emits.
//
// No CLI-framework library appears as a direct dependency of the teacher
// or of any other pack repo (see DESIGN.md); this harness is grounded on
// the standard library's flag package instead, the same "no corpus
// library, stdlib with justification" pattern synthgraphlog follows for
// logging.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/synthgraph/synthgraph/namespace"
	"github.com/synthgraph/synthgraph/rng"
	"github.com/synthgraph/synthgraph/schema"
	"github.com/synthgraph/synthgraph/synthgraphlog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "synthgraph-tokendump:", err)
		os.Exit(1)
	}
}

func run(args []string, out *os.File) error {
	fs := flag.NewFlagSet("synthgraph-tokendump", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "path to a YAML schema.Namespace fixture (required)")
	collection := fs.String("collection", "", "only dump this collection (default: every collection)")
	seed := fs.Int64("seed", 1, "deterministic rng seed")
	concurrent := fs.Bool("concurrent", false, "sample every dumped collection concurrently via namespace.RunMany")
	verbose := fs.Bool("verbose", false, "enable debug-level structured logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaPath == "" {
		return fmt.Errorf("-schema is required")
	}
	if *verbose {
		synthgraphlog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ns, err := schema.LoadYAML(*schemaPath)
	if err != nil {
		return err
	}

	compiled, err := namespace.Compile(ns, namespace.Options{})
	if err != nil {
		return err
	}

	names := compiled.Collections()
	if *collection != "" {
		names = []string{*collection}
	}

	if *concurrent {
		return dumpConcurrent(compiled, names, *seed, out)
	}
	return dumpSequential(compiled, names, *seed, out)
}

func dumpSequential(compiled *namespace.Compiled, names []string, seed int64, out *os.File) error {
	for _, name := range names {
		node, ok := compiled.Node(name)
		if !ok {
			return fmt.Errorf("unknown collection %q", name)
		}
		r := rng.FromInt64(seed)
		fmt.Fprintf(out, "=== %s ===\n", name)
		for {
			step := node.Next(r)
			if step.Done {
				break
			}
			fmt.Fprintln(out, step.Yield.String())
		}
	}
	return nil
}

func dumpConcurrent(compiled *namespace.Compiled, names []string, seed int64, out *os.File) error {
	jobs := make([]namespace.Job, 0, len(names))
	for _, name := range names {
		node, ok := compiled.Node(name)
		if !ok {
			return fmt.Errorf("unknown collection %q", name)
		}
		jobs = append(jobs, namespace.Job{Node: node, Rng: rng.FromInt64(seed)})
	}
	results, err := namespace.RunMany(context.Background(), jobs)
	if err != nil {
		return err
	}
	for i, name := range names {
		fmt.Fprintf(out, "=== %s ===\n", name)
		for _, tok := range results[i] {
			fmt.Fprintln(out, tok.String())
		}
	}
	return nil
}
