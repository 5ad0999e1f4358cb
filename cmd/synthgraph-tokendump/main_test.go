package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
users:
  type: array
  length:
    type: number
    constant: 2
  content:
    type: object
    fields:
      id:
        content:
          type: number
          id_start_at: 1
`

func TestRunDumpsTokenStreamForEveryCollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	outPath := filepath.Join(dir, "out.txt")
	out, err := os.Create(outPath)
	require.NoError(t, err)
	defer out.Close()

	err = run([]string{"-schema", path}, out)
	require.NoError(t, err)

	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "=== users ===")
	assert.Contains(t, string(contents), "BeginSeq")
	assert.Contains(t, string(contents), "I64(1)")
	assert.Contains(t, string(contents), "I64(2)")
}

func TestRunRequiresSchemaFlag(t *testing.T) {
	err := run(nil, os.Stdout)
	assert.Error(t, err)
}

func TestRunRejectsUnknownCollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	err := run([]string{"-schema", path, "-collection", "bogus"}, os.Stdout)
	assert.Error(t, err)
}
