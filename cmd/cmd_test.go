package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/docview/internal/toc"
)

const testDocs = "../testdata/docs"

// run executes the root command with a config path that does not exist, so
// settings come from defaults and DOCVIEW_* variables.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values survive between Execute calls.
	require.NoError(t, searchCmd.Flags().Set("json", "false"))
	require.NoError(t, tocScaffoldCmd.Flags().Set("output", ""))
	require.NoError(t, tocScaffoldCmd.Flags().Set("force", "false"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docview dev\n", out)
}

func TestSearchCommand(t *testing.T) {
	t.Setenv("DOCVIEW_SOURCE", testDocs)

	out, err := run(t, "search", "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Getting Started")
	assert.Contains(t, out, "guide/getting-started.md")
	assert.NotContains(t, out, "reference.md")
}

func TestSearchCommandJSON(t *testing.T) {
	t.Setenv("DOCVIEW_SOURCE", testDocs)

	out, err := run(t, "search", "--json", "intro")
	require.NoError(t, err)

	var results []toc.IndexEntry
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, []toc.IndexEntry{{Title: "Introduction", Href: "guide/intro.md"}}, results)
}

func TestCheckCommand(t *testing.T) {
	t.Setenv("DOCVIEW_SOURCE", testDocs)
	t.Setenv("CI", "true")

	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "All 5 documents OK")
}

func TestCheckCommandReportsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toc.yml"), []byte("- href: a.md\n- href: gone.md\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	t.Setenv("DOCVIEW_SOURCE", dir)
	t.Setenv("CI", "true")

	out, err := run(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 documents failed")
	assert.Contains(t, out, "FAIL gone.md")
}

func TestTOCScaffoldCommand(t *testing.T) {
	out, err := run(t, "toc", "scaffold", testDocs, "-o", "-")
	require.NoError(t, err)

	tree, err := toc.Parse([]byte(out))
	require.NoError(t, err)
	require.NotEmpty(t, tree)
	assert.Equal(t, "Guide", tree[0].Title)

	hrefs := toc.Hrefs(tree)
	assert.Contains(t, hrefs, "guide/intro.md")
	assert.Contains(t, hrefs, "reference.md")
	assert.Len(t, hrefs, 5)
}

func TestTOCScaffoldRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toc.yml"), []byte("[]\n"), 0o644))

	_, err := run(t, "toc", "scaffold", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err := run(t, "toc", "scaffold", dir, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "1 documents")

	data, err := os.ReadFile(filepath.Join(dir, "toc.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "href: a.md")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("DOCVIEW_PORT", "0")
	_, err := run(t, "search", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}
