package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaphox/ivy-lang/internal/config"
)

// run executes the command tree with args and returns stdout, stderr and
// the command error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	color.NoColor = true

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

const squareTree = `[root]
  0: [let]
    lhs: [Symbol 'square']
    rhs: [fn anon]
      args: [Symbol 'x']
      value: [*]
        lhs: [Symbol 'x']
        rhs: [Symbol 'x']
  1: [call]
    lhs: [Symbol 'square']
    args: [Int '3']
`

func TestParse_PrintsTree(t *testing.T) {
	out, errOut, err := run(t, "parse", "testdata/square.tok")
	require.NoError(t, err)
	assert.Equal(t, squareTree, out)
	assert.Empty(t, errOut)
}

func TestParse_Diagnostic(t *testing.T) {
	out, errOut, err := run(t, "parse", "testdata/bad.tok")
	require.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Equal(t, "testdata/bad.tok:1:6: expected `=`\n", errOut)
}

func TestParse_MultipleFilesInOrder(t *testing.T) {
	out, errOut, err := run(t, "parse", "testdata/square.tok", "testdata/bad.tok", "testdata/tuple.tok")
	require.ErrorIs(t, err, errReported)

	first := strings.Index(out, "==> testdata/square.tok <==")
	third := strings.Index(out, "==> testdata/tuple.tok <==")
	require.GreaterOrEqual(t, first, 0, out)
	require.Greater(t, third, first, out)
	assert.NotContains(t, out, "bad.tok")
	assert.Contains(t, errOut, "testdata/bad.tok:1:6:")
}

func TestParse_FlatScan(t *testing.T) {
	out, _, err := run(t, "parse", "testdata/tuple.tok")
	require.NoError(t, err)
	assert.Contains(t, out, "0: [tuple]")

	_, errOut, err := run(t, "parse", "--flat-scan", "testdata/tuple.tok")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "testdata/tuple.tok:1:11: expected `)`")
}

func TestParse_MaxDepth(t *testing.T) {
	_, errOut, err := run(t, "parse", "--max-depth", "1", "testdata/square.tok")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "nesting exceeds maximum depth of 1")
}

func TestParse_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ivy.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[parser]\ntuple_scan = \"flat\"\n"), 0o644))

	_, errOut, err := run(t, "parse", "--config", cfgPath, "testdata/tuple.tok")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "expected `)`")
}

func TestParse_Trace(t *testing.T) {
	_, errOut, err := run(t, "parse", "--trace", "testdata/square.tok")
	require.NoError(t, err)
	assert.Contains(t, errOut, "parse started")
	assert.Contains(t, errOut, "fn anon")
	assert.Contains(t, errOut, "file=testdata/square.tok")
}

func TestParse_Dump(t *testing.T) {
	out, _, err := run(t, "parse", "--dump", "testdata/square.tok")
	require.NoError(t, err)
	assert.Contains(t, out, "ast.Root")
	assert.Contains(t, out, "Children")
	assert.Contains(t, out, "ast.FnAnon")
	assert.NotContains(t, out, "let square = fn", "dump must not fall back to String")
}

func TestParse_LoadError(t *testing.T) {
	_, _, err := run(t, "parse", "testdata/missing.tok")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
	assert.Contains(t, err.Error(), "open token file")
}

func TestParse_NeedsFile(t *testing.T) {
	_, _, err := run(t, "parse")
	assert.Error(t, err)
}

func TestTokens_Table(t *testing.T) {
	out, _, err := run(t, "tokens", "testdata/square.tok")
	require.NoError(t, err)
	assert.Contains(t, out, "Pos")
	assert.Contains(t, out, "3:10")
	assert.Contains(t, out, "square")
	assert.Contains(t, out, "<symbol>")
	assert.Contains(t, out, "=>")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ivy v"+Version)
	assert.Contains(t, out, "Go Version:")
}
