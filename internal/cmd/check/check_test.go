package check

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewCmdCheck()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCheck_CleanDocument(t *testing.T) {
	doc := strings.Join([]string{
		"## Heading",
		"",
		"Some _text_ with a [link](https://example.com).",
		"",
		"- one",
		"- two",
	}, "\n")

	out, err := execute(t, doc)
	require.NoError(t, err)
	assert.Contains(t, out, "round-trips unchanged")
}

func TestRunCheck_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("plain paragraph\n"), 0644))

	_, err := execute(t, "", path)
	require.NoError(t, err)
}

func TestRunCheck_TrailingWhitespaceIgnored(t *testing.T) {
	_, err := execute(t, "# Title\n\n\n\nbody\n\n")
	require.NoError(t, err)
}

func TestRunCheck_Mismatch(t *testing.T) {
	// Table separator spelling is not tracked, so a compact separator
	// row comes back in canonical form.
	doc := "| a | b |\n|---|---|\n| c | d |\n"
	out, err := execute(t, doc)
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, out, "changed after a round trip")
	assert.Contains(t, out, "| --- | --- |")
}

func TestRunCheck_FileNotFound(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
