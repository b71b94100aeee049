package highlight_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duplexmd/duplexmd/pkg/duplex"
	"github.com/duplexmd/duplexmd/pkg/highlight"
)

func TestHighlight_Render(t *testing.T) {
	opts := duplex.Options{FencePlugin: highlight.New(""), Bidirectional: true}

	got, err := duplex.Render("```go\npackage main\n```", opts)
	require.NoError(t, err)
	assert.Contains(t, got, `class="md-fence"`)
	assert.Contains(t, got, "style=") // chroma emits inline styles
	assert.Contains(t, got, "package")
}

func TestHighlight_UnknownLanguageFallsBack(t *testing.T) {
	opts := duplex.Options{FencePlugin: highlight.New("")}

	got, err := duplex.Render("```nosuchlang-xyz\nx\n```", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "<pre"), got)
	assert.Contains(t, got, `class="language-nosuchlang-xyz"`)
}

func TestHighlight_NoLanguageFallsBack(t *testing.T) {
	opts := duplex.Options{FencePlugin: highlight.New("")}

	got, err := duplex.Render("```\nplain\n```", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "<pre"), got)
}

func TestHighlight_Roundtrip(t *testing.T) {
	input := "```go\nfunc main() {}\n```"
	opts := duplex.Options{FencePlugin: highlight.New(""), Bidirectional: true}

	rendered, err := duplex.Render(input, opts)
	require.NoError(t, err)
	out, err := duplex.Reconstruct(rendered, opts)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}
