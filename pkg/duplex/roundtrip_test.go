package duplex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundtrip renders markdown with provenance tagging and reconstructs
// it from the generated markup.
func roundtrip(t *testing.T, markdown string, opts Options) string {
	t.Helper()
	opts.Bidirectional = true
	rendered, err := Render(markdown, opts)
	require.NoError(t, err)
	out, err := Reconstruct(rendered, opts)
	require.NoError(t, err)
	return out
}

func TestRoundtrip_Document(t *testing.T) {
	input := strings.Join([]string{
		"# Title",
		"",
		"Some _em_ and __strong__ text with `code`.",
		"",
		"- a",
		"- b",
		"",
		"> quoted",
		"",
		"```js",
		"code",
		"```",
	}, "\n")

	assert.Equal(t, input, roundtrip(t, input, Options{}))
}

func TestRoundtrip_MarkerSpellingPreserved(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"underscore emphasis", "_em_ stays underscore"},
		{"star emphasis", "*em* stays star"},
		{"underscore strong", "__strong__ stays underscore"},
		{"heading hashes", "#### four"},
		{"star bullets", "* a\n* b"},
		{"plus bullets", "+ a\n+ b"},
		{"repeated ordered markers", "1. a\n1. b"},
		{"offset ordered markers", "3. three\n4. four"},
		{"spaced thematic break", "- - -"},
		{"tilde fence", "~~~py\nx = 1\n~~~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, roundtrip(t, tt.input, Options{}))
		})
	}
}

func TestRoundtrip_Structures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "nested list",
			input: "- a\n  - b\n- c",
		},
		{
			name:  "task list",
			input: "- [x] done\n- [ ] open",
		},
		{
			name:  "table with alignment",
			input: "| h1 | h2 |\n| :--- | ---: |\n| a | b |",
		},
		{
			name:  "blockquote",
			input: "> line one\n> line two",
		},
		{
			name:  "link and image",
			input: "See [site](https://e.com) and ![alt](pic.png).",
		},
		{
			name:  "bare autolink",
			input: "Visit https://e.com today.",
		},
		{
			name:  "hard line break",
			input: "a  \nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, roundtrip(t, tt.input, Options{}))
		})
	}
}

func TestRoundtrip_FenceWithoutPlugin(t *testing.T) {
	input := "```js\ncode\n```"

	// Even without provenance tagging the code child carries enough to
	// rebuild the fence.
	rendered, err := Render(input, Options{})
	require.NoError(t, err)
	out, err := Reconstruct(rendered, Options{})
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestRoundtrip_UnsafeURLSourceSurvives(t *testing.T) {
	// The rendered href is neutralized, but the author's source is not
	// destroyed by a roundtrip.
	input := "[x](javascript:alert(1))"
	rendered, err := Render(input, Options{Bidirectional: true})
	require.NoError(t, err)
	assert.Contains(t, rendered, `href="#"`)

	out, err := Reconstruct(rendered, Options{})
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestRoundtrip_SurvivesEditorMutation(t *testing.T) {
	rendered, err := Render("## Hi\n\n_text_", Options{Bidirectional: true})
	require.NoError(t, err)

	// A rich-text editor wrapping everything in a contenteditable div
	// and sprinkling spans must not break reconstruction.
	mutated := `<div contenteditable="true">` +
		strings.ReplaceAll(rendered, "<em", `<span class="cursor"></span><em`) +
		`</div>`
	out, err := Reconstruct(mutated, Options{})
	require.NoError(t, err)
	assert.Equal(t, "## Hi\n\n_text_", out)
}
