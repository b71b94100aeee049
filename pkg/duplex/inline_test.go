package duplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_InlineSpans(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "emphasis",
			input:    "a *b* c",
			expected: "<p>a <em>b</em> c</p>",
		},
		{
			name:     "strong",
			input:    "**bold**",
			expected: "<p><strong>bold</strong></p>",
		},
		{
			name:     "emphasis nested in strong",
			input:    "**a *b* c**",
			expected: "<p><strong>a <em>b</em> c</strong></p>",
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			expected: "<p><del>gone</del></p>",
		},
		{
			name:     "unclosed strong stays literal",
			input:    "a ** b",
			expected: "<p>a ** b</p>",
		},
		{
			name:     "unclosed emphasis stays literal",
			input:    "a * b",
			expected: "<p>a * b</p>",
		},
		{
			name:     "code span",
			input:    "run `go build` now",
			expected: "<p>run <code>go build</code> now</p>",
		},
		{
			name:     "code span content is escaped but inert",
			input:    "`x < *y*`",
			expected: "<p><code>x &lt; *y*</code></p>",
		},
		{
			name:     "double backtick span may hold backticks",
			input:    "``a `b` c``",
			expected: "<p><code>a `b` c</code></p>",
		},
		{
			name:     "strong does not close inside a code span",
			input:    "**a `**` b**",
			expected: "<p><strong>a <code>**</code> b</strong></p>",
		},
		{
			name:     "escaped markers",
			input:    `\*not em\*`,
			expected: "<p>*not em*</p>",
		},
		{
			name:     "link",
			input:    "[text](https://e.com)",
			expected: `<p><a href="https://e.com">text</a></p>`,
		},
		{
			name:     "link text may hold balanced brackets",
			input:    "[a [b] c](u)",
			expected: `<p><a href="u">a [b] c</a></p>`,
		},
		{
			name:     "link with styled text",
			input:    "[**b**](u)",
			expected: `<p><a href="u"><strong>b</strong></a></p>`,
		},
		{
			name:     "image",
			input:    "![alt](pic.png)",
			expected: `<p><img src="pic.png" alt="alt"></p>`,
		},
		{
			name:     "image before link",
			input:    "see ![a](u) here",
			expected: `<p>see <img src="u" alt="a"> here</p>`,
		},
		{
			name:     "bare bracket stays literal",
			input:    "a [b c",
			expected: "<p>a [b c</p>",
		},
		{
			name:     "autolink at start",
			input:    "https://e.com is up",
			expected: `<p><a href="https://e.com">https://e.com</a> is up</p>`,
		},
		{
			name:     "autolink after whitespace",
			input:    "see http://e.com now",
			expected: `<p>see <a href="http://e.com">http://e.com</a> now</p>`,
		},
		{
			name:     "no autolink mid-word",
			input:    "xhttp://e.com",
			expected: "<p>xhttp://e.com</p>",
		},
		{
			name:     "hard break on two trailing spaces",
			input:    "a  \nb",
			expected: "<p>a<br>b</p>",
		},
		{
			name:     "single newline stays a soft break",
			input:    "a\nb",
			expected: "<p>a\nb</p>",
		},
		{
			name:     "text is entity escaped",
			input:    "<script>alert(1)</script>",
			expected: "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.input, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_LazyLinefeeds(t *testing.T) {
	got, err := Render("a\nb", Options{LazyLinefeeds: true})
	require.NoError(t, err)
	assert.Equal(t, "<p>a<br>b</p>", got)

	// Lazy breaks carry no marker; hard breaks keep their two spaces.
	got, err = Render("a\nb  \nc", Options{LazyLinefeeds: true, Bidirectional: true})
	require.NoError(t, err)
	assert.Equal(t, `<p>a<br>b<br data-mark="  ">c</p>`, got)
}
