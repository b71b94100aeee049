package duplex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestRender_FencePlugin(t *testing.T) {
	t.Run("handled output is wrapped in a fence container", func(t *testing.T) {
		plugin := &FencePlugin{
			Render: func(content, lang string) (string, bool, error) {
				return "<svg>" + content + "</svg>", true, nil
			},
		}
		got, err := Render("```mermaid\ngraph\n```", Options{FencePlugin: plugin, Bidirectional: true})
		require.NoError(t, err)
		assert.Equal(t,
			"<div class=\"md-fence\" data-mark=\"```\" data-lang=\"mermaid\" data-raw=\"graph\"><svg>graph</svg></div>",
			got)
	})

	t.Run("plugin receives unescaped content and trimmed language", func(t *testing.T) {
		var gotContent, gotLang string
		plugin := &FencePlugin{
			Render: func(content, lang string) (string, bool, error) {
				gotContent, gotLang = content, lang
				return "", true, nil
			},
		}
		_, err := Render("``` js \na < b\n```", Options{FencePlugin: plugin})
		require.NoError(t, err)
		assert.Equal(t, "a < b", gotContent)
		assert.Equal(t, "js", gotLang)
	})

	t.Run("unhandled falls back to default rendering", func(t *testing.T) {
		plugin := &FencePlugin{
			Render: func(content, lang string) (string, bool, error) {
				return "", false, nil
			},
		}
		got, err := Render("```js\ncode\n```", Options{FencePlugin: plugin})
		require.NoError(t, err)
		assert.Equal(t, "<pre><code class=\"language-js\">code\n</code></pre>", got)
	})

	t.Run("render error reaches the caller", func(t *testing.T) {
		errBoom := errors.New("boom")
		plugin := &FencePlugin{
			Render: func(content, lang string) (string, bool, error) {
				return "", false, errBoom
			},
		}
		_, err := Render("```\nx\n```", Options{FencePlugin: plugin})
		require.ErrorIs(t, err, errBoom)
	})
}

func TestReconstruct_FencePlugin(t *testing.T) {
	rendered := "<div class=\"md-fence\" data-mark=\"~~~~\" data-lang=\"js\" data-raw=\"old\"><svg>edited</svg></div>"

	t.Run("reverse result is used verbatim", func(t *testing.T) {
		plugin := &FencePlugin{
			Reverse: func(node *html.Node) (*FenceSource, bool, error) {
				return &FenceSource{Content: "recovered", Lang: "js", Fence: "~~~~"}, true, nil
			},
		}
		got, err := Reconstruct(rendered, Options{FencePlugin: plugin})
		require.NoError(t, err)
		assert.Equal(t, "~~~~js\nrecovered\n~~~~", got)
	})

	t.Run("unhandled falls back to the raw attribute", func(t *testing.T) {
		plugin := &FencePlugin{
			Reverse: func(node *html.Node) (*FenceSource, bool, error) {
				return nil, false, nil
			},
		}
		got, err := Reconstruct(rendered, Options{FencePlugin: plugin})
		require.NoError(t, err)
		assert.Equal(t, "~~~~js\nold\n~~~~", got)
	})

	t.Run("reverse error reaches the caller", func(t *testing.T) {
		errBoom := errors.New("boom")
		plugin := &FencePlugin{
			Reverse: func(node *html.Node) (*FenceSource, bool, error) {
				return nil, false, errBoom
			},
		}
		_, err := Reconstruct(rendered, Options{FencePlugin: plugin})
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("missing fence marker defaults to backticks", func(t *testing.T) {
		got, err := Reconstruct("<pre><code>x\n</code></pre>", Options{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "```\n"), got)
		assert.True(t, strings.HasSuffix(got, "\n```"), got)
	})
}
