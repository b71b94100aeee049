// Package highlight provides a fence plugin that renders fenced code
// through chroma for server-side syntax highlighting. Reconstruction
// reads the raw source the engine stored on the fence container, so a
// highlighted block round-trips to its exact original text.
package highlight

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"

	"github.com/duplexmd/duplexmd/pkg/duplex"
)

// DefaultStyle is used when New is given an empty style name.
const DefaultStyle = "github"

// New builds a fence plugin highlighting with the named chroma style.
// Blocks without a language tag, or with one chroma has no lexer for,
// fall through to the engine's default rendering.
func New(styleName string) *duplex.FencePlugin {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &duplex.FencePlugin{
		Render: func(content, lang string) (string, bool, error) {
			if lang == "" {
				return "", false, nil
			}
			lexer := lexers.Get(lang)
			if lexer == nil {
				return "", false, nil
			}
			lexer = chroma.Coalesce(lexer)

			style := styles.Get(styleName)
			if style == nil {
				style = styles.Fallback
			}
			it, err := lexer.Tokenise(nil, content)
			if err != nil {
				return "", false, err
			}
			var buf bytes.Buffer
			formatter := chromahtml.New(chromahtml.WithClasses(false))
			if err := formatter.Format(&buf, style, it); err != nil {
				return "", false, err
			}
			return buf.String(), true, nil
		},
		Reverse: func(node *html.Node) (*duplex.FenceSource, bool, error) {
			var raw, lang, fence string
			found := false
			for _, a := range node.Attr {
				switch a.Key {
				case "data-raw":
					raw = a.Val
					found = true
				case "data-lang":
					lang = a.Val
				case "data-mark":
					fence = a.Val
				}
			}
			if !found {
				return nil, false, nil
			}
			return &duplex.FenceSource{Content: raw, Lang: lang, Fence: fence}, true, nil
		},
	}
}
