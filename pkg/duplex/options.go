// options.go defines the per-call configuration for Render and Reconstruct.
package duplex

import (
	"errors"

	"golang.org/x/net/html"
)

// maxNestingDepth bounds recursion through blockquotes and nested
// emphasis. Adversarial input past this depth fails with
// ErrNestingTooDeep instead of growing the stack.
const maxNestingDepth = 64

// ErrNestingTooDeep is returned when blockquotes or inline emphasis nest
// beyond the supported depth.
var ErrNestingTooDeep = errors.New("duplex: nesting too deep")

// FenceSource is the original-markdown form of a fenced block, as
// recovered by a fence plugin.
type FenceSource struct {
	Content string
	Lang    string
	Fence   string // fence marker, e.g. "```" or "~~~~"
}

// FencePlugin lets a caller take over rendering of fenced code blocks
// and recover their source during reconstruction. Both functions are
// optional. A handled=false return falls through to default handling;
// a non-nil error aborts the whole call and is returned to the caller
// unchanged.
//
// Plugins are passed per call and must not retain the nodes they are
// given.
type FencePlugin struct {
	Render  func(content, lang string) (markup string, handled bool, err error)
	Reverse func(node *html.Node) (src *FenceSource, handled bool, err error)
}

// Options configures a Render or Reconstruct call. The zero value
// renders plain HTML with no provenance attributes.
type Options struct {
	// FencePlugin overrides fenced-code rendering and reconstruction.
	FencePlugin *FencePlugin

	// InlineStyles emits style attributes instead of classes for
	// presentational hints such as table cell alignment.
	InlineStyles bool

	// ClassPrefix is prepended to generated class names. Defaults to
	// "md-".
	ClassPrefix string

	// Bidirectional tags every generated element with the literal
	// source token that produced it, so Reconstruct can restore the
	// author's original spelling.
	Bidirectional bool

	// LazyLinefeeds turns every single newline inside a paragraph into
	// a hard line break instead of requiring two trailing spaces.
	LazyLinefeeds bool

	// AllowUnsafeURLs disables the URL scheme allow-list.
	AllowUnsafeURLs bool

	// ImportForeign converts elements outside the generated vocabulary
	// through a generic HTML-to-markdown pass during Reconstruct,
	// instead of treating them as transparent wrappers. Useful when
	// reconstructing trees that had rich content pasted into them.
	ImportForeign bool
}

func (o Options) classPrefix() string {
	if o.ClassPrefix == "" {
		return "md-"
	}
	return o.ClassPrefix
}
