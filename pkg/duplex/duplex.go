// Package duplex renders a constrained Markdown dialect to HTML and
// reconstructs the original Markdown from that HTML after arbitrary
// downstream edits.
//
// The forward path segments the document into blocks, scans inline
// syntax into an explicit node tree, and emits HTML. With
// Options.Bidirectional set, every generated element carries the
// literal source token that produced it, so Reconstruct can restore
// the author's exact spelling ("_em_" stays "_em_", not "*em*").
// Reconstruct walks a parsed HTML tree bottom-up and falls back to
// canonical syntax wherever those markers are missing, which is what
// happens when a rich-text editor has rewritten parts of the tree.
//
// Both calls are pure functions of their arguments. Concurrent use
// from independent goroutines needs no locking.
package duplex

import "strings"

// Render converts markdown to an HTML fragment. Empty or
// whitespace-only input yields an empty string and no error. Ordinary
// malformed markdown never fails; only a fence plugin error or
// pathological nesting (ErrNestingTooDeep) does.
func Render(markdown string, opts Options) (string, error) {
	blocks, err := Parse(markdown, opts)
	if err != nil {
		return "", err
	}
	e := &emitter{opts: opts}
	return e.emit(blocks)
}

// Parse segments markdown into its block tree without emitting HTML.
func Parse(markdown string, opts Options) ([]Block, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}
	p := &parser{opts: opts}
	norm := strings.ReplaceAll(markdown, "\r\n", "\n")
	return p.segment(strings.Split(norm, "\n"), 0)
}
