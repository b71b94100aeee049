// fence.go renders fenced code blocks, dispatching to an optional
// caller-supplied plugin before falling back to <pre><code>.
package duplex

import "strings"

// emitCodeBlock writes a fenced code block. Plugin output is wrapped in
// a container div so provenance and raw source attach uniformly; plugin
// errors abort the render and reach the caller unchanged.
func (e *emitter) emitCodeBlock(sb *strings.Builder, b *CodeBlock) error {
	if p := e.opts.FencePlugin; p != nil && p.Render != nil {
		markup, handled, err := p.Render(b.Raw, b.Lang)
		if err != nil {
			return err
		}
		if handled {
			sb.WriteString(`<div class="`)
			sb.WriteString(escapeHTML(e.opts.classPrefix() + "fence"))
			sb.WriteString(`"`)
			e.fenceAttrs(sb, b)
			sb.WriteString(">")
			sb.WriteString(markup)
			sb.WriteString("</div>")
			return nil
		}
	}

	sb.WriteString("<pre")
	e.fenceAttrs(sb, b)
	sb.WriteString("><code")
	if b.Lang != "" {
		sb.WriteString(` class="language-`)
		sb.WriteString(escapeHTML(b.Lang))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	sb.WriteString(escapeHTML(b.Raw))
	sb.WriteString("\n</code></pre>")
	return nil
}

// fenceAttrs writes the provenance attributes for a fence: the literal
// opening marker, the language tag, and the untouched raw content.
func (e *emitter) fenceAttrs(sb *strings.Builder, b *CodeBlock) {
	if !e.opts.Bidirectional {
		return
	}
	sb.WriteString(` data-mark="`)
	sb.WriteString(escapeHTML(b.Marker))
	sb.WriteString(`"`)
	if b.Lang != "" {
		sb.WriteString(` data-lang="`)
		sb.WriteString(escapeHTML(b.Lang))
		sb.WriteString(`"`)
	}
	sb.WriteString(` data-raw="`)
	sb.WriteString(escapeHTML(b.Raw))
	sb.WriteString(`"`)
}
