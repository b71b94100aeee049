// emit.go turns the parsed block tree into an HTML fragment, attaching
// provenance attributes when the render is bidirectional.
package duplex

import (
	"fmt"
	"strings"
)

type emitter struct {
	opts Options
}

func (e *emitter) emit(blocks []Block) (string, error) {
	var sb strings.Builder
	for _, b := range blocks {
		if err := e.block(&sb, b); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func (e *emitter) block(sb *strings.Builder, b Block) error {
	switch b := b.(type) {
	case *Heading:
		fmt.Fprintf(sb, "<h%d", b.Level)
		e.mark(sb, b.Marker)
		sb.WriteString(">")
		if err := e.inlines(sb, b.Children); err != nil {
			return err
		}
		fmt.Fprintf(sb, "</h%d>", b.Level)

	case *Paragraph:
		sb.WriteString("<p>")
		if err := e.inlines(sb, b.Children); err != nil {
			return err
		}
		sb.WriteString("</p>")

	case *CodeBlock:
		return e.emitCodeBlock(sb, b)

	case *Blockquote:
		sb.WriteString("<blockquote")
		e.mark(sb, b.Marker)
		sb.WriteString(">")
		for _, child := range b.Children {
			if err := e.block(sb, child); err != nil {
				return err
			}
		}
		sb.WriteString("</blockquote>")

	case *List:
		return e.list(sb, b)

	case *Table:
		return e.table(sb, b)

	case *ThematicBreak:
		sb.WriteString("<hr")
		e.mark(sb, b.Marker)
		sb.WriteString(">")

	default:
		return fmt.Errorf("duplex: unknown block node %T", b)
	}
	return nil
}

func (e *emitter) list(sb *strings.Builder, l *List) error {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	sb.WriteString("<" + tag + ">")
	for _, item := range l.Items {
		sb.WriteString("<li")
		e.mark(sb, item.Marker)
		if item.Checked != nil && e.opts.Bidirectional {
			writeAttr(sb, "data-task", "true")
		}
		sb.WriteString(">")
		if item.Checked != nil {
			sb.WriteString(`<input type="checkbox"`)
			if *item.Checked {
				sb.WriteString(" checked")
			}
			sb.WriteString(" disabled> ")
		}
		if err := e.inlines(sb, item.Children); err != nil {
			return err
		}
		if item.Nested != nil {
			if err := e.list(sb, item.Nested); err != nil {
				return err
			}
		}
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
	return nil
}

func (e *emitter) table(sb *strings.Builder, t *Table) error {
	sb.WriteString("<table><thead><tr>")
	for i, cell := range t.Header {
		sb.WriteString("<th")
		e.alignAttrs(sb, t.Aligns, i)
		sb.WriteString(">")
		if err := e.inlines(sb, cell); err != nil {
			return err
		}
		sb.WriteString("</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for i, cell := range row {
			sb.WriteString("<td")
			e.alignAttrs(sb, t.Aligns, i)
			sb.WriteString(">")
			if err := e.inlines(sb, cell); err != nil {
				return err
			}
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return nil
}

var alignNames = map[Alignment]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

// alignAttrs writes the alignment of column i: a data attribute for
// reconstruction plus either an inline style or a prefixed class for
// presentation, per Options.InlineStyles.
func (e *emitter) alignAttrs(sb *strings.Builder, aligns []Alignment, i int) {
	if i >= len(aligns) || aligns[i] == AlignNone {
		return
	}
	name := alignNames[aligns[i]]
	if e.opts.Bidirectional {
		writeAttr(sb, "data-align", name)
	}
	if e.opts.InlineStyles {
		writeAttr(sb, "style", "text-align:"+name)
	} else {
		writeAttr(sb, "class", e.opts.classPrefix()+"align-"+name)
	}
}

func (e *emitter) inlines(sb *strings.Builder, nodes []Inline) error {
	for _, n := range nodes {
		if err := e.inline(sb, n); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) inline(sb *strings.Builder, n Inline) error {
	switch n := n.(type) {
	case *Text:
		sb.WriteString(escapeHTML(n.Value))

	case *Strong:
		sb.WriteString("<strong")
		e.mark(sb, n.Marker)
		sb.WriteString(">")
		if err := e.inlines(sb, n.Children); err != nil {
			return err
		}
		sb.WriteString("</strong>")

	case *Em:
		sb.WriteString("<em")
		e.mark(sb, n.Marker)
		sb.WriteString(">")
		if err := e.inlines(sb, n.Children); err != nil {
			return err
		}
		sb.WriteString("</em>")

	case *Del:
		sb.WriteString("<del")
		e.mark(sb, "~~")
		sb.WriteString(">")
		if err := e.inlines(sb, n.Children); err != nil {
			return err
		}
		sb.WriteString("</del>")

	case *CodeSpan:
		sb.WriteString("<code")
		e.mark(sb, n.Marker)
		sb.WriteString(">")
		sb.WriteString(escapeHTML(n.Value))
		sb.WriteString("</code>")

	case *Link:
		sb.WriteString("<a")
		writeAttr(sb, "href", sanitizeURL(n.URL, e.opts.AllowUnsafeURLs))
		e.mark(sb, "[")
		if e.opts.Bidirectional {
			writeAttr(sb, "data-text", n.Text)
			writeAttr(sb, "data-url", n.URL)
		}
		sb.WriteString(">")
		if err := e.inlines(sb, n.Children); err != nil {
			return err
		}
		sb.WriteString("</a>")

	case *Autolink:
		sb.WriteString("<a")
		writeAttr(sb, "href", sanitizeURL(n.URL, e.opts.AllowUnsafeURLs))
		if e.opts.Bidirectional {
			writeAttr(sb, "data-url", n.URL)
		}
		sb.WriteString(">")
		sb.WriteString(escapeHTML(n.URL))
		sb.WriteString("</a>")

	case *Image:
		sb.WriteString("<img")
		writeAttr(sb, "src", sanitizeURL(n.URL, e.opts.AllowUnsafeURLs))
		writeAttr(sb, "alt", n.Alt)
		e.mark(sb, "![")
		if e.opts.Bidirectional {
			writeAttr(sb, "data-alt", n.Alt)
			writeAttr(sb, "data-url", n.URL)
		}
		sb.WriteString(">")

	case *LineBreak:
		sb.WriteString("<br")
		if !n.Lazy {
			e.mark(sb, "  ")
		}
		sb.WriteString(">")

	default:
		return fmt.Errorf("duplex: unknown inline node %T", n)
	}
	return nil
}

// mark writes the provenance attribute holding the literal source token
// when the render is bidirectional. Purely additive metadata; never
// affects visual structure.
func (e *emitter) mark(sb *strings.Builder, token string) {
	if e.opts.Bidirectional {
		writeAttr(sb, "data-mark", token)
	}
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(escapeHTML(value))
	sb.WriteString(`"`)
}
