// reverse.go reconstructs Markdown from a rendered, possibly edited,
// HTML tree. Provenance attributes win when present; canonical syntax
// is the fallback for nodes a downstream editor created or rewrote.
package duplex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/dom"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var reExtraNewlines = regexp.MustCompile(`\n{3,}`)

// Reconstruct parses markup and rebuilds the Markdown source it was
// rendered from. Empty input yields an empty string.
func Reconstruct(markup string, opts Options) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("duplex: parse markup: %w", err)
	}
	root := dom.FindFirstNode(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Body
	})
	if root == nil {
		root = doc
	}
	return ReconstructNode(root, opts)
}

// ReconstructNode rebuilds Markdown from an already-parsed tree. The
// node itself is treated as a transparent root; its children are
// walked.
func ReconstructNode(node *html.Node, opts Options) (string, error) {
	r := &reverser{opts: opts}
	out, err := r.children(node, 0)
	if err != nil {
		return "", err
	}
	out = reExtraNewlines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), nil
}

type reverser struct {
	opts Options
}

func (r *reverser) children(n *html.Node, depth int) (string, error) {
	var sb strings.Builder
	for _, c := range dom.AllChildNodes(n) {
		s, err := r.node(c, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (r *reverser) node(n *html.Node, depth int) (string, error) {
	if depth > maxNestingDepth {
		return "", ErrNestingTooDeep
	}
	switch n.Type {
	case html.TextNode:
		return n.Data, nil
	case html.ElementNode:
		// handled below
	default:
		return "", nil // comments, doctypes
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		inner, err := r.children(n, depth)
		if err != nil {
			return "", err
		}
		mark := dom.GetAttributeOr(n, "data-mark", strings.Repeat("#", level))
		return mark + " " + strings.TrimSpace(inner) + "\n\n", nil

	case atom.P:
		inner, err := r.children(n, depth)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(inner) + "\n\n", nil

	case atom.Br:
		if mark, ok := findAttr(n, "data-mark"); ok {
			return mark + "\n", nil
		}
		if r.opts.LazyLinefeeds {
			// Every newline re-renders as a break, no spaces needed.
			return "\n", nil
		}
		return "  \n", nil

	case atom.Hr:
		return dom.GetAttributeOr(n, "data-mark", "---") + "\n\n", nil

	case atom.Strong, atom.B:
		return r.wrap(n, depth, "**")

	case atom.Em, atom.I:
		return r.wrap(n, depth, "*")

	case atom.Del, atom.S, atom.Strike:
		return r.wrap(n, depth, "~~")

	case atom.Code:
		text := textContent(n)
		if text == "" {
			return "", nil
		}
		if marker, ok := findAttr(n, "data-mark"); ok {
			return marker + text + marker, nil
		}
		return delimitCodeSpan(text), nil

	case atom.Pre:
		return r.fence(n)

	case atom.Blockquote:
		return r.blockquote(n, depth)

	case atom.Ul, atom.Ol:
		out, err := r.list(n, depth, 0)
		if err != nil {
			return "", err
		}
		return out + "\n", nil

	case atom.Table:
		return r.table(n, depth)

	case atom.A:
		return r.anchor(n, depth)

	case atom.Img:
		alt := dom.GetAttributeOr(n, "data-alt", dom.GetAttributeOr(n, "alt", ""))
		url := dom.GetAttributeOr(n, "data-url", dom.GetAttributeOr(n, "src", ""))
		return "![" + alt + "](" + url + ")", nil

	case atom.Input:
		// Task checkboxes are consumed by the list walker; a stray
		// control contributes nothing.
		return "", nil

	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Template:
		return "", nil
	}

	// A fence container produced by a plugin render.
	if _, ok := findAttr(n, "data-raw"); ok {
		return r.fence(n)
	}
	if r.opts.ImportForeign && !isTransparent(n.DataAtom) {
		b, err := htmltomarkdown.ConvertNode(n)
		if err != nil {
			return "", fmt.Errorf("duplex: import foreign element <%s>: %w", n.Data, err)
		}
		return "\n\n" + strings.TrimSpace(string(b)) + "\n\n", nil
	}
	// Unknown wrappers are transparent: children pass through.
	return r.children(n, depth)
}

// delimitCodeSpan wraps content in a backtick run one longer than the
// longest run inside it, padding with spaces when the content itself
// starts or ends with a backtick.
func delimitCodeSpan(content string) string {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	marker := strings.Repeat("`", longest+1)
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		content = " " + content + " "
	}
	return marker + content + marker
}

func isTransparent(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.Span, atom.Body, atom.Html, atom.Main,
		atom.Article, atom.Section:
		return true
	}
	return false
}

// wrap surrounds the reconstructed children with the provenance marker
// or the canonical one. Empty content yields no markers at all.
func (r *reverser) wrap(n *html.Node, depth int, canonical string) (string, error) {
	inner, err := r.children(n, depth)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(inner) == "" {
		return "", nil
	}
	marker := dom.GetAttributeOr(n, "data-mark", canonical)
	return marker + inner + marker, nil
}

// fence rebuilds a fenced code block. Precedence: plugin reverse, then
// the stored raw-source attribute (exact original bytes), then the text
// of the code child.
func (r *reverser) fence(n *html.Node) (string, error) {
	if p := r.opts.FencePlugin; p != nil && p.Reverse != nil {
		src, handled, err := p.Reverse(n)
		if err != nil {
			return "", err
		}
		if handled && src != nil {
			return formatFence(src.Fence, src.Lang, src.Content), nil
		}
	}
	if raw, ok := findAttr(n, "data-raw"); ok {
		fence := dom.GetAttributeOr(n, "data-mark", "```")
		lang := dom.GetAttributeOr(n, "data-lang", "")
		return formatFence(fence, lang, raw), nil
	}

	lang := ""
	content := ""
	code := dom.FindFirstNode(n, func(c *html.Node) bool {
		return c.DataAtom == atom.Code
	})
	if code != nil {
		content = textContent(code)
		lang = langFromClass(dom.GetAttributeOr(code, "class", ""))
	} else {
		content = textContent(n)
	}
	return formatFence("```", lang, strings.TrimSuffix(content, "\n")), nil
}

func formatFence(fence, lang, content string) string {
	if fence == "" {
		fence = "```"
	}
	return fence + lang + "\n" + content + "\n" + fence + "\n\n"
}

// langFromClass extracts "js" from a class list containing
// "language-js".
func langFromClass(class string) string {
	for _, c := range strings.Fields(class) {
		if rest, ok := strings.CutPrefix(c, "language-"); ok {
			return rest
		}
	}
	return ""
}

func (r *reverser) blockquote(n *html.Node, depth int) (string, error) {
	inner, err := r.children(n, depth)
	if err != nil {
		return "", err
	}
	inner = reExtraNewlines.ReplaceAllString(inner, "\n\n")
	marker := dom.GetAttributeOr(n, "data-mark", "> ")
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(inner), "\n") {
		if line == "" {
			sb.WriteString(strings.TrimRight(marker, " \t"))
		} else {
			sb.WriteString(marker)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

func (r *reverser) list(n *html.Node, depth, indent int) (string, error) {
	if depth > maxNestingDepth {
		return "", ErrNestingTooDeep
	}
	ordered := n.DataAtom == atom.Ol
	var sb strings.Builder
	idx := 0
	for _, li := range dom.AllChildNodes(n) {
		if li.DataAtom != atom.Li {
			continue
		}
		idx++
		canonical := "-"
		if ordered {
			canonical = strconv.Itoa(idx) + "."
		}
		marker := dom.GetAttributeOr(li, "data-mark", canonical)

		var inline, nested strings.Builder
		var checked *bool
		for _, c := range dom.AllChildNodes(li) {
			switch {
			case c.DataAtom == atom.Ul || c.DataAtom == atom.Ol:
				s, err := r.list(c, depth+1, indent+1)
				if err != nil {
					return "", err
				}
				nested.WriteString(s)
			case c.DataAtom == atom.Input &&
				strings.EqualFold(dom.GetAttributeOr(c, "type", ""), "checkbox"):
				v := hasAttr(c, "checked")
				checked = &v
			default:
				s, err := r.node(c, depth+1)
				if err != nil {
					return "", err
				}
				inline.WriteString(s)
			}
		}

		content := strings.TrimSpace(inline.String())
		if checked != nil {
			marker = "-" // task items always use the dash bullet
			box := "[ ] "
			if *checked {
				box = "[x] "
			}
			content = box + content
		}
		sb.WriteString(strings.Repeat("  ", indent))
		sb.WriteString(marker)
		sb.WriteString(" ")
		sb.WriteString(content)
		sb.WriteString("\n")
		sb.WriteString(nested.String())
	}
	return sb.String(), nil
}

func (r *reverser) table(n *html.Node, depth int) (string, error) {
	var header []string
	var aligns []string
	var rows [][]string

	var trs []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		for _, c := range dom.AllChildNodes(node) {
			if c.DataAtom == atom.Tr {
				trs = append(trs, c)
			} else if c.Type == html.ElementNode {
				collect(c)
			}
		}
	}
	collect(n)

	for _, tr := range trs {
		var cells []string
		var cellAligns []string
		isHeader := false
		for _, c := range dom.AllChildNodes(tr) {
			if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
				continue
			}
			if c.DataAtom == atom.Th {
				isHeader = true
			}
			inner, err := r.children(c, depth+1)
			if err != nil {
				return "", err
			}
			text := strings.Join(strings.Fields(strings.TrimSpace(inner)), " ")
			cells = append(cells, text)
			cellAligns = append(cellAligns, cellAlignment(c))
		}
		if len(cells) == 0 {
			continue
		}
		if isHeader && header == nil {
			header = cells
			aligns = cellAligns
		} else {
			rows = append(rows, cells)
		}
	}
	if header == nil {
		if len(rows) == 0 {
			return "", nil
		}
		header = rows[0]
		rows = rows[1:]
		aligns = make([]string, len(header))
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < len(header); i++ {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			sb.WriteString(" " + val + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(header)
	sb.WriteString("|")
	for i := range header {
		sep := "---"
		if i < len(aligns) {
			switch aligns[i] {
			case "center":
				sep = ":---:"
			case "right":
				sep = "---:"
			case "left":
				sep = ":---"
			}
		}
		sb.WriteString(" " + sep + " |")
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString("\n")
	return sb.String(), nil
}

// cellAlignment reads a column alignment from the stored attribute, an
// inline style, or an alignment class, in that order.
func cellAlignment(n *html.Node) string {
	if v, ok := findAttr(n, "data-align"); ok {
		return v
	}
	style := dom.GetAttributeOr(n, "style", "")
	for _, name := range []string{"center", "right", "left"} {
		if strings.Contains(style, "text-align:"+name) ||
			strings.Contains(style, "text-align: "+name) {
			return name
		}
	}
	class := dom.GetAttributeOr(n, "class", "")
	for _, name := range []string{"center", "right", "left"} {
		if strings.Contains(class, "align-"+name) {
			return name
		}
	}
	return ""
}

func (r *reverser) anchor(n *html.Node, depth int) (string, error) {
	inner, err := r.children(n, depth)
	if err != nil {
		return "", err
	}
	href := dom.GetAttributeOr(n, "href", "")
	url, hasStoredURL := findAttr(n, "data-url")
	if !hasStoredURL {
		url = href
	}
	display := strings.TrimSpace(inner)
	if stored, ok := findAttr(n, "data-text"); ok {
		// Prefer the original spelling over live (possibly cosmetically
		// edited) text.
		display = stored
		return "[" + display + "](" + url + ")", nil
	}
	if !hasAttr(n, "data-mark") && display == url {
		if hasStoredURL {
			return url, nil // a bare autolink we rendered
		}
		return "<" + url + ">", nil
	}
	return "[" + display + "](" + url + ")", nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for _, c := range dom.AllChildNodes(n) {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func findAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := findAttr(n, key)
	return ok
}
