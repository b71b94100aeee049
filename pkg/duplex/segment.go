// segment.go classifies document lines into blocks. Classification is
// per line run, first match wins: blank, heading, fence, thematic
// break, blockquote, list item, table, paragraph. Blockquote bodies are
// dedented and fed back through the whole segmenter.
package duplex

import (
	"regexp"
	"strings"
)

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})[ \t]+(.*)$`)
	reFenceOpen = regexp.MustCompile("^(`{3,}|~{3,})[ \t]*(.*)$")
	reListItem  = regexp.MustCompile(`^([ \t]*)([-*+]|\d+\.)[ \t]+(.*)$`)
	reTableSep  = regexp.MustCompile(`^\|?[\s\-:|]+\|?$`)
)

func (p *parser) segment(lines []string, depth int) ([]Block, error) {
	if depth > maxNestingDepth {
		return nil, ErrNestingTooDeep
	}

	var blocks []Block
	var para []string

	flushPara := func() error {
		if len(para) == 0 {
			return nil
		}
		children, err := p.scanInlines(strings.Join(para, "\n"), 0)
		para = nil
		if err != nil {
			return err
		}
		blocks = append(blocks, &Paragraph{Children: children})
		return nil
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			if err := flushPara(); err != nil {
				return nil, err
			}
			i++

		case reHeading.MatchString(line):
			if err := flushPara(); err != nil {
				return nil, err
			}
			m := reHeading.FindStringSubmatch(line)
			children, err := p.scanInlines(trimClosingHashes(m[2]), 0)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, &Heading{
				Level:    len(m[1]),
				Marker:   m[1],
				Children: children,
			})
			i++

		case reFenceOpen.MatchString(line):
			if err := flushPara(); err != nil {
				return nil, err
			}
			block, next := scanFence(lines, i)
			blocks = append(blocks, block)
			i = next

		case isThematicBreak(trimmed):
			if err := flushPara(); err != nil {
				return nil, err
			}
			blocks = append(blocks, &ThematicBreak{Marker: trimmed})
			i++

		case strings.HasPrefix(trimmed, ">"):
			if err := flushPara(); err != nil {
				return nil, err
			}
			block, next, err := p.scanBlockquote(lines, i, depth)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
			i = next

		case reListItem.MatchString(line):
			if err := flushPara(); err != nil {
				return nil, err
			}
			var items []listLine
			for i < len(lines) {
				m := reListItem.FindStringSubmatch(lines[i])
				if m == nil {
					break
				}
				items = append(items, listLine{
					level:   indentLevel(m[1]),
					marker:  m[2],
					ordered: m[2][0] >= '0' && m[2][0] <= '9',
					text:    m[3],
				})
				i++
			}
			consumed := 0
			for consumed < len(items) {
				list, n, err := p.buildList(items[consumed:], items[consumed].level, depth)
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, list)
				consumed += n
			}

		case strings.Contains(line, "|"):
			var run []string
			for i+len(run) < len(lines) {
				cand := lines[i+len(run)]
				if !strings.Contains(cand, "|") || strings.TrimSpace(cand) == "" {
					break
				}
				// Past the header and separator rows, any line that
				// classifies as a higher-precedence block ends the run.
				if len(run) >= 2 && outranksTableRow(cand) {
					break
				}
				run = append(run, cand)
			}
			table, ok := p.scanTable(run)
			if !ok {
				// Not a table after all: the accumulated lines stay
				// ordinary paragraph text.
				para = append(para, run...)
				i += len(run)
				continue
			}
			if err := flushPara(); err != nil {
				return nil, err
			}
			blocks = append(blocks, table)
			i += len(run)

		default:
			para = append(para, line)
			i++
		}
	}
	if err := flushPara(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// outranksTableRow reports whether a line matches a block rule that
// takes precedence over table classification, so a pipe inside a
// heading, fence opener, thematic break, blockquote, or list item does
// not get swallowed as a table body row.
func outranksTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return reHeading.MatchString(line) ||
		reFenceOpen.MatchString(line) ||
		isThematicBreak(trimmed) ||
		strings.HasPrefix(trimmed, ">") ||
		reListItem.MatchString(line)
}

// trimClosingHashes strips an optional decorative hash run from the end
// of a heading line ("## title ##" -> "title").
func trimClosingHashes(s string) string {
	s = strings.TrimRight(s, " \t")
	t := strings.TrimRight(s, "#")
	if t == s {
		return s
	}
	t = strings.TrimRight(t, " \t")
	if t == "" {
		// The line was hashes only; keep them as content.
		return s
	}
	return t
}

// isThematicBreak reports whether line is three or more of the same
// rule character, optionally space separated, and nothing else.
func isThematicBreak(line string) bool {
	var marker byte
	count := 0
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
		case c == '-' || c == '_' || c == '*':
			if marker == 0 {
				marker = c
			} else if c != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// scanFence consumes a fenced code block starting at lines[i]. The
// closing fence must repeat the opening character at least as many
// times and carry nothing else. An unterminated fence swallows the rest
// of the document.
func scanFence(lines []string, i int) (*CodeBlock, int) {
	m := reFenceOpen.FindStringSubmatch(lines[i])
	marker, lang := m[1], strings.TrimSpace(m[2])

	j := i + 1
	for ; j < len(lines); j++ {
		t := strings.TrimRight(lines[j], " \t")
		if t == "" || t[0] != marker[0] {
			continue
		}
		if run := countRun(t, 0, marker[0]); run >= len(marker) && run == len(t) {
			break
		}
	}
	end := j
	if j < len(lines) {
		j++ // consume the closing fence
	}
	return &CodeBlock{
		Marker: marker,
		Lang:   lang,
		Raw:    strings.Join(lines[i+1:end], "\n"),
	}, j
}

// scanBlockquote accumulates contiguous '>' lines, strips one marker
// level, and reparses the body through the whole pipeline.
func (p *parser) scanBlockquote(lines []string, i, depth int) (*Blockquote, int, error) {
	marker := ">"
	var inner []string
	j := i
	for ; j < len(lines); j++ {
		t := strings.TrimLeft(lines[j], " \t")
		if !strings.HasPrefix(t, ">") {
			break
		}
		body := t[1:]
		if j == i && strings.HasPrefix(body, " ") {
			marker = "> "
		}
		body = strings.TrimPrefix(body, " ")
		inner = append(inner, body)
	}
	children, err := p.segment(inner, depth+1)
	if err != nil {
		return nil, 0, err
	}
	return &Blockquote{Marker: marker, Children: children}, j, nil
}

type listLine struct {
	level   int
	marker  string
	ordered bool
	text    string
}

// indentLevel converts leading whitespace to nesting depth in 2-space
// units; a tab counts as one unit.
func indentLevel(ws string) int {
	cols := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			cols += 2
		} else {
			cols++
		}
	}
	return cols / 2
}

// buildList groups consecutive list lines at the same indentation into
// one list. Changing the bullet character alone does not start a new
// list; switching between ordered and unordered does. Deeper lines
// become a nested list under the preceding item.
func (p *parser) buildList(items []listLine, level, depth int) (*List, int, error) {
	if depth > maxNestingDepth {
		return nil, 0, ErrNestingTooDeep
	}
	list := &List{Ordered: items[0].ordered}
	i := 0
	for i < len(items) {
		it := items[i]
		if it.level < level {
			break
		}
		if it.level > level {
			sub, n, err := p.buildList(items[i:], it.level, depth+1)
			if err != nil {
				return nil, 0, err
			}
			if len(list.Items) == 0 {
				list.Items = append(list.Items, &ListItem{Marker: "-"})
			}
			last := list.Items[len(list.Items)-1]
			if last.Nested == nil {
				last.Nested = sub
			} else {
				last.Nested.Items = append(last.Nested.Items, sub.Items...)
			}
			i += n
			continue
		}
		if it.ordered != list.Ordered {
			break
		}
		item := &ListItem{Marker: it.marker}
		text := it.text
		if checked, rest, ok := parseTaskBox(text); ok {
			item.Checked = &checked
			text = rest
		}
		children, err := p.scanInlines(text, 0)
		if err != nil {
			return nil, 0, err
		}
		item.Children = children
		list.Items = append(list.Items, item)
		i++
	}
	return list, i, nil
}

// parseTaskBox recognizes a leading "[ ]" or "[x]" task marker.
func parseTaskBox(s string) (checked bool, rest string, ok bool) {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return false, s, false
	}
	switch s[1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return false, s, false
	}
	rest = strings.TrimPrefix(s[3:], " ")
	return checked, rest, true
}

// scanTable validates and parses an accumulated run of pipe lines. The
// run must hold at least a header and a separator row with a dash;
// otherwise ok is false and the caller keeps the lines as plain text.
func (p *parser) scanTable(run []string) (*Table, bool) {
	if len(run) < 2 {
		return nil, false
	}
	sep := strings.TrimSpace(run[1])
	if !reTableSep.MatchString(sep) || !strings.Contains(sep, "-") {
		return nil, false
	}

	headerCells := splitTableRow(run[0])
	aligns := make([]Alignment, len(headerCells))
	for i, cell := range splitTableRow(run[1]) {
		if i >= len(aligns) {
			break
		}
		aligns[i] = alignmentOf(cell)
	}

	table := &Table{Aligns: aligns}
	for _, cell := range headerCells {
		children, err := p.scanInlines(cell, 0)
		if err != nil {
			return nil, false
		}
		table.Header = append(table.Header, children)
	}
	for _, line := range run[2:] {
		cells := splitTableRow(line)
		row := make([][]Inline, len(headerCells))
		for i := range row {
			text := ""
			if i < len(cells) {
				text = cells[i]
			}
			children, err := p.scanInlines(text, 0)
			if err != nil {
				return nil, false
			}
			row[i] = children
		}
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

func splitTableRow(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	cells := strings.Split(s, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// alignmentOf derives a column alignment from its separator cell.
func alignmentOf(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	case left:
		return AlignLeft
	default:
		return AlignNone
	}
}
