// node.go defines the block and inline node types produced by parsing.
package duplex

// Block is a top-level document node: heading, paragraph, fenced code,
// blockquote, list, table, or thematic break.
type Block interface {
	block()
}

// Inline is a span-level node inside a block: text, emphasis, code span,
// link, image, autolink, or hard line break.
type Inline interface {
	inline()
}

// Heading is an ATX heading, levels 1 through 6.
type Heading struct {
	Level    int
	Marker   string // the literal hash run, e.g. "##"
	Children []Inline
}

// Paragraph is a run of consecutive plain lines joined with newlines.
type Paragraph struct {
	Children []Inline
}

// CodeBlock is a fenced code block. Raw holds the unescaped content
// exactly as written between the fences.
type CodeBlock struct {
	Marker string // opening fence, e.g. "```" or "~~~~"
	Lang   string
	Raw    string
}

// Blockquote holds blocks parsed recursively from the dedented quote body.
type Blockquote struct {
	Marker   string // quote prefix including trailing whitespace, e.g. "> "
	Children []Block
}

// List is an ordered or unordered list. Mixed bullet characters at the
// same indentation stay in one list.
type List struct {
	Ordered bool
	Items   []*ListItem
}

// ListItem is a single list entry. Checked is nil for plain items and
// non-nil for task-list items. Nested holds a deeper list, if any.
type ListItem struct {
	Marker   string // the literal bullet, e.g. "-" or "3."
	Checked  *bool
	Children []Inline
	Nested   *List
}

// Alignment is a table column alignment derived from the separator row.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table is a pipe table with one header row, per-column alignment, and
// zero or more body rows. Rows are normalized to the header width.
type Table struct {
	Header []([]Inline)
	Aligns []Alignment
	Rows   [][]([]Inline)
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct {
	Marker string // the literal rule text, e.g. "---" or "- - -"
}

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*CodeBlock) block()     {}
func (*Blockquote) block()    {}
func (*List) block()          {}
func (*Table) block()         {}
func (*ThematicBreak) block() {}

// Text is a literal text run. Escaping happens at emission time.
type Text struct {
	Value string
}

// Strong is ** or __ emphasis.
type Strong struct {
	Marker   string // "**" or "__"
	Children []Inline
}

// Em is * or _ emphasis.
type Em struct {
	Marker   string // "*" or "_"
	Children []Inline
}

// Del is ~~ strikethrough.
type Del struct {
	Children []Inline
}

// CodeSpan is a backtick-delimited span. Value is not inline-parsed.
type CodeSpan struct {
	Marker string // the literal backtick run
	Value  string
}

// Link is [text](url). Text keeps the raw source between the brackets so
// the original spelling survives; Children is its parsed form.
type Link struct {
	URL      string
	Text     string
	Children []Inline
}

// Image is ![alt](url).
type Image struct {
	URL string
	Alt string
}

// Autolink is a bare http(s) URL promoted to a link.
type Autolink struct {
	URL string
}

// LineBreak is a hard break. Lazy marks breaks produced from a bare
// newline under Options.LazyLinefeeds rather than two trailing spaces.
type LineBreak struct {
	Lazy bool
}

func (*Text) inline()      {}
func (*Strong) inline()    {}
func (*Em) inline()        {}
func (*Del) inline()       {}
func (*CodeSpan) inline()  {}
func (*Link) inline()      {}
func (*Image) inline()     {}
func (*Autolink) inline()  {}
func (*LineBreak) inline() {}
