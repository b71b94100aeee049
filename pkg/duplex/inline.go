// inline.go scans span-level syntax inside a block: code spans, images,
// links, autolinks, strong, emphasis, strikethrough, escapes, and hard
// line breaks. The scanner walks the text once, left to right; nested
// emphasis comes from recursively scanning the captured inner text.
package duplex

import "strings"

type parser struct {
	opts Options
}

// escapable is the punctuation a backslash can neutralize.
const escapable = "\\`*_{}[]()#+-.!~|><\""

func isEscapable(c byte) bool {
	return strings.IndexByte(escapable, c) >= 0
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// countRun returns the length of the run of c starting at s[i].
func countRun(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// scanInlines parses s into inline nodes. depth counts recursive
// re-scans of emphasis bodies and nested link text.
func (p *parser) scanInlines(s string, depth int) ([]Inline, error) {
	if depth > maxNestingDepth {
		return nil, ErrNestingTooDeep
	}

	var out []Inline
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &Text{Value: buf.String()})
			buf.Reset()
		}
	}
	// flushBreak trims the trailing spaces that triggered a hard break.
	flushBreak := func() {
		text := strings.TrimRight(buf.String(), " ")
		buf.Reset()
		if text != "" {
			out = append(out, &Text{Value: text})
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && isEscapable(s[i+1]):
			buf.WriteByte(s[i+1])
			i += 2

		case c == '`':
			open := countRun(s, i, '`')
			if close := findBacktickRun(s, i+open, open); close >= 0 {
				flush()
				out = append(out, &CodeSpan{
					Marker: s[i : i+open],
					Value:  s[i+open : close],
				})
				i = close + open
			} else {
				buf.WriteString(s[i : i+open])
				i += open
			}

		case c == '!' && i+1 < len(s) && s[i+1] == '[':
			alt, url, end, ok := parseBracketTarget(s, i+1)
			if !ok {
				buf.WriteByte(c)
				i++
				continue
			}
			flush()
			out = append(out, &Image{URL: url, Alt: alt})
			i = end

		case c == '[':
			text, url, end, ok := parseBracketTarget(s, i)
			if !ok {
				buf.WriteByte(c)
				i++
				continue
			}
			children, err := p.scanInlines(text, depth+1)
			if err != nil {
				return nil, err
			}
			flush()
			out = append(out, &Link{URL: url, Text: text, Children: children})
			i = end

		case c == 'h' && (i == 0 || isSpaceByte(s[i-1])) && hasURLPrefix(s[i:]):
			end := i
			for end < len(s) && !isSpaceByte(s[end]) && s[end] != '<' {
				end++
			}
			flush()
			out = append(out, &Autolink{URL: s[i:end]})
			i = end

		case (c == '*' || c == '_') && i+1 < len(s) && s[i+1] == c:
			inner := s[i+2:]
			if close := findDoubleClose(inner, c); close > 0 {
				children, err := p.scanInlines(inner[:close], depth+1)
				if err != nil {
					return nil, err
				}
				flush()
				out = append(out, &Strong{Marker: s[i : i+2], Children: children})
				i += 2 + close + 2
			} else {
				buf.WriteString(s[i : i+2])
				i += 2
			}

		case c == '*' || c == '_':
			inner := s[i+1:]
			if close := findSingleClose(inner, c); close > 0 {
				children, err := p.scanInlines(inner[:close], depth+1)
				if err != nil {
					return nil, err
				}
				flush()
				out = append(out, &Em{Marker: s[i : i+1], Children: children})
				i += 1 + close + 1
			} else {
				buf.WriteByte(c)
				i++
			}

		case c == '~' && i+1 < len(s) && s[i+1] == '~':
			inner := s[i+2:]
			if close := findDoubleClose(inner, '~'); close > 0 {
				children, err := p.scanInlines(inner[:close], depth+1)
				if err != nil {
					return nil, err
				}
				flush()
				out = append(out, &Del{Children: children})
				i += 2 + close + 2
			} else {
				buf.WriteString("~~")
				i += 2
			}

		case c == '\n':
			str := buf.String()
			switch {
			case strings.HasSuffix(str, "  "):
				flushBreak()
				out = append(out, &LineBreak{})
			case p.opts.LazyLinefeeds:
				flushBreak()
				out = append(out, &LineBreak{Lazy: true})
			default:
				buf.WriteByte('\n')
			}
			i++

		default:
			buf.WriteByte(c)
			i++
		}
	}
	flush()
	return out, nil
}

func hasURLPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// findBacktickRun returns the index of the next backtick run of exactly
// length n at or after i, or -1.
func findBacktickRun(s string, i, n int) int {
	for i < len(s) {
		if s[i] != '`' {
			i++
			continue
		}
		run := countRun(s, i, '`')
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

// skipCodeSpan advances past a code span opening at s[i]. An unclosed
// span only skips the opening run, leaving the rest to normal scanning.
func skipCodeSpan(s string, i int) int {
	n := countRun(s, i, '`')
	if close := findBacktickRun(s, i+n, n); close >= 0 {
		return close + n
	}
	return i + n
}

// findDoubleClose locates the closing "cc" pair for strong or
// strikethrough, skipping escapes and code spans so span content stays
// inert. Returns the offset of the closer, or -1.
func findDoubleClose(s string, c byte) int {
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == '`':
			i = skipCodeSpan(s, i)
		case s[i] == c && i+1 < len(s) && s[i+1] == c:
			return i
		default:
			i++
		}
	}
	return -1
}

// findSingleClose locates a lone closing c that is not part of a double
// run, so single emphasis never terminates inside a strong delimiter.
func findSingleClose(s string, c byte) int {
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			i += 2
		case s[i] == '`':
			i = skipCodeSpan(s, i)
		case s[i] == c:
			run := countRun(s, i, c)
			if run == 1 {
				return i
			}
			i += run
		default:
			i++
		}
	}
	return -1
}

// parseBracketTarget parses "[text](url)" starting at s[i] == '['.
// Bracket pairs inside the text are balanced; nesting a full link inside
// link text is not resolved here (the recursive inline scan handles it).
// Returns the raw text, the raw url, and the index just past ')'.
func parseBracketTarget(s string, i int) (text, url string, end int, ok bool) {
	if i >= len(s) || s[i] != '[' {
		return "", "", 0, false
	}
	level := 0
	j := i
	closeBracket := -1
	for j < len(s) {
		switch s[j] {
		case '\\':
			j++ // skip escaped char
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				closeBracket = j
			}
		}
		if closeBracket >= 0 {
			break
		}
		j++
	}
	if closeBracket < 0 || closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	k := closeBracket + 2
	for k < len(s) && s[k] != ')' && s[k] != '\n' {
		if s[k] == '\\' {
			k++
		}
		k++
	}
	if k >= len(s) || s[k] != ')' {
		return "", "", 0, false
	}
	return s[i+1 : closeBracket], strings.TrimSpace(s[closeBracket+2 : k]), k + 1, true
}
