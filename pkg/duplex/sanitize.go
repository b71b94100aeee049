// sanitize.go implements HTML entity escaping and the URL scheme
// allow-list shared by the inline formatter and block emitters.
package duplex

import "strings"

// htmlEscaper covers the characters that matter in both text and
// attribute position.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// escapeHTML makes s safe for element text content and double-quoted
// attribute values.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// allowedSchemes are URL schemes passed through unchanged. Only
// data:image/ URLs are allowed from the data scheme; every other data
// payload is rejected.
var allowedSchemes = []string{"http:", "https:", "ftp:", "ftps:", "mailto:", "tel:"}

// sanitizeURL applies the scheme allow-list. Relative and fragment URLs
// have no scheme and pass through. A disallowed scheme collapses to "#"
// so the link stays inert.
func sanitizeURL(raw string, allowUnsafe bool) string {
	if allowUnsafe {
		return raw
	}
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	scheme := urlScheme(lower)
	if scheme == "" {
		return raw // relative path, fragment, or query
	}
	for _, ok := range allowedSchemes {
		if scheme == ok {
			return raw
		}
	}
	if strings.HasPrefix(lower, "data:image/") {
		return raw
	}
	return "#"
}

// urlScheme returns the leading "scheme:" of s in lowercase, or "" when
// s does not start with a scheme. Per RFC 3986 a scheme is a letter
// followed by letters, digits, '+', '-' or '.'.
func urlScheme(s string) string {
	if s == "" || !isAlpha(s[0]) {
		return ""
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return s[:i+1]
		case isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.':
			// still inside the scheme
		default:
			return ""
		}
	}
	return ""
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
