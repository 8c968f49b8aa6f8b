// Package htmlscan is a minimal streaming HTML scanner. It turns raw
// markup into an ordered sequence of start-tag, end-tag and text events
// without validating well-formedness: courier pages are not
// schema-guaranteed, so malformed or unclosed tags are skipped
// best-effort and never abort the scan.
package htmlscan

import "strings"

// Attr is a single attribute on a start tag.
type Attr struct {
	Key string
	Val string
}

// Get returns the value of the named attribute, or "" when absent.
func Get(attrs []Attr, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Handler receives scan events in document order.
type Handler interface {
	// StartTag is called for every opening tag. Self-closing tags
	// produce a StartTag immediately followed by an EndTag.
	StartTag(name string, attrs []Attr)
	// EndTag is called for every closing tag.
	EndTag(name string)
	// Text is called for character data between tags, with common
	// entities decoded. Whitespace is not trimmed.
	Text(data string)
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
)

// Scan walks the markup and emits events to the handler. It holds no
// state between calls and has no side effects beyond event emission.
func Scan(markup string, h Handler) {
	i := 0
	n := len(markup)
	for i < n {
		lt := strings.IndexByte(markup[i:], '<')
		if lt < 0 {
			emitText(markup[i:], h)
			return
		}
		if lt > 0 {
			emitText(markup[i:i+lt], h)
		}
		i += lt

		rest := markup[i:]
		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest, "-->")
			if end < 0 {
				return // unterminated comment, drop the remainder
			}
			i += end + len("-->")
		case strings.HasPrefix(rest, "<!"), strings.HasPrefix(rest, "<?"):
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				return
			}
			i += gt + 1
		case strings.HasPrefix(rest, "</"):
			i += scanEndTag(rest, h)
		case len(rest) > 1 && isNameByte(rest[1]):
			adv, name := scanStartTag(rest, h)
			i += adv
			// Script and style bodies may contain '<' freely; treat
			// them as raw text up to the matching close tag.
			if name == "script" || name == "style" {
				i += scanRawText(markup[i:], name, h)
			}
		default:
			// A stray '<' is plain text.
			emitText("<", h)
			i++
		}
	}
}

func emitText(data string, h Handler) {
	if data == "" {
		return
	}
	h.Text(entityReplacer.Replace(data))
}

// scanEndTag consumes "</name ...>" and returns the bytes consumed.
func scanEndTag(rest string, h Handler) int {
	j := 2
	for j < len(rest) && isNameByte(rest[j]) {
		j++
	}
	name := strings.ToLower(rest[2:j])
	gt := strings.IndexByte(rest[j:], '>')
	if gt < 0 {
		// Unterminated close tag: emit what we have and stop there.
		if name != "" {
			h.EndTag(name)
		}
		return len(rest)
	}
	if name != "" {
		h.EndTag(name)
	}
	return j + gt + 1
}

// scanStartTag consumes "<name attrs...>" and returns the bytes
// consumed along with the lowercased tag name.
func scanStartTag(rest string, h Handler) (int, string) {
	j := 1
	for j < len(rest) && isNameByte(rest[j]) {
		j++
	}
	name := strings.ToLower(rest[1:j])

	var attrs []Attr
	selfClosing := false
	for j < len(rest) {
		for j < len(rest) && isSpace(rest[j]) {
			j++
		}
		if j >= len(rest) {
			break
		}
		if rest[j] == '>' {
			j++
			goto done
		}
		if rest[j] == '/' {
			j++
			if j < len(rest) && rest[j] == '>' {
				selfClosing = true
				j++
				goto done
			}
			continue
		}

		// Attribute name.
		{
			start := j
			for j < len(rest) && rest[j] != '=' && rest[j] != '>' && rest[j] != '/' && !isSpace(rest[j]) {
				j++
			}
			key := strings.ToLower(rest[start:j])
			val := ""
			for j < len(rest) && isSpace(rest[j]) {
				j++
			}
			if j < len(rest) && rest[j] == '=' {
				j++
				for j < len(rest) && isSpace(rest[j]) {
					j++
				}
				if j < len(rest) && (rest[j] == '"' || rest[j] == '\'') {
					quote := rest[j]
					j++
					vstart := j
					for j < len(rest) && rest[j] != quote {
						j++
					}
					val = rest[vstart:j]
					if j < len(rest) {
						j++ // closing quote
					}
				} else {
					vstart := j
					for j < len(rest) && rest[j] != '>' && !isSpace(rest[j]) {
						j++
					}
					val = rest[vstart:j]
				}
			}
			if key != "" {
				attrs = append(attrs, Attr{Key: key, Val: val})
			}
		}
	}
	// Ran out of input inside the tag; emit it anyway.

done:
	if name != "" {
		h.StartTag(name, attrs)
		if selfClosing {
			h.EndTag(name)
		}
	}
	return j, name
}

// scanRawText consumes text up to "</name" (case-insensitive), emits it
// as a single text event followed by the end tag, and returns the bytes
// consumed.
func scanRawText(rest, name string, h Handler) int {
	lower := strings.ToLower(rest)
	closer := "</" + name
	end := strings.Index(lower, closer)
	if end < 0 {
		emitText(rest, h)
		return len(rest)
	}
	emitText(rest[:end], h)
	h.EndTag(name)
	gt := strings.IndexByte(rest[end:], '>')
	if gt < 0 {
		return len(rest)
	}
	return end + gt + 1
}

func isNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == ':'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
