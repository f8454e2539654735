package format

import (
	"strings"

	"ufofmt/internal/config"
)

// writer accumulates canonical XML output. Indentation and quoting come
// from the policy; line endings are always LF regardless of host platform.
type writer struct {
	buf    []byte
	policy *config.Policy
	level  int
}

func newWriter(p *config.Policy) *writer {
	return &writer{policy: p, buf: make([]byte, 0, 1024)}
}

func (w *writer) bytes() []byte { return w.buf }

func (w *writer) indentPush() { w.level++ }

func (w *writer) indentPop() {
	if w.level > 0 {
		w.level--
	}
}

// line writes one fully-formed line at the current indent level.
func (w *writer) line(s string) {
	for i := 0; i < w.level; i++ {
		for j := 0; j < w.policy.IndentCount; j++ {
			w.buf = append(w.buf, byte(w.policy.IndentChar))
		}
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '\n')
}

// declaration writes the XML declaration with the policy quote style.
func (w *writer) declaration() {
	q := string(w.policy.Quote())
	w.line("<?xml version=" + q + "1.0" + q + " encoding=" + q + "UTF-8" + q + "?>")
}

// attr is one name/value pair emitted in serializer-defined order.
type attr struct {
	name  string
	value string
}

// tag renders an element open tag with ordered attributes. selfClose
// renders <name .../> instead of <name ...>.
func (w *writer) tag(name string, attrs []attr, selfClose bool) {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	q := w.policy.Quote()
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.name)
		sb.WriteByte('=')
		sb.WriteByte(q)
		sb.WriteString(escapeAttr(a.value, q))
		sb.WriteByte(q)
	}
	if selfClose {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}
	w.line(sb.String())
}

// leaf renders <name>text</name> on one line.
func (w *writer) leaf(name, text string) {
	w.line("<" + name + ">" + escapeText(text) + "</" + name + ">")
}

func (w *writer) close(name string) {
	w.line("</" + name + ">")
}

// escapeText escapes character data for element content. A carriage return
// must leave as the reference &#13;: a raw CR byte is forbidden in canonical
// output, and an XML parser would normalize it to LF on the next pass.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '\r':
			sb.WriteString("&#13;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeAttr escapes an attribute value for the active quote character.
// CR, LF and tab become character references; attribute-value normalization
// would otherwise replace the raw characters with spaces on re-parse.
func escapeAttr(s string, quote byte) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r == '\r':
			sb.WriteString("&#13;")
		case r == '\n':
			sb.WriteString("&#10;")
		case r == '\t':
			sb.WriteString("&#9;")
		case r == '"' && quote == '"':
			sb.WriteString("&quot;")
		case r == '\'' && quote == '\'':
			sb.WriteString("&apos;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
