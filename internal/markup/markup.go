package markup

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// DefaultFileHost is the wiki host that serves uploaded files
	DefaultFileHost = "scrapbox.io"
	// DefaultIndentWidth is the left margin in px per indent character
	DefaultIndentWidth = 20
	// DefaultViewerPath is the route internal references link to
	DefaultViewerPath = "viewer.html"
)

// Converter turns wiki text into an HTML fragment.
// A Converter is immutable once built and safe for concurrent use.
type Converter struct {
	proxyBase   string
	project     string
	fileHost    string
	indentWidth int
	viewerPath  string
	rules       []rule
}

// Option configures a Converter.
type Option func(*Converter)

// WithFileHost sets the wiki host whose file URLs get routed through the proxy.
func WithFileHost(host string) Option {
	return func(c *Converter) {
		c.fileHost = host
	}
}

// WithIndentWidth sets the margin in px emitted per leading whitespace character.
func WithIndentWidth(width int) Option {
	return func(c *Converter) {
		c.indentWidth = width
	}
}

// WithViewerPath sets the route used for internal references.
func WithViewerPath(path string) Option {
	return func(c *Converter) {
		c.viewerPath = path
	}
}

// New creates a converter for the given proxy base URL and project name
func New(proxyBase, project string, opts ...Option) *Converter {
	c := &Converter{
		proxyBase:   strings.TrimSuffix(proxyBase, "/"),
		project:     project,
		fileHost:    DefaultFileHost,
		indentWidth: DefaultIndentWidth,
		viewerPath:  DefaultViewerPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rules = c.inlineRules()
	return c
}

// Document is the result of rendering one page
type Document struct {
	Title string
	HTML  string
	// References holds internal page/tag titles in first-seen order
	References []string
}

// fence is the only state carried from one line to the next.
type fence struct {
	open   bool
	indent int
}

// Convert renders wiki text to HTML.
func (c *Converter) Convert(text string) string {
	return c.Render(text).HTML
}

// Render renders wiki text and collects the internal references it links to.
func (c *Converter) Render(text string) *Document {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	doc := &Document{Title: lines[0]}
	refs := newRefSet()

	var html strings.Builder
	html.WriteString("<h1>" + doc.Title + "</h1>")

	var f fence
	for _, line := range lines[1:] {
		f = c.writeLine(&html, f, line, refs)
	}
	if f.open {
		html.WriteString("</code></pre>")
	}

	doc.HTML = html.String()
	doc.References = refs.list
	return doc
}

// writeLine emits one body line and returns the fence state for the next line.
func (c *Converter) writeLine(html *strings.Builder, f fence, line string, refs *refSet) fence {
	indent, rest := splitIndent(line)
	level := runeCount(indent)

	if !f.open {
		if label, ok := strings.CutPrefix(rest, "code:"); ok && label != "" {
			margin := level * c.indentWidth
			fmt.Fprintf(html, `<div class="code-title" style="margin-left:%dpx">%s</div>`, margin, strings.TrimFunc(label, isSpace))
			fmt.Fprintf(html, `<pre class="code-block" style="margin-left:%dpx"><code>`, margin)
			return fence{open: true, indent: level}
		}
	}

	if f.open {
		if !isBlank(line) && level <= f.indent {
			// Closing line is rendered as ordinary content below
			html.WriteString("</code></pre>")
			f = fence{}
		} else {
			if isBlank(line) {
				html.WriteString("\n")
			} else {
				html.WriteString(dropRunes(indent, f.indent+1) + escapeCode(rest) + "\n")
			}
			return f
		}
	}

	if isBlank(line) {
		html.WriteString("<br>")
		return f
	}

	out := line
	for _, r := range c.rules {
		out = r.apply(out, refs)
	}

	indent, rest = splitIndent(out)
	switch {
	case indent != "":
		fmt.Fprintf(html, `<div class="indent" style="margin-left:%dpx">%s</div>`, runeCount(indent)*c.indentWidth, rest)
	case !strings.HasPrefix(out, "<h2"):
		html.WriteString("<p>" + out + "</p>")
	default:
		html.WriteString(out)
	}
	return f
}

var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeCode escapes the characters that would otherwise become markup
func escapeCode(s string) string {
	return codeEscaper.Replace(s)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}

// splitIndent splits a line into its leading whitespace and the remainder
func splitIndent(line string) (string, string) {
	rest := strings.TrimLeftFunc(line, isSpace)
	return line[:len(line)-len(rest)], rest
}

func isBlank(line string) bool {
	return strings.TrimFunc(line, isSpace) == ""
}

func runeCount(s string) int {
	return len([]rune(s))
}

// dropRunes removes the first n characters of s
func dropRunes(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	return string(r[n:])
}

type refSet struct {
	seen map[string]bool
	list []string
}

func newRefSet() *refSet {
	return &refSet{seen: make(map[string]bool)}
}

func (s *refSet) add(title string) {
	if s == nil || s.seen[title] {
		return
	}
	s.seen[title] = true
	s.list = append(s.list, title)
}
