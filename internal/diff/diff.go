package diff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/scrapfolio/internal/markup"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Format represents the output format for diffs
type Format int

const (
	// FormatTerminal renders the diff with glamour (default)
	FormatTerminal Format = iota
	// FormatPlain returns the bare unified diff
	FormatPlain
)

// blockEnds are the tags after which rendered HTML is broken into lines
var blockEnds = []string{"</h1>", "</h2>", "</p>", "</div>", "<br>", "</pre>", "<code>"}

// Generate converts a local draft and the live page text and diffs the HTML.
// The live page is the old side, the draft the new side.
func Generate(conv *markup.Converter, draftPath, liveText, title string, format Format) (string, error) {
	draft, err := os.ReadFile(draftPath)
	if err != nil {
		return "", fmt.Errorf("failed to read draft: %w", err)
	}

	liveHTML := SplitBlocks(conv.Convert(liveText))
	draftHTML := SplitBlocks(conv.Convert(string(draft)))

	unified := Unified(title+".html", liveHTML, filepath.Base(draftPath)+".html", draftHTML)

	switch format {
	case FormatPlain:
		return unified, nil
	case FormatTerminal:
		return render(unified), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}
}

// Unified returns the unified diff between two texts, empty when they match
func Unified(oldName, oldText, newName, newText string) string {
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits))
}

// SplitBlocks puts every block-level element of rendered HTML on its own line
// so diffs stay readable.
func SplitBlocks(html string) string {
	for _, end := range blockEnds {
		html = strings.ReplaceAll(html, end, end+"\n")
	}
	if !strings.HasSuffix(html, "\n") {
		html += "\n"
	}
	return html
}

// render wraps the diff in a code fence and renders it for the terminal
func render(unified string) string {
	if unified == "" {
		return ""
	}

	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		// Fallback to plain diff if glamour fails
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}
