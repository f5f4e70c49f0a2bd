package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// chromaStyleFor picks a highlight style matching the active theme
func chromaStyleFor(dark bool) *chroma.Style {
	name := "github"
	if dark {
		name = "monokai"
	}
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	return style
}

// HighlightSQL renders SQL with terminal syntax highlighting. On any
// highlighting failure the raw SQL is returned unstyled.
func HighlightSQL(sql string, dark bool) string {
	lexer := lexers.Get("sql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return sql
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, chromaStyleFor(dark), iterator); err != nil {
		return sql
	}
	return buf.String()
}

// Markdown renders a markdown document for the terminal at the given
// width. Used for documentation-type training entries.
func Markdown(content string, width int, dark bool) (string, error) {
	styleOption := glamour.WithStandardStyle("light")
	if dark {
		styleOption = glamour.WithStandardStyle("dark")
	}

	renderer, err := glamour.NewTermRenderer(
		styleOption,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
