package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
)

// Glyphs used for list markers and rules.
const (
	bulletGlyph = "•"
	nestedGlyph = "◦"
	ruleGlyph   = "─"
	quoteGlyph  = "│"
	nestIndent  = "  "
)

// FormatBlock renders a display block for the terminal, without a trailing
// newline. width bounds rules and code panels.
func (s *Styles) FormatBlock(block chatmd.Block, width int) string {
	switch block.Kind {
	case chatmd.BlockHeading:
		return s.headingStyle(block.Level).Render(chatmd.SpansText(block.Spans))
	case chatmd.BlockHorizontalRule:
		return s.Rule.Render(strings.Repeat(ruleGlyph, max(width, 1)))
	case chatmd.BlockBlockquote:
		return s.Quote.Render(quoteGlyph+" ") + s.FormatSpans(block.Spans)
	case chatmd.BlockListItem:
		return s.listMarker(block) + s.FormatSpans(block.Spans)
	case chatmd.BlockBlank:
		return ""
	case chatmd.BlockCodeBlock:
		return s.FormatCode(block.Language, block.Body, width)
	default:
		return s.FormatSpans(block.Spans)
	}
}

func (s *Styles) headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return s.Heading1
	case 2:
		return s.Heading2
	default:
		return s.Heading3
	}
}

func (s *Styles) listMarker(block chatmd.Block) string {
	switch {
	case block.Ordered:
		return s.Number.Render(block.Index+".") + " "
	case block.Nested:
		return nestIndent + s.Bullet.Render(nestedGlyph) + " "
	default:
		return s.Bullet.Render(bulletGlyph) + " "
	}
}

// FormatSpans renders inline spans in order.
func (s *Styles) FormatSpans(spans []chatmd.Span) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case chatmd.SpanBold:
			b.WriteString(s.Strong.Render(span.Text))
		case chatmd.SpanItalic:
			b.WriteString(s.Emphasis.Render(span.Text))
		case chatmd.SpanCode:
			b.WriteString(s.InlineCode.Render(span.Text))
		case chatmd.SpanLink:
			b.WriteString(s.Link.Render(span.Text))
			b.WriteString(s.Href.Render(" (" + span.Href + ")"))
		default:
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// FormatCode renders a code body inside a bordered panel under its language label.
func (s *Styles) FormatCode(language, body string, width int) string {
	panel := s.CodePanel
	// Border and padding take four columns.
	if inner := width - 4; inner > 0 && lipgloss.Width(body) > inner {
		panel = panel.Width(inner + 2)
	}
	return s.CodeLabel.Render(language) + "\n" + panel.Render(body)
}

// FormatFileHeader formats a document header for grouped output.
func (s *Styles) FormatFileHeader(path string, blockCount int) string {
	return s.FilePath.Render(path) + s.Dim.Render(fmt.Sprintf(" (%d %s)", blockCount, plural(blockCount, "block", "blocks")))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
