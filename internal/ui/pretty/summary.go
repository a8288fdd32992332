package pretty

import (
	"fmt"
	"strings"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 documents rendered, 42 blocks (5 code blocks), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No documents found") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s rendered", stats.FilesRendered, plural(stats.FilesRendered, "document", "documents"))),
	}

	blocks := fmt.Sprintf("%d %s", stats.BlocksTotal, plural(stats.BlocksTotal, "block", "blocks"))
	if code := stats.BlocksByKind[chatmd.BlockCodeBlock]; code > 0 {
		blocks += s.Dim.Render(fmt.Sprintf(" (%d code %s)", code, plural(code, "block", "blocks")))
	}
	parts = append(parts, blocks)

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}
