package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minFileWidth   = 8
	maxFileWidth   = 48
	heavySeparator = "="
	lightSeparator = "-"
	failedCell     = "failed"
)

// statsColumns are the per-kind count columns, in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var statsColumns = []struct {
	title string
	kinds []chatmd.BlockKind
}{
	{"HEADINGS", []chatmd.BlockKind{chatmd.BlockHeading}},
	{"PARAGRAPHS", []chatmd.BlockKind{chatmd.BlockParagraph, chatmd.BlockBlockquote}},
	{"LISTS", []chatmd.BlockKind{chatmd.BlockListItem}},
	{"CODE", []chatmd.BlockKind{chatmd.BlockCodeBlock}},
	{"BLOCKS", nil},
}

// FormatStatsTable formats per-document block counts as a table with a
// totals row. It returns "" when there are no documents.
func (s *Styles) FormatStatsTable(result *runner.Result) string {
	if result == nil || len(result.Documents) == 0 {
		return ""
	}

	fileWidth := len("FILE")
	for _, doc := range result.Documents {
		fileWidth = max(fileWidth, len(doc.Path))
	}
	fileWidth = min(max(fileWidth, minFileWidth), maxFileWidth)

	widths := make([]int, len(statsColumns))
	for i, col := range statsColumns {
		widths[i] = len(col.title)
	}
	total := fileWidth + len(statsColumns)*tablePadding
	for _, w := range widths {
		total += w
	}

	var b strings.Builder

	header := fmt.Sprintf("%-*s", fileWidth, "FILE")
	for i, col := range statsColumns {
		header += strings.Repeat(" ", tablePadding) + fmt.Sprintf("%*s", widths[i], col.title)
	}
	b.WriteString(s.TableHeader.Render(header) + "\n")
	b.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	for _, doc := range result.Documents {
		var cells []string
		if doc.Error != nil {
			cells = []string{s.Failure.Render(fmt.Sprintf("%*s", widths[len(widths)-1], failedCell))}
			cells = append(make([]string, len(widths)-1), cells...)
		} else {
			cells = s.countCells(chatmd.Count(doc.Blocks), len(doc.Blocks), widths)
		}
		b.WriteString(s.tableRow(truncateFilePath(doc.Path, fileWidth), fileWidth, cells, widths) + "\n")
	}

	b.WriteString(s.TableSeparator.Render(strings.Repeat(lightSeparator, total)) + "\n")
	totals := s.countCells(result.Stats.BlocksByKind, result.Stats.BlocksTotal, widths)
	b.WriteString(s.Bold.Render(s.tableRow("TOTAL", fileWidth, totals, widths)) + "\n")

	return b.String()
}

func (s *Styles) countCells(counts map[chatmd.BlockKind]int, blocks int, widths []int) []string {
	cells := make([]string, len(statsColumns))
	for i, col := range statsColumns {
		n := blocks
		if col.kinds != nil {
			n = 0
			for _, k := range col.kinds {
				n += counts[k]
			}
		}
		cells[i] = fmt.Sprintf("%*s", widths[i], strconv.Itoa(n))
	}
	return cells
}

func (s *Styles) tableRow(file string, fileWidth int, cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", fileWidth, file))
	for i, cell := range cells {
		b.WriteString(strings.Repeat(" ", tablePadding))
		if cell == "" {
			cell = strings.Repeat(" ", widths[i])
		}
		b.WriteString(cell)
	}
	return strings.TrimRight(b.String(), " ")
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
