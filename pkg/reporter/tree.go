package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/Torykoon/Safeagent/internal/ui/pretty"
	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// TreeReporter prints the block and span structure of each document.
type TreeReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTreeReporter creates a new tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	return &TreeReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, doc := range result.Documents {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}
		fmt.Fprintln(r.bw, r.documentTree(doc).String())
	}

	return reportedBlocks(result), nil
}

func (r *TreeReporter) documentTree(doc runner.Document) *tree.Tree {
	root := tree.Root(r.styles.FilePath.Render(doc.Path)).
		EnumeratorStyle(r.styles.Dim)

	if doc.Error != nil {
		return root.Child(r.styles.Failure.Render("error: " + doc.Error.Error()))
	}

	for _, block := range doc.Blocks {
		node := tree.Root(r.blockLabel(block))
		if !r.opts.Compact {
			for _, span := range block.Spans {
				node.Child(spanLabel(span))
			}
		}
		root.Child(node)
	}
	return root
}

// blockLabel describes a block on one line, e.g. `heading h2 "Title" :3`.
func (r *TreeReporter) blockLabel(block chatmd.Block) string {
	parts := []string{r.styles.Bold.Render(block.Kind.String())}

	switch block.Kind {
	case chatmd.BlockHeading:
		parts = append(parts, "h"+strconv.Itoa(block.Level))
	case chatmd.BlockListItem:
		switch {
		case block.Ordered:
			parts = append(parts, "ordered", block.Index)
		case block.Nested:
			parts = append(parts, "nested")
		}
	case chatmd.BlockCodeBlock:
		lines := 0
		if block.Body != "" {
			lines = strings.Count(block.Body, "\n") + 1
		}
		parts = append(parts, block.Language, fmt.Sprintf("%d lines", lines))
	}

	if r.opts.Compact && len(block.Spans) > 0 {
		parts = append(parts, strconv.Quote(block.Text()))
	}

	parts = append(parts, r.styles.Dim.Render(":"+strconv.Itoa(block.Line)))
	return strings.Join(parts, " ")
}

func spanLabel(span chatmd.Span) string {
	label := span.Kind.String() + " " + strconv.Quote(span.Text)
	if span.Kind == chatmd.SpanLink {
		label += " -> " + span.Href
	}
	return label
}
