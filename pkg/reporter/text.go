package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/Torykoon/Safeagent/internal/ui/pretty"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer, opts.Width),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Documents) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No documents to render."))
		}
		return 0, nil
	}

	// A lone document is printed without a header.
	headers := len(result.Documents) > 1

	for i, doc := range result.Documents {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}
		if i > 0 {
			fmt.Fprintln(r.bw)
		}

		if doc.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(doc.Path),
				r.styles.Failure.Render(fmt.Sprintf("error: %v", doc.Error)),
			)
			continue
		}

		if headers {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(doc.Path, len(doc.Blocks)))
		}
		for _, block := range doc.Blocks {
			fmt.Fprintln(r.bw, r.styles.FormatBlock(block, r.width))
		}
	}

	if r.opts.ShowStats {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatStatsTable(result))
	}
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return reportedBlocks(result), nil
}
