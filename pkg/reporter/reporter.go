// Package reporter writes rendered chat answers in text, JSON, HTML or tree form.
package reporter

import (
	"context"
	"fmt"

	"github.com/Torykoon/Safeagent/pkg/runner"
)

// Reporter formats and writes render results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of blocks reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	case FormatTree:
		return NewTreeReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// reportedBlocks counts the blocks of documents that rendered.
func reportedBlocks(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.BlocksTotal
}
