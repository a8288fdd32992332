package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Width is the column width for rules and code panels in text output.
	// 0 uses the terminal width of Writer.
	Width int

	// Compact uses compact/minified output where applicable.
	Compact bool

	// ShowSummary appends a one-line summary to text output.
	ShowSummary bool

	// ShowStats appends a per-document block count table to text output.
	ShowStats bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}
