package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version   string         `json:"version"`
	Documents []JSONDocument `json:"documents"`
	Summary   JSONSummary    `json:"summary"`
}

// JSONDocument is one rendered document.
type JSONDocument struct {
	Path   string         `json:"path"`
	Blocks []chatmd.Block `json:"blocks"`
	Error  string         `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	Documents int            `json:"documents"`
	Rendered  int            `json:"rendered"`
	Errored   int            `json:"errored"`
	Blocks    int            `json:"blocks"`
	ByKind    map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Blocks, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:   jsonSchemaVersion,
		Documents: make([]JSONDocument, 0),
		Summary:   JSONSummary{ByKind: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	for _, doc := range result.Documents {
		jd := JSONDocument{Path: doc.Path, Blocks: doc.Blocks}
		if jd.Blocks == nil {
			jd.Blocks = make([]chatmd.Block, 0)
		}
		if doc.Error != nil {
			jd.Error = doc.Error.Error()
		}
		output.Documents = append(output.Documents, jd)
	}

	stats := result.Stats
	output.Summary.Documents = len(result.Documents)
	output.Summary.Rendered = stats.FilesRendered
	output.Summary.Errored = stats.FilesErrored
	output.Summary.Blocks = stats.BlocksTotal
	for kind, n := range stats.BlocksByKind {
		output.Summary.ByKind[kind.String()] = n
	}

	return output
}
