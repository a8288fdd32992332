package runner

import "github.com/Torykoon/Safeagent/pkg/chatmd"

// Document is the outcome of rendering one input.
type Document struct {
	// Path is the input path, relative to the working directory when possible.
	Path string `json:"path"`

	// Blocks are the rendered display blocks in source order.
	Blocks []chatmd.Block `json:"blocks"`

	// Error is set if the document could not be read.
	Error error `json:"-"`
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of inputs found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of inputs rendered successfully.
	FilesRendered int

	// FilesErrored is the number of inputs that could not be read.
	FilesErrored int

	// BlocksTotal is the number of blocks across all rendered documents.
	BlocksTotal int

	// BlocksByKind counts blocks per kind.
	BlocksByKind map[chatmd.BlockKind]int
}

// Result is the overall runner result.
type Result struct {
	// Documents are ordered like the discovered inputs.
	Documents []Document

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any document failed to render.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{BlocksByKind: make(map[chatmd.BlockKind]int)}
}

func (r *Result) accumulate(doc Document) {
	r.Documents = append(r.Documents, doc)

	if doc.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesRendered++
	r.Stats.BlocksTotal += len(doc.Blocks)
	for kind, n := range chatmd.Count(doc.Blocks) {
		r.Stats.BlocksByKind[kind] += n
	}
}
