package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/fsutil"
)

// Runner renders discovered documents with a shared chatmd.Renderer.
type Runner struct {
	// Renderer turns document text into display blocks.
	Renderer *chatmd.Renderer
}

// New creates a Runner. A nil renderer uses chatmd defaults.
func New(renderer *chatmd.Renderer) *Runner {
	if renderer == nil {
		renderer = chatmd.New(chatmd.Options{})
	}
	return &Runner{Renderer: renderer}
}

// job is one document queued for a worker.
type job struct {
	index int
	path  string
}

// Run discovers documents under opts.Paths and renders them concurrently.
// Documents in the result follow discovery order regardless of which worker
// finished first. A document that cannot be read is reported in its
// Document.Error and does not stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	stdin := opts.Stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}

	workCh := make(chan job)
	docs := make([]*Document, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range workCh {
				if ctx.Err() != nil {
					return
				}
				doc := r.render(ctx, j.path, stdin, opts.MaxFileSize)
				doc.Path = displayPath(workDir, j.path)
				docs[j.index] = doc
			}
		}()
	}

feed:
	for i, p := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- job{index: i, path: p}:
		}
	}
	close(workCh)
	wg.Wait()

	for _, doc := range docs {
		if doc != nil {
			result.accumulate(*doc)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

// render reads and renders a single document.
func (r *Runner) render(ctx context.Context, path string, stdin io.Reader, maxSize int64) *Document {
	doc := &Document{}

	var (
		content []byte
		err     error
	)
	if path == StdinPath {
		content, err = io.ReadAll(stdin)
		if err != nil {
			err = fmt.Errorf("read stdin: %w", err)
		}
	} else {
		content, err = fsutil.ReadDocument(ctx, path, maxSize)
	}
	if err != nil {
		doc.Error = err
		return doc
	}
	if err := ctx.Err(); err != nil {
		doc.Error = err
		return doc
	}

	doc.Blocks = r.Renderer.Render(string(content))
	return doc
}

// displayPath shortens p relative to workDir when it lies beneath it.
func displayPath(workDir, p string) string {
	if p == StdinPath {
		return p
	}
	rel, err := filepath.Rel(workDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
