// Package runner renders many chat answer files concurrently.
package runner

import (
	"io"

	"github.com/Torykoon/Safeagent/pkg/config"
)

// StdinPath is the path argument that reads a document from Options.Stdin.
const StdinPath = "-"

// Options controls discovery and rendering of a batch of documents.
type Options struct {
	// Paths are files, directories or StdinPath. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ignore patterns.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions picks files out of directories. Files named explicitly
	// are rendered regardless of extension.
	Extensions []string

	// Ignore holds glob patterns, relative to WorkingDir, for files and
	// directories to skip. "**" matches any number of path segments.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent workers. 0 or negative uses runtime.NumCPU().
	Jobs int

	// MaxFileSize rejects files larger than this many bytes. 0 means no limit.
	MaxFileSize int64

	// Stdin supplies the document for StdinPath. Defaults to an empty reader.
	Stdin io.Reader
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
