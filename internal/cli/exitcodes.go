package cli

import (
	"errors"
	"io/fs"

	"github.com/Torykoon/Safeagent/internal/configloader"
	"github.com/Torykoon/Safeagent/pkg/fsutil"
)

// Exit codes for safeagent.
const (
	// ExitSuccess indicates every document rendered.
	ExitSuccess = 0

	// ExitRenderFailures indicates at least one document could not be read.
	ExitRenderFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrRenderFailures is returned when one or more documents failed to render.
var ErrRenderFailures = errors.New("some documents could not be rendered")

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var verr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailures):
		return ExitRenderFailures
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &verr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
