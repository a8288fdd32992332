// Package main is the entry point for the safeagent CLI.
package main

import (
	"errors"
	"os"

	"github.com/Torykoon/Safeagent/internal/cli"
	"github.com/Torykoon/Safeagent/internal/logging"
)

// Build-time variables set via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	// Failed documents are already shown by the reporter.
	if err != nil && !errors.Is(err, cli.ErrRenderFailures) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
