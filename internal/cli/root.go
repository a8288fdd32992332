// Package cli provides the Cobra command structure for safeagent.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Torykoon/Safeagent/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root safeagent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "safeagent",
		Short: "Render TBM safety assistant answers for the terminal, JSON or HTML",
		Long: `safeagent renders the markdown answers produced by the TBM safety chat
assistant. Answers use a small line-oriented markdown subset: headings,
lists, blockquotes, rules, fenced code and inline bold, italic, code and
links. Each line becomes one display block; markup that does not match is
shown literally, so rendering never fails.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "", "colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
