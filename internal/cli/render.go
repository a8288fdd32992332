package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Torykoon/Safeagent/internal/configloader"
	"github.com/Torykoon/Safeagent/internal/logging"
	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/config"
	"github.com/Torykoon/Safeagent/pkg/fsutil"
	"github.com/Torykoon/Safeagent/pkg/langdetect"
	"github.com/Torykoon/Safeagent/pkg/reporter"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// outputFileMode is the mode for files written with --output.
const outputFileMode = 0o644

type renderFlags struct {
	format          string
	defaultLanguage string
	detectLanguage  bool
	ignore          []string
	extensions      []string
	noConfig        bool
	summary         bool
	stats           bool
	followSymlinks  bool
	maxSize         int64
}

func newRenderCommand() *cobra.Command {
	var cfg config.Config
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:     "render [paths...]",
		Aliases: []string{"r"},
		Short:   "Render chat answers",
		Long:    renderLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &cfg, flags)
		},
	}

	addRenderFlags(cmd, &cfg, flags)

	return cmd
}

const renderLongDescription = `Render chat answer files into display blocks.

By default, renders all .md, .markdown and .txt files in the current
directory and subdirectories. Pass "-" to read one answer from stdin.

Examples:
  safeagent render answer.md              # Styled terminal output
  safeagent render -                      # Render stdin
  safeagent render answers/ --format json # Block structure as JSON
  safeagent render a.md -f html -o a.html # HTML fragment written atomically
  safeagent render a.md --format tree     # Inspect blocks and spans
  safeagent render --detect-language .    # Guess languages of untagged code`

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json, html, tree")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.Width, "width", 0, "column width for text output (0 = terminal width)")
	cmd.Flags().BoolVar(&cfg.Compact, "compact", false, "compact JSON and HTML, collapsed tree")
	cmd.Flags().StringVar(&flags.defaultLanguage, "default-language", "", "label for code blocks without a language tag")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false, "guess the language of untagged code blocks")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to pick up from directories")
	cmd.Flags().BoolVar(&flags.noConfig, "no-config", false, "ignore discovered configuration files")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a one-line summary after text output")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a block count table after text output")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", 0, "skip files larger than this many bytes (0 = no limit)")
}

// cliConfig copies the flags the user actually set onto cfg so they
// override file and environment configuration.
func cliConfig(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) (*config.Config, error) {
	out := cfg.Clone()

	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		out.Format = config.OutputFormat(format)
	}
	if cmd.Flags().Changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		out.Color = color
	}
	if cmd.Flags().Changed("default-language") {
		out.DefaultLanguage = flags.defaultLanguage
	}
	if cmd.Flags().Changed("detect-language") {
		out.DetectLanguage = config.Bool(flags.detectLanguage)
	}
	if cmd.Flags().Changed("ignore") {
		out.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("extensions") {
		out.Extensions = flags.extensions
	}
	return out, nil
}

func runRender(cmd *cobra.Command, args []string, cfg *config.Config, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cfg.Jobs < 0 || cfg.Width < 0 || flags.maxSize < 0 {
		return fmt.Errorf("%w: --jobs, --width and --max-size must not be negative", ErrInvalidUsage)
	}

	cliCfg, err := cliConfig(cmd, cfg, flags)
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  flags.noConfig,
		IgnoreUserConfig:    flags.noConfig,
		IgnoreProjectConfig: flags.noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldDefaultLanguage, finalCfg.DefaultLanguage,
		logging.FieldDetectLanguage, finalCfg.DetectLanguageEnabled(),
	)

	rendererOpts := chatmd.Options{DefaultLanguage: finalCfg.DefaultLanguage}
	if finalCfg.DetectLanguageEnabled() {
		rendererOpts.DetectLanguage = langdetect.Func()
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		Ignore:         finalCfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		MaxFileSize:    flags.maxSize,
		Stdin:          cmd.InOrStdin(),
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(chatmd.New(rendererOpts)).Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	logger.Debug("render run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.BlocksTotal,
		logging.FieldCodeBlocks, result.Stats.BlocksByKind[chatmd.BlockCodeBlock],
	)

	for _, doc := range result.Documents {
		if doc.Error != nil {
			logger.Debug("document not rendered", logging.FieldPath, doc.Path, logging.FieldError, doc.Error)
		}
	}

	if err := writeReport(ctx, cmd.OutOrStdout(), finalCfg, flags, result); err != nil {
		return err
	}

	if result.HasFailures() {
		return ErrRenderFailures
	}
	return nil
}

// writeReport formats result to stdout, or atomically to cfg.Output.
func writeReport(ctx context.Context, stdout io.Writer, cfg *config.Config, flags *renderFlags, result *runner.Result) error {
	logger := logging.FromContext(ctx)

	var (
		buf bytes.Buffer
		out = stdout
	)
	color := cfg.Color
	if cfg.Output != "" {
		out = &buf
		if color != config.ColorAlways {
			color = config.ColorNever
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      out,
		Format:      reporter.Format(cfg.Format),
		Color:       color,
		Width:       cfg.Width,
		Compact:     cfg.Compact,
		ShowSummary: flags.summary,
		ShowStats:   flags.stats,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output == "" {
		return nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), outputFileMode)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if written {
		logger.Debug("wrote output", logging.FieldOutput, cfg.Output)
	} else {
		logger.Debug("output unchanged", logging.FieldOutput, cfg.Output)
	}
	return nil
}
