// Package cli implements the specsplit command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specvital/splitter/internal/config"
)

// ErrRunHadFailures is returned when a run recorded at least one failure.
// The report has already been printed, so Execute only sets the exit code.
var ErrRunHadFailures = errors.New("run had failures")

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
}

// NewRootCommand builds the specsplit command tree.
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "specsplit",
		Short: "Split JavaScript and TypeScript test files into one file per test case",
		Long: `specsplit decomposes test files written with describe/it style runners
(Jest, Vitest, Mocha, Cypress, Playwright, Jasmine) into one file per test case.

Each output keeps the imports, shared declarations, hooks and group nesting of
its input, but exactly one test case. Outputs are numbered in document order
and written to a results/ directory next to each input unless --out is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "config file (default is ./.specsplit.yaml)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "only print errors")
	flags.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(
		newSplitCommand(g),
		newListCommand(g),
		newWatchCommand(g),
		newFrameworksCommand(),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrRunHadFailures) {
			fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		}
		return 1
	}
	return 0
}

// logger builds the text logger used for run diagnostics.
func (g *globalOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case g.verbose:
		level = slog.LevelDebug
	case g.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the configuration from the working directory (or
// --config) with the command's flags bound on top.
func (g *globalOptions) loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	opts := []config.LoaderOption{config.WithFlags(cmd.Flags(), bindings)}
	if g.configFile != "" {
		opts = append(opts, config.WithConfigFile(g.configFile))
	}
	return config.NewLoader(wd, opts...).Load()
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
