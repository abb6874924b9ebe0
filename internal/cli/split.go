package cli

import (
	"github.com/spf13/cobra"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/splitter"
)

func newSplitCommand(g *globalOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "split [path]",
		Short: "Write one file per test case",
		Long: `Split discovers test files under path (a directory or a single file,
default the current directory) and writes one file per test case.

Outputs are named after their input with the 1-based test case number before
the extension family: login.spec.ts becomes login1.spec.ts, login2.spec.ts, ...

Examples:
  # Split every test file below src/
  specsplit split src

  # Preview what would be written for Cypress specs
  specsplit split cypress/e2e --framework cypress --dry-run

  # Only extract login tests, unwrapping single-test context blocks
  specsplit split --only 'login*' --unwrap context --out split
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd, splitBindings)
			if err != nil {
				return err
			}
			opts, err := cfg.SplitterOptions()
			if err != nil {
				return err
			}

			progress := newProgressReporter(cmd.ErrOrStderr(), !g.quiet && !jsonOut)
			opts = append(opts,
				splitter.WithLogger(g.logger(cmd.ErrOrStderr())),
				splitter.WithProgress(progress.OnFile),
			)

			report, runErr := splitter.New(opts...).Run(cmd.Context(), pathArg(args))
			progress.Finish()
			if report == nil {
				return runErr
			}

			if err := newPrinter(cmd.OutOrStdout(), jsonOut, g.verbose).Report(report); err != nil {
				return err
			}
			return runResult(report, runErr)
		},
	}

	addInputFlags(cmd.Flags())
	addOutputFlags(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the run report as JSON")

	return cmd
}

// runResult maps a printed report to the command error.
func runResult(report *domain.RunReport, runErr error) error {
	if runErr != nil {
		return runErr
	}
	if report.HasFailures() {
		return ErrRunHadFailures
	}
	return nil
}
