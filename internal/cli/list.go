package cli

import (
	"github.com/spf13/cobra"

	"github.com/specvital/splitter/pkg/splitter"
)

func newListCommand(g *globalOptions) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List the test cases each test file declares",
		Long: `List runs discovery only: it prints every test file under path with its
detected framework and its test cases in output order. Nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd, inputBindings)
			if err != nil {
				return err
			}
			opts, err := cfg.SplitterOptions()
			if err != nil {
				return err
			}
			opts = append(opts, splitter.WithLogger(g.logger(cmd.ErrOrStderr())))

			files, err := splitter.New(opts...).List(cmd.Context(), pathArg(args))
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), jsonOut, g.verbose).Inventory(files)
		},
	}

	addInputFlags(cmd.Flags())
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the inventory as JSON")

	return cmd
}
