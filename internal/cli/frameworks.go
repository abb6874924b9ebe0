package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specvital/splitter/pkg/parser/framework"

	// Register the built-in marker presets.
	_ "github.com/specvital/splitter/pkg/parser/strategies/all"
)

func newFrameworksCommand() *cobra.Command {
	var showMarkers bool

	cmd := &cobra.Command{
		Use:   "frameworks",
		Short: "List the registered marker presets",
		Long: `Frameworks lists the marker presets accepted by --framework, in the
order detection evaluates them. With --markers, the test, group and hook
callees of each preset are printed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			name := color.New(color.FgCyan, color.Bold)
			label := color.New(color.Faint)

			for _, def := range framework.DefaultRegistry().All() {
				name.Fprintf(w, "%-12s", def.Name)
				fmt.Fprintln(w, def.Description)
				if !showMarkers {
					continue
				}
				label.Fprint(w, "  tests:  ")
				fmt.Fprintln(w, strings.Join(def.Markers.Tests, " "))
				label.Fprint(w, "  groups: ")
				fmt.Fprintln(w, strings.Join(def.Markers.Groups, " "))
				label.Fprint(w, "  hooks:  ")
				fmt.Fprintln(w, strings.Join(def.Markers.Hooks, " "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showMarkers, "markers", "m", false, "print the callees of each preset")

	return cmd
}
