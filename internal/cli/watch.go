package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/specvital/splitter/internal/watcher"
	"github.com/specvital/splitter/pkg/splitter"
)

func newWatchCommand(g *globalOptions) *cobra.Command {
	var debounceFlag = watcher.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Split, then re-split test files as they change",
		Long: `Watch performs a full split of the directory at path, then re-splits
each test file when it is created or modified. Changes are batched until the
tree has been quiet for the debounce period. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := pathArg(args)
			info, err := os.Stat(root)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("watch requires a directory: %s", root)
			}

			cfg, err := g.loadConfig(cmd, splitBindings)
			if err != nil {
				return err
			}
			opts, err := cfg.SplitterOptions()
			if err != nil {
				return err
			}
			logger := g.logger(cmd.ErrOrStderr())
			s := splitter.New(append(opts, splitter.WithLogger(logger))...)

			ctx := cmd.Context()
			out := newPrinter(cmd.OutOrStdout(), false, g.verbose)

			report, err := s.Run(ctx, root)
			if err != nil {
				return err
			}
			if err := out.Report(report); err != nil {
				return err
			}

			w, err := watcher.New(root, s, watcher.WithDebounce(debounceFlag), watcher.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			defer w.Stop()

			var mu sync.Mutex
			err = w.Start(ctx, func(files []string) {
				mu.Lock()
				defer mu.Unlock()

				report, err := s.RunFiles(ctx, w.Root(), files)
				if report != nil {
					_ = out.Report(report)
				}
				if err != nil {
					logger.Warn("re-split interrupted", "error", err)
				}
			})
			if err != nil {
				return err
			}

			logger.Info("watching for changes", "root", w.Root())
			<-ctx.Done()
			return nil
		},
	}

	addInputFlags(cmd.Flags())
	addOutputFlags(cmd.Flags())
	cmd.Flags().DurationVar(&debounceFlag, "debounce", watcher.DefaultDebounce, "quiet period before re-splitting")

	return cmd
}
