package cli

import (
	"maps"

	"github.com/spf13/pflag"
)

// inputBindings maps configuration keys to the flags selecting input files
// and markers.
var inputBindings = map[string]string{
	"input.include":                "include",
	"input.exclude":                "exclude",
	"split.framework":              "framework",
	"split.prune_hook_only_groups": "prune-hook-only",
	"split.unwrap":                 "unwrap",
	"workers":                      "workers",
	"timeout":                      "timeout",
}

// splitBindings extends inputBindings with the output flags.
var splitBindings = func() map[string]string {
	bindings := maps.Clone(inputBindings)
	bindings["output.dir"] = "out"
	bindings["output.separator"] = "separator"
	bindings["output.dry_run"] = "dry-run"
	bindings["split.only"] = "only"
	return bindings
}()

// addInputFlags registers the flags of inputBindings. Defaults are left empty
// so that unset flags never shadow the config file.
func addInputFlags(flags *pflag.FlagSet) {
	flags.StringP("framework", "f", "", "marker preset: auto, jest, vitest, mocha, cypress, playwright, jasmine")
	flags.StringSlice("include", nil, "doublestar glob selecting input files (repeatable)")
	flags.StringSlice("exclude", nil, "directory name or glob to skip (repeatable)")
	flags.Bool("prune-hook-only", false, "prune groups that only hold hooks")
	flags.StringSlice("unwrap", nil, "group callee replaced by its only test case (repeatable)")
	flags.IntP("workers", "w", 0, "files split concurrently (0 uses all CPUs)")
	flags.Duration("timeout", 0, "maximum duration of a run (default 5m)")
}

// addOutputFlags registers the output flags of splitBindings.
func addOutputFlags(flags *pflag.FlagSet) {
	flags.StringP("out", "o", "", "output directory mirroring the input tree (default results/ next to each input)")
	flags.String("separator", "", "separator between file stem and test case number")
	flags.Bool("dry-run", false, "compute outputs without writing them")
	flags.String("only", "", "only write test cases whose label matches this glob")
}
