// Package config loads specsplit settings from defaults, .specsplit.yaml,
// .env, SPECSPLIT_* environment variables and command-line flags.
package config

import (
	"slices"
	"time"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/splitter"
)

// Config represents the complete specsplit configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Split   SplitConfig   `yaml:"split" mapstructure:"split"`
	Markers MarkersConfig `yaml:"markers" mapstructure:"markers"`
	// Workers is the number of files split concurrently; 0 uses GOMAXPROCS.
	Workers int           `yaml:"workers" mapstructure:"workers"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// InputConfig selects which files are split.
type InputConfig struct {
	Include     []string `yaml:"include" mapstructure:"include"`             // doublestar globs over root-relative paths
	Exclude     []string `yaml:"exclude" mapstructure:"exclude"`             // directory names or globs to skip
	MaxFileSize int64    `yaml:"max_file_size" mapstructure:"max_file_size"` // bytes
}

// OutputConfig controls where and how outputs are written.
type OutputConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`             // empty writes results/ next to each input
	Separator string `yaml:"separator" mapstructure:"separator"` // between file stem and number
	DryRun    bool   `yaml:"dry_run" mapstructure:"dry_run"`
}

// SplitConfig controls marker selection and extraction policy.
type SplitConfig struct {
	Framework           string   `yaml:"framework" mapstructure:"framework"` // "auto" or a registered preset
	Only                string   `yaml:"only" mapstructure:"only"`           // glob over test case labels
	PruneHookOnlyGroups bool     `yaml:"prune_hook_only_groups" mapstructure:"prune_hook_only_groups"`
	Unwrap              []string `yaml:"unwrap" mapstructure:"unwrap"`
}

// MarkersConfig overrides the marker sets of the selected preset.
// Empty lists keep the preset's values.
type MarkersConfig struct {
	Tests  []string `yaml:"tests" mapstructure:"tests"`
	Groups []string `yaml:"groups" mapstructure:"groups"`
	Hooks  []string `yaml:"hooks" mapstructure:"hooks"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Include:     slices.Clone(splitter.DefaultIncludePatterns),
			Exclude:     []string{},
			MaxFileSize: splitter.DefaultMaxFileSize,
		},
		Output: OutputConfig{},
		Split: SplitConfig{
			Framework: framework.FrameworkAuto,
			Unwrap:    []string{},
		},
		Markers: MarkersConfig{
			Tests:  []string{},
			Groups: []string{},
			Hooks:  []string{},
		},
		Workers: splitter.DefaultWorkers,
		Timeout: splitter.DefaultTimeout,
	}
}

// MarkerOverrides returns the configured marker sets, or the zero value when
// none is set.
func (c *Config) MarkerOverrides() domain.MarkerConfig {
	return domain.MarkerConfig{
		Tests:  slices.Clone(c.Markers.Tests),
		Groups: slices.Clone(c.Markers.Groups),
		Hooks:  slices.Clone(c.Markers.Hooks),
	}
}

// SplitterOptions converts the configuration into splitter options.
// The label filter is compiled here, so an invalid --only pattern fails early.
func (c *Config) SplitterOptions() ([]splitter.Option, error) {
	filter, err := splitter.CompileLabelFilter(c.Split.Only)
	if err != nil {
		return nil, err
	}

	opts := []splitter.Option{
		splitter.WithIncludePatterns(c.Input.Include),
		splitter.WithExcludePatterns(c.Input.Exclude),
		splitter.WithMaxFileSize(c.Input.MaxFileSize),
		splitter.WithOutputDir(c.Output.Dir),
		splitter.WithSeparator(c.Output.Separator),
		splitter.WithDryRun(c.Output.DryRun),
		splitter.WithFramework(c.Split.Framework),
		splitter.WithPruneHookOnlyGroups(c.Split.PruneHookOnlyGroups),
		splitter.WithWorkers(c.Workers),
		splitter.WithTimeout(c.Timeout),
	}
	if len(c.Split.Unwrap) > 0 {
		opts = append(opts, splitter.WithUnwrap(c.Split.Unwrap...))
	}
	if filter != nil {
		opts = append(opts, splitter.WithLabelFilter(filter))
	}
	if markers := c.MarkerOverrides(); !markers.IsZero() {
		opts = append(opts, splitter.WithMarkers(markers))
	}
	return opts, nil
}
