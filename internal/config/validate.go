package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specvital/splitter/pkg/parser/framework"
	"github.com/specvital/splitter/pkg/splitter"
)

var (
	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid workers")

	// ErrEmptyInclude indicates that no input pattern is configured
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrUnknownFramework indicates a preset name that is not registered
	ErrUnknownFramework = errors.New("unknown framework")

	// ErrInvalidMarkers indicates marker overrides that cannot select test cases
	ErrInvalidMarkers = errors.New("invalid markers")

	// ErrInvalidLabelFilter indicates a label glob that does not compile
	ErrInvalidLabelFilter = errors.New("invalid label filter")

	// ErrInvalidTimeout indicates a negative run timeout
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Workers))
	}
	if cfg.Workers > splitter.MaxWorkers {
		errs = append(errs, fmt.Errorf("%w: workers cannot exceed %d, got %d", ErrInvalidWorkers, splitter.MaxWorkers, cfg.Workers))
	}
	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout cannot be negative, got %s", ErrInvalidTimeout, cfg.Timeout))
	}

	if err := validateInput(&cfg.Input); err != nil {
		errs = append(errs, err)
	}
	if err := validateSplit(&cfg.Split); err != nil {
		errs = append(errs, err)
	}
	if err := validateMarkers(cfg); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateInput(cfg *InputConfig) error {
	if len(cfg.Include) == 0 {
		return fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude)
	}
	for _, pattern := range cfg.Include {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%w: include pattern cannot be blank", ErrEmptyInclude)
		}
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size cannot be negative, got %d", cfg.MaxFileSize)
	}
	return nil
}

func validateSplit(cfg *SplitConfig) error {
	var errs []error

	name := cfg.Framework
	if name != "" && name != framework.FrameworkAuto && framework.DefaultRegistry().Find(name) == nil {
		errs = append(errs, fmt.Errorf("%w: %s (valid: auto, %s)",
			ErrUnknownFramework, name, strings.Join(framework.DefaultRegistry().Names(), ", ")))
	}

	if _, err := splitter.CompileLabelFilter(cfg.Only); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidLabelFilter, cfg.Only, err))
	}

	return errors.Join(errs...)
}

// validateMarkers checks the overrides merged onto the preset they will be
// applied to. Group or hook overrides alone keep the preset's test markers.
func validateMarkers(cfg *Config) error {
	overrides := cfg.MarkerOverrides()
	if overrides.IsZero() {
		return nil
	}

	name := cfg.Split.Framework
	if name == "" || name == framework.FrameworkAuto {
		name = framework.FrameworkJest
	}
	merged := overrides
	if def := framework.DefaultRegistry().Find(name); def != nil {
		merged = def.Markers.Merge(overrides)
	}
	merged.Unwrap = cfg.Split.Unwrap

	if len(merged.Tests) == 0 {
		return fmt.Errorf("%w: at least one test marker required", ErrInvalidMarkers)
	}
	if err := merged.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMarkers, err)
	}
	return nil
}
