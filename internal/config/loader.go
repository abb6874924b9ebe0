package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override (e.g., SPECSPLIT_OUTPUT_DIR).
	EnvPrefix = "SPECSPLIT"
	// FileName is the config file searched in the root directory.
	FileName = ".specsplit"
	// EnvFileName is the optional dotenv file loaded from the root directory.
	EnvFileName = ".env"
)

// keys lists every configuration key, used for defaults and env binding.
var keys = []string{
	"input.include",
	"input.exclude",
	"input.max_file_size",
	"output.dir",
	"output.separator",
	"output.dry_run",
	"split.framework",
	"split.only",
	"split.prune_hook_only_groups",
	"split.unwrap",
	"markers.tests",
	"markers.groups",
	"markers.hooks",
	"workers",
	"timeout",
}

// Loader loads configuration with the following priority (highest to lowest):
// 1. Command-line flags that were set explicitly
// 2. Environment variables (SPECSPLIT_*)
// 3. .env in the root directory (never overrides the real environment)
// 4. Config file (.specsplit.yaml in the root directory, or an explicit file)
// 5. Default values
type Loader struct {
	rootDir    string
	configFile string
	flags      *pflag.FlagSet
	bindings   map[string]string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigFile reads path instead of searching the root directory.
// A missing explicit file is an error.
func WithConfigFile(path string) LoaderOption {
	return func(l *Loader) {
		l.configFile = path
	}
}

// WithFlags binds flags to configuration keys. Bindings map config keys
// (e.g., "output.dir") to flag names (e.g., "out"); flags missing from the
// set are ignored.
func WithFlags(flags *pflag.FlagSet, bindings map[string]string) LoaderOption {
	return func(l *Loader) {
		l.flags = flags
		l.bindings = bindings
	}
}

// NewLoader creates a configuration loader for the given root directory.
func NewLoader(rootDir string, opts ...LoaderOption) *Loader {
	l := &Loader{rootDir: rootDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads, merges and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	if err := loadDotEnv(filepath.Join(l.rootDir, EnvFileName)); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SPECSPLIT_SPLIT_FRAMEWORK)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := l.bindFlags(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// A searched config file is optional; an explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (l *Loader) bindFlags(v *viper.Viper) error {
	if l.flags == nil {
		return nil
	}
	for key, name := range l.bindings {
		flag := l.flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("input.include", defaults.Input.Include)
	v.SetDefault("input.exclude", defaults.Input.Exclude)
	v.SetDefault("input.max_file_size", defaults.Input.MaxFileSize)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.separator", defaults.Output.Separator)
	v.SetDefault("output.dry_run", defaults.Output.DryRun)

	v.SetDefault("split.framework", defaults.Split.Framework)
	v.SetDefault("split.only", defaults.Split.Only)
	v.SetDefault("split.prune_hook_only_groups", defaults.Split.PruneHookOnlyGroups)
	v.SetDefault("split.unwrap", defaults.Split.Unwrap)

	v.SetDefault("markers.tests", defaults.Markers.Tests)
	v.SetDefault("markers.groups", defaults.Markers.Groups)
	v.SetDefault("markers.hooks", defaults.Markers.Hooks)

	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("timeout", defaults.Timeout)
}

// loadDotEnv exports the variables of path into the process environment
// without overriding variables that are already set. A missing file is fine.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
