package framework

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
)

// ConfigScope is the directory tree governed by one runner config file.
type ConfigScope struct {
	ConfigPath string
	BaseDir    string
	Framework  string
}

// NewConfigScope creates a scope rooted at the config file's directory.
func NewConfigScope(configPath, framework string) *ConfigScope {
	return &ConfigScope{
		ConfigPath: configPath,
		BaseDir:    filepath.Dir(configPath),
		Framework:  framework,
	}
}

// Contains checks if filePath lies under the scope's base directory.
func (s *ConfigScope) Contains(filePath string) bool {
	if s == nil {
		return false
	}

	relPath, err := filepath.Rel(filepath.Clean(s.BaseDir), filepath.Clean(filePath))
	if err != nil {
		// Different volumes on Windows.
		return false
	}
	relPath = filepath.ToSlash(relPath)

	return relPath != ".." && !strings.HasPrefix(relPath, "../")
}

// Depth returns the directory depth of BaseDir (used for selecting nearest config).
func (s *ConfigScope) Depth() int {
	if s == nil || s.BaseDir == "" {
		return 0
	}

	baseDir := filepath.ToSlash(filepath.Clean(s.BaseDir))
	if baseDir == "." || baseDir == "/" {
		return 0
	}

	return strings.Count(baseDir, "/")
}

// ProjectScope aggregates the config scopes found under a run root.
type ProjectScope struct {
	Configs map[string]*ConfigScope
}

// NewProjectScope creates an empty project scope.
func NewProjectScope() *ProjectScope {
	return &ProjectScope{
		Configs: make(map[string]*ConfigScope),
	}
}

// AddConfig registers the scope of the config file at path.
func (ps *ProjectScope) AddConfig(path string, scope *ConfigScope) {
	ps.Configs[path] = scope
}

// Nearest returns the deepest scope containing filePath, or nil.
// Ties are broken by config path so the result does not depend on map order.
func (ps *ProjectScope) Nearest(filePath string) *ConfigScope {
	if ps == nil {
		return nil
	}

	paths := make([]string, 0, len(ps.Configs))
	for path := range ps.Configs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var best *ConfigScope
	for _, path := range paths {
		scope := ps.Configs[path]
		if !scope.Contains(filePath) {
			continue
		}
		if best == nil || scope.Depth() > best.Depth() {
			best = scope
		}
	}
	return best
}

// BuildProjectScope offers each config file name to the registered matchers
// and records a scope for the first framework that claims it.
// Paths no framework claims are ignored.
func (r *Registry) BuildProjectScope(ctx context.Context, configPaths []string) *ProjectScope {
	scope := NewProjectScope()

	for _, path := range configPaths {
		if name := r.ConfigOwner(ctx, filepath.Base(path)); name != "" {
			scope.AddConfig(path, NewConfigScope(path, name))
		}
	}

	return scope
}

// ConfigOwner returns the framework whose matchers claim filename as a config
// file, or "" when none does.
func (r *Registry) ConfigOwner(ctx context.Context, filename string) string {
	signal := Signal{
		Type:  SignalConfigFile,
		Value: filename,
	}

	for _, def := range r.All() {
		for _, matcher := range def.Matchers {
			if result := matcher.Match(ctx, signal); result.Confidence > 0 && !result.Negative {
				return def.Name
			}
		}
	}
	return ""
}
