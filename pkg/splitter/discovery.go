package splitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSkipPatterns contains directory names that are skipped by default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	".git",
	"vendor",
	"dist",
	".next",
	"coverage",
	".cache",
}

// DefaultIncludePatterns selects the conventional test file names of the
// supported runners.
var DefaultIncludePatterns = []string{
	"**/*.{spec,test,cy}.{js,jsx,ts,tsx,mjs,cjs}",
}

// discoverInputs walks rootDir and returns the absolute paths of the files
// matching the include patterns, sorted in walk order.
func (s *Splitter) discoverInputs(ctx context.Context, rootDir string) ([]string, []error) {
	skipSet := s.skipSet()

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if s.shouldSkipDir(path, rootDir, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !matchesAnyPattern(path, rootDir, s.options.IncludePatterns) {
			return nil
		}

		if s.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > s.options.MaxFileSize {
				s.logger.Debug("skipping oversized file", "path", path, "size", info.Size())
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

// discoverConfigFiles returns the framework config files under rootDir and in
// its ancestor directories, so tests below a project root still see the
// project's runner config.
func (s *Splitter) discoverConfigFiles(ctx context.Context, rootDir string) []string {
	registry := s.options.Registry
	skipSet := s.skipSet()
	var configFiles []string

	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if s.shouldSkipDir(path, rootDir, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}
		if registry.ConfigOwner(ctx, d.Name()) != "" {
			configFiles = append(configFiles, path)
		}
		return nil
	})

	for prev, dir := rootDir, filepath.Dir(rootDir); dir != prev; prev, dir = dir, filepath.Dir(dir) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && registry.ConfigOwner(ctx, entry.Name()) != "" {
				configFiles = append(configFiles, filepath.Join(dir, entry.Name()))
			}
		}
	}

	return configFiles
}

func (s *Splitter) skipSet() map[string]bool {
	patterns := make([]string, 0, len(DefaultSkipPatterns)+len(s.options.ExcludePatterns)+1)
	patterns = append(patterns, DefaultSkipPatterns...)
	for _, p := range s.options.ExcludePatterns {
		if !strings.Contains(p, "*") {
			patterns = append(patterns, p)
		}
	}
	outName := DefaultOutputDirName
	if s.options.OutputDir != "" {
		outName = filepath.Base(s.options.OutputDir)
	}
	patterns = append(patterns, outName)
	return buildSkipSet(patterns)
}

func (s *Splitter) shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if shouldSkipDir(path, rootPath, skipSet) {
		return true
	}
	if path == rootPath {
		return false
	}

	var globs []string
	for _, p := range s.options.ExcludePatterns {
		if strings.Contains(p, "*") {
			globs = append(globs, p)
		}
	}
	return len(globs) > 0 && matchesAnyPattern(path, rootPath, globs)
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}

	base := filepath.Base(path)
	return skipSet[base]
}

func matchesAnyPattern(path, rootPath string, patterns []string) bool {
	relPath, err := filepath.Rel(rootPath, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// SkipsDir reports whether discovery under rootDir skips the directory dir.
func (s *Splitter) SkipsDir(rootDir, dir string) bool {
	return s.shouldSkipDir(filepath.Clean(dir), filepath.Clean(rootDir), s.skipSet())
}

// IsInput reports whether discovery under rootDir would select path: it
// matches an include pattern and no directory between rootDir and path is
// skipped. Size limits are not checked.
func (s *Splitter) IsInput(rootDir, path string) bool {
	rootDir, path = filepath.Clean(rootDir), filepath.Clean(path)
	rel, err := filepath.Rel(rootDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	skipSet := s.skipSet()
	for dir := filepath.Dir(path); dir != rootDir && len(dir) > len(rootDir); dir = filepath.Dir(dir) {
		if s.shouldSkipDir(dir, rootDir, skipSet) {
			return false
		}
	}
	return matchesAnyPattern(path, rootDir, s.options.IncludePatterns)
}
