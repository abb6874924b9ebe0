package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specvital/splitter/pkg/domain"
	"github.com/specvital/splitter/pkg/parser/jsast"
)

// FileLeaves is the discovery outcome for one input file.
type FileLeaves struct {
	Path      string              `json:"path"`
	Framework string              `json:"framework,omitempty"`
	Leaves    []domain.LeafRecord `json:"leaves"`
	Err       *domain.SplitError  `json:"error,omitempty"`
}

// List runs discovery only: it finds the test files under root and the test
// cases each one declares, without extracting or writing anything.
func (s *Splitter) List(ctx context.Context, root string) ([]FileLeaves, error) {
	if err := s.checkFramework(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	rootDir := absRoot
	files := []string{absRoot}
	if info.IsDir() {
		var errs []error
		files, errs = s.discoverInputs(ctx, rootDir)
		for _, err := range errs {
			s.logger.Warn("discovery error", "error", err)
		}
	} else {
		rootDir = filepath.Dir(absRoot)
	}

	r := s.newRun(ctx, rootDir)
	result := make([]FileLeaves, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result = append(result, s.listFile(ctx, r, path))
	}
	return result, nil
}

func (s *Splitter) listFile(ctx context.Context, r *run, path string) FileLeaves {
	fl := FileLeaves{Path: r.relative(path), Leaves: []domain.LeafRecord{}}

	content, err := os.ReadFile(path)
	if err != nil {
		fl.Err = domain.NewFileError(fl.Path, domain.PhaseRead, err)
		return fl
	}

	markers, name, err := s.selectMarkers(ctx, r, path, content)
	fl.Framework = name
	if err != nil {
		fl.Err = domain.NewFileError(fl.Path, domain.PhaseDiscovery, err)
		return fl
	}

	tree, err := jsast.Parse(ctx, domain.DetectLanguage(path), content)
	if err != nil {
		if errors.Is(err, jsast.ErrSyntax) {
			err = fmt.Errorf("%w: %w", domain.ErrUnparsable, err)
		}
		fl.Err = domain.NewFileError(fl.Path, domain.PhaseParse, err)
		return fl
	}

	fl.Leaves = FindLeaves(tree.Root(), markers)
	return fl
}
