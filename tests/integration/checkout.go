//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// checkoutMarker is written last and holds the checked-out commit, so an
// interrupted clone is never mistaken for a usable one.
const checkoutMarker = ".specsplit-checkout"

// ErrGitUnavailable is returned when no git binary is on PATH.
var ErrGitUnavailable = errors.New("integration: git not found on PATH")

// Checkout is a shallow clone of a corpus repository in the test cache.
type Checkout struct {
	Path   string
	Commit string
	Cached bool
}

// FetchRepo returns the cached checkout of repo at its pinned ref, cloning it
// first when the cache holds no complete checkout.
func FetchRepo(ctx context.Context, repo Repository) (*Checkout, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(testDataDir, "cache", checkoutDirName(repo))
	marker := filepath.Join(dir, checkoutMarker)

	if commit, err := os.ReadFile(marker); err == nil {
		return &Checkout{Path: dir, Commit: strings.TrimSpace(string(commit)), Cached: true}, nil
	}

	if _, err := exec.LookPath("git"); err != nil {
		return nil, ErrGitUnavailable
	}

	_ = os.RemoveAll(dir)
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	if _, err := git(ctx, "", "clone", "--quiet", "--depth=1", "--single-branch", "--branch="+repo.Ref, repo.URL, dir); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("clone %s@%s: %w", repo.Name, repo.Ref, err)
	}

	commit, err := git(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("resolve %s@%s: %w", repo.Name, repo.Ref, err)
	}
	if err := os.WriteFile(marker, []byte(commit+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write checkout marker: %w", err)
	}

	return &Checkout{Path: dir, Commit: commit}, nil
}

// git runs a non-interactive git command and returns its trimmed stdout.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// checkoutDirName keys the cache by name and ref, keeping only path-safe runes.
func checkoutDirName(repo Repository) string {
	safe := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}
	return strings.Map(safe, repo.Name) + "@" + strings.Map(safe, repo.Ref)
}
