//go:build integration

package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Repository is a real-world project whose test files are split end to end.
type Repository struct {
	// Framework is the preset expected to be detected for most files.
	Framework string `yaml:"framework"`
	Name      string `yaml:"name"`
	Ref       string `yaml:"ref"`
	URL       string `yaml:"url"`
}

// ReposConfig holds the list of repositories to split.
type ReposConfig struct {
	Repositories []Repository `yaml:"repositories"`
}

// LoadRepos loads repository definitions from repos.yaml.
func LoadRepos() (*ReposConfig, error) {
	testDataDir, err := getTestDataDir()
	if err != nil {
		return nil, err
	}
	return loadReposFromPath(filepath.Join(testDataDir, "..", "repos.yaml"))
}

func loadReposFromPath(path string) (*ReposConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read repos config from %s: %w", path, err)
	}

	var config ReposConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal repos config: %w", err)
	}

	if err := validateReposConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid repos config: %w", err)
	}

	return &config, nil
}

func validateReposConfig(config *ReposConfig) error {
	if len(config.Repositories) == 0 {
		return errors.New("no repositories defined")
	}

	for i, repo := range config.Repositories {
		switch {
		case repo.Name == "":
			return fmt.Errorf("repository %d: name is required", i)
		case repo.URL == "":
			return fmt.Errorf("repository %s: url is required", repo.Name)
		case repo.Ref == "":
			return fmt.Errorf("repository %s: ref is required", repo.Name)
		case repo.Framework == "":
			return fmt.Errorf("repository %s: framework is required", repo.Name)
		}
	}
	return nil
}

func getTestDataDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(wd, "testdata"), nil
}
