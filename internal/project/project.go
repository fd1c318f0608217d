// Package project discovers the layout of a CodeEvaluation checkout:
// environment manifests, pre-commit configuration and pytest settings.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/aip-heidelberg/codeeval/internal/encoding"
	"github.com/aip-heidelberg/codeeval/internal/model"
)

// Layout describes what was found in a project directory.
type Layout struct {
	Root string

	// EnvName is the name declared in the base environment manifest,
	// empty when the manifest has none.
	EnvName string

	// EnvFiles are the environment manifests present, base first.
	EnvFiles []string

	// HasPreCommit is true when .pre-commit-config.yaml exists and parses.
	HasPreCommit bool

	// HookRepos is the number of configured pre-commit hook repos.
	HookRepos int

	// SourceRoot is the directory put on PYTHONPATH for test runs.
	SourceRoot string

	// TestPaths are pytest's configured testpaths, falling back to the
	// configured tests directory.
	TestPaths []string
}

type envManifest struct {
	Name         string `yaml:"name"`
	Dependencies []any  `yaml:"dependencies"`
}

type preCommitConfig struct {
	Repos []struct {
		Repo string `yaml:"repo"`
	} `yaml:"repos"`
}

// Discover inspects root and returns its layout. A missing base environment
// manifest is an error; everything else is optional.
func Discover(root string, cfg model.Config) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	l := &Layout{Root: abs, SourceRoot: cfg.SourceRoot}

	basePath := filepath.Join(abs, cfg.EnvFile)

	data, err := os.ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("environment manifest %s: %w", cfg.EnvFile, err)
	}

	var manifest envManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.EnvFile, err)
	}

	l.EnvName = manifest.Name
	l.EnvFiles = []string{cfg.EnvFile}

	if encoding.FileExists(filepath.Join(abs, cfg.DevEnvFile)) {
		l.EnvFiles = append(l.EnvFiles, cfg.DevEnvFile)
	}

	if repos, ok := preCommitRepos(abs); ok {
		l.HasPreCommit = true
		l.HookRepos = repos
	}

	l.TestPaths = testPaths(abs, cfg)

	return l, nil
}

func preCommitRepos(root string) (int, bool) {
	data, err := os.ReadFile(filepath.Join(root, ".pre-commit-config.yaml"))
	if err != nil {
		return 0, false
	}

	var cfg preCommitConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return 0, false
	}

	return len(cfg.Repos), true
}

// testPaths reads pytest's testpaths from pytest.ini or setup.cfg. The two
// files use the same INI shape apart from the section name.
func testPaths(root string, cfg model.Config) []string {
	candidates := []struct {
		file    string
		section string
	}{
		{file: "pytest.ini", section: "pytest"},
		{file: "setup.cfg", section: "tool:pytest"},
	}

	for _, cand := range candidates {
		path := filepath.Join(root, cand.file)
		if !encoding.FileExists(path) {
			continue
		}

		f, err := ini.Load(path)
		if err != nil {
			continue
		}

		sec := f.Section(cand.section)
		if !sec.HasKey("testpaths") {
			continue
		}

		if paths := strings.Fields(sec.Key("testpaths").String()); len(paths) > 0 {
			return paths
		}
	}

	return []string{cfg.TestsDir}
}
