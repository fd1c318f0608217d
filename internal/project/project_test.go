package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aip-heidelberg/codeeval/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDiscoverFullLayout(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()

	writeFile(t, dir, "environment.yml", "name: CodeEvaluation\ndependencies:\n  - python=3.11\n  - polars\n")
	writeFile(t, dir, "environment-dev.yml", "dependencies:\n  - pytest\n  - pre-commit\n")
	writeFile(t, dir, ".pre-commit-config.yaml", "repos:\n  - repo: https://github.com/psf/black\n  - repo: https://github.com/pycqa/flake8\n")
	writeFile(t, dir, "pytest.ini", "[pytest]\ntestpaths = tests integration\n")

	l, err := Discover(dir, cfg)
	require.NoError(t, err)

	assert.Equal(t, "CodeEvaluation", l.EnvName)
	assert.Equal(t, []string{"environment.yml", "environment-dev.yml"}, l.EnvFiles)
	assert.True(t, l.HasPreCommit)
	assert.Equal(t, 2, l.HookRepos)
	assert.Equal(t, []string{"tests", "integration"}, l.TestPaths)
	assert.Equal(t, "src", l.SourceRoot)
}

func TestDiscoverMinimalLayout(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()

	writeFile(t, dir, "environment.yml", "name: CodeEvaluation\n")

	l, err := Discover(dir, cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"environment.yml"}, l.EnvFiles)
	assert.False(t, l.HasPreCommit)
	assert.Equal(t, []string{"tests"}, l.TestPaths, "falls back to configured tests dir")
}

func TestDiscoverSetupCfgTestPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()

	writeFile(t, dir, "environment.yml", "name: CodeEvaluation\n")
	writeFile(t, dir, "setup.cfg", "[tool:pytest]\ntestpaths = tests\n")

	l, err := Discover(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests"}, l.TestPaths)
}

func TestDiscoverMissingManifest(t *testing.T) {
	_, err := Discover(t.TempDir(), model.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment.yml")
}

func TestDiscoverBadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "environment.yml", "name: [unclosed\n")

	_, err := Discover(dir, model.DefaultConfig())
	assert.Error(t, err)
}
