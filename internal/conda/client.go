// Package conda wraps the external Conda binary used to manage the
// project's environment.
package conda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client wraps conda invocations for a project directory.
type Client struct {
	CondaPath string // Path to the conda executable
	Dir       string // Project directory commands run in
	Stderr    io.Writer
	Stdout    io.Writer
}

// NewClient creates a conda client. An empty condaPath falls back to PATH
// lookup; a missing binary is only reported when a command runs.
func NewClient(condaPath string) *Client {
	if condaPath == "" {
		condaPath, _ = exec.LookPath("conda")
	}

	return &Client{
		CondaPath: condaPath,
		Stderr:    os.Stderr,
		Stdout:    os.Stdout,
	}
}

// NewClientForDir creates a client whose commands run in dir.
func NewClientForDir(condaPath, dir string) *Client {
	c := NewClient(condaPath)
	c.Dir = dir

	return c
}

// Command creates a conda command.
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) (*exec.Cmd, error) {
	if c.CondaPath == "" {
		return nil, ErrCondaNotFound
	}

	cmd := exec.CommandContext(ctx, c.CondaPath, args...)

	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	return cmd, nil
}

// Version returns the conda version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "--version")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.TrimPrefix(out, "conda")), nil
}

// EnvExists reports whether a named environment is registered.
func (c *Client) EnvExists(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "env", "list", "--json")
	if err != nil {
		return false, err
	}

	var listing struct {
		Envs []string `json:"envs"`
	}

	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		return false, fmt.Errorf("parsing conda env list output: %w", err)
	}

	for _, envPath := range listing.Envs {
		if filepath.Base(envPath) == name {
			return true, nil
		}
	}

	return false, nil
}

// CreateEnv creates a named environment from a manifest file.
func (c *Client) CreateEnv(ctx context.Context, name, file string) (string, error) {
	return c.run(ctx, "env", "create", "-n", name, "-f", file)
}

// UpdateEnv updates a named environment from one or more manifest files.
func (c *Client) UpdateEnv(ctx context.Context, name string, files []string, prune bool) (string, error) {
	args := []string{"env", "update", "-n", name}

	for _, f := range files {
		args = append(args, "-f", f)
	}

	if prune {
		args = append(args, "--prune")
	}

	return c.run(ctx, args...)
}

// Run executes a command inside the named environment via `conda run`.
// extraEnv entries ("KEY=value") are appended to the process environment.
func (c *Client) Run(ctx context.Context, env string, extraEnv []string, args ...string) (string, error) {
	runArgs := append([]string{"run", "-n", env}, args...)

	cmd, err := c.Command(ctx, runArgs...)
	if err != nil {
		return "", err
	}

	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), NewToolError("conda run", args, string(output), err)
	}

	return string(output), nil
}

// RunInteractive executes a command inside the named environment with
// stdio attached, propagating the child's exit error.
func (c *Client) RunInteractive(ctx context.Context, env string, extraEnv []string, args ...string) error {
	runArgs := append([]string{"run", "--no-capture-output", "-n", env}, args...)

	cmd, err := c.Command(ctx, runArgs...)
	if err != nil {
		return err
	}

	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return NewToolError("conda run", args, "", err)
	}

	return nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd, err := c.Command(ctx, args...)
	if err != nil {
		return "", err
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), NewToolError("conda", args, string(output), err)
	}

	return string(output), nil
}
