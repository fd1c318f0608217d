package conda

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCondaNotFound is returned when no conda binary could be located.
var ErrCondaNotFound = errors.New("conda executable not found (is Conda installed and on PATH?)")

// ToolError represents a failed external tool invocation.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	err    error
}

// NewToolError creates a ToolError wrapping the underlying exec error.
func NewToolError(tool string, args []string, stderr string, err error) *ToolError {
	return &ToolError{Tool: tool, Args: args, Stderr: stderr, err: err}
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s %s failed: %v", e.Tool, strings.Join(e.Args, " "), e.err)
	}

	return fmt.Sprintf("%s %s failed: %s", e.Tool, strings.Join(e.Args, " "), strings.TrimSpace(e.Stderr))
}

func (e *ToolError) Unwrap() error {
	return e.err
}

// ExitCode returns the child's exit code, or -1 when it did not run.
func (e *ToolError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
