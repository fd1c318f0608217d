// Package testrun executes the project's pytest suite inside the managed
// environment.
package testrun

import (
	"context"
	"fmt"
)

// Runner runs a command inside a named environment with stdio attached.
// The conda client satisfies it.
type Runner interface {
	RunInteractive(ctx context.Context, env string, extraEnv []string, args ...string) error
}

// Options configures a test invocation.
type Options struct {
	EnvName    string
	SourceRoot string   // exported as PYTHONPATH so tests import the package from source
	TestPaths  []string // default pytest targets when no extra args are given
	Extra      []string // passed through to pytest verbatim
}

// Run invokes pytest. Extra args replace the discovered test paths, so
// `codeeval test tests/test_bop.py -k schema` behaves like plain pytest.
func Run(ctx context.Context, runner Runner, opts Options) error {
	args := []string{"pytest"}

	if len(opts.Extra) > 0 {
		args = append(args, opts.Extra...)
	} else {
		args = append(args, opts.TestPaths...)
	}

	var extraEnv []string
	if opts.SourceRoot != "" {
		extraEnv = []string{"PYTHONPATH=" + opts.SourceRoot}
	}

	if err := runner.RunInteractive(ctx, opts.EnvName, extraEnv, args...); err != nil {
		return fmt.Errorf("pytest: %w", err)
	}

	return nil
}
