// Package setup orchestrates the contributor bootstrap sequence: create the
// Conda environment, run the project build/test script, update the
// environment from its manifests and install the commit hooks.
//
// The sequence is fail-fast: a step's non-zero exit aborts the run, and
// every step (including skipped ones) is recorded in the run history.
package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aip-heidelberg/codeeval/internal/model"
	"github.com/aip-heidelberg/codeeval/internal/project"
)

// outputTailBytes bounds how much step output is kept in a run record.
const outputTailBytes = 4096

// Tools is the subset of the conda client used by setup.
type Tools interface {
	EnvExists(ctx context.Context, name string) (bool, error)
	CreateEnv(ctx context.Context, name, file string) (string, error)
	UpdateEnv(ctx context.Context, name string, files []string, prune bool) (string, error)
	Run(ctx context.Context, env string, extraEnv []string, args ...string) (string, error)
}

// Recorder persists step records. The store satisfies it.
type Recorder interface {
	SaveRun(run *model.SetupRun) error
}

// Options configures a single setup invocation.
type Options struct {
	// EnvName is the environment to create or update
	EnvName string

	// Layout is the discovered project layout
	Layout *project.Layout

	// BuildScript is the build/test script run inside the environment
	BuildScript string

	// UpdateOnly skips environment creation and the build script
	UpdateOnly bool

	// SkipHooks skips pre-commit hook installation
	SkipHooks bool
}

// Orchestrator runs the bootstrap sequence.
type Orchestrator struct {
	tools Tools
	rec   Recorder
	log   *zap.Logger

	// Out receives progress lines; defaults to stdout.
	Out io.Writer
}

// New creates an orchestrator.
func New(tools Tools, rec Recorder, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{tools: tools, rec: rec, log: logger.Named("setup"), Out: os.Stdout}
}

type step struct {
	name string
	run  func(ctx context.Context) (output string, skipReason string, err error)
}

// Run executes the bootstrap sequence and returns the first step failure.
func (o *Orchestrator) Run(ctx context.Context, opts Options) error {
	runID := uuid.NewString()

	o.log.Info("starting setup",
		zap.String("run_id", runID),
		zap.String("env", opts.EnvName),
		zap.Bool("update_only", opts.UpdateOnly),
		zap.Bool("skip_hooks", opts.SkipHooks))

	steps := []step{
		{name: model.StepCreate, run: func(ctx context.Context) (string, string, error) {
			if opts.UpdateOnly {
				return "", "update-only run", nil
			}

			exists, err := o.tools.EnvExists(ctx, opts.EnvName)
			if err != nil {
				return "", "", err
			}

			if exists {
				return "", fmt.Sprintf("environment %q already exists", opts.EnvName), nil
			}

			out, err := o.tools.CreateEnv(ctx, opts.EnvName, opts.Layout.EnvFiles[0])
			return out, "", err
		}},
		{name: model.StepBuild, run: func(ctx context.Context) (string, string, error) {
			if opts.UpdateOnly {
				return "", "update-only run", nil
			}

			out, err := o.tools.Run(ctx, opts.EnvName, nil, opts.BuildScript)
			return out, "", err
		}},
		{name: model.StepUpdate, run: func(ctx context.Context) (string, string, error) {
			out, err := o.tools.UpdateEnv(ctx, opts.EnvName, opts.Layout.EnvFiles, true)
			return out, "", err
		}},
		{name: model.StepHooks, run: func(ctx context.Context) (string, string, error) {
			if opts.SkipHooks {
				return "", "hooks disabled", nil
			}

			if !opts.Layout.HasPreCommit {
				return "", "no .pre-commit-config.yaml in project", nil
			}

			out, err := o.tools.Run(ctx, opts.EnvName, nil, "pre-commit", "install")
			return out, "", err
		}},
	}

	for _, s := range steps {
		if err := o.runStep(ctx, runID, opts.EnvName, s); err != nil {
			return fmt.Errorf("setup step %s: %w", s.name, err)
		}
	}

	o.log.Info("setup finished", zap.String("run_id", runID))

	return nil
}

func (o *Orchestrator) runStep(ctx context.Context, runID, envName string, s step) error {
	started := time.Now()

	output, skipReason, err := s.run(ctx)

	rec := &model.SetupRun{
		ID:        uuid.NewString(),
		RunID:     runID,
		Step:      s.name,
		EnvName:   envName,
		StartedAt: started,
		Duration:  time.Since(started),
		Output:    tail(output),
	}

	switch {
	case err != nil:
		rec.Status = model.StatusFailed
		if rec.Output == "" {
			rec.Output = tail(err.Error())
		}

		fmt.Fprintf(o.Out, "✗ %s failed\n", s.name)
	case skipReason != "":
		rec.Status = model.StatusSkipped
		rec.Output = skipReason

		fmt.Fprintf(o.Out, "- %s skipped (%s)\n", s.name, skipReason)
	default:
		rec.Status = model.StatusOK

		fmt.Fprintf(o.Out, "✓ %s (%s)\n", s.name, rec.Duration.Round(time.Millisecond))
	}

	if recErr := o.rec.SaveRun(rec); recErr != nil {
		// Bookkeeping must not mask the step result.
		o.log.Warn("could not record setup step", zap.String("step", s.name), zap.Error(recErr))
	}

	o.log.Info("step finished",
		zap.String("run_id", runID),
		zap.String("step", s.name),
		zap.String("status", rec.Status),
		zap.Duration("duration", rec.Duration))

	return err
}

func tail(s string) string {
	if len(s) <= outputTailBytes {
		return s
	}

	return s[len(s)-outputTailBytes:]
}
