package model

import "time"

// Setup step names, in execution order.
const (
	StepCreate = "create"
	StepBuild  = "build"
	StepUpdate = "update"
	StepHooks  = "hooks"
)

// Run statuses.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// SetupRun records one executed (or skipped) setup step.
type SetupRun struct {
	// ID is a unique identifier for the step execution
	ID string `json:"id"`

	// RunID groups the steps of a single setup invocation
	RunID string `json:"run_id"`

	// Step is one of the Step* constants
	Step string `json:"step"`

	// EnvName is the environment the step ran against
	EnvName string `json:"env_name"`

	// Status is one of the Status* constants
	Status string `json:"status"`

	// StartedAt is when the step began
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock step duration
	Duration time.Duration `json:"duration"`

	// Output is the tail of the step's combined output
	Output string `json:"output,omitempty"`
}
