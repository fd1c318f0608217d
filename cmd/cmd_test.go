package cmd

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aip-heidelberg/codeeval/internal/conda"
	"github.com/aip-heidelberg/codeeval/internal/model"
)

func findCommand(t *testing.T, path ...string) *cobra.Command {
	t.Helper()

	cmd, _, err := GetRootCmd().Find(path)
	require.NoError(t, err)
	require.Equal(t, path[len(path)-1], cmd.Name())

	return cmd
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"setup"},
		{"setup", "history"},
		{"data", "build"},
		{"dataset", "fetch"},
		{"dataset", "list"},
		{"dataset", "show"},
		{"results", "show"},
		{"test"},
		{"config"},
		{"config", "set"},
		{"config", "reset"},
		{"version"},
	} {
		findCommand(t, path...)
	}
}

func TestSetupFlags(t *testing.T) {
	setup := findCommand(t, "setup")

	assert.NotNil(t, setup.Flags().Lookup("update-only"))
	assert.NotNil(t, setup.Flags().Lookup("skip-hooks"))
	assert.Contains(t, setup.Use, "[ENV_NAME]")
}

func TestApplySetting(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, cfg model.Config)
	}{
		{key: "env_name", value: "Experiments", check: func(t *testing.T, cfg model.Config) {
			assert.Equal(t, "Experiments", cfg.EnvName)
		}},
		{key: "cache_ttl_hours", value: "24", check: func(t *testing.T, cfg model.Config) {
			assert.Equal(t, 24, cfg.CacheTTLHours)
		}},
		{key: "cache_ttl_hours", value: "soon", wantErr: true},
		{key: "no_such_key", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := model.DefaultConfig()

			err := applySetting(&cfg, tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRootOpensMenuWithoutArgs(t *testing.T) {
	// Wired in init; the no-subcommand invocation must have a handler.
	require.NotNil(t, GetRootCmd().RunE)
}

func TestMenuSelectionDoesNotInheritFlags(t *testing.T) {
	setup := findCommand(t, "setup")

	// First selection: "Update Environment".
	resetFlags(setup)
	require.NoError(t, setup.ParseFlags([]string{"--update-only"}))
	require.True(t, setupUpdateOnly)

	// Second selection: plain "Setup Environment" must run all four steps.
	resetFlags(setup)
	require.NoError(t, setup.ParseFlags(nil))
	assert.False(t, setupUpdateOnly)
	assert.False(t, setup.Flags().Lookup("update-only").Changed)
}

func TestExitCodePropagatesToolExit(t *testing.T) {
	runErr := exec.Command("sh", "-c", "exit 5").Run()
	require.Error(t, runErr)

	toolErr := conda.NewToolError("conda run", []string{"pytest"}, "", runErr)
	assert.Equal(t, 5, exitCode(toolErr))

	assert.Equal(t, 1, exitCode(errors.New("plain failure")))

	// A tool that never started has no child exit code.
	notStarted := conda.NewToolError("conda", nil, "", errors.New("executable not found"))
	assert.Equal(t, 1, exitCode(notStarted))
}

func TestStatusMarker(t *testing.T) {
	assert.Equal(t, "ok     ", statusMarker(model.StatusOK))
	assert.Equal(t, "failed ", statusMarker(model.StatusFailed))
	assert.Equal(t, "skipped", statusMarker(model.StatusSkipped))
}
