package model

// DefaultEnvName is the Conda environment used when no name is given,
// matching `setup [ENV_NAME]` defaulting behavior.
const DefaultEnvName = "CodeEvaluation"

// Config holds the application configuration
type Config struct {
	// EnvName is the Conda environment managed by setup
	EnvName string `json:"env_name"`

	// CondaPath overrides the conda binary found on PATH
	CondaPath string `json:"conda_path,omitempty"`

	// EnvFile is the base environment manifest
	EnvFile string `json:"env_file"`

	// DevEnvFile is the development-only environment manifest
	DevEnvFile string `json:"dev_env_file"`

	// BuildScript is the project build/test script run during setup
	BuildScript string `json:"build_script"`

	// SourceRoot is the directory added to PYTHONPATH for test runs
	SourceRoot string `json:"source_root"`

	// TestsDir is the directory holding the test suite
	TestsDir string `json:"tests_dir"`

	// HubBaseURL is the dataset hub API endpoint
	HubBaseURL string `json:"hub_base_url"`

	// CacheTTLHours is how long cached datasets stay fresh; 0 disables expiry
	CacheTTLHours int `json:"cache_ttl_hours"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		EnvName:       DefaultEnvName,
		EnvFile:       "environment.yml",
		DevEnvFile:    "environment-dev.yml",
		BuildScript:   "./build.sh",
		SourceRoot:    "src",
		TestsDir:      "tests",
		HubBaseURL:    "https://datasets-server.huggingface.co",
		CacheTTLHours: 0,
	}
}
