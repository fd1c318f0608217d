package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultEnvName, cfg.EnvName)
	assert.Equal(t, "environment.yml", cfg.EnvFile)
	assert.Equal(t, "environment-dev.yml", cfg.DevEnvFile)
	assert.Equal(t, "./build.sh", cfg.BuildScript)
	assert.Equal(t, "src", cfg.SourceRoot)
	assert.Equal(t, "tests", cfg.TestsDir)
	assert.NotEmpty(t, cfg.HubBaseURL)
}

func TestCachedDatasetFresh(t *testing.T) {
	now := time.Now()
	ds := &CachedDataset{FetchedAt: now.Add(-2 * time.Hour)}

	assert.True(t, ds.Fresh(0, now), "zero TTL never expires")
	assert.True(t, ds.Fresh(3*time.Hour, now))
	assert.False(t, ds.Fresh(time.Hour, now))
}
