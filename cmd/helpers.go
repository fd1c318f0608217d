package cmd

import (
	"fmt"
	"time"

	"github.com/aip-heidelberg/codeeval/internal/conda"
	"github.com/aip-heidelberg/codeeval/internal/config"
	"github.com/aip-heidelberg/codeeval/internal/dataset"
	"github.com/aip-heidelberg/codeeval/internal/model"
	"github.com/aip-heidelberg/codeeval/internal/project"
	"github.com/aip-heidelberg/codeeval/internal/store"
)

// loadConfig returns the saved configuration, falling back to defaults.
func loadConfig() (model.Config, error) {
	return config.Load()
}

// newCondaClient builds a conda client honoring a configured binary override.
func newCondaClient(cfg model.Config) *conda.Client {
	return conda.NewClient(cfg.CondaPath)
}

// discoverLayout inspects the working directory for the project manifests.
func discoverLayout(cfg model.Config) (*project.Layout, error) {
	layout, err := project.Discover(".", cfg)
	if err != nil {
		return nil, fmt.Errorf("inspecting project: %w", err)
	}

	return layout, nil
}

// newDatasetService wires the hub client and cache store together.
func newDatasetService(cfg model.Config) *dataset.Service {
	hub := dataset.NewHubClient(cfg.HubBaseURL, logger)
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour

	return dataset.NewService(store.GetDB(), hub, ttl, logger)
}
