// Package cli holds the interactive terminal surfaces: the no-argument main
// menu and the tabular renderers used by the dataset and results commands.
package cli
