// Package dataset builds, fetches and caches the evaluation datasets used
// by the code-translation experiments.
package dataset

import (
	"fmt"
	"sort"

	"github.com/aip-heidelberg/codeeval/internal/bop"
)

// CorpusSchema is the shape of datasets built from local .d corpora.
var CorpusSchema = bop.MustSchema(
	bop.String("id"),
	bop.String("d_with_params"),
)

// GeeksForGeeksSchema is the shape of the geeks4geeks translation dataset:
// one function per row, with a testbed per target language.
var GeeksForGeeksSchema = bop.MustSchema(
	bop.String("id"),
	bop.String("function_java"),
	bop.String("testbed_java"),
	bop.String("function_python"),
	bop.String("testbed_python"),
	bop.String("function_cpp"),
	bop.String("testbed_cpp"),
)

// ResultsSchema is the shape of evaluation results.json files.
var ResultsSchema = bop.MustSchema(
	bop.String("path"),
	bop.Bool("success"),
	bop.String("error"),
	bop.Int("correct"),
	bop.Int("total"),
	bop.String("description"),
)

// Info describes a named hub dataset.
type Info struct {
	// Name is the short registry name used on the command line
	Name string

	// HubID is the upstream dataset identifier
	HubID string

	// Split is the dataset split to download
	Split string

	// Description is a one-line summary for listings
	Description string

	// Schema is the expected column shape
	Schema *bop.Schema
}

var registry = map[string]Info{
	"geeks4geeks": {
		Name:        "geeks4geeks",
		HubID:       "AIP-Heidelberg/geeks4geeks_fixed",
		Split:       "train",
		Description: "GeeksforGeeks functions with Java/Python/C++ testbeds",
		Schema:      GeeksForGeeksSchema,
	},
}

// Lookup returns the registry entry for a dataset name.
func Lookup(name string) (Info, error) {
	info, ok := registry[name]
	if !ok {
		return Info{}, fmt.Errorf("unknown dataset %q (known: %v)", name, Names())
	}

	return info, nil
}

// Names returns the registered dataset names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
