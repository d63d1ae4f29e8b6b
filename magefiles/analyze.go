//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/research-fields/pkg/types"
)

// Analyze builds the CLI and runs it on the default input, writing the
// analysis and a CSV summary under output/ and recording the run in data/.
func Analyze() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "analyze",
		"--output", filepath.Join("output", types.DefaultOutputFile),
		"--csv", filepath.Join("output", types.DefaultCSVFile),
		"--store",
	)
}

// Serve builds the CLI and serves the analysis written by Analyze.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve",
		"--results", filepath.Join("output", types.DefaultOutputFile),
	)
}
