package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/pagex"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	id := c.ID
	if id == "" {
		runs, err := deps.Datasets.FindDatasets(deps.Ctx, pagex.DatasetFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			err := pagex.NoDataError()
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
			return err
		}
		id = runs[0].ID
	}

	ds, err := deps.Datasets.FindDatasetByID(deps.Ctx, id)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	return exportDataset(deps, ds, c.Format, c.Dir)
}

// exportDataset writes ds in the named format and prints the paths
// written. dir defaults to output_dir.
func exportDataset(deps *Dependencies, ds *pagex.Dataset, name, dir string) error {
	format, err := pagex.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}
	exporter, ok := deps.Exporters[format]
	if !ok {
		err := pagex.Errorf(pagex.EINVALID, "no exporter for format %q", format)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	if dir == "" {
		dir = deps.Config.OutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	paths, err := exporter.Export(deps.Ctx, ds, dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", p)
	}
	return nil
}
