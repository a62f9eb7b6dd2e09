package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/pagex"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Datasets.FindDatasets(deps.Ctx, pagex.DatasetFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'pagex parse' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s/%s  [%s]  %d accepted, %d failed\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Request.Strategy,
			r.Request.FetchMode,
			bounds(r.Request),
			r.Accepted,
			r.Failed,
		)
	}

	return nil
}

func bounds(req pagex.ParseRequest) string {
	upper := "unbounded"
	if req.MaxChars != pagex.Unbounded {
		upper = strconv.Itoa(req.MaxChars)
	}
	return fmt.Sprintf("%d, %s", req.MinChars, upper)
}
