package main

import (
	"fmt"

	"github.com/fwojciec/pagex"
)

// Run executes the blacklist check command.
func (c *BlacklistCheckCmd) Run(deps *Dependencies) error {
	for _, entry := range c.Entries {
		listed, err := deps.Blacklist.Contains(deps.Ctx, entry)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
			return err
		}
		state := "not listed"
		if listed {
			state = "listed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", entry, state)
	}
	return nil
}

// Run executes the blacklist add command.
func (c *BlacklistAddCmd) Run(deps *Dependencies) error {
	if err := deps.Blacklist.Append(deps.Ctx, c.List, c.Entry); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagex.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Added %s to %s\n", c.Entry, c.List)
	return nil
}
