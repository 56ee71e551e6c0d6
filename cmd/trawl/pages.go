package main

import (
	"fmt"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	count, err := deps.Pages.CountPages(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d\n", count)
	return nil
}

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, version)
	return nil
}
