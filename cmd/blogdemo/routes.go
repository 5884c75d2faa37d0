package main

import (
	"fmt"
	"github.com/spf13/cobra"
)

func newRoutesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the dynamic routes of the content snapshot, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := c.content().Snapshot()
			if err != nil {
				return wrapError(c.logger, err)
			}
			for _, r := range snap.DynamicRoutes() {
				fmt.Fprintln(c.stdout, r)
			}
			return nil
		},
	}
}
