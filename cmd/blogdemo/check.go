package main

import (
	"fmt"
	"github.com/spf13/cobra"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build the content snapshot and report what it contains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.content().Result()
			if err != nil {
				return wrapError(c.logger, err)
			}
			snap := res.Snapshot
			fmt.Fprintf(c.stdout, "ok: %d posts, %d categories, %d tags, %d routes (fingerprint %s)\n",
				len(snap.Posts()), len(snap.Categories()), len(snap.Tags()),
				len(snap.DynamicRoutes()), res.Fingerprint.Short())
			return nil
		},
	}
}
