package main

import (
	"blogdemo/internal/build"
	"blogdemo/internal/index"
	"fmt"
	"github.com/spf13/cobra"
)

func newIndexCmd(c *cli) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the content snapshot and persist it to the bbolt index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("db") {
				db = c.cfg.Index.Path
			}
			res, err := c.content().Result()
			if err != nil {
				return wrapError(c.logger, err)
			}
			if err := persist(db, res); err != nil {
				return wrapError(c.logger, err)
			}
			fmt.Fprintf(c.stdout, "indexed %d posts into %s\n", len(res.Snapshot.Posts()), db)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "index database path (overrides index.path)")
	return cmd
}

func persist(path string, res *build.Result) error {
	st, err := index.Open(index.OpenOptions{Path: path})
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer st.Close()

	if err := st.Rebuild(res.Snapshot, res.Fingerprint.ContentHash); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return nil
}
