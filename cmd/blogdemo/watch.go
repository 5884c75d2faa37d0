package main

import (
	"blogdemo/internal/logging"
	"blogdemo/internal/watch"
	"context"
	"github.com/spf13/cobra"
)

func newWatchCmd(c *cli) *cobra.Command {
	var withIndex bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the content snapshot whenever the source directory changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// each change gets a fresh build; earlier snapshots are never touched
			rebuild := func(ctx context.Context) error {
				res, err := c.builder().Run(ctx)
				if err != nil {
					return err
				}
				if withIndex {
					return persist(c.cfg.Index.Path, res)
				}
				return nil
			}

			if err := rebuild(cmd.Context()); err != nil {
				c.logger.Error().Err(err).Msg("initial build failed")
			}

			w := &watch.Watcher{
				Dir:      c.cfg.Content.SourceDir,
				Debounce: c.cfg.Watch.Debounce,
				OnChange: rebuild,
				Logger:   logging.Component(c.logger, "watch"),
			}
			return wrapError(c.logger, w.Run(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&withIndex, "index", false, "also persist every successful build to the index")
	return cmd
}
