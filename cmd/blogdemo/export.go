package main

import (
	"blogdemo/internal/export"
	"fmt"
	"github.com/spf13/cobra"
	"os"
	"path/filepath"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		out    string
		indent bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the content snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("out") {
				out = c.cfg.Export.Path
			}
			if !cmd.Flags().Changed("indent") {
				indent = c.cfg.Export.Indent
			}

			res, err := c.content().Result()
			if err != nil {
				return wrapError(c.logger, err)
			}
			opt := export.Options{Indent: indent}

			if out == "-" {
				return wrapError(c.logger, export.Write(c.stdout, res.Snapshot, res.Fingerprint, opt))
			}
			if err := writeExport(out, func(f *os.File) error {
				return export.Write(f, res.Snapshot, res.Fingerprint, opt)
			}); err != nil {
				return wrapError(c.logger, err)
			}
			c.logger.Info().Str("path", out).Msg("export written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, '-' for stdout (overrides export.path)")
	cmd.Flags().BoolVar(&indent, "indent", true, "indent the JSON output (overrides export.indent)")
	return cmd
}

func writeExport(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	return f.Close()
}
