package main

import (
	"blogdemo/internal/app"
	"blogdemo/internal/build"
	"blogdemo/internal/domain/config"
	"blogdemo/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"io"
	"os"
	"time"
)

const defaultConfigFile = "blogdemo.yaml"

// cli holds state shared by every subcommand once the root pre-run has
// loaded configuration.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	cfgPath   string
	source    string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "blogdemo",
		Short:         "Build and inspect the Markdown blog content snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "config file (default "+defaultConfigFile+" if present)")
	f.StringVar(&c.source, "source", "", "content directory (overrides content.source_dir)")
	f.StringVar(&c.logLevel, "log-level", "", "log level (overrides log.level)")
	f.StringVar(&c.logFormat, "log-format", "", "log format: json or console (overrides log.format)")

	root.AddCommand(
		newCheckCmd(c),
		newRoutesCmd(c),
		newExportCmd(c),
		newIndexCmd(c),
		newWatchCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)
	if c.cfgPath != "" {
		cfg, err = config.Load(c.cfgPath)
	} else {
		cfg, err = config.LoadOrDefault(defaultConfigFile)
	}
	if err != nil {
		return wrapError(logging.New(logging.Config{Output: c.stderr}), err)
	}

	f := cmd.Flags()
	if f.Changed("source") {
		cfg.Content.SourceDir = c.source
	}
	if f.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}

	c.logger = logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.stderr,
	})
	if err := cfg.Validate(); err != nil {
		return wrapError(c.logger, err)
	}
	c.cfg = cfg
	return nil
}

// builder returns a fresh pipeline over the configured source directory.
// Paths in errors are relative to that directory.
func (c *cli) builder() *build.Builder {
	now := c.cfg.Content.Now
	return &build.Builder{
		Source: os.DirFS(c.cfg.Content.SourceDir),
		Root:   ".",
		Now:    func() time.Time { return now },
		Logger: logging.Component(c.logger, "build"),
	}
}

func (c *cli) content() *app.Content {
	return app.NewContent(c.builder())
}
