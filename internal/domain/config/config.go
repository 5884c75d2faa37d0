package config

import (
	domainerr "blogdemo/internal/domain/errors"
	"errors"
	"fmt"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"io/fs"
	"os"
	"strings"
	"time"
)

// EnvPrefix scopes environment overrides, e.g. BLOGDEMO_CONTENT_SOURCE_DIR.
const EnvPrefix = "BLOGDEMO_"

type Config struct {
	Content ContentConfig `koanf:"content"`
	Index   IndexConfig   `koanf:"index"`
	Export  ExportConfig  `koanf:"export"`
	Log     LogConfig     `koanf:"log"`
	Watch   WatchConfig   `koanf:"watch"`
}

type ContentConfig struct {
	SourceDir string    `koanf:"source_dir"`
	Now       time.Time `koanf:"-"`
}

type IndexConfig struct {
	Path string `koanf:"path"`
}

type ExportConfig struct {
	// Path "-" writes to stdout.
	Path   string `koanf:"path"`
	Indent bool   `koanf:"indent"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

func Default() Config {
	return Config{
		Content: ContentConfig{
			SourceDir: "content/posts",
		},
		Index: IndexConfig{
			Path: ".blogdemo/index.db",
		},
		Export: ExportConfig{
			Path:   "-",
			Indent: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	ve.Check(strings.TrimSpace(c.Content.SourceDir) != "", "content.source_dir", "must not be empty")
	ve.Check(strings.TrimSpace(c.Index.Path) != "", "index.path", "must not be empty")
	ve.Check(strings.TrimSpace(c.Export.Path) != "", "export.path", "must not be empty (use '-' for stdout)")

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		ve.Check(false, "log.level", "must be one of trace, debug, info, warn, error, fatal, panic, disabled")
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		ve.Check(false, "log.format", "must be 'json' or 'console'")
	}

	ve.Check(c.Watch.Debounce > 0, "watch.debounce", "must be positive")

	return ve.Err()
}

// Load layers defaults, the YAML file at path and BLOGDEMO_* environment
// variables, in that order. The file must exist.
func Load(path string) (Config, error) {
	return load(path, false)
}

// LoadOrDefault is Load but a missing file falls back to defaults.
func LoadOrDefault(path string) (Config, error) {
	return load(path, true)
}

func load(path string, allowMissing bool) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return cfg, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("load config file %s: %w", path, err)
			}
		case errors.Is(statErr, fs.ErrNotExist) && allowMissing:
		default:
			return cfg, statErr
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	// 没指定 Now 的话用当前时间
	if cfg.Content.Now.IsZero() {
		cfg.Content.Now = time.Now()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envKey maps BLOGDEMO_CONTENT_SOURCE_DIR to content.source_dir.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(s, "_")
	if !ok {
		return section
	}
	return section + "." + rest
}
