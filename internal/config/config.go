package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lvrach/study-sessions/internal/document"
	"github.com/lvrach/study-sessions/internal/schedule"
	"github.com/lvrach/study-sessions/internal/validate"
)

// EnvPrefix prefixes environment overrides, e.g. STUDY_SESSIONS_OUTPUT_DIR.
const EnvPrefix = "STUDY_SESSIONS_"

// Config holds the application configuration.
type Config struct {
	OutputDir       string            `koanf:"output_dir" yaml:"output_dir" validate:"required"`
	Organizer       string            `koanf:"organizer" yaml:"organizer" validate:"required"`
	DurationMinutes int               `koanf:"duration_minutes" yaml:"duration_minutes" validate:"min=15,max=480"`
	Seats           int               `koanf:"seats" yaml:"seats" validate:"min=1,max=50"`
	InputZone       string            `koanf:"input_zone" yaml:"input_zone,omitempty" validate:"omitempty,timezone"` // empty: host zone
	Catalog         string            `koanf:"catalog" yaml:"catalog,omitempty"`
	ICS             bool              `koanf:"ics" yaml:"ics"`
	LogLevel        string            `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Links           document.Links    `koanf:"links" yaml:"links"`
	Sessions        schedule.Schedule `koanf:"sessions" yaml:"sessions" validate:"dive"`
}

// Duration returns the session length.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}

// Location returns the configured input zone, or nil to use the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.InputZone == "" {
		return nil, nil
	}
	return time.LoadLocation(c.InputZone)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	links := document.DefaultLinks()
	return Config{
		OutputDir:       ".",
		Organizer:       "Steven",
		DurationMinutes: 60,
		Seats:           5,
		LogLevel:        "info",
		Links:           links,
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"output_dir":       d.OutputDir,
		"organizer":        d.Organizer,
		"duration_minutes": d.DurationMinutes,
		"seats":            d.Seats,
		"log_level":        d.LogLevel,
		"ics":              d.ICS,
		"links.forum":      d.Links.Forum,
		"links.events":     d.Links.Events,
		"links.feedback":   d.Links.Feedback,
		"links.tracking":   d.Links.Tracking,
		"links.gather":     d.Links.Gather,
	}
}

// configDir returns the config directory path.
// Exported as a var for testing.
var configDir = defaultConfigDir

func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "study-sessions")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "study-sessions")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Exists returns true if a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load layers defaults, the YAML file at path (if present) and
// STUDY_SESSIONS_* environment variables, in increasing priority.
// An empty path means Path().
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				dateStringHook,
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.OutputDir = ExpandHome(cfg.OutputDir)
	cfg.Catalog = ExpandHome(cfg.Catalog)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// envKey maps STUDY_SESSIONS_LINKS_FORUM to links.forum. Only the links
// section nests; other keys keep their underscores.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "links_"); ok {
		return "links." + rest
	}
	return key
}

// dateStringHook turns YAML timestamps (an unquoted 2025-12-13) back into
// the date text the schedule expects.
func dateStringHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if t, ok := data.(time.Time); ok {
		return t.Format("2006-01-02"), nil
	}
	return data, nil
}

// ExpandHome replaces a leading "~" with the home directory.
func ExpandHome(p string) string {
	p = strings.TrimSpace(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".study-sessions-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
