// Package config loads treeviz settings from a TOML or YAML file.
//
// Settings are layered: built-in defaults, then the config file, then
// whatever the caller (usually CLI flags) overrides afterwards. The file
// format is chosen by extension (.toml, .yaml, .yml).
//
//	# ~/.config/treeviz/config.toml
//	kind = "nary"
//	max_children = 4
//	style = "dark"
//
//	[layout]
//	node_spacing = 90
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
// The TREEVIZ_REDIS_URL environment variable overrides cache.redis_url.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/layout"
)

const (
	appName = "treeviz"

	// EnvRedisURL overrides the Redis connection string.
	EnvRedisURL = "TREEVIZ_REDIS_URL"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full set of file-configurable settings.
type Config struct {
	Kind        string `toml:"kind" yaml:"kind" validate:"oneof=binary nary graph"`
	MaxChildren int    `toml:"max_children" yaml:"max_children"`
	ShowAbsent  bool   `toml:"show_absent" yaml:"show_absent"`
	Style       string `toml:"style" yaml:"style" validate:"oneof=simple dark"`

	Layout Layout `toml:"layout" yaml:"layout"`
	Cache  Cache  `toml:"cache" yaml:"cache"`
	Server Server `toml:"server" yaml:"server"`
}

// Layout mirrors layout.Config with file tags.
type Layout struct {
	NodeSpacing       float64 `toml:"node_spacing" yaml:"node_spacing" validate:"gt=0"`
	LevelSpacing      float64 `toml:"level_spacing" yaml:"level_spacing" validate:"gt=0"`
	NodeRadius        float64 `toml:"node_radius" yaml:"node_radius" validate:"gt=0"`
	HorizontalPadding float64 `toml:"horizontal_padding" yaml:"horizontal_padding" validate:"gte=0"`
	VerticalPadding   float64 `toml:"vertical_padding" yaml:"vertical_padding" validate:"gte=0"`
	PairRadiusScale   float64 `toml:"pair_radius_scale" yaml:"pair_radius_scale" validate:"gt=0"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend  string `toml:"backend" yaml:"backend" validate:"oneof=file redis none"`
	Dir      string `toml:"dir" yaml:"dir"`
	RedisURL string `toml:"redis_url" yaml:"redis_url" validate:"required_if=Backend redis"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// Server configures `treeviz serve`.
type Server struct {
	Addr    string `toml:"addr" yaml:"addr" validate:"required,hostname_port"`
	MaxBody int64  `toml:"max_body" yaml:"max_body" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() Config {
	d := layout.DefaultConfig()
	return Config{
		Kind:  "binary",
		Style: "simple",
		Layout: Layout{
			NodeSpacing:       d.NodeSpacing,
			LevelSpacing:      d.LevelSpacing,
			NodeRadius:        d.NodeRadius,
			HorizontalPadding: d.HorizontalPadding,
			VerticalPadding:   d.VerticalPadding,
			PairRadiusScale:   d.PairRadiusScale,
		},
		Cache: Cache{
			Backend: BackendFile,
			Prefix:  appName + ":",
		},
		Server: Server{
			Addr:    "localhost:8080",
			MaxBody: 1 << 20,
		},
	}
}

// Engine converts the layout section to the engine's geometry.
func (l Layout) Engine() layout.Config {
	return layout.Config{
		NodeSpacing:       l.NodeSpacing,
		LevelSpacing:      l.LevelSpacing,
		NodeRadius:        l.NodeRadius,
		HorizontalPadding: l.HorizontalPadding,
		VerticalPadding:   l.VerticalPadding,
		PairRadiusScale:   l.PairRadiusScale,
	}
}

// Load reads settings from path on top of the defaults.
//
// An empty path means DefaultPath; a missing default file is not an error.
// A missing explicit file is FILE_NOT_FOUND. Decoding and validation failures
// are INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return loaded(cfg)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		return loaded(cfg)
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	if err := decode(path, data, &cfg); err != nil {
		return Config{}, err
	}
	return loaded(cfg)
}

// DefaultPath returns $XDG_CONFIG_HOME/treeviz/config.toml, falling back to
// ~/.config/treeviz/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if err == nil {
			if keys := md.Undecoded(); len(keys) > 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, keys[0].String())
			}
		}
	case ".yaml", ".yml":
		err = yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField()).Decode(cfg)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return nil
}

// loaded applies environment overrides and validates.
func loaded(cfg Config) (Config, error) {
	if url := os.Getenv(EnvRedisURL); url != "" {
		cfg.Cache.RedisURL = url
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	return nil
}
