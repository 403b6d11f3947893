package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// EnvConfigPath names the variable that points at an explicit config file.
const EnvConfigPath = "WIDGETBOARD_CONFIG"

// Config holds application configuration.
type Config struct {
	Storage     StorageConfig      `mapstructure:"storage"`
	Seed        SeedConfig         `mapstructure:"seed"`
	Log         LogConfig          `mapstructure:"log"`
	UI          UIConfig           `mapstructure:"ui"`
	Keybindings []KeybindingConfig `mapstructure:"keybindings"`
}

// StorageConfig selects where the visible-set slot lives.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// SeedConfig points at an optional seed file.
type SeedConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Columns int `mapstructure:"columns"`
}

// KeybindingConfig replaces the keys of one action within one scope.
type KeybindingConfig struct {
	Scope  string   `mapstructure:"scope"`
	Action string   `mapstructure:"action"`
	Keys   []string `mapstructure:"keys"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required, validation.In("file", "sqlite")),
		validation.Field(&c.Storage.Path, validation.Required),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Path, validation.Required),
		validation.Field(&c.Log.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := validation.ValidateStruct(&c.UI,
		validation.Field(&c.UI.Columns, validation.Min(0), validation.Max(6)),
	); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	for i := range c.Keybindings {
		kb := &c.Keybindings[i]
		if err := validation.ValidateStruct(kb,
			validation.Field(&kb.Scope, validation.Required),
			validation.Field(&kb.Action, validation.Required),
			validation.Field(&kb.Keys, validation.Required),
		); err != nil {
			return fmt.Errorf("keybindings[%d]: %w", i, err)
		}
	}
	return nil
}

// Dir returns the directory for widgetboard files, using XDG_CONFIG_HOME or
// falling back to ~/.config.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "widgetboard"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("seed.path", "")
	v.SetDefault("log.path", filepath.Join(dir, "widgetboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.columns", 0)
}

// Load reads configuration from file and env. path wins over
// WIDGETBOARD_CONFIG, which wins over <config dir>/widgetboard/config.toml.
// Env var overrides use prefix WIDGETBOARD_.
func Load(path string) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	v := viper.New()
	setDefaults(v, dir)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WIDGETBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = defaultStoragePath(dir, c.Storage.Backend)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func defaultStoragePath(dir, backend string) string {
	if backend == "sqlite" {
		return filepath.Join(dir, "widgetboard.db")
	}
	return filepath.Join(dir, "checked_items.json")
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("seed.path", cfg.Seed.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.columns", cfg.UI.Columns)
	if len(cfg.Keybindings) > 0 {
		items := make([]map[string]any, 0, len(cfg.Keybindings))
		for _, kb := range cfg.Keybindings {
			items = append(items, map[string]any{"scope": kb.Scope, "action": kb.Action, "keys": kb.Keys})
		}
		v.Set("keybindings", items)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
