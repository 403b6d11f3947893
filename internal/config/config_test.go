package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, "widgetboard", "checked_items.json"), cfg.Storage.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, "widgetboard", "widgetboard.log"), cfg.Log.Path)
	require.Equal(t, 0, cfg.UI.Columns)
	require.Empty(t, cfg.Keybindings)
}

func TestLoadExplicitFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
backend = "SQLite"

[seed]
path = "/tmp/layout.yaml"

[log]
level = "debug"

[ui]
columns = 2

[[keybindings]]
scope = "dashboard"
action = "search"
keys = ["s"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, "widgetboard", "widgetboard.db"), cfg.Storage.Path)
	require.Equal(t, "/tmp/layout.yaml", cfg.Seed.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 2, cfg.UI.Columns)
	require.Equal(t, []KeybindingConfig{{Scope: "dashboard", Action: "search", Keys: []string{"s"}}}, cfg.Keybindings)
}

func TestLoadEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")
	t.Setenv("WIDGETBOARD_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"redis\"\n"), 0o600))
	_, err := Load(path)
	require.ErrorContains(t, err, "storage")

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ncolumns = 12\n"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, "ui")

	require.NoError(t, os.WriteFile(path, []byte("[[keybindings]]\nscope = \"dashboard\"\n"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, "keybindings[0]")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	cfg := Config{
		Storage:     StorageConfig{Backend: "file", Path: filepath.Join(home, "slot.json")},
		Log:         LogConfig{Path: filepath.Join(home, "app.log"), Level: "error"},
		UI:          UIConfig{Columns: 3},
		Keybindings: []KeybindingConfig{{Scope: "panel_list", Action: "delete", Keys: []string{"x"}}},
	}
	path := filepath.Join(home, "out", "config.toml")
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
