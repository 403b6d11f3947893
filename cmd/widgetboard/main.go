package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/jask/widgetboard/internal/board"
	"github.com/jask/widgetboard/internal/config"
	"github.com/jask/widgetboard/internal/seed"
	"github.com/jask/widgetboard/internal/tui"
	"github.com/jask/widgetboard/internal/visible"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if p := cmd.String("seed"); p != "" {
		cfg.Seed.Path = p
	}
	if p := cmd.String("write-config"); p != "" {
		if err := config.Save(cfg, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", p)
		return nil
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	categories, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return err
	}
	store := board.NewStore(categories)
	store.Subscribe(func(a board.Action, s board.State) {
		logger.Debug("dispatch",
			slog.String("type", string(a.Type)),
			slog.String("category", a.Category),
			slog.Int("widgets", s.Len()),
		)
	})

	slot, err := visible.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer slot.Close()

	keys := tui.NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(cfg.Keybindings); err != nil {
		return fmt.Errorf("keybindings: %w", err)
	}

	logger.Info("starting",
		slog.String("storage", cfg.Storage.Backend),
		slog.String("slot", cfg.Storage.Path),
		slog.Int("categories", len(store.State().Categories())),
	)

	p := tea.NewProgram(tui.New(ctx, tui.Options{
		Store:   store,
		Slot:    slot,
		Keys:    keys,
		Logger:  logger,
		Columns: cfg.UI.Columns,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// newLogger opens the log file. The terminal belongs to the TUI, so nothing
// is written to stderr while it runs.
func newLogger(c config.LogConfig) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return newLoggerTo(f, c.Level), func() { _ = f.Close() }, nil
}

func newLoggerTo(w io.Writer, level string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h).With(slog.String("run_id", uuid.NewString()))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func main() {
	cmd := &cli.Command{
		Name:   "widgetboard",
		Usage:  "Terminal dashboard of categorized widgets",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "Seed file with categories and widgets (.toml, .yaml, .json)",
			},
			&cli.StringFlag{
				Name:  "write-config",
				Usage: "Write the effective configuration to `FILE` and exit",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
