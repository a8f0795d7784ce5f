// Tripdeck is a terminal trip planner backed by the trip directory
// service. Run it bare to resume or plan a trip; run it with the flags an
// invite link carries to confirm attendance:
//
//	tripdeck --trip <id> --participant <id>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmcrae/tripdeck/internal/config"
	"github.com/kmcrae/tripdeck/internal/directory"
	"github.com/kmcrae/tripdeck/internal/prefs"
	"github.com/kmcrae/tripdeck/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tripdeck:", err)
		os.Exit(1)
	}
}

func run() error {
	var params tui.Params
	flag.StringVar(&params.TripID, "trip", "", "open a specific trip")
	flag.StringVar(&params.ParticipantID, "participant", "", "confirm attendance as this participant (requires --trip)")
	flag.Parse()

	if params.ParticipantID != "" && params.TripID == "" {
		return fmt.Errorf("--participant requires --trip")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := prefs.Open(cfg.PrefsPath())
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()

	client := directory.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout)
	app := tui.New(cfg, client, store, log, params)

	log.Info("starting", "base_url", cfg.Server.BaseURL)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// openLogger writes structured logs to the configured file; the TUI owns
// the terminal.
func openLogger(cfg config.Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: config.ParseLevel(cfg.Log.Level),
	}))
	return log, func() { _ = f.Close() }, nil
}
