package cmd

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/logging"
	"github.com/theirongolddev/housedash/internal/tui"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&flagLocation, "location", "l", "", "Location to open the dashboard on")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The terminal belongs to the dashboard, so logs always go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = filepath.Join(config.CacheDir(), "housedash.log")
	}
	log, closer, err := logging.New(logging.Config{Level: cfg.Log.Level, File: logFile})
	if err != nil {
		return err
	}
	defer closer.Close()
	log = logging.Component(log, "tui")

	app := tui.NewApp(tui.Options{
		Source:   newClient(cfg),
		Endpoint: cfg.API.BaseURL,
		Timeout:  cfg.Timeout(),
		Location: flagLocation,
		Log:      log,
		Rebuild:  func(c config.Config) tui.Source { return newClient(c) },
		Setup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
