package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// setupValues holds the answers bound to the first-run form.
type setupValues struct {
	apiURL string
	theme  string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		apiURL: cfg.API.BaseURL,
		theme:  cfg.Appearance.Theme,
	}
}

// NewSetupForm builds the first-run form, writing answers through apiURL and
// themeName. The dashboard and the setup command share it.
func NewSetupForm(apiURL, themeName *string) *huh.Form {
	opts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		opts[i] = huh.NewOption(th.Name, th.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to housedash").
				Description("Housing price history and forecasts in your terminal."),
			huh.NewInput().
				Title("Housing API URL").
				Description("Point this at the dev proxy (housedash proxy) or the API itself.").
				Placeholder(config.DefaultAPIURL).
				Value(apiURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return validateURL(strings.TrimSpace(s))
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(opts...).
				Value(themeName),
		),
	).WithShowHelp(true)
}

func newSetupForm(vals *setupValues) *huh.Form {
	return NewSetupForm(&vals.apiURL, &vals.theme)
}

// saveSetupConfig writes the form answers to the config file and applies
// the chosen theme.
func (a App) saveSetupConfig() error {
	return ApplySetup(a.setupVals.apiURL, a.setupVals.theme)
}

// ApplySetup persists first-run answers. An empty API URL keeps the default.
func ApplySetup(apiURL, themeName string) error {
	cfg := loadConfigOrDefault()
	if u := strings.TrimSpace(apiURL); u != "" {
		cfg.API.BaseURL = u
	}
	if themeName != "" {
		cfg.Appearance.Theme = themeName
		theme.SetActive(themeName)
	}
	return config.Save(cfg)
}
