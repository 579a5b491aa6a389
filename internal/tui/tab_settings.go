package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/cli"
	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/logging"
	"github.com/theirongolddev/housedash/internal/tui/components"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

const (
	settingsFieldAPIURL = iota
	settingsFieldTimeout
	settingsFieldTheme
	settingsFieldUpstream
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldAPIURL:
		ti.Placeholder = config.DefaultAPIURL
		ti.SetValue(cfg.API.BaseURL)
	case settingsFieldTimeout:
		ti.Placeholder = "30 (seconds)"
		ti.SetValue(strconv.Itoa(cfg.API.TimeoutSec))
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldUpstream:
		ti.Placeholder = config.DefaultUpstream
		ti.SetValue(cfg.Proxy.Upstream)
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error"
		ti.SetValue(cfg.Log.Level)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates the edited value and persists it. Invalid values
// are reported in saveErr and leave the config untouched.
func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldAPIURL:
		if err := validateURL(val); err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.API.BaseURL = val
	case settingsFieldTimeout:
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			a.settings.saveErr = fmt.Errorf("timeout must be a positive number of seconds")
			return
		}
		cfg.API.TimeoutSec = n
	case settingsFieldTheme:
		if !theme.Known(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldUpstream:
		if err := validateURL(val); err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.Proxy.Upstream = val
	case settingsFieldLogLevel:
		cfg.Log.Level = logging.ParseLevel(val).String()
	}

	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		return
	}

	switch a.settings.cursor {
	case settingsFieldAPIURL, settingsFieldTimeout:
		a.timeout = cfg.Timeout()
		if a.rebuild != nil {
			a.src = a.rebuild(cfg)
			a.endpoint = cfg.API.BaseURL
		}
	}
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL", s)
	}
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Success).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	fields := []field{
		{"API URL", cfg.API.BaseURL},
		{"Request Timeout", fmt.Sprintf("%ds", int(cfg.Timeout().Seconds()))},
		{"Theme", cfg.Appearance.Theme},
		{"Proxy Upstream", cfg.Proxy.Upstream},
		{"Log Level", cfg.Log.Level},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			if padLen := innerW - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(okStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	catalogCount := "loading..."
	if a.catalogLoaded {
		catalogCount = cli.FormatNumber(int64(len(a.catalog)))
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Endpoint:        ") + valueStyle.Render(a.endpoint) + "\n")
	infoBody.WriteString(labelStyle.Render("Locations:       ") + valueStyle.Render(catalogCount) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
