package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/housedash/internal/config"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

func settingsApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOUSEDASH_API_URL", "")
	t.Setenv("HOUSEDASH_UPSTREAM", "")
	a := newTestApp()
	a.activeTab = tabSettings
	return a
}

func editField(t *testing.T, a App, field int, value string) App {
	t.Helper()
	a.settings.cursor = field
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.settings.editing)
	a.settings.input.SetValue(value)
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.settings.editing)
	return a
}

func TestSettingsRejectsInvalidValues(t *testing.T) {
	a := settingsApp(t)

	a = editField(t, a, settingsFieldAPIURL, "not a url")
	assert.Error(t, a.settings.saveErr)
	assert.False(t, a.settings.saved)
	assert.False(t, config.Exists())

	a = editField(t, a, settingsFieldTimeout, "-5")
	assert.Error(t, a.settings.saveErr)

	a = editField(t, a, settingsFieldTheme, "solarized")
	assert.Error(t, a.settings.saveErr)
	assert.False(t, config.Exists())
}

func TestSettingsSaveRebuildsSource(t *testing.T) {
	a := settingsApp(t)
	rebuilt := &stubSource{}
	var got config.Config
	a.rebuild = func(cfg config.Config) Source {
		got = cfg
		return rebuilt
	}

	a = editField(t, a, settingsFieldAPIURL, "https://housing.example.com/api")
	require.NoError(t, a.settings.saveErr)
	assert.True(t, a.settings.saved)
	assert.Equal(t, "https://housing.example.com/api", got.API.BaseURL)
	assert.Equal(t, "https://housing.example.com/api", a.endpoint)
	assert.Same(t, rebuilt, a.src)

	a = editField(t, a, settingsFieldTimeout, "12")
	require.NoError(t, a.settings.saveErr)
	assert.Equal(t, 12*time.Second, a.timeout)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://housing.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 12, cfg.API.TimeoutSec)
}

func TestSettingsThemeAppliesImmediately(t *testing.T) {
	a := settingsApp(t)
	defer theme.SetActive(theme.FlexokiDark.Name)

	a = editField(t, a, settingsFieldTheme, "tokyo-night")
	require.NoError(t, a.settings.saveErr)
	assert.Equal(t, "tokyo-night", theme.Active.Name)
	assert.Contains(t, a.View(), "tokyo-night")
}
