// Package theme defines color themes for the housedash dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background    lipgloss.Color // app background
	Surface       lipgloss.Color // cards and panels
	SurfaceBright lipgloss.Color // active tab, selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // focused card, open selector
	TextDim       lipgloss.Color // hints, disabled
	TextMuted     lipgloss.Color // labels
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	Key           lipgloss.Color // key bindings in help

	Historical lipgloss.Color // past price series
	Forecast   lipgloss.Color // predicted price series
	Rise       lipgloss.Color // price going up
	Fall       lipgloss.Color // price going down

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Scale runs cool to warm, for positions within a price range.
	Scale [4]lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme: warm, paper-inspired, dark.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Key:           "#24837B",
	Historical:    "#4385BE",
	Forecast:      "#879A39",
	Rise:          "#879A39",
	Fall:          "#D14D41",
	Success:       "#A3B859",
	Warning:       "#DA702C",
	Error:         "#D14D41",
	Scale:         [4]lipgloss.Color{"#4385BE", "#D0A215", "#DA702C", "#D14D41"},
}

// FlexokiLight is the paper-colored counterpart of FlexokiDark.
var FlexokiLight = Theme{
	Name:          "flexoki-light",
	Background:    "#FFFCF0",
	Surface:       "#F2F0E5",
	SurfaceBright: "#E6E4D9",
	Border:        "#CECDC3",
	BorderAccent:  "#24837B",
	TextDim:       "#B7B5AC",
	TextMuted:     "#6F6E69",
	TextPrimary:   "#100F0F",
	Accent:        "#24837B",
	AccentBright:  "#3AA99F",
	Key:           "#205EA6",
	Historical:    "#205EA6",
	Forecast:      "#66800B",
	Rise:          "#66800B",
	Fall:          "#AF3029",
	Success:       "#66800B",
	Warning:       "#BC5215",
	Error:         "#AF3029",
	Scale:         [4]lipgloss.Color{"#205EA6", "#AD8301", "#BC5215", "#AF3029"},
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Key:           "#94E2D5",
	Historical:    "#89B4FA",
	Forecast:      "#A6E3A1",
	Rise:          "#A6E3A1",
	Fall:          "#F38BA8",
	Success:       "#C6F6C1",
	Warning:       "#FAB387",
	Error:         "#F38BA8",
	Scale:         [4]lipgloss.Color{"#89B4FA", "#F9E2AF", "#FAB387", "#F38BA8"},
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Key:           "#7DCFFF",
	Historical:    "#7AA2F7",
	Forecast:      "#9ECE6A",
	Rise:          "#9ECE6A",
	Fall:          "#F7768E",
	Success:       "#B9E87A",
	Warning:       "#FF9E64",
	Error:         "#F7768E",
	Scale:         [4]lipgloss.Color{"#7AA2F7", "#E0AF68", "#FF9E64", "#F7768E"},
}

// Terminal uses the ANSI 16 colors only.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Key:           "6",
	Historical:    "4",
	Forecast:      "2",
	Rise:          "2",
	Fall:          "1",
	Success:       "10",
	Warning:       "3",
	Error:         "1",
	Scale:         [4]lipgloss.Color{"4", "3", "11", "1"},
}

// All available themes, in the order the settings tab cycles them.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// Names lists the theme names in All order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Known reports whether name is one of the built-in themes.
func Known(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
