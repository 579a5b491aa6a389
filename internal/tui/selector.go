package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/housedash/internal/pipeline"
	"github.com/theirongolddev/housedash/internal/tui/components"
	"github.com/theirongolddev/housedash/internal/tui/theme"
)

// ListState describes what the selector's visible list is showing.
type ListState int

const (
	// CatalogEmpty means no catalog is loaded, or it loaded empty. The
	// panel shows an empty list rather than a "no matches" message.
	CatalogEmpty ListState = iota
	// NoMatches means the catalog has entries but the query matched none.
	NoMatches
	// Results means at least one entry is visible.
	Results
)

// SelectorListState classifies the visible list.
func SelectorListState(catalog, visible []pipeline.CatalogEntry) ListState {
	switch {
	case len(catalog) == 0:
		return CatalogEmpty
	case len(visible) == 0:
		return NoMatches
	default:
		return Results
	}
}

const (
	selectorMaxRows  = 12
	selectorMaxWidth = 64
	// rows above the list inside the panel: border, title, input, rule
	selectorListTop = 4
	// rows below the list: hint, border
	selectorChrome = selectorListTop + 2
)

// selectorState tracks the location dropdown.
type selectorState struct {
	open    bool
	input   textinput.Model
	visible []pipeline.CatalogEntry
	cursor  int
	offset  int
}

func newSelectorInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search locations..."
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = 40
	return ti
}

func newSelectorState() selectorState {
	return selectorState{input: newSelectorInput()}
}

// refilter recomputes the visible list for the current query and keeps the
// cursor in range.
func (s *selectorState) refilter(catalog []pipeline.CatalogEntry) {
	s.visible = pipeline.FilterCatalog(catalog, s.input.Value())
	if s.cursor >= len(s.visible) {
		s.cursor = len(s.visible) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// scrollTo keeps the cursor inside a window of rows entries.
func (s *selectorState) scrollTo(rows int) {
	if rows < 1 {
		rows = 1
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+rows {
		s.offset = s.cursor - rows + 1
	}
	if maxOff := len(s.visible) - rows; s.offset > maxOff {
		s.offset = maxOff
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// openSelector opens the panel with a fresh filter, cursor on the current
// selection when it is in the catalog.
func (a App) openSelector() (tea.Model, tea.Cmd) {
	a.selector.open = true
	a.selector.input = newSelectorInput()
	a.selector.cursor = 0
	a.selector.offset = 0
	a.selector.refilter(a.catalog)
	for i, e := range a.selector.visible {
		if e.Value == a.selected {
			a.selector.cursor = i
			break
		}
	}
	a.selector.scrollTo(a.selectorRows())
	a.selector.input.Focus()
	return a, a.selector.input.Cursor.BlinkCmd()
}

func (a App) closeSelector() App {
	a.selector.open = false
	a.selector.input.Blur()
	return a
}

// commitSelection closes the panel and emits the chosen location.
func (a App) commitSelection(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(a.selector.visible) {
		return a, nil
	}
	value := a.selector.visible[idx].Value
	a = a.closeSelector()
	return a, func() tea.Msg { return LocationChangedMsg{Value: value} }
}

// updateSelector handles key events while the panel is open.
func (a App) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.selectorRows()

	switch msg.String() {
	case "esc":
		return a.closeSelector(), nil
	case "enter":
		if SelectorListState(a.catalog, a.selector.visible) != Results {
			return a, nil
		}
		return a.commitSelection(a.selector.cursor)
	case "up", "ctrl+p":
		if a.selector.cursor > 0 {
			a.selector.cursor--
		}
		a.selector.scrollTo(rows)
		return a, nil
	case "down", "ctrl+n":
		if a.selector.cursor < len(a.selector.visible)-1 {
			a.selector.cursor++
		}
		a.selector.scrollTo(rows)
		return a, nil
	case "pgup":
		a.selector.cursor -= rows
		if a.selector.cursor < 0 {
			a.selector.cursor = 0
		}
		a.selector.scrollTo(rows)
		return a, nil
	case "pgdown":
		a.selector.cursor += rows
		if a.selector.cursor > len(a.selector.visible)-1 {
			a.selector.cursor = len(a.selector.visible) - 1
		}
		if a.selector.cursor < 0 {
			a.selector.cursor = 0
		}
		a.selector.scrollTo(rows)
		return a, nil
	}

	prev := a.selector.input.Value()
	var cmd tea.Cmd
	a.selector.input, cmd = a.selector.input.Update(msg)
	if a.selector.input.Value() != prev {
		a.selector.cursor = 0
		a.selector.offset = 0
		a.selector.refilter(a.catalog)
	}
	return a, cmd
}

// updateSelectorMouse handles mouse events while the panel is open. A click
// on an entry commits it; a click outside the panel closes it.
func (a App) updateSelectorMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	rows := a.selectorRows()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.selector.cursor > 0 {
			a.selector.cursor--
		}
		a.selector.scrollTo(rows)
		return a, nil
	case tea.MouseButtonWheelDown:
		if a.selector.cursor < len(a.selector.visible)-1 {
			a.selector.cursor++
		}
		a.selector.scrollTo(rows)
		return a, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
	default:
		return a, nil
	}

	left := a.contentLeft()
	top := headerHeight
	w := a.selectorWidth()
	h := rows + selectorChrome
	if msg.X < left || msg.X >= left+w || msg.Y < top || msg.Y >= top+h {
		return a.closeSelector(), nil
	}

	row := msg.Y - top - selectorListTop
	if row < 0 || row >= rows || SelectorListState(a.catalog, a.selector.visible) != Results {
		return a, nil
	}
	return a.commitSelection(a.selector.offset + row)
}

func (a App) selectorWidth() int {
	w := a.contentWidth()
	if w > selectorMaxWidth {
		w = selectorMaxWidth
	}
	return w
}

// selectorRows is the number of list rows the panel shows.
func (a App) selectorRows() int {
	contentH := a.height - headerHeight - 1
	rows := contentH - selectorChrome
	if rows > selectorMaxRows {
		rows = selectorMaxRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a App) renderSelector() string {
	t := theme.Active
	w := a.selectorWidth()
	innerW := components.CardInnerWidth(w)
	rows := a.selectorRows()
	s := a.selector

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(w-2).
		Padding(0, 1)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	currentStyle := lipgloss.NewStyle().Foreground(t.Success).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	title := titleStyle.Render("Select Location")
	count := countStyle.Render(fmt.Sprintf("%d/%d", len(s.visible), len(a.catalog)))
	gap := innerW - lipgloss.Width(title) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(title + spaceStyle.Render(strings.Repeat(" ", gap)) + count + "\n")
	b.WriteString(s.input.View() + "\n")
	b.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)) + "\n")

	lines := make([]string, 0, rows)
	switch SelectorListState(a.catalog, s.visible) {
	case CatalogEmpty:
		if !a.catalogLoaded {
			lines = append(lines, a.spinner.View()+dimStyle.Render(" Loading locations..."))
		}
	case NoMatches:
		lines = append(lines, dimStyle.Render(truncStr(fmt.Sprintf("No locations match %q", s.input.Value()), innerW)))
	case Results:
		end := s.offset + rows
		if end > len(s.visible) {
			end = len(s.visible)
		}
		for i := s.offset; i < end; i++ {
			e := s.visible[i]
			label := truncStr(e.Display, innerW-4)
			if i == s.cursor {
				line := markerStyle.Render("▸ ") + selStyle.Render(label)
				if pad := innerW - lipgloss.Width(line); pad > 0 {
					line += selStyle.Render(strings.Repeat(" ", pad))
				}
				lines = append(lines, line)
				continue
			}
			line := spaceStyle.Render("  ") + rowStyle.Render(label)
			if e.Value == a.selected {
				line += currentStyle.Render(" ✓")
			}
			lines = append(lines, line)
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[↑↓] move  [Enter] select  [Esc] close"))

	return panelStyle.Render(b.String())
}
