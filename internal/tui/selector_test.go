package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/housedash/internal/pipeline"
)

var testCatalog = []pipeline.CatalogEntry{
	{Display: "Austin, TX", Value: "Austin"},
	{Display: "Boston, MA", Value: "Boston"},
	{Display: "Boise, ID", Value: "Boise"},
}

func withCatalog(t *testing.T, entries []pipeline.CatalogEntry) App {
	t.Helper()
	a := newTestApp()
	a, _ = update(t, a, CatalogLoadedMsg{Entries: entries})
	return a
}

func TestSelectorListState(t *testing.T) {
	assert.Equal(t, CatalogEmpty, SelectorListState(nil, nil))
	assert.Equal(t, CatalogEmpty, SelectorListState([]pipeline.CatalogEntry{}, nil))
	assert.Equal(t, NoMatches, SelectorListState(testCatalog, nil))
	assert.Equal(t, Results, SelectorListState(testCatalog, testCatalog[:1]))
}

func TestSelectorFiltersOnEveryKeystroke(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, keys("s"))
	require.True(t, a.selector.open)
	assert.Len(t, a.selector.visible, 3)

	a, _ = update(t, a, keys("b"))
	assert.Len(t, a.selector.visible, 2)

	a, _ = update(t, a, keys("os"))
	require.Len(t, a.selector.visible, 1)
	assert.Equal(t, "Boston", a.selector.visible[0].Value)

	a, _ = update(t, a, keys("zz"))
	assert.Empty(t, a.selector.visible)
	assert.Equal(t, NoMatches, SelectorListState(a.catalog, a.selector.visible))
	assert.Contains(t, ansi.Strip(a.View()), "No locations match")
}

func TestSelectorEmptyCatalogSuppressesNoMatches(t *testing.T) {
	a := withCatalog(t, []pipeline.CatalogEntry{})
	a, _ = update(t, a, keys("s"))
	a, _ = update(t, a, keys("austin"))

	assert.Equal(t, CatalogEmpty, SelectorListState(a.catalog, a.selector.visible))
	assert.NotContains(t, ansi.Strip(a.View()), "No locations match")

	// Enter on an empty list commits nothing.
	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, a.selector.open)
}

func TestSelectorEnterCommitsAndCloses(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, keys("s"))
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyDown})

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.selector.open)
	require.NotNil(t, cmd)
	assert.Equal(t, LocationChangedMsg{Value: "Boston"}, cmd())
}

func TestSelectorEscClosesWithoutChangingSelection(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, keys("s"))
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyDown})

	a, cmd := update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, a.selector.open)
	assert.Equal(t, "Austin", a.selected)
}

func TestSelectorFilterResetsOnReopen(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, keys("s"))
	a, _ = update(t, a, keys("bos"))
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	a, _ = update(t, a, keys("s"))
	assert.Empty(t, a.selector.input.Value())
	assert.Len(t, a.selector.visible, 3)
}

func TestSelectorOpensOnCurrentSelection(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, LocationChangedMsg{Value: "Boise"})
	a, _ = update(t, a, keys("s"))
	assert.Equal(t, 2, a.selector.cursor)
}

func TestSelectorClickEntryCommits(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, keys("s"))

	// Third entry: list starts selectorListTop rows below the header.
	a, cmd := update(t, a, click(a.contentLeft()+4, headerHeight+selectorListTop+2))
	assert.False(t, a.selector.open)
	require.NotNil(t, cmd)
	assert.Equal(t, LocationChangedMsg{Value: "Boise"}, cmd())
}

func TestSelectorClickOutsideCloses(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, LocationChangedMsg{Value: "Austin"})
	a, _ = update(t, a, keys("s"))

	a, cmd := update(t, a, click(a.contentLeft()+selectorMaxWidth+5, headerHeight+selectorListTop))
	assert.Nil(t, cmd)
	assert.False(t, a.selector.open)
	assert.Equal(t, "Austin", a.selected)
}

func TestSelectorRendersTitleAndPlaceholder(t *testing.T) {
	a := withCatalog(t, testCatalog)
	a, _ = update(t, a, keys("s"))

	out := ansi.Strip(a.View())
	assert.Contains(t, out, "Select Location")
	assert.Contains(t, out, "Search locations...")
	assert.Contains(t, out, "Boston, MA")
}
