package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/internal/catalog"
	"github.com/unera-social/unera-tui/pkg/models"
)

func testHelpCenter(t *testing.T) *helpCenter {
	t.Helper()

	store, err := catalog.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, catalog.SeedAll(context.Background(), store))

	h := newHelpCenter(store)
	h.setSize(100, 40)
	return h
}

func typeQuery(h *helpCenter, query string) {
	h.search.Focus()
	for _, r := range query {
		h.update(keyRunes(r))
	}
}

func TestSelectingCategoryClearsQueryAndArticle(t *testing.T) {
	h := testHelpCenter(t)

	typeQuery(h, "story")
	articles, err := h.store.Articles()
	require.NoError(t, err)
	h.openArticle(articles[0])

	h.selectCategory(models.CategoryGroups)

	assert.Empty(t, h.search.Value())
	assert.Nil(t, h.activeArticle)
	require.NotNil(t, h.activeCategory)
	assert.Equal(t, models.CategoryGroups, *h.activeCategory)
	assert.Equal(t, helpList, h.state())
}

func TestCategoryFilterShowsOnlyThatCategory(t *testing.T) {
	h := testHelpCenter(t)

	h.selectCategory(models.CategoryGroups)

	require.NotEmpty(t, h.results)
	titles := make([]string, 0, len(h.results))
	for _, a := range h.results {
		assert.Equal(t, models.CategoryGroups, a.Category)
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Using UNERA Groups")
}

func TestTypingQueryClearsCategoryAndArticle(t *testing.T) {
	h := testHelpCenter(t)

	h.selectCategory(models.CategoryGroups)
	h.openArticle(h.results[0])

	typeQuery(h, "p")

	assert.Nil(t, h.activeCategory)
	assert.Nil(t, h.activeArticle)
	assert.Equal(t, helpList, h.state())
}

func TestClearingQueryDoesNotRestoreCategory(t *testing.T) {
	h := testHelpCenter(t)

	h.selectCategory(models.CategoryGroups)
	typeQuery(h, "x")
	h.update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Nil(t, h.activeCategory, "the previous category must stay cleared")
	assert.Equal(t, helpGrid, h.state())

	// With no filter at all, the full catalog shows.
	all, err := h.store.Articles()
	require.NoError(t, err)
	assert.Equal(t, all, h.results)
}

func TestSearchMatchesTitleAndCategoryCaseInsensitive(t *testing.T) {
	h := testHelpCenter(t)

	typeQuery(h, "GROUPS")

	require.NotEmpty(t, h.results)
	titles := make([]string, 0, len(h.results))
	for _, a := range h.results {
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Using UNERA Groups")
}

func TestEmptySearchResultShowsPlaceholder(t *testing.T) {
	h := testHelpCenter(t)

	typeQuery(h, "zzz-nothing")

	assert.Empty(t, h.results)
	assert.Contains(t, h.view(), "No articles found.")
}

func TestOpeningArticleScrollsToTop(t *testing.T) {
	h := testHelpCenter(t)

	articles, err := h.store.Articles()
	require.NoError(t, err)

	h.openArticle(articles[0])
	h.detail.SetYOffset(5)
	h.openArticle(articles[1])

	assert.Zero(t, h.detail.YOffset)
	assert.Equal(t, helpDetail, h.state())
}

func TestBackIsContextSensitive(t *testing.T) {
	h := testHelpCenter(t)

	h.selectCategory(models.CategoryGroups)
	h.openArticle(h.results[0])

	// Closing the article returns to the category list, not the grid.
	cmd := h.back()
	assert.Nil(t, cmd)
	assert.Nil(t, h.activeArticle)
	require.NotNil(t, h.activeCategory)
	assert.Equal(t, helpList, h.state())

	// Clearing the category returns to the grid.
	cmd = h.back()
	assert.Nil(t, cmd)
	assert.Nil(t, h.activeCategory)
	assert.Equal(t, helpGrid, h.state())

	// From the grid, back asks the host to navigate home.
	cmd = h.back()
	require.NotNil(t, cmd)
	_, ok := cmd().(navigateHomeMsg)
	assert.True(t, ok)
}
