package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/unera-social/unera-tui/internal/catalog"
	"github.com/unera-social/unera-tui/pkg/models"
)

type helpState int

const (
	helpGrid helpState = iota
	helpList
	helpDetail
)

// helpCenter presents the static knowledge base: a category grid, a
// filtered article list, and an article detail view. Which one shows is
// derived from the three state fields, never stored separately, so the
// views stay mutually exclusive.
type helpCenter struct {
	store *catalog.Store

	search         textinput.Model
	activeCategory *models.Category
	activeArticle  *models.Article

	results   []models.Article
	list      list.Model
	catCursor int
	gridFocus bool

	detail   viewport.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	err    error
}

func newHelpCenter(store *catalog.Store) *helpCenter {
	search := textinput.New()
	search.Placeholder = "Search help articles"
	search.Prompt = "🔍 "
	search.CharLimit = 80

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Popular articles"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	h := &helpCenter{
		store:     store,
		search:    search,
		list:      l,
		detail:    viewport.New(0, 0),
		renderer:  renderer,
		gridFocus: true,
		err:       err,
	}
	h.refresh()
	return h
}

// state derives which of the three views is showing.
func (h *helpCenter) state() helpState {
	if h.activeArticle != nil {
		return helpDetail
	}
	if strings.TrimSpace(h.search.Value()) != "" || h.activeCategory != nil {
		return helpList
	}
	return helpGrid
}

// refresh re-runs the filter: a non-empty query wins over the active
// category; with neither set the full catalog shows as popular
// articles. Result order is catalog order.
func (h *helpCenter) refresh() {
	query := strings.TrimSpace(h.search.Value())

	var articles []models.Article
	var err error
	switch {
	case query != "":
		articles, err = h.store.SearchArticles(query)
	case h.activeCategory != nil:
		articles, err = h.store.ArticlesByCategory(*h.activeCategory)
	default:
		articles, err = h.store.Articles()
	}
	if err != nil {
		h.err = err
		return
	}

	h.results = articles
	items := make([]list.Item, len(articles))
	for i, article := range articles {
		items[i] = articleItem{article}
	}
	h.list.SetItems(items)

	switch {
	case query != "":
		h.list.Title = fmt.Sprintf("Results for %q", query)
	case h.activeCategory != nil:
		h.list.Title = string(*h.activeCategory)
	default:
		h.list.Title = "Popular articles"
	}
}

// selectCategory activates a category, dropping any open article and
// any search query.
func (h *helpCenter) selectCategory(cat models.Category) {
	h.activeCategory = &cat
	h.activeArticle = nil
	h.search.SetValue("")
	h.search.Blur()
	h.refresh()
}

// openArticle shows an article's detail, scrolled to the top.
func (h *helpCenter) openArticle(article models.Article) {
	h.activeArticle = &article

	body := article.Content
	if h.renderer != nil {
		if rendered, err := h.renderer.Render(article.Content); err == nil {
			body = rendered
		}
	}
	h.detail.SetContent(body)
	h.detail.GotoTop()
}

// back is context-sensitive: close the article, else clear the
// category, else hand control back to the host shell.
func (h *helpCenter) back() tea.Cmd {
	switch {
	case h.activeArticle != nil:
		h.activeArticle = nil
		return nil
	case h.activeCategory != nil:
		h.activeCategory = nil
		h.refresh()
		return nil
	default:
		return func() tea.Msg { return navigateHomeMsg{} }
	}
}

func (h *helpCenter) setSize(width, height int) {
	h.width = width
	h.height = height
	h.search.Width = min(width-6, 60)
	h.list.SetSize(width, max(height-10, 5))
	h.detail.Width = width - 4
	h.detail.Height = max(height-8, 5)
}

func (h *helpCenter) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		h.list, cmd = h.list.Update(msg)
		return cmd
	}

	if h.search.Focused() {
		return h.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "/":
		h.search.Focus()
		return textinput.Blink

	case "esc", "backspace":
		return h.back()
	}

	switch h.state() {
	case helpGrid:
		return h.updateGrid(keyMsg)
	case helpList:
		return h.updateList(keyMsg)
	case helpDetail:
		var cmd tea.Cmd
		h.detail, cmd = h.detail.Update(keyMsg)
		return cmd
	}
	return nil
}

func (h *helpCenter) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		h.search.Blur()
		return nil
	}

	before := strings.TrimSpace(h.search.Value())
	var cmd tea.Cmd
	h.search, cmd = h.search.Update(msg)
	after := strings.TrimSpace(h.search.Value())

	if after != before {
		if after != "" {
			// A live query overrides browsing state entirely. Clearing
			// it later does not bring the category back.
			h.activeCategory = nil
			h.activeArticle = nil
		}
		h.refresh()
	}
	return cmd
}

func (h *helpCenter) updateGrid(msg tea.KeyMsg) tea.Cmd {
	cats := models.Categories()

	switch msg.String() {
	case "tab":
		h.gridFocus = !h.gridFocus
		return nil

	case "left", "h":
		if h.gridFocus && h.catCursor > 0 {
			h.catCursor--
		}
		if h.gridFocus {
			return nil
		}

	case "right", "l":
		if h.gridFocus && h.catCursor < len(cats)-1 {
			h.catCursor++
		}
		if h.gridFocus {
			return nil
		}

	case "enter":
		if h.gridFocus {
			h.selectCategory(cats[h.catCursor])
			return nil
		}
		if item, ok := h.list.SelectedItem().(articleItem); ok {
			h.openArticle(item.article)
		}
		return nil
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return cmd
}

func (h *helpCenter) updateList(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		if item, ok := h.list.SelectedItem().(articleItem); ok {
			h.openArticle(item.article)
		}
		return nil
	}

	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return cmd
}

func (h *helpCenter) view() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("UNERA Help Center"))
	s.WriteString("\n")
	s.WriteString(h.search.View())
	s.WriteString("\n\n")

	switch h.state() {
	case helpDetail:
		s.WriteString(articleTitleStyle.Render(h.activeArticle.Title))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(string(h.activeArticle.Category)))
		s.WriteString("\n")
		s.WriteString(h.detail.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("↑/↓: scroll • esc: back • q: quit"))

	case helpList:
		if len(h.results) == 0 {
			s.WriteString(h.list.Styles.Title.Render(h.list.Title))
			s.WriteString("\n\n")
			s.WriteString(helpStyle.Render("No articles found."))
			s.WriteString("\n\n")
		} else {
			s.WriteString(h.list.View())
			s.WriteString("\n")
		}
		s.WriteString(helpStyle.Render("enter: read • /: search • esc: back • q: quit"))

	case helpGrid:
		s.WriteString(h.renderCategoryRow())
		s.WriteString("\n\n")
		s.WriteString(h.list.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("←/→ + enter: browse category • tab: articles • /: search • esc: home • q: quit"))
	}

	if h.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", h.err)))
	}

	return s.String()
}

func (h *helpCenter) renderCategoryRow() string {
	cats := models.Categories()
	pills := make([]string, len(cats))
	for i, cat := range cats {
		style := categoryStyle
		if h.gridFocus && i == h.catCursor {
			style = categoryActiveStyle
		}
		pills[i] = style.Render(string(cat))
	}
	return strings.Join(pills, " ")
}
