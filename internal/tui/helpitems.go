package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/unera-social/unera-tui/pkg/models"
)

type articleItem struct {
	article models.Article
}

func (i articleItem) Title() string {
	return i.article.Title
}

func (i articleItem) Description() string {
	return string(i.article.Category)
}

func (i articleItem) FilterValue() string {
	return i.article.Title
}

var _ list.Item = articleItem{}
