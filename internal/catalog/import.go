package catalog

import (
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mmcdole/gofeed"

	"github.com/unera-social/unera-tui/pkg/models"
)

// Importer adds extra help articles from a local RSS/Atom file, the
// format the docs team exports release notes in. It never touches the
// network: the feed is read from disk or not at all.
type Importer struct {
	store  *Store
	parser *gofeed.Parser
	conv   *md.Converter
}

func NewImporter(store *Store) *Importer {
	return &Importer{
		store:  store,
		parser: gofeed.NewParser(),
		conv:   md.NewConverter("", true, nil),
	}
}

// ImportFile parses the feed file at path and inserts one article per
// item under the given category. A missing file is not an error; it
// simply means no extra articles. Returns the number of articles added.
func (im *Importer) ImportFile(path string, category models.Category) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening feed file: %w", err)
	}
	defer f.Close()

	feed, err := im.parser.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing feed %s: %w", path, err)
	}

	added := 0
	for _, item := range feed.Items {
		article := im.convertToArticle(item, category)
		if article == nil {
			continue
		}
		if err := im.store.AddArticle(article); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

// convertToArticle converts a gofeed.Item to an Article. Items without
// a title are skipped.
func (im *Importer) convertToArticle(item *gofeed.Item, category models.Category) *models.Article {
	if item.Title == "" {
		return nil
	}

	// Prefer full content over the summary.
	body := item.Content
	if body == "" {
		body = item.Description
	}

	content, err := im.conv.ConvertString(body)
	if err != nil {
		// Fall back to the raw body rather than dropping the article.
		content = body
	}

	return &models.Article{
		Title:    item.Title,
		Category: category,
		Content:  content,
	}
}
