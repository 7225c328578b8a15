package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/pkg/models"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>UNERA release notes</title>
    <item>
      <title>What's new in stories</title>
      <description>&lt;p&gt;Stories can now carry &lt;strong&gt;background music&lt;/strong&gt;.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Group improvements</title>
      <description>&lt;p&gt;Admins can pin posts.&lt;/p&gt;</description>
    </item>
    <item>
      <description>No title, should be skipped.</description>
    </item>
  </channel>
</rss>`

func TestImportFile(t *testing.T) {
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	path := filepath.Join(t.TempDir(), "notes.xml")
	require.NoError(t, os.WriteFile(path, []byte(testFeed), 0644))

	added, err := NewImporter(store).ImportFile(path, models.CategoryStories)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	articles, err := store.ArticlesByCategory(models.CategoryStories)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "What's new in stories", articles[0].Title)
	assert.Contains(t, articles[0].Content, "**background music**")
	assert.NotContains(t, articles[0].Content, "<p>")
}

func TestImportFileMissingIsNotAnError(t *testing.T) {
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	added, err := NewImporter(store).ImportFile(filepath.Join(t.TempDir(), "absent.xml"), models.CategoryStories)
	require.NoError(t, err)
	assert.Zero(t, added)
}
