package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/pkg/models"
)

func openSeeded(t *testing.T) *Store {
	t.Helper()

	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, SeedAll(context.Background(), store))
	return store
}

func TestSearchArticlesMatchesTitleOrCategory(t *testing.T) {
	store := openSeeded(t)

	all, err := store.Articles()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	results, err := store.SearchArticles("GROUPS")
	require.NoError(t, err)

	// Every result must contain the query in title or category, and
	// every catalog article that does must be in the results.
	contains := func(a models.Article) bool {
		return containsFold(a.Title, "groups") || containsFold(string(a.Category), "groups")
	}
	for _, a := range results {
		assert.True(t, contains(a), "unexpected result %q", a.Title)
	}
	want := 0
	for _, a := range all {
		if contains(a) {
			want++
		}
	}
	assert.Len(t, results, want)
	assert.NotZero(t, want)
}

func TestSearchArticlesEmptyQueryReturnsFullCatalog(t *testing.T) {
	store := openSeeded(t)

	all, err := store.Articles()
	require.NoError(t, err)

	results, err := store.SearchArticles("   ")
	require.NoError(t, err)
	assert.Equal(t, all, results)
}

func TestSearchArticlesNoMatch(t *testing.T) {
	store := openSeeded(t)

	results, err := store.SearchArticles("zzz-no-such-topic")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestArticlesByCategoryOnlyThatCategory(t *testing.T) {
	store := openSeeded(t)

	results, err := store.ArticlesByCategory(models.CategoryGroups)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	titles := make([]string, 0, len(results))
	for _, a := range results {
		assert.Equal(t, models.CategoryGroups, a.Category)
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Using UNERA Groups")
}

func TestArticlesKeepCatalogOrder(t *testing.T) {
	store := openSeeded(t)

	all, err := store.Articles()
	require.NoError(t, err)

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestSeededArticleContentIsMarkdown(t *testing.T) {
	store := openSeeded(t)

	results, err := store.SearchArticles("Posting a story")
	require.NoError(t, err)
	require.Len(t, results, 1)

	// The HTML seed body must have been converted.
	assert.NotContains(t, results[0].Content, "<p>")
	assert.Contains(t, results[0].Content, "## Stories")
}

func TestSongsRoundTrip(t *testing.T) {
	store := openSeeded(t)

	songs, err := store.Songs()
	require.NoError(t, err)
	require.NotEmpty(t, songs)

	got, err := store.SongByID(songs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, songs[0], *got)

	_, err = store.SongByID("missing")
	assert.ErrorIs(t, err, ErrSongNotFound)
}

func TestStoriesRoundTripWithMusic(t *testing.T) {
	store := openSeeded(t)

	music := &models.StoryMusic{SongID: "song-golden-hour", Title: "Golden Hour", Artist: "Mara & The Tide", OffsetPct: 25}
	story := models.NewImageStory("user-1", "pic.jpg", "caption", music)
	require.NoError(t, store.AddStory(&story))

	plain := models.NewTextStory("user-2", "hi", "57", nil)
	require.NoError(t, store.AddStory(&plain))

	stories, err := store.Stories()
	require.NoError(t, err)
	require.Len(t, stories, 2)

	assert.Equal(t, story.ID, stories[0].ID)
	require.NotNil(t, stories[0].Music)
	assert.Equal(t, 25.0, stories[0].Music.OffsetPct)
	assert.Equal(t, "Golden Hour", stories[0].Music.Title)

	assert.Nil(t, stories[1].Music)
	assert.Equal(t, models.StoryText, stories[1].Kind)
}

func TestSeedDemoStories(t *testing.T) {
	store := openSeeded(t)

	require.NoError(t, SeedDemoStories(store))

	stories, err := store.Stories()
	require.NoError(t, err)
	require.Len(t, stories, 3)

	users := DemoUsers()
	for _, s := range stories {
		_, ok := users[s.UserID]
		assert.True(t, ok, "story owner %q not a demo user", s.UserID)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
