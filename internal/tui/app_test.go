package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/internal/catalog"
	"github.com/unera-social/unera-tui/internal/config"
	"github.com/unera-social/unera-tui/pkg/models"
)

func testApp(t *testing.T) App {
	t.Helper()

	store, err := catalog.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, catalog.SeedAll(context.Background(), store))
	require.NoError(t, catalog.SeedDemoStories(store))

	cfg, err := config.Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	cfg.Session.UserName = "Test User"

	app := New(cfg, store, zerolog.Nop())

	stories, err := store.Stories()
	require.NoError(t, err)
	updated, _ := app.Update(storiesLoadedMsg{stories})
	return updated.(App)
}

func TestAdvancePastLastStoryClosesViewer(t *testing.T) {
	a := testApp(t)
	last := len(a.stories) - 1

	m, _ := a.Update(viewStoryMsg{index: last})
	a = m.(App)
	require.Equal(t, viewViewer, a.view)

	m, _ = a.Update(nextStoryMsg{})
	a = m.(App)
	assert.Equal(t, viewHome, a.view, "the host closes the viewer at the end of the queue")
}

func TestNextStoryMountsFollowingStory(t *testing.T) {
	a := testApp(t)

	m, _ := a.Update(viewStoryMsg{index: 0})
	a = m.(App)
	m, _ = a.Update(nextStoryMsg{})
	a = m.(App)

	assert.Equal(t, viewViewer, a.view)
	assert.Equal(t, 1, a.storyIndex)
	assert.Equal(t, a.stories[1].ID, a.viewer.story.ID)
}

func TestPrevAtFirstStoryRestartsIt(t *testing.T) {
	a := testApp(t)

	m, _ := a.Update(viewStoryMsg{index: 0})
	a = m.(App)
	tick(a.viewer)
	require.NotZero(t, a.viewer.progress)

	m, _ = a.Update(prevStoryMsg{})
	a = m.(App)

	assert.Equal(t, 0, a.storyIndex)
	assert.Zero(t, a.viewer.progress)
}

func TestCreateStoryIsFinalizedAndReelRefreshes(t *testing.T) {
	a := testApp(t)
	before := len(a.stories)

	story := models.NewTextStory(a.currentUser.ID, "fresh", "57", nil)
	m, cmd := a.Update(createStoryMsg{story: story})
	a = m.(App)
	require.NotNil(t, cmd)

	assert.Equal(t, viewHome, a.view)
	assert.Equal(t, "Story shared", a.statusMsg)

	// The finalize step reloads the session stories.
	m, _ = a.Update(cmd())
	a = m.(App)
	assert.Len(t, a.stories, before+1)
	assert.Equal(t, story.ID, a.stories[before].ID)
}

func TestFollowUpdatesStateAndViewer(t *testing.T) {
	a := testApp(t)

	m, _ := a.Update(viewStoryMsg{index: 0})
	a = m.(App)
	ownerID := a.viewer.owner.ID

	m, _ = a.Update(followMsg{userID: ownerID})
	a = m.(App)

	assert.True(t, a.following[ownerID])
	assert.True(t, a.viewer.isFollowing)
}

func TestRequestLoginWithoutSession(t *testing.T) {
	store, err := catalog.Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, catalog.SeedAll(context.Background(), store))

	cfg, err := config.Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	a := New(cfg, store, zerolog.Nop())
	require.Nil(t, a.currentUser)

	// The create tile asks the host for login instead of composing.
	cmd := a.reel.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(requestLoginMsg)
	require.True(t, ok)

	m, _ := a.Update(msg)
	a = m.(App)
	assert.Contains(t, a.statusMsg, "Log in")
}

func TestViewerMusicLookupFallsBackForLocalSongs(t *testing.T) {
	a := testApp(t)

	local := models.SongFromLocalFile("/tmp/mix.mp3")
	story := models.NewTextStory(a.currentUser.ID, "tunes", "57", local.Attach(10))
	m, cmd := a.Update(createStoryMsg{story: story})
	a = m.(App)
	m, _ = a.Update(cmd())
	a = m.(App)

	m, _ = a.Update(viewStoryMsg{index: len(a.stories) - 1})
	a = m.(App)

	require.NotNil(t, a.viewer.audio)
	assert.Equal(t, "mix.mp3", a.viewer.audio.Song().Title)
}
