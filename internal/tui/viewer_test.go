package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/pkg/models"
)

func testViewer() *viewer {
	return newViewer(50*time.Millisecond, 1.0, 0.5, nil, zerolog.Nop())
}

func mountText(v *viewer) {
	story := models.NewTextStory("user-a", "hello", "57", nil)
	v.mountStory(story, models.User{ID: "user-a", Name: "Aria Chen"}, nil, nil, false)
}

func tick(v *viewer) tea.Cmd {
	return v.handleTick(viewerTickMsg{mount: v.mount})
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestProgressAdvancesOnlyWhilePlaying(t *testing.T) {
	v := testViewer()
	mountText(v)

	tick(v)
	tick(v)
	assert.Equal(t, 2.0, v.progress)

	v.pause()
	tick(v)
	tick(v)
	assert.Equal(t, 2.0, v.progress, "paused progress must freeze")

	v.resume()
	tick(v)
	assert.Equal(t, 3.0, v.progress)
}

func TestVideoStoriesNeedMoreTicks(t *testing.T) {
	ticksToFull := func(story models.Story) int {
		v := testViewer()
		v.mountStory(story, models.User{ID: "u", Name: "U"}, nil, nil, false)
		n := 0
		for !v.advanced {
			tick(v)
			n++
			require.Less(t, n, 1000)
		}
		return n
	}

	imageTicks := ticksToFull(models.NewImageStory("u", "pic.jpg", "", nil))
	videoTicks := ticksToFull(models.NewVideoStory("u", "clip.mp4", "", nil))

	assert.Equal(t, 100, imageTicks)
	assert.Equal(t, 200, videoTicks)
	assert.Greater(t, videoTicks, imageTicks)
}

func TestReachingFullProgressAdvancesExactlyOnce(t *testing.T) {
	v := testViewer()
	mountText(v)

	advances := 0
	for i := 0; i < 150; i++ {
		before := v.advanced
		cmd := tick(v)
		require.NotNil(t, cmd)
		if v.advanced && !before {
			// The flip tick must carry the advance request alongside
			// the rescheduled timer.
			batch, ok := cmd().(tea.BatchMsg)
			require.True(t, ok)
			for _, sub := range batch {
				if _, ok := sub().(nextStoryMsg); ok {
					advances++
				}
			}
		}
	}

	assert.Equal(t, 1, advances)
	assert.True(t, v.advanced)
	assert.Equal(t, 100.0, v.progress)
}

func TestStaleTickFromPreviousMountIsDropped(t *testing.T) {
	v := testViewer()
	mountText(v)
	stale := viewerTickMsg{mount: v.mount}

	// The story changes; the old timer's ticks must not advance it.
	mountText(v)

	cmd := v.handleTick(stale)
	assert.Nil(t, cmd, "stale ticks must not reschedule")
	assert.Zero(t, v.progress)

	tick(v)
	assert.Equal(t, 1.0, v.progress)
}

func TestReplyFocusPausesAndEmptyBlurResumes(t *testing.T) {
	v := testViewer()
	mountText(v)

	v.handleKey(keyRunes('r'))
	assert.Equal(t, statePaused, v.state)
	assert.True(t, v.reply.Focused())

	// Blur with an empty field resumes playback.
	v.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, statePlaying, v.state)
	assert.False(t, v.reply.Focused())
}

func TestNonEmptyReplyKeepsViewerPausedAfterBlur(t *testing.T) {
	v := testViewer()
	mountText(v)

	v.handleKey(keyRunes('r'))
	v.handleKey(keyRunes('h'))
	v.handleKey(keyRunes('i'))
	require.Equal(t, "hi", v.reply.Value())

	v.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, statePaused, v.state, "text left in the field keeps the story paused")
}

func TestSubmittingReplyClearsInputAndResumes(t *testing.T) {
	v := testViewer()
	mountText(v)

	v.handleKey(keyRunes('r'))
	v.handleKey(keyRunes('h'))
	v.handleKey(keyRunes('i'))

	cmd := v.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(replyMsg)
	require.True(t, ok)

	assert.Equal(t, "hi", msg.text)
	assert.Empty(t, v.reply.Value())
	assert.Equal(t, statePlaying, v.state)
	assert.False(t, v.reply.Focused())
}

func TestAudioFollowsViewerState(t *testing.T) {
	v := testViewer()
	song := models.Song{ID: "s1", Title: "Track", Artist: "A", Duration: "2:00"}
	story := models.NewTextStory("user-a", "hello", "57", song.Attach(25))
	v.mountStory(story, models.User{ID: "user-a", Name: "Aria"}, nil, &song, false)

	require.NotNil(t, v.audio)
	assert.True(t, v.audio.Playing())

	v.handleDurationLoaded(durationLoadedMsg{mount: v.mount, duration: 2 * time.Minute})
	assert.Equal(t, 30*time.Second, v.audio.Position())

	v.pause()
	assert.False(t, v.audio.Playing())
	v.resume()
	assert.True(t, v.audio.Playing())
}

func TestStaleDurationMetadataIsIgnored(t *testing.T) {
	v := testViewer()
	song := models.Song{ID: "s1", Title: "Track", Artist: "A", Duration: "2:00"}
	story := models.NewTextStory("user-a", "hello", "57", song.Attach(50))
	v.mountStory(story, models.User{ID: "user-a", Name: "Aria"}, nil, &song, false)
	stale := durationLoadedMsg{mount: v.mount - 1, duration: time.Hour}

	v.handleDurationLoaded(stale)
	assert.Zero(t, v.audio.Duration())
}

func TestVideoMutedWhenMusicAttached(t *testing.T) {
	v := testViewer()
	song := models.Song{ID: "s1", Title: "Track", Artist: "A", Duration: "2:00"}

	withMusic := models.NewVideoStory("user-a", "clip.mp4", "", song.Attach(0))
	v.mountStory(withMusic, models.User{ID: "user-a", Name: "Aria"}, nil, &song, false)
	require.NotNil(t, v.video)
	assert.True(t, v.video.Muted())

	noMusic := models.NewVideoStory("user-a", "clip.mp4", "", nil)
	v.mountStory(noMusic, models.User{ID: "user-a", Name: "Aria"}, nil, nil, false)
	assert.False(t, v.video.Muted())
}

func TestMediaReleasedOnStoryChangeAndUnmount(t *testing.T) {
	v := testViewer()
	song := models.Song{ID: "s1", Title: "Track", Artist: "A", Duration: "2:00"}
	story := models.NewVideoStory("user-a", "clip.mp4", "", song.Attach(0))
	v.mountStory(story, models.User{ID: "user-a", Name: "Aria"}, nil, &song, false)

	audio, video := v.audio, v.video
	mountText(v)
	assert.True(t, audio.Released())
	assert.True(t, video.Released())
	assert.Nil(t, v.video)

	v.unmount()
	assert.Nil(t, v.audio)
}
