package tui

import (
	"time"

	"github.com/unera-social/unera-tui/pkg/models"
)

// Loader results.

type storiesLoadedMsg struct {
	stories []models.Story
}

type songsLoadedMsg struct {
	songs []models.Song
}

type errorMsg struct {
	err error
}

type statusMsg string

// Intents the components hand back to the host shell. Components never
// mutate shared state directly; they emit one of these and the shell
// decides what happens.

type navigateHomeMsg struct{}

type viewStoryMsg struct {
	index int
}

type nextStoryMsg struct{}

type prevStoryMsg struct{}

type closeViewerMsg struct{}

type replyMsg struct {
	text string
}

type likeMsg struct{}

type followMsg struct {
	userID string
}

type profileClickMsg struct {
	userID string
}

type requestLoginMsg struct{}

type openComposerMsg struct{}

type createStoryMsg struct {
	story models.Story
}

type closeComposerMsg struct{}

// Viewer internals.

// viewerTickMsg drives story progress. The mount sequence ties a tick
// to the story mount that scheduled it; ticks from an earlier mount are
// dropped so a replaced story can never be advanced by a stale timer.
type viewerTickMsg struct {
	mount int
	at    time.Time
}

// durationLoadedMsg delivers audio duration metadata after mount.
type durationLoadedMsg struct {
	mount    int
	duration time.Duration
}
