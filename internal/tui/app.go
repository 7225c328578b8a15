package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/unera-social/unera-tui/internal/catalog"
	"github.com/unera-social/unera-tui/internal/config"
	"github.com/unera-social/unera-tui/internal/player"
	"github.com/unera-social/unera-tui/pkg/models"
)

type appView int

const (
	viewHome appView = iota
	viewHelp
	viewViewer
	viewComposer
)

// App is the host shell. The reel, help center, viewer, and composer
// are leaves: they get data and emit intents, and App decides what
// those intents mean — advancing the story queue, finalizing a created
// story, or standing in for the wider platform with a status notice.
type App struct {
	cfg   *config.Config
	store *catalog.Store
	log   zerolog.Logger

	view        appView
	users       map[string]models.User
	currentUser *models.User
	following   map[string]bool

	stories    []models.Story
	songs      []models.Song
	storyIndex int

	reel     *reel
	help     *helpCenter
	viewer   *viewer
	composer *composer

	statusMsg string
	err       error
	width     int
	height    int
}

func New(cfg *config.Config, store *catalog.Store, log zerolog.Logger) App {
	users := catalog.DemoUsers()

	var currentUser *models.User
	if cfg.Session.UserName != "" {
		u := models.User{
			ID:        "user-" + uuid.NewString(),
			Name:      cfg.Session.UserName,
			AvatarRef: cfg.Session.AvatarRef,
		}
		users[u.ID] = u
		currentUser = &u
	}

	tick, err := cfg.UI.GetTickInterval()
	if err != nil || tick <= 0 {
		tick = 50 * time.Millisecond
	}

	var policy player.Policy

	return App{
		cfg:         cfg,
		store:       store,
		log:         log,
		view:        viewHome,
		users:       users,
		currentUser: currentUser,
		following:   map[string]bool{},
		reel:        newReel(users, currentUser),
		help:        newHelpCenter(store),
		viewer:      newViewer(tick, cfg.UI.ImageStep, cfg.UI.VideoStep, policy, log),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadStories(a.store),
		loadSongs(a.store),
		tea.EnterAltScreen,
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.setSize(msg.Width, msg.Height-4)
		a.viewer.setSize(msg.Width, msg.Height-4)
		a.reel.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case storiesLoadedMsg:
		a.stories = msg.stories
		a.reel.setStories(msg.stories)
		return a, nil

	case songsLoadedMsg:
		a.songs = msg.songs
		return a, nil

	case errorMsg:
		a.err = msg.err
		a.log.Error().Err(msg.err).Msg("ui error")
		return a, nil

	case statusMsg:
		a.statusMsg = string(msg)
		return a, nil

	// Viewer-internal messages keep flowing even after the view
	// changes; the mount sequence makes stale ones harmless.
	case viewerTickMsg, durationLoadedMsg:
		return a, a.viewer.update(msg)

	case navigateHomeMsg:
		a.view = viewHome
		return a, nil

	case viewStoryMsg:
		return a.openViewerAt(msg.index)

	case nextStoryMsg:
		if a.storyIndex+1 >= len(a.stories) {
			// End of the queue: the host closes the viewer.
			return a.closeViewer()
		}
		return a.openViewerAt(a.storyIndex + 1)

	case prevStoryMsg:
		if a.storyIndex > 0 {
			return a.openViewerAt(a.storyIndex - 1)
		}
		// First story: restart it.
		return a.openViewerAt(a.storyIndex)

	case closeViewerMsg:
		return a.closeViewer()

	case replyMsg:
		owner := a.users[a.currentStory().UserID]
		a.log.Info().Str("to", owner.ID).Str("text", msg.text).Msg("story reply sent")
		a.statusMsg = fmt.Sprintf("Reply sent to %s", owner.Name)
		return a, nil

	case likeMsg:
		owner := a.users[a.currentStory().UserID]
		a.log.Info().Str("story", a.currentStory().ID).Msg("story liked")
		a.statusMsg = fmt.Sprintf("❤ You liked %s's story", owner.Name)
		return a, nil

	case followMsg:
		a.following[msg.userID] = true
		a.viewer.isFollowing = true
		a.log.Info().Str("user", msg.userID).Msg("followed user")
		a.statusMsg = fmt.Sprintf("Following %s", a.users[msg.userID].Name)
		return a, nil

	case profileClickMsg:
		a.log.Info().Str("user", msg.userID).Msg("profile opened")
		a.statusMsg = fmt.Sprintf("Opening %s's profile", a.users[msg.userID].Name)
		return a, nil

	case requestLoginMsg:
		a.statusMsg = "Log in to share a story (set session.user_name in your config)"
		return a, nil

	case openComposerMsg:
		a.composer = newComposer(*a.currentUser, a.songs)
		a.view = viewComposer
		return a, nil

	case closeComposerMsg:
		a.composer = nil
		a.view = viewHome
		return a, nil

	case createStoryMsg:
		return a.finalizeStory(msg.story)
	}

	if a.view == viewHelp {
		return a, a.help.update(msg)
	}
	return a, nil
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.view {
	case viewHome:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "?":
			a.view = viewHelp
			return a, nil
		}
		return a, a.reel.update(msg)

	case viewHelp:
		if msg.String() == "q" && !a.help.search.Focused() {
			return a, tea.Quit
		}
		return a, a.help.update(msg)

	case viewViewer:
		return a, a.viewer.update(msg)

	case viewComposer:
		return a, a.composer.update(msg)
	}
	return a, nil
}

func (a App) openViewerAt(index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(a.stories) {
		return a, nil
	}
	a.storyIndex = index
	story := a.stories[index]
	owner := a.users[story.UserID]

	var song *models.Song
	if story.Music != nil {
		found, err := a.store.SongByID(story.Music.SongID)
		if err == nil {
			song = found
		} else {
			// Locally uploaded tracks never hit the catalog; rebuild a
			// playable entry from the attachment itself.
			song = &models.Song{
				ID:     story.Music.SongID,
				Title:  story.Music.Title,
				Artist: story.Music.Artist,
			}
		}
	}

	a.view = viewViewer
	cmd := a.viewer.mountStory(story, owner, a.currentUser, song, a.following[story.UserID])
	return a, cmd
}

func (a App) closeViewer() (tea.Model, tea.Cmd) {
	a.viewer.unmount()
	a.view = viewHome
	return a, nil
}

// finalizeStory completes a composer draft the way the platform would:
// the record already carries its id, owner, and timestamp, so the shell
// just persists it for the session and refreshes the reel.
func (a App) finalizeStory(story models.Story) (tea.Model, tea.Cmd) {
	if err := a.store.AddStory(&story); err != nil {
		a.err = err
		return a, nil
	}

	a.log.Info().Str("story", story.ID).Str("kind", string(story.Kind)).Msg("story created")
	a.composer = nil
	a.view = viewHome
	a.statusMsg = "Story shared"
	return a, loadStories(a.store)
}

func (a App) currentStory() models.Story {
	if a.storyIndex >= 0 && a.storyIndex < len(a.stories) {
		return a.stories[a.storyIndex]
	}
	return models.Story{}
}

func (a App) View() string {
	switch a.view {
	case viewHelp:
		return a.help.view()
	case viewViewer:
		return a.viewer.view()
	case viewComposer:
		return a.composer.view()
	}
	return a.renderHome()
}

func (a App) renderHome() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("UNERA"))
	s.WriteString("\n")
	s.WriteString(a.reel.view())
	s.WriteString("\n\n")

	if a.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", a.err)))
		s.WriteString("\n")
	} else if a.statusMsg != "" {
		s.WriteString(statusStyle.Render(a.statusMsg))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("←/→ + enter: open • p: profile • ?: help center • q: quit"))

	return s.String()
}

func loadStories(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		stories, err := store.Stories()
		if err != nil {
			return errorMsg{err}
		}
		return storiesLoadedMsg{stories}
	}
}

func loadSongs(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		songs, err := store.Songs()
		if err != nil {
			return errorMsg{err}
		}
		return songsLoadedMsg{songs}
	}
}
