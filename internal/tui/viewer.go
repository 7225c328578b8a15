package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/unera-social/unera-tui/internal/player"
	"github.com/unera-social/unera-tui/pkg/models"
)

type viewerState int

const (
	statePlaying viewerState = iota
	statePaused
)

// viewer plays one story at a time, full screen. Progress advances on a
// fixed-interval tick only while playing; reaching 100 asks the host
// shell for the next story exactly once. Audio and video handles are
// scoped to the current mount and released on every exit path.
type viewer struct {
	story       models.Story
	owner       models.User
	currentUser *models.User
	isFollowing bool

	state    viewerState
	progress float64
	advanced bool

	// mount counts story mounts. Tick and metadata messages carry the
	// mount that scheduled them; anything older is dropped.
	mount int

	reply textinput.Model
	bar   progress.Model

	audio *player.Audio
	video *player.Video

	tickEvery time.Duration
	imageStep float64
	videoStep float64

	policy player.Policy
	log    zerolog.Logger

	width  int
	height int
}

func newViewer(tickEvery time.Duration, imageStep, videoStep float64, policy player.Policy, log zerolog.Logger) *viewer {
	reply := textinput.New()
	reply.Placeholder = "Send a reply…"
	reply.Prompt = "💬 "
	reply.CharLimit = 200

	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false

	return &viewer{
		reply:     reply,
		bar:       bar,
		tickEvery: tickEvery,
		imageStep: imageStep,
		videoStep: videoStep,
		policy:    policy,
		log:       log,
	}
}

// mountStory swaps the displayed story: the previous mount's media is
// released, progress resets, and a fresh tick chain starts. The song
// lookup for the music attachment is the caller's job.
func (v *viewer) mountStory(story models.Story, owner models.User, currentUser *models.User, song *models.Song, isFollowing bool) tea.Cmd {
	v.releaseMedia()

	v.story = story
	v.owner = owner
	v.currentUser = currentUser
	v.isFollowing = isFollowing
	v.state = statePlaying
	v.progress = 0
	v.advanced = false
	v.mount++
	v.reply.SetValue("")
	v.reply.Blur()

	cmds := []tea.Cmd{v.tickCmd()}

	if story.Music != nil && song != nil {
		v.audio = player.NewAudio(*song, story.Music.OffsetPct, v.policy)
		if err := v.audio.Play(); err != nil {
			// Autoplay rejection is best-effort territory: log it and
			// carry on silently.
			v.log.Warn().Err(err).Str("song", song.Title).Msg("audio playback did not start")
		}
		cmds = append(cmds, v.loadMetadataCmd())
	}

	if story.Kind == models.StoryVideo {
		v.video = player.NewVideo(story.MediaRef, v.policy)
		// Never double audio: the video's own track goes quiet whenever
		// background music is attached.
		v.video.SetMuted(story.Music != nil)
		if err := v.video.Play(); err != nil {
			v.log.Warn().Err(err).Str("media", story.MediaRef).Msg("video playback did not start")
		}
	}

	return tea.Batch(cmds...)
}

// unmount tears the viewer down, releasing media.
func (v *viewer) unmount() {
	v.releaseMedia()
	v.mount++
	v.reply.SetValue("")
	v.reply.Blur()
}

func (v *viewer) releaseMedia() {
	if v.audio != nil {
		v.audio.Release()
		v.audio = nil
	}
	if v.video != nil {
		v.video.Release()
		v.video = nil
	}
}

func (v *viewer) tickCmd() tea.Cmd {
	mount := v.mount
	return tea.Tick(v.tickEvery, func(t time.Time) tea.Msg {
		return viewerTickMsg{mount: mount, at: t}
	})
}

func (v *viewer) loadMetadataCmd() tea.Cmd {
	mount := v.mount
	audio := v.audio
	return func() tea.Msg {
		d, ok := audio.LoadMetadata()
		if !ok {
			return nil
		}
		return durationLoadedMsg{mount: mount, duration: d}
	}
}

// step is the per-tick progress increment. Video stories are paced
// slower so they run longer under the same tick rate.
func (v *viewer) step() float64 {
	if v.story.Kind == models.StoryVideo {
		return v.videoStep
	}
	return v.imageStep
}

func (v *viewer) handleTick(msg viewerTickMsg) tea.Cmd {
	if msg.mount != v.mount {
		// Stale timer from a story that is no longer showing. Drop it
		// without rescheduling; the current mount has its own chain.
		return nil
	}

	if v.state == statePlaying && !v.advanced {
		v.progress += v.step()
		if v.progress >= 100 {
			v.progress = 100
			v.advanced = true
			return tea.Batch(v.tickCmd(), func() tea.Msg { return nextStoryMsg{} })
		}
	}

	// The timer keeps ticking while paused; only the increment is
	// gated on the playing state.
	return v.tickCmd()
}

func (v *viewer) handleDurationLoaded(msg durationLoadedMsg) {
	if msg.mount != v.mount || v.audio == nil {
		return
	}
	v.audio.SetDuration(msg.duration)
}

// pause freezes progress and both media tracks.
func (v *viewer) pause() {
	v.state = statePaused
	if v.audio != nil {
		v.audio.Pause()
	}
	if v.video != nil {
		v.video.Pause()
	}
}

// resume restarts progress and both media tracks.
func (v *viewer) resume() {
	v.state = statePlaying
	if v.audio != nil {
		if err := v.audio.Play(); err != nil {
			v.log.Warn().Err(err).Msg("audio resume did not start")
		}
	}
	if v.video != nil {
		if err := v.video.Play(); err != nil {
			v.log.Warn().Err(err).Msg("video resume did not start")
		}
	}
}

func (v *viewer) setSize(width, height int) {
	v.width = width
	v.height = height
	v.bar.Width = min(width-10, 48)
	v.reply.Width = min(width-14, 44)
}

func (v *viewer) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case viewerTickMsg:
		return v.handleTick(msg)
	case durationLoadedMsg:
		v.handleDurationLoaded(msg)
		return nil
	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return nil
}

func (v *viewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.reply.Focused() {
		return v.handleReplyKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return func() tea.Msg { return closeViewerMsg{} }

	case "left", "h":
		// Left zone: previous story.
		return func() tea.Msg { return prevStoryMsg{} }

	case "right", "l":
		// Right zone: next story.
		return func() tea.Msg { return nextStoryMsg{} }

	case " ":
		// Center zone: double-tap to like.
		return func() tea.Msg { return likeMsg{} }

	case "f":
		if v.canFollow() {
			userID := v.owner.ID
			return func() tea.Msg { return followMsg{userID: userID} }
		}
		return nil

	case "r", "enter":
		// Focusing the reply field pauses the story.
		v.pause()
		return v.focusReply()
	}
	return nil
}

func (v *viewer) focusReply() tea.Cmd {
	v.reply.Focus()
	return textinput.Blink
}

func (v *viewer) handleReplyKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.reply.Blur()
		// Blurring with text still in the field keeps the story
		// paused; an empty field resumes playback.
		if strings.TrimSpace(v.reply.Value()) == "" {
			v.resume()
		}
		return nil

	case "enter":
		text := strings.TrimSpace(v.reply.Value())
		if text == "" {
			return nil
		}
		v.reply.SetValue("")
		v.reply.Blur()
		v.resume()
		return func() tea.Msg { return replyMsg{text: text} }
	}

	var cmd tea.Cmd
	v.reply, cmd = v.reply.Update(msg)
	return cmd
}

func (v *viewer) canFollow() bool {
	if v.isFollowing {
		return false
	}
	return v.currentUser == nil || v.currentUser.ID != v.owner.ID
}

func (v *viewer) view() string {
	var s strings.Builder

	s.WriteString(v.bar.ViewAs(v.progress / 100))
	s.WriteString("\n\n")

	header := fmt.Sprintf("%s  %s", avatarInitials(v.owner), v.owner.Name)
	if v.canFollow() {
		header += helpStyle.Render("  (f: follow)")
	}
	s.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(ageLabel(v.story.CreatedAt)))
	s.WriteString("\n\n")

	s.WriteString(viewerFrameStyle.Render(v.renderBody()))
	s.WriteString("\n")

	if v.story.Music != nil {
		s.WriteString(musicStyle.Render(fmt.Sprintf("♪ %s — %s", v.story.Music.Title, v.story.Music.Artist)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(v.reply.View())
	s.WriteString("\n\n")

	if v.state == statePaused {
		s.WriteString(noticeStyle.Render("paused"))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("←/→: prev/next • space: like • r: reply • f: follow • esc: close"))

	return s.String()
}

func (v *viewer) renderBody() string {
	switch v.story.Kind {
	case models.StoryText:
		bg := v.story.Background
		if bg == "" {
			bg = storyBackgrounds[0]
		}
		return backgroundStyle(bg).Width(40).Render(v.story.Text)

	case models.StoryVideo:
		label := "🎬 " + v.story.MediaRef
		if v.video != nil && v.video.Muted() {
			label += "  (muted)"
		}
		body := label
		if v.story.Text != "" {
			body += "\n\n" + v.story.Text
		}
		return body

	default:
		body := "🖼 " + v.story.MediaRef
		if v.story.Text != "" {
			body += "\n\n" + v.story.Text
		}
		return body
	}
}
