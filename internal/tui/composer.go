package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unera-social/unera-tui/internal/media"
	"github.com/unera-social/unera-tui/pkg/models"
)

type composerMode int

const (
	modeText composerMode = iota
	modeMedia
)

type composerStep int

const (
	stepMode composerStep = iota
	stepContent
	stepMusic
	stepOffset
	stepReview
)

// composer is the story creation wizard: pick a mode, author the
// content, optionally attach music with a start offset, review, share.
// Nothing leaves the composer until submit hands a fully assembled
// story to the shell; an invalid draft makes submit a no-op.
type composer struct {
	currentUser models.User
	songs       []models.Song

	step composerStep
	mode composerMode

	text    textarea.Model
	bgIndex int

	file     textinput.Model
	filePath string
	fileKind models.StoryKind

	// music selection: cursor 0 is "no music", 1..len(songs) the
	// catalog, len(songs)+1 a locally picked file.
	musicCursor  int
	localAudio   textinput.Model
	pickingLocal bool
	music        *models.Song

	offsetPct float64

	// sniff resolves a picked file's story kind. Swappable in tests.
	sniff func(path string) (models.StoryKind, error)

	notice string
}

func newComposer(currentUser models.User, songs []models.Song) *composer {
	text := textarea.New()
	text.Placeholder = "Type your story…"
	text.SetWidth(44)
	text.SetHeight(4)

	file := textinput.New()
	file.Placeholder = "Path to an image or video file"
	file.Prompt = "📁 "
	file.CharLimit = 200

	localAudio := textinput.New()
	localAudio.Placeholder = "Path to an audio file"
	localAudio.Prompt = "🎵 "
	localAudio.CharLimit = 200

	return &composer{
		currentUser: currentUser,
		songs:       songs,
		text:        text,
		file:        file,
		localAudio:  localAudio,
		sniff:       media.KindForFile,
	}
}

// submit assembles the story and hands it to the shell. Drafts with no
// text (text mode) or no file (media mode) are rejected silently.
func (c *composer) submit() tea.Cmd {
	var music *models.StoryMusic
	if c.music != nil {
		music = c.music.Attach(c.offsetPct)
	}

	var story models.Story
	switch c.mode {
	case modeText:
		if strings.TrimSpace(c.text.Value()) == "" {
			return nil
		}
		story = models.NewTextStory(c.currentUser.ID, c.text.Value(), storyBackgrounds[c.bgIndex], music)

	case modeMedia:
		if c.filePath == "" {
			return nil
		}
		if c.fileKind == models.StoryVideo {
			story = models.NewVideoStory(c.currentUser.ID, c.filePath, "", music)
		} else {
			story = models.NewImageStory(c.currentUser.ID, c.filePath, "", music)
		}
	}

	return func() tea.Msg { return createStoryMsg{story: story} }
}

// pickFile sniffs the chosen file and locks in the resulting kind:
// video/* makes a video story, anything else an image story.
func (c *composer) pickFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	kind, err := c.sniff(path)
	if err != nil {
		c.notice = fmt.Sprintf("Can't read %s", path)
		return
	}
	c.filePath = path
	c.fileKind = kind
	c.notice = ""
	c.step = stepMusic
}

// pickLocalAudio synthesizes a zero-stats catalog entry for a local
// audio file and attaches it.
func (c *composer) pickLocalAudio(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	song := models.SongFromLocalFile(path)
	c.music = &song
	c.pickingLocal = false
	c.step = stepOffset
}

func (c *composer) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch c.step {
	case stepMode:
		return c.updateMode(keyMsg)
	case stepContent:
		return c.updateContent(keyMsg)
	case stepMusic:
		return c.updateMusic(keyMsg)
	case stepOffset:
		return c.updateOffset(keyMsg)
	case stepReview:
		return c.updateReview(keyMsg)
	}
	return nil
}

func (c *composer) updateMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return func() tea.Msg { return closeComposerMsg{} }

	case "t":
		c.mode = modeText
		c.step = stepContent
		c.text.Focus()
		return textarea.Blink

	case "m":
		c.mode = modeMedia
		c.step = stepContent
		c.file.Focus()
		return textinput.Blink
	}
	return nil
}

func (c *composer) updateContent(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.step = stepMode
		c.text.Blur()
		c.file.Blur()
		return nil
	}

	if c.mode == modeText {
		switch msg.String() {
		case "ctrl+left":
			if c.bgIndex > 0 {
				c.bgIndex--
			}
			return nil
		case "ctrl+right":
			if c.bgIndex < len(storyBackgrounds)-1 {
				c.bgIndex++
			}
			return nil
		case "ctrl+n":
			// Enter stays with the textarea for newlines; ctrl+n moves
			// the wizard forward.
			c.step = stepMusic
			c.text.Blur()
			return nil
		}
		var cmd tea.Cmd
		c.text, cmd = c.text.Update(msg)
		return cmd
	}

	if msg.String() == "enter" {
		c.pickFile(c.file.Value())
		return nil
	}
	var cmd tea.Cmd
	c.file, cmd = c.file.Update(msg)
	return cmd
}

func (c *composer) updateMusic(msg tea.KeyMsg) tea.Cmd {
	if c.pickingLocal {
		switch msg.String() {
		case "esc":
			c.pickingLocal = false
			return nil
		case "enter":
			c.pickLocalAudio(c.localAudio.Value())
			return nil
		}
		var cmd tea.Cmd
		c.localAudio, cmd = c.localAudio.Update(msg)
		return cmd
	}

	last := len(c.songs) + 1
	switch msg.String() {
	case "esc":
		c.step = stepContent
		if c.mode == modeText {
			c.text.Focus()
		} else {
			c.file.Focus()
		}
		return nil

	case "up", "k":
		if c.musicCursor > 0 {
			c.musicCursor--
		}

	case "down", "j":
		if c.musicCursor < last {
			c.musicCursor++
		}

	case "enter":
		switch {
		case c.musicCursor == 0:
			c.music = nil
			c.step = stepReview
		case c.musicCursor == last:
			c.pickingLocal = true
			c.localAudio.Focus()
			return textinput.Blink
		default:
			song := c.songs[c.musicCursor-1]
			c.music = &song
			c.step = stepOffset
		}
	}
	return nil
}

func (c *composer) updateOffset(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.step = stepMusic
		return nil

	case "left", "h":
		c.offsetPct -= 5
		if c.offsetPct < 0 {
			c.offsetPct = 0
		}

	case "right", "l":
		c.offsetPct += 5
		if c.offsetPct > 100 {
			c.offsetPct = 100
		}

	case "enter":
		c.step = stepReview
	}
	return nil
}

func (c *composer) updateReview(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.step = stepMusic
		return nil

	case "enter":
		return c.submit()
	}
	return nil
}

func (c *composer) view() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("New story"))
	s.WriteString("\n")

	switch c.step {
	case stepMode:
		s.WriteString("What kind of story?\n\n")
		s.WriteString("  t — text over a background\n")
		s.WriteString("  m — photo or video\n\n")
		s.WriteString(helpStyle.Render("esc: cancel"))

	case stepContent:
		if c.mode == modeText {
			s.WriteString(c.text.View())
			s.WriteString("\n\n")
			s.WriteString("Background: ")
			s.WriteString(c.renderPalette())
			s.WriteString("\n\n")
			s.WriteString(helpStyle.Render("ctrl+←/→: background • ctrl+n: next • esc: back"))
		} else {
			s.WriteString(c.file.View())
			s.WriteString("\n\n")
			s.WriteString(helpStyle.Render("enter: choose file • esc: back"))
		}

	case stepMusic:
		if c.pickingLocal {
			s.WriteString(c.localAudio.View())
			s.WriteString("\n\n")
			s.WriteString(helpStyle.Render("enter: use file • esc: back"))
			break
		}
		s.WriteString("Add music?\n\n")
		s.WriteString(c.renderMusicOptions())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("↑/↓ + enter: choose • esc: back"))

	case stepOffset:
		s.WriteString(fmt.Sprintf("Start %q at:\n\n", c.music.Title))
		s.WriteString(c.renderOffsetSlider())
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("←/→: adjust • enter: next • esc: back"))

	case stepReview:
		s.WriteString(c.renderReview())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("enter: share story • esc: back"))
	}

	if c.notice != "" {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render(c.notice))
	}

	return s.String()
}

func (c *composer) renderPalette() string {
	swatches := make([]string, len(storyBackgrounds))
	for i, bg := range storyBackgrounds {
		swatch := backgroundStyle(bg).Padding(0, 1).Render(" ")
		if i == c.bgIndex {
			swatch = backgroundStyle(bg).Padding(0, 1).Render("✓")
		}
		swatches[i] = swatch
	}
	return strings.Join(swatches, " ")
}

func (c *composer) renderMusicOptions() string {
	var s strings.Builder

	line := func(index int, label string) {
		cursor := "  "
		if c.musicCursor == index {
			cursor = "> "
		}
		s.WriteString(cursor + label + "\n")
	}

	line(0, "No music")
	for i, song := range c.songs {
		line(i+1, fmt.Sprintf("♪ %s — %s (%s)", song.Title, song.Artist, song.Duration))
	}
	line(len(c.songs)+1, "Upload an audio file…")

	return s.String()
}

func (c *composer) renderOffsetSlider() string {
	const width = 20
	filled := int(c.offsetPct / 100 * width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%%", bar, c.offsetPct)
}

func (c *composer) renderReview() string {
	var s strings.Builder

	switch c.mode {
	case modeText:
		s.WriteString(backgroundStyle(storyBackgrounds[c.bgIndex]).Width(40).Render(c.text.Value()))
	case modeMedia:
		glyph := "🖼"
		if c.fileKind == models.StoryVideo {
			glyph = "🎬"
		}
		s.WriteString(fmt.Sprintf("%s %s", glyph, c.filePath))
	}
	s.WriteString("\n\n")

	if c.music != nil {
		s.WriteString(musicStyle.Render(fmt.Sprintf("♪ %s — %s, from %.0f%%", c.music.Title, c.music.Artist, c.offsetPct)))
		s.WriteString("\n")
	}

	return s.String()
}
