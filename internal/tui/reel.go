package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unera-social/unera-tui/pkg/models"
)

// reel is the horizontal strip of story tiles with a leading create
// tile. Cursor 0 is the create tile; story i sits at cursor i+1.
type reel struct {
	stories     []models.Story
	users       map[string]models.User
	currentUser *models.User
	cursor      int
	width       int
}

func newReel(users map[string]models.User, currentUser *models.User) *reel {
	return &reel{users: users, currentUser: currentUser}
}

func (r *reel) setStories(stories []models.Story) {
	r.stories = stories
	if r.cursor > len(stories) {
		r.cursor = len(stories)
	}
}

func (r *reel) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		if r.cursor > 0 {
			r.cursor--
		}

	case "right", "l":
		if r.cursor < len(r.stories) {
			r.cursor++
		}

	case "enter":
		if r.cursor == 0 {
			// Create tile: composing needs a session. Without one the
			// shell is asked to run its login flow instead.
			if r.currentUser == nil {
				return func() tea.Msg { return requestLoginMsg{} }
			}
			return func() tea.Msg { return openComposerMsg{} }
		}
		index := r.cursor - 1
		return func() tea.Msg { return viewStoryMsg{index: index} }

	case "p":
		// Profile is a separate key so opening a profile can never
		// also open the viewer.
		if r.cursor > 0 {
			userID := r.stories[r.cursor-1].UserID
			return func() tea.Msg { return profileClickMsg{userID: userID} }
		}
	}
	return nil
}

func (r *reel) view() string {
	tiles := make([]string, 0, len(r.stories)+1)
	tiles = append(tiles, r.renderCreateTile(r.cursor == 0))

	for i, story := range r.stories {
		tiles = append(tiles, r.renderStoryTile(story, r.cursor == i+1))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (r *reel) renderCreateTile(selected bool) string {
	style := tileStyle
	if selected {
		style = tileSelectedStyle
	}

	label := "＋\nCreate story"
	if r.currentUser == nil {
		label = "＋\nLog in to\nshare a story"
	}
	return style.Render(label)
}

func (r *reel) renderStoryTile(story models.Story, selected bool) string {
	style := tileStyle
	if selected {
		style = tileSelectedStyle
	}

	owner := r.users[story.UserID]

	var preview string
	switch story.Kind {
	case models.StoryText:
		preview = backgroundStyle(story.Background).Width(12).Render(snippet(story.Text, 20))
	case models.StoryVideo:
		preview = "🎬 ▶"
	default:
		preview = "🖼"
	}

	var s strings.Builder
	s.WriteString(preview)
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s %s", avatarInitials(owner), owner.Name))
	s.WriteString("\n")
	meta := ageLabel(story.CreatedAt)
	if story.Music != nil {
		meta += "  ♪"
	}
	s.WriteString(helpStyle.Render(meta))

	return style.Render(s.String())
}

// avatarInitials stands in for the profile image: up to two initials
// from the display name.
func avatarInitials(user models.User) string {
	fields := strings.Fields(user.Name)
	if len(fields) == 0 {
		return "(?)"
	}
	initials := string([]rune(fields[0])[0])
	if len(fields) > 1 {
		initials += string([]rune(fields[len(fields)-1])[0])
	}
	return "(" + strings.ToUpper(initials) + ")"
}

// ageLabel formats a coarse elapsed time for story tiles.
func ageLabel(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
