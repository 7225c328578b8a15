package models

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups help articles for browsing and filtering.
type Category string

const (
	CategoryGettingStarted Category = "Getting Started"
	CategoryAccount        Category = "Account"
	CategoryPrivacy        Category = "Privacy & Safety"
	CategoryGroups         Category = "Groups"
	CategoryStories        Category = "Stories"
	CategoryTroubleshoot   Category = "Troubleshooting"
)

// Categories lists every help category in display order.
func Categories() []Category {
	return []Category{
		CategoryGettingStarted,
		CategoryAccount,
		CategoryPrivacy,
		CategoryGroups,
		CategoryStories,
		CategoryTroubleshoot,
	}
}

// Valid reports whether c is one of the fixed help categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Article is a help-center entry. The catalog is static; articles are
// defined at load time and never mutated.
type Article struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category"`
	// Content is markdown, rendered in the terminal with glamour.
	Content string `json:"content"`
}

// StoryKind discriminates the story payload. The kind decides which
// optional fields are meaningful, so stories are built through the
// NewTextStory/NewImageStory/NewVideoStory constructors rather than by
// filling the struct by hand.
type StoryKind string

const (
	StoryText  StoryKind = "text"
	StoryImage StoryKind = "image"
	StoryVideo StoryKind = "video"
)

// Story is an ephemeral post shown full-screen in sequence. Lifetime is
// session-scoped; expiry is the host platform's concern, not this
// client's, so CreatedAt is recorded but never evaluated here.
type Story struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Kind       StoryKind   `json:"kind"`
	Text       string      `json:"text,omitempty"`
	Background string      `json:"background,omitempty"`
	MediaRef   string      `json:"media_ref,omitempty"`
	Music      *StoryMusic `json:"music,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// StoryMusic is a background-music attachment on a story.
type StoryMusic struct {
	SongID   string `json:"song_id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	CoverRef string `json:"cover_ref,omitempty"`
	// OffsetPct is where playback starts, as a percentage of the actual
	// audio duration once metadata is known. Clamped to [0,100].
	OffsetPct float64 `json:"offset_pct"`
}

// ClampOffset forces OffsetPct into [0,100].
func (m *StoryMusic) ClampOffset() {
	if m.OffsetPct < 0 {
		m.OffsetPct = 0
	}
	if m.OffsetPct > 100 {
		m.OffsetPct = 100
	}
}

// NewTextStory builds a text-kind story. Text stories carry a message
// and a background swatch, never a media reference.
func NewTextStory(userID, text, background string, music *StoryMusic) Story {
	s := newStory(userID, StoryText, music)
	s.Text = text
	s.Background = background
	return s
}

// NewImageStory builds an image-kind story around a media reference.
func NewImageStory(userID, mediaRef, caption string, music *StoryMusic) Story {
	s := newStory(userID, StoryImage, music)
	s.MediaRef = mediaRef
	s.Text = caption
	return s
}

// NewVideoStory builds a video-kind story around a media reference.
func NewVideoStory(userID, mediaRef, caption string, music *StoryMusic) Story {
	s := newStory(userID, StoryVideo, music)
	s.MediaRef = mediaRef
	s.Text = caption
	return s
}

func newStory(userID string, kind StoryKind, music *StoryMusic) Story {
	if music != nil {
		music.ClampOffset()
	}
	return Story{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Music:     music,
		CreatedAt: time.Now(),
	}
}

// SongStats carries the usage counters shown next to catalog songs.
type SongStats struct {
	Plays     int64 `json:"plays"`
	Downloads int64 `json:"downloads"`
	Shares    int64 `json:"shares"`
	Likes     int64 `json:"likes"`
	ReelUses  int64 `json:"reel_uses"`
}

// Zero reports whether every usage counter is zero.
func (s SongStats) Zero() bool {
	return s == SongStats{}
}

// Song is a catalog audio track usable as story background music.
type Song struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Artist   string    `json:"artist"`
	AudioRef string    `json:"audio_ref"`
	CoverRef string    `json:"cover_ref,omitempty"`
	Duration string    `json:"duration"`
	Stats    SongStats `json:"stats"`
	Album    string    `json:"album,omitempty"`
}

// SongFromLocalFile synthesizes an ad-hoc catalog entry for a locally
// picked audio file. The title is the file's base name and every usage
// counter starts at zero.
func SongFromLocalFile(path string) Song {
	return Song{
		ID:       uuid.NewString(),
		Title:    filepath.Base(path),
		Artist:   "Local file",
		AudioRef: path,
	}
}

// Attach turns a song plus start offset into a story music attachment.
func (s Song) Attach(offsetPct float64) *StoryMusic {
	m := &StoryMusic{
		SongID:    s.ID,
		Title:     s.Title,
		Artist:    s.Artist,
		CoverRef:  s.CoverRef,
		OffsetPct: offsetPct,
	}
	m.ClampOffset()
	return m
}

// ParseDuration reads the song's "m:ss" duration label. Returns false
// when the label is missing or malformed, which callers treat as
// metadata not yet available.
func (s Song) ParseDuration() (time.Duration, bool) {
	parts := strings.SplitN(s.Duration, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil || mins < 0 {
		return 0, false
	}
	secs, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil || secs < 0 || secs >= 60 || len(parts[1]) != 2 {
		return 0, false
	}
	return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second, true
}

// User is the slice of the platform user this client consumes.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarRef string `json:"avatar_ref,omitempty"`
}
