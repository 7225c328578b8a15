package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/unera-social/unera-tui/pkg/models"
)

// AddArticle inserts an article at the end of the catalog order.
func (s *Store) AddArticle(article *models.Article) error {
	result, err := s.Exec(
		"INSERT INTO articles (title, category, content) VALUES (?, ?, ?)",
		article.Title, string(article.Category), article.Content,
	)
	if err != nil {
		return fmt.Errorf("inserting article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}

	article.ID = id
	return nil
}

// Articles retrieves the full catalog in catalog order.
func (s *Store) Articles() ([]models.Article, error) {
	return s.queryArticles("SELECT id, title, category, content FROM articles ORDER BY id")
}

// ArticlesByCategory retrieves articles with exactly the given category,
// in catalog order.
func (s *Store) ArticlesByCategory(cat models.Category) ([]models.Article, error) {
	return s.queryArticles(
		"SELECT id, title, category, content FROM articles WHERE category = ? ORDER BY id",
		string(cat),
	)
}

// SearchArticles matches articles whose title or category contains the
// query as a case-insensitive substring. Result order is catalog order;
// there is no ranking. An empty query returns the full catalog.
func (s *Store) SearchArticles(query string) ([]models.Article, error) {
	if strings.TrimSpace(query) == "" {
		return s.Articles()
	}

	// LIKE is case-insensitive for ASCII in sqlite; lower both sides so
	// mixed-case queries behave the same way.
	pattern := "%" + strings.ToLower(query) + "%"
	return s.queryArticles(
		"SELECT id, title, category, content FROM articles WHERE lower(title) LIKE ? OR lower(category) LIKE ? ORDER BY id",
		pattern, pattern,
	)
}

// ArticleByID retrieves one article.
func (s *Store) ArticleByID(id int64) (*models.Article, error) {
	row := s.QueryRow("SELECT id, title, category, content FROM articles WHERE id = ?", id)

	var a models.Article
	var category string
	if err := row.Scan(&a.ID, &a.Title, &category, &a.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}
	a.Category = models.Category(category)
	return &a, nil
}

func (s *Store) queryArticles(query string, args ...any) ([]models.Article, error) {
	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		var category string
		if err := rows.Scan(&a.ID, &a.Title, &category, &a.Content); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		a.Category = models.Category(category)
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// AddSong inserts a song into the catalog.
func (s *Store) AddSong(song *models.Song) error {
	_, err := s.Exec(
		`INSERT INTO songs (id, title, artist, audio_ref, cover_ref, duration, album, plays, downloads, shares, likes, reel_uses)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.ID, song.Title, song.Artist, song.AudioRef, song.CoverRef, song.Duration, song.Album,
		song.Stats.Plays, song.Stats.Downloads, song.Stats.Shares, song.Stats.Likes, song.Stats.ReelUses,
	)
	if err != nil {
		return fmt.Errorf("inserting song: %w", err)
	}
	return nil
}

// Songs retrieves the song catalog in catalog order.
func (s *Store) Songs() ([]models.Song, error) {
	rows, err := s.Query(
		"SELECT id, title, artist, audio_ref, cover_ref, duration, album, plays, downloads, shares, likes, reel_uses FROM songs ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	return songs, rows.Err()
}

// SongByID retrieves one song.
func (s *Store) SongByID(id string) (*models.Song, error) {
	rows, err := s.Query(
		"SELECT id, title, artist, audio_ref, cover_ref, duration, album, plays, downloads, shares, likes, reel_uses FROM songs WHERE id = ?",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying song: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrSongNotFound
	}
	song, err := scanSong(rows)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func scanSong(rows *sql.Rows) (models.Song, error) {
	var song models.Song
	var coverRef, duration, album sql.NullString
	if err := rows.Scan(
		&song.ID, &song.Title, &song.Artist, &song.AudioRef, &coverRef, &duration, &album,
		&song.Stats.Plays, &song.Stats.Downloads, &song.Stats.Shares, &song.Stats.Likes, &song.Stats.ReelUses,
	); err != nil {
		return models.Song{}, fmt.Errorf("scanning song: %w", err)
	}
	song.CoverRef = coverRef.String
	song.Duration = duration.String
	song.Album = album.String
	return song, nil
}

// AddStory appends a story to the session list. Stories are never
// evicted here; expiry belongs to the host platform.
func (s *Store) AddStory(story *models.Story) error {
	var songID, title, artist, coverRef sql.NullString
	var offset sql.NullFloat64
	if story.Music != nil {
		songID = sql.NullString{String: story.Music.SongID, Valid: true}
		title = sql.NullString{String: story.Music.Title, Valid: true}
		artist = sql.NullString{String: story.Music.Artist, Valid: true}
		coverRef = sql.NullString{String: story.Music.CoverRef, Valid: true}
		offset = sql.NullFloat64{Float64: story.Music.OffsetPct, Valid: true}
	}

	_, err := s.Exec(
		`INSERT INTO stories (id, user_id, kind, text, background, media_ref, music_song_id, music_title, music_artist, music_cover_ref, music_offset_pct, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		story.ID, story.UserID, string(story.Kind), story.Text, story.Background, story.MediaRef,
		songID, title, artist, coverRef, offset, story.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting story: %w", err)
	}
	return nil
}

// Stories retrieves the session stories in insertion order.
func (s *Store) Stories() ([]models.Story, error) {
	rows, err := s.Query(
		`SELECT id, user_id, kind, text, background, media_ref, music_song_id, music_title, music_artist, music_cover_ref, music_offset_pct, created_at
		 FROM stories ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		var story models.Story
		var kind string
		var text, background, mediaRef sql.NullString
		var songID, title, artist, coverRef sql.NullString
		var offset sql.NullFloat64
		if err := rows.Scan(
			&story.ID, &story.UserID, &kind, &text, &background, &mediaRef,
			&songID, &title, &artist, &coverRef, &offset, &story.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning story: %w", err)
		}
		story.Kind = models.StoryKind(kind)
		story.Text = text.String
		story.Background = background.String
		story.MediaRef = mediaRef.String
		if songID.Valid {
			story.Music = &models.StoryMusic{
				SongID:    songID.String,
				Title:     title.String,
				Artist:    artist.String,
				CoverRef:  coverRef.String,
				OffsetPct: offset.Float64,
			}
		}
		stories = append(stories, story)
	}

	return stories, rows.Err()
}
