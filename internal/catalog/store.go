// Package catalog holds the client's fixed knowledge base (help
// articles, songs) and the session-scoped story list in an in-memory
// sqlite database. Nothing here outlives the process: persistence is
// the host platform's job, this store only gives the UI uniform
// queries over the seeded data.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var (
	ErrSongNotFound    = errors.New("song not found")
	ErrArticleNotFound = errors.New("article not found")
)

type Store struct {
	*sql.DB
}

// Open creates the in-memory database and initializes the schema.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}

	// A :memory: database lives on its connection; keep exactly one so
	// every query sees the same schema and rows.
	db.SetMaxOpenConns(1)

	s := &Store{db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return s, nil
}

// initSchema creates the tables backing the catalogs and the session
// story list. Catalog order is insertion order (rowid).
func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			content TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			audio_ref TEXT NOT NULL,
			cover_ref TEXT,
			duration TEXT,
			album TEXT,
			plays INTEGER NOT NULL DEFAULT 0,
			downloads INTEGER NOT NULL DEFAULT 0,
			shares INTEGER NOT NULL DEFAULT 0,
			likes INTEGER NOT NULL DEFAULT 0,
			reel_uses INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS stories (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			text TEXT,
			background TEXT,
			media_ref TEXT,
			music_song_id TEXT,
			music_title TEXT,
			music_artist TEXT,
			music_cover_ref TEXT,
			music_offset_pct REAL,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
	`

	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
