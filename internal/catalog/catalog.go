// Package catalog records every video the pipeline has seen and where its
// transcript and summary live.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no video matches.
var ErrNotFound = errors.New("video not found")

type Status string

const (
	StatusTranscribed Status = "transcribed"
	StatusSummarized  Status = "summarized"
	StatusFailed      Status = "failed"
	StatusEmpty       Status = "empty"
)

const idPrefix = "vid_"

// Video is one catalog row.
type Video struct {
	ID             string    `json:"id"`
	VideoID        string    `json:"video_id,omitempty"`
	Stem           string    `json:"stem"`
	Title          string    `json:"title"`
	Published      string    `json:"published"`
	URL            string    `json:"url,omitempty"`
	Chapters       int       `json:"chapters"`
	Cues           int       `json:"cues"`
	TranscriptPath string    `json:"transcript_path,omitempty"`
	SummaryPath    string    `json:"summary_path,omitempty"`
	Status         Status    `json:"status"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Store is the SQLite-backed catalog.
type Store struct {
	db *sql.DB
}

// Open creates or opens the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts v or updates the row with the same stem. The summary path is
// only overwritten when v carries one. v.ID and timestamps are filled in.
func (s *Store) Upsert(ctx context.Context, v *Video) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	now := time.Now().UTC()

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO videos (id, video_id, stem, title, published, url, chapters, cues,
			transcript_path, summary_path, status, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (stem) DO UPDATE SET
			video_id = excluded.video_id,
			title = excluded.title,
			published = excluded.published,
			url = excluded.url,
			chapters = excluded.chapters,
			cues = excluded.cues,
			transcript_path = excluded.transcript_path,
			summary_path = CASE WHEN excluded.summary_path = '' THEN videos.summary_path ELSE excluded.summary_path END,
			status = excluded.status,
			error = excluded.error,
			updated_at = excluded.updated_at
		RETURNING id, created_at`,
		idPrefix+id, v.VideoID, v.Stem, v.Title, v.Published, v.URL, v.Chapters, v.Cues,
		v.TranscriptPath, v.SummaryPath, string(v.Status), v.Error,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)

	var created string
	if err := row.Scan(&v.ID, &created); err != nil {
		return fmt.Errorf("upsert video: %w", err)
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	v.UpdatedAt = now
	return nil
}

// SetSummary records the summary file of a video and marks it summarized.
func (s *Store) SetSummary(ctx context.Context, stem, path string) error {
	return s.update(ctx, `UPDATE videos SET summary_path = ?, status = ?, error = '', updated_at = ? WHERE stem = ?`,
		path, string(StatusSummarized), time.Now().UTC().Format(time.RFC3339Nano), stem)
}

// SetStatus changes the status of a video and stores an error message.
func (s *Store) SetStatus(ctx context.Context, stem string, status Status, msg string) error {
	return s.update(ctx, `UPDATE videos SET status = ?, error = ?, updated_at = ? WHERE stem = ?`,
		string(status), msg, time.Now().UTC().Format(time.RFC3339Nano), stem)
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectColumns = `SELECT id, video_id, stem, title, published, url, chapters, cues,
	transcript_path, summary_path, status, error, created_at, updated_at FROM videos`

// GetByStem returns the video with the given stem.
func (s *Store) GetByStem(ctx context.Context, stem string) (*Video, error) {
	return s.getOne(ctx, selectColumns+` WHERE stem = ?`, stem)
}

// Get returns the video with the given catalog ID.
func (s *Store) Get(ctx context.Context, id string) (*Video, error) {
	return s.getOne(ctx, selectColumns+` WHERE id = ?`, id)
}

func (s *Store) getOne(ctx context.Context, query string, arg string) (*Video, error) {
	v, err := scanVideo(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return v, nil
}

// List returns videos newest first. A non-positive limit returns all rows.
func (s *Store) List(ctx context.Context, limit int) ([]*Video, error) {
	query := selectColumns + ` ORDER BY published DESC, stem ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var out []*Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner) (*Video, error) {
	var (
		v                Video
		status           string
		created, updated string
	)
	err := row.Scan(&v.ID, &v.VideoID, &v.Stem, &v.Title, &v.Published, &v.URL, &v.Chapters, &v.Cues,
		&v.TranscriptPath, &v.SummaryPath, &status, &v.Error, &created, &updated)
	if err != nil {
		return nil, err
	}
	v.Status = Status(status)
	v.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	v.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &v, nil
}
