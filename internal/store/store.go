package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/barboracab/hangthedj/internal/shared"
)

// Song is one row in the room queue.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	RoomID    string    `json:"room_id"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SongStore persists songs in SQLite and publishes a [Change] for every write.
type SongStore struct {
	db       *sql.DB
	notifier *Notifier
}

// NewSongStore creates a SongStore backed by db, publishing changes to notifier.
func NewSongStore(db *sql.DB, notifier *Notifier) *SongStore {
	return &SongStore{db: db, notifier: notifier}
}

// Notifier exposes the store's change feed for subscription.
func (s *SongStore) Notifier() *Notifier {
	return s.notifier
}

// LoadQueue returns every song in the room ordered by vote count descending.
//
// The full queue is always materialized; tie order between equal vote counts
// is whatever the database returns.
func (s *SongStore) LoadQueue(ctx context.Context, roomID string) ([]Song, error) {
	query := `
		SELECT id, title, room_id, votes, created_at, updated_at
		FROM songs
		WHERE room_id = ?
		ORDER BY votes DESC
	`

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.RoomID, &song.Votes, &song.CreatedAt, &song.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queue: %w", err)
	}

	return songs, nil
}

// Get retrieves a single song by ID.
func (s *SongStore) Get(ctx context.Context, id string) (*Song, error) {
	query := `
		SELECT id, title, room_id, votes, created_at, updated_at
		FROM songs
		WHERE id = ?
	`

	var song Song
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&song.ID, &song.Title, &song.RoomID, &song.Votes, &song.CreatedAt, &song.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return &song, nil
}

// Add inserts a new song into the room's queue with zero votes.
func (s *SongStore) Add(ctx context.Context, roomID, title string) (*Song, error) {
	if roomID == "" || title == "" {
		return nil, fmt.Errorf("%w: room and title are required", shared.ErrInvalidInput)
	}

	now := time.Now().UTC()
	song := &Song{
		ID:        shared.GenerateID(),
		Title:     title,
		RoomID:    roomID,
		Votes:     0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO songs (id, title, room_id, votes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, song.ID, song.Title, song.RoomID, song.Votes, song.CreatedAt, song.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert song: %w", err)
	}

	s.notifier.Publish(Change{Op: OpInsert, RoomID: roomID, SongID: song.ID})

	return song, nil
}

// Vote applies a signed unit delta to a song's vote count.
//
// The adjustment is a single server-side increment scoped by the row ID, so
// two concurrent votes on the same song both land: there is no
// read-modify-write window to lose one in.
func (s *SongStore) Vote(ctx context.Context, id string, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidDelta, delta)
	}

	query := `
		UPDATE songs
		SET votes = votes + ?, updated_at = ?
		WHERE id = ?
		RETURNING room_id
	`

	var roomID string
	err := s.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to apply vote: %w", err)
	}

	s.notifier.Publish(Change{Op: OpUpdate, RoomID: roomID, SongID: id})

	return nil
}
