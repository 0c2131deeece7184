package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/barboracab/hangthedj/internal/catalog"
	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/barboracab/hangthedj/internal/store"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Store is the slice of the song store a session depends on.
type Store interface {
	LoadQueue(ctx context.Context, roomID string) ([]store.Song, error)
	Add(ctx context.Context, roomID, title string) (*store.Song, error)
	Vote(ctx context.Context, id string, delta int) error
}

// Feed delivers room-scoped change notifications.
type Feed interface {
	Subscribe(roomID string) (<-chan store.Change, func())
}

// SessionOpts contains dependencies for creating a [Session].
type SessionOpts struct {
	Store   Store
	Feed    Feed
	Catalog catalog.Service
	Logger  *log.Logger

	// ReloadRate caps how often change notifications trigger full queue
	// reloads. Zero means the default of 10 reloads per second.
	ReloadRate rate.Limit
}

// Session is one participant's view of a party room.
//
// A session starts outside any room. [Session.Join] moves it into a room and
// opens the live-sync subscription; there is no way back out short of
// [Session.Close]. Every change notification for the room triggers a full
// queue reload, never an incremental patch.
type Session struct {
	store   Store
	feed    Feed
	catalog catalog.Service
	logger  *log.Logger
	limiter *rate.Limiter

	updates chan []store.Song

	mu          sync.Mutex
	roomID      string
	nickname    string
	inRoom      bool
	queue       []store.Song
	suggestions []catalog.Track

	closeOnce   sync.Once
	cancelSync  context.CancelFunc
	unsubscribe func()
}

// NewSession creates a session that is not yet in any room.
func NewSession(opts SessionOpts) *Session {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.ReloadRate == 0 {
		opts.ReloadRate = 10
	}

	return &Session{
		store:   opts.Store,
		feed:    opts.Feed,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		limiter: rate.NewLimiter(opts.ReloadRate, 1),
		updates: make(chan []store.Song, 1),
	}
}

// Join enters the named room under the given nickname.
//
// Both values must be non-empty; nothing validates that the room "exists",
// since rooms are nothing more than a shared string key. Joining subscribes
// to the room's change feed, performs the initial queue load, and starts the
// sync loop. A session joins at most once.
func (s *Session) Join(ctx context.Context, roomID, nickname string) error {
	if roomID == "" || nickname == "" {
		return fmt.Errorf("%w: room and nickname are required", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	if s.inRoom {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrAlreadyInRoom, s.roomID)
	}
	s.roomID = roomID
	s.nickname = nickname
	s.inRoom = true
	s.mu.Unlock()

	changes, unsubscribe := s.feed.Subscribe(roomID)

	syncCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.cancelSync = cancel
	s.mu.Unlock()

	if _, err := s.Reload(ctx); err != nil {
		s.logger.Error("initial queue load failed", "room", roomID, "error", err)
	}

	go s.syncLoop(syncCtx, changes)

	s.logger.Info("joined room", "room", roomID, "nickname", nickname)
	return nil
}

// InRoom reports whether the session has joined a room.
func (s *Session) InRoom() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inRoom
}

// Room returns the joined room ID, or the empty string before joining.
func (s *Session) Room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

// Nickname returns the nickname used when joining.
func (s *Session) Nickname() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nickname
}

// Queue returns a copy of the most recently loaded queue.
func (s *Session) Queue() []store.Song {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := make([]store.Song, len(s.queue))
	copy(queue, s.queue)
	return queue
}

// Suggestions returns a copy of the current catalog suggestions.
func (s *Session) Suggestions() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracks := make([]catalog.Track, len(s.suggestions))
	copy(tracks, s.suggestions)
	return tracks
}

// Updates returns a channel carrying the latest queue snapshot after each
// reload. Only the most recent snapshot is retained; slow consumers skip
// intermediate states.
func (s *Session) Updates() <-chan []store.Song {
	return s.updates
}

// Reload fetches the full queue for the joined room and records it.
func (s *Session) Reload(ctx context.Context) ([]store.Song, error) {
	s.mu.Lock()
	roomID, inRoom := s.roomID, s.inRoom
	s.mu.Unlock()

	if !inRoom {
		return nil, shared.ErrNotInRoom
	}

	queue, err := s.store.LoadQueue(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload queue: %w", err)
	}

	s.mu.Lock()
	s.queue = queue
	s.mu.Unlock()

	s.pushUpdate(queue)
	return queue, nil
}

// AddSong submits a free-text title to the room's queue.
//
// On success the suggestion list is cleared and the queue reloaded; the async
// change notification will trigger a second reload, which is redundant but
// harmless. On failure local state is left untouched.
func (s *Session) AddSong(ctx context.Context, title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	roomID, inRoom := s.roomID, s.inRoom
	s.mu.Unlock()

	if !inRoom {
		return shared.ErrNotInRoom
	}

	if _, err := s.store.Add(ctx, roomID, title); err != nil {
		s.logger.Error("failed to add song", "room", roomID, "error", err)
		return err
	}

	s.mu.Lock()
	s.suggestions = nil
	s.mu.Unlock()

	if _, err := s.Reload(ctx); err != nil {
		s.logger.Error("reload after add failed", "room", roomID, "error", err)
	}
	return nil
}

// AddTrack submits a catalog search result to the queue, titling it
// "<track name> — <comma-joined artist names>".
func (s *Session) AddTrack(ctx context.Context, track catalog.Track) error {
	return s.AddSong(ctx, track.DisplayTitle())
}

// Vote applies a +1 or -1 delta to a song and reloads the queue on success.
//
// A failed vote (unknown song, store error) is abandoned with no reload.
func (s *Session) Vote(ctx context.Context, songID string, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidDelta, delta)
	}

	s.mu.Lock()
	inRoom := s.inRoom
	s.mu.Unlock()

	if !inRoom {
		return shared.ErrNotInRoom
	}

	if err := s.store.Vote(ctx, songID, delta); err != nil {
		s.logger.Error("vote failed", "song", songID, "delta", delta, "error", err)
		return err
	}

	if _, err := s.Reload(ctx); err != nil {
		s.logger.Error("reload after vote failed", "song", songID, "error", err)
	}
	return nil
}

// Suggest searches the catalog for the query and records the results as the
// current suggestion list.
//
// An empty query clears suggestions without a catalog call. A catalog failure
// also clears them, so callers always have an empty list to render rather
// than an error state.
func (s *Session) Suggest(ctx context.Context, query string) ([]catalog.Track, error) {
	if query == "" {
		s.mu.Lock()
		s.suggestions = nil
		s.mu.Unlock()
		return nil, nil
	}

	result, err := s.catalog.SearchTracks(ctx, query)
	if err != nil {
		s.logger.Warn("suggestion search failed", "query", query, "error", err)
		s.mu.Lock()
		s.suggestions = nil
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.suggestions = result.Tracks.Items
	s.mu.Unlock()

	return result.Tracks.Items, nil
}

// Close tears down the change subscription and stops the sync loop.
// Safe to call multiple times and before joining.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		unsubscribe, cancel := s.unsubscribe, s.cancelSync
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if unsubscribe != nil {
			unsubscribe()
		}
	})
	return nil
}

// syncLoop turns change notifications into rate-limited full queue reloads.
func (s *Session) syncLoop(ctx context.Context, changes <-chan store.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return
			}

			// collapse notifications that piled up while waiting
		drain:
			for {
				select {
				case _, ok := <-changes:
					if !ok {
						break drain
					}
				default:
					break drain
				}
			}

			if _, err := s.Reload(ctx); err != nil {
				s.logger.Error("sync reload failed", "error", err)
			}
		}
	}
}

// pushUpdate replaces the pending queue snapshot with the latest one.
func (s *Session) pushUpdate(queue []store.Song) {
	for {
		select {
		case s.updates <- queue:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
