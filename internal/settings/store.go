package settings

import (
	"context"
	"sync"

	"darna-backend/internal/apperr"
	"darna-backend/internal/logger"
	"darna-backend/internal/repository"
)

// Store holds the live platform settings snapshot. It is loaded once at
// boot, re-fetched in full whenever the backing store signals a change (no
// delta protocol), and shared by injection rather than as an ambient
// module-level singleton. Concurrent readers never block each other.
type Store struct {
	repo repository.SettingsRepository

	mu      sync.RWMutex
	snap    Snapshot
	loaded  bool
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewStore(repo repository.SettingsRepository) *Store {
	return &Store{
		repo: repo,
		snap: DefaultSnapshot(),
		subs: make(map[int]func(Snapshot)),
	}
}

// Load fetches every settings row and rebuilds the snapshot. Keys that were
// never written keep their defaults; a malformed payload keeps the previous
// value for that key and is logged, never fatal.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "settings are temporarily unavailable", err)
	}

	s.mu.Lock()
	next := s.snap
	for key, raw := range rows {
		if len(raw) == 0 {
			continue
		}
		if err := next.ApplyPayload(key, raw); err != nil {
			logger.Warn("Ignoring malformed settings payload", "key", key, "error", err)
		}
	}
	s.snap = next
	s.loaded = true
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Snapshot returns the current settings view and whether a load has ever
// succeeded. Callers read the returned value; it is a copy, safe to keep.
func (s *Store) Snapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.loaded
}

// Subscribe registers a callback invoked after every successful reload. The
// returned function unsubscribes; tie it to the consumer's shutdown.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Upsert validates and persists a settings payload, then reloads the
// snapshot so the writing process observes its own write immediately.
// Other processes converge through the change notification channel.
func (s *Store) Upsert(ctx context.Context, key string, payload []byte) error {
	if err := ValidatePayload(key, payload); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid settings payload", err)
	}
	if err := s.repo.Upsert(ctx, key, payload); err != nil {
		return err
	}
	if err := s.Load(ctx); err != nil {
		// The write committed; a reload failure only delays visibility.
		logger.Warn("Settings reload after upsert failed", "key", key, "error", err)
	}
	return nil
}

// Get returns the raw payload for a key, for the admin settings screen.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	known := false
	for _, k := range Keys() {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return nil, apperr.Newf(apperr.KindValidation, "unknown settings key %q", key)
	}
	return s.repo.Get(ctx, key)
}
