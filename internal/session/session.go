// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/cache"
	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// Session is the per-listener runtime state: the persisted identity,
// the query cache, and the dominant-set handoff between consecutive
// preference computations. Each listener gets an explicitly
// constructed Session; nothing here is process-global.
type Session struct {
	store *Store

	mu           sync.Mutex
	ident        Identity
	prevDominant []vibe.ID

	queries *cache.LRU
	logger  zerolog.Logger
}

// New builds a Session on an opened Store, loading (or creating) the
// listener identity.
func New(ctx context.Context, store *Store, cfg config.PlannerConfig, logger zerolog.Logger) (*Session, error) {
	ident, err := store.Identity(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{
		store:   store,
		ident:   ident,
		queries: cache.NewLRU(cfg.CacheEntries, cfg.CacheTTL),
		logger:  logger.With().Str("component", "session").Logger(),
	}, nil
}

// ListenerID returns the stable anonymous identifier.
func (s *Session) ListenerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident.ListenerID
}

// Attribution returns the identifier signals should carry right now.
func (s *Session) Attribution() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident.Attribution()
}

// Authenticate signs the listener in. History and the anonymous ID
// survive; only future signal attribution changes.
func (s *Session) Authenticate(ctx context.Context, accountID string) error {
	ident, err := s.store.Authenticate(ctx, accountID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ident = ident
	s.mu.Unlock()
	return nil
}

// RecordPlay appends to the persisted play history.
func (s *Session) RecordPlay(ctx context.Context, trackID string) error {
	return s.store.RecordPlay(ctx, trackID)
}

// History returns a read-only snapshot of recent plays.
func (s *Session) History(ctx context.Context) (History, error) {
	return s.store.History(ctx)
}

// Queries exposes the per-session query cache.
func (s *Session) Queries() *cache.LRU {
	return s.queries
}

// PreviousDominant returns the dominant set of the last preference
// computation, used to attribute per-track behavior signals.
func (s *Session) PreviousDominant() []vibe.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]vibe.ID, len(s.prevDominant))
	copy(out, s.prevDominant)
	return out
}

// SetPreviousDominant records the dominant set for the next
// computation.
func (s *Session) SetPreviousDominant(ids []vibe.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prevDominant = make([]vibe.ID, len(ids))
	copy(s.prevDominant, ids)
}

// cachedSeeds is the badger value for the local seed snapshot.
type cachedSeeds struct {
	StoredAt time.Time             `json:"storedAt"`
	Tracks   []flywheel.TrackScore `json:"tracks"`
}

// CacheSeeds persists a seed snapshot so the next cold start can serve
// fallback content without recomputing it.
func (s *Store) CacheSeeds(ctx context.Context, tracks []flywheel.TrackScore) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(cachedSeeds{StoredAt: time.Now().UTC(), Tracks: tracks})
	if err != nil {
		return fmt.Errorf("marshal seed cache: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(seedCacheKey), data)
	})
}

// CachedSeeds returns the persisted seed snapshot, or nil when absent
// or older than a day.
func (s *Store) CachedSeeds(ctx context.Context) []flywheel.TrackScore {
	if ctx.Err() != nil {
		return nil
	}

	var snap cachedSeeds
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(seedCacheKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Warn().Err(err).Msg("seed cache read failed")
		}
		return nil
	}
	if time.Since(snap.StoredAt) > seedCacheTTLSpan {
		return nil
	}
	return snap.Tracks
}
