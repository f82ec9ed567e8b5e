// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
)

// Key layout for the local badger store.
const (
	identityKey      = "identity:listener"
	historyKey       = "history:plays"
	seedCacheKey     = "cache:seeds"
	seedCacheTTLSpan = 24 * time.Hour
)

// Identity is the device-local listener identity. The listener ID is
// generated once and stays stable across restarts; the account ID is
// set when the listener signs in and changes attribution for
// subsequent signals only.
type Identity struct {
	ListenerID string    `json:"listenerId"`
	AccountID  string    `json:"accountId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Attribution returns the identifier training writes should carry:
// the account when signed in, the anonymous listener otherwise.
func (id Identity) Attribution() string {
	if id.AccountID != "" {
		return id.AccountID
	}
	return id.ListenerID
}

// Store is the badger-backed local persistence layer: listener
// identity, bounded play history, and a cached copy of the seed
// catalog. An empty path opens badger in memory, which is what tests
// and ephemeral clients use.
type Store struct {
	db           *badger.DB
	historyLimit int
	logger       zerolog.Logger
}

// Open opens (or creates) the local store at cfg.Path.
func Open(cfg config.LocalConfig, logger zerolog.Logger) (*Store, error) {
	var opts badger.Options
	if cfg.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	limit := cfg.HistoryLimit
	if limit < 1 {
		limit = 200
	}

	return &Store{
		db:           db,
		historyLimit: limit,
		logger:       logger.With().Str("component", "session").Logger(),
	}, nil
}

// Close releases the underlying badger handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Identity loads the persisted identity, creating an anonymous one on
// first use.
func (s *Store) Identity(ctx context.Context) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	var ident Identity
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(identityKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ident)
		})
	})
	if err == nil {
		return ident, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return Identity{}, fmt.Errorf("load identity: %w", err)
	}

	ident = Identity{
		ListenerID: uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.writeIdentity(ident); err != nil {
		return Identity{}, err
	}
	s.logger.Info().Str("listener_id", ident.ListenerID).Msg("created anonymous identity")
	return ident, nil
}

// Authenticate attaches an account to the current identity. The
// anonymous listener ID and the play history are kept; only the
// attribution of future signals changes.
func (s *Store) Authenticate(ctx context.Context, accountID string) (Identity, error) {
	if accountID == "" {
		return Identity{}, errors.New("empty account id")
	}

	ident, err := s.Identity(ctx)
	if err != nil {
		return Identity{}, err
	}
	if ident.AccountID == accountID {
		return ident, nil
	}

	ident.AccountID = accountID
	if err := s.writeIdentity(ident); err != nil {
		return Identity{}, err
	}
	s.logger.Info().
		Str("listener_id", ident.ListenerID).
		Str("account_id", accountID).
		Msg("identity authenticated")
	return ident, nil
}

func (s *Store) writeIdentity(ident Identity) error {
	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(identityKey), data)
	})
	if err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}
	return nil
}
