// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// History is a read-only snapshot of the listener's recent plays,
// most recent first. The engine consumes history (familiar partition,
// discovery exclusions) but never rewrites it.
type History struct {
	entries []string
}

// Recent returns up to n track IDs, most recent first.
func (h History) Recent(n int) []string {
	if n <= 0 || len(h.entries) == 0 {
		return nil
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]string, n)
	copy(out, h.entries[:n])
	return out
}

// All returns the complete snapshot, most recent first.
func (h History) All() []string {
	return h.Recent(len(h.entries))
}

// Contains reports whether the track appears anywhere in the snapshot.
func (h History) Contains(trackID string) bool {
	for _, id := range h.entries {
		if id == trackID {
			return true
		}
	}
	return false
}

// Len reports the snapshot size.
func (h History) Len() int { return len(h.entries) }

// RecordPlay prepends a track to the persisted history. A replay moves
// the track to the front instead of duplicating it, and the list is
// trimmed to the configured bound.
func (s *Store) RecordPlay(ctx context.Context, trackID string) error {
	if trackID == "" {
		return errors.New("empty track id")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entries, err := readHistory(txn)
		if err != nil {
			return err
		}

		next := make([]string, 0, len(entries)+1)
		next = append(next, trackID)
		for _, id := range entries {
			if id != trackID {
				next = append(next, id)
			}
		}
		if len(next) > s.historyLimit {
			next = next[:s.historyLimit]
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		return txn.Set([]byte(historyKey), data)
	})
}

// History loads the persisted play history.
func (s *Store) History(ctx context.Context) (History, error) {
	if err := ctx.Err(); err != nil {
		return History{}, err
	}

	var entries []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		entries, err = readHistory(txn)
		return err
	})
	if err != nil {
		return History{}, fmt.Errorf("load history: %w", err)
	}
	return History{entries: entries}, nil
}

func readHistory(txn *badger.Txn) ([]string, error) {
	item, err := txn.Get([]byte(historyKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	var entries []string
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entries)
	})
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}
