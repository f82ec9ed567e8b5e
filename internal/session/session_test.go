// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default().Local
	cfg.Path = "" // in-memory
	cfg.HistoryLimit = 5
	s, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIdentityStableAcrossLoads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Identity(ctx)
	if err != nil {
		t.Fatalf("Identity() error: %v", err)
	}
	if first.ListenerID == "" {
		t.Fatal("Identity() generated empty listener ID")
	}

	second, err := s.Identity(ctx)
	if err != nil {
		t.Fatalf("Identity() second load error: %v", err)
	}
	if second.ListenerID != first.ListenerID {
		t.Errorf("listener ID changed between loads: %s != %s", second.ListenerID, first.ListenerID)
	}
}

func TestAuthenticateKeepsAnonymousID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before, err := s.Identity(ctx)
	if err != nil {
		t.Fatalf("Identity() error: %v", err)
	}
	if before.Attribution() != before.ListenerID {
		t.Errorf("anonymous attribution = %s, want listener ID", before.Attribution())
	}

	after, err := s.Authenticate(ctx, "acct-42")
	if err != nil {
		t.Fatalf("Authenticate() error: %v", err)
	}
	if after.ListenerID != before.ListenerID {
		t.Error("Authenticate() must not change the anonymous listener ID")
	}
	if after.Attribution() != "acct-42" {
		t.Errorf("authenticated attribution = %s, want acct-42", after.Attribution())
	}

	if _, err := s.Authenticate(ctx, ""); err == nil {
		t.Error("Authenticate(\"\") should fail")
	}
}

func TestHistoryBoundedAndOrdered(t *testing.T) {
	s := newTestStore(t) // limit 5
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		if err := s.RecordPlay(ctx, fmt.Sprintf("t%d", i)); err != nil {
			t.Fatalf("RecordPlay() error: %v", err)
		}
	}

	h, err := s.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if h.Len() != 5 {
		t.Fatalf("history length = %d, want bound 5", h.Len())
	}
	want := []string{"t7", "t6", "t5", "t4", "t3"}
	got := h.All()
	for i, id := range want {
		if got[i] != id {
			t.Errorf("history[%d] = %s, want %s (most recent first)", i, got[i], id)
		}
	}
	if h.Contains("t0") {
		t.Error("t0 should have been trimmed")
	}
	if !h.Contains("t7") {
		t.Error("t7 should be present")
	}
}

func TestReplayMovesToFront(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "b"} {
		if err := s.RecordPlay(ctx, id); err != nil {
			t.Fatalf("RecordPlay(%s) error: %v", id, err)
		}
	}

	h, err := s.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	got := h.All()
	want := []string{"b", "c", "a"}
	if len(got) != len(want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("history = %v, want %v", got, want)
		}
	}
}

func TestRecentLimits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_ = s.RecordPlay(ctx, "a")
	_ = s.RecordPlay(ctx, "b")

	h, _ := s.History(ctx)
	if got := h.Recent(1); len(got) != 1 || got[0] != "b" {
		t.Errorf("Recent(1) = %v, want [b]", got)
	}
	if got := h.Recent(10); len(got) != 2 {
		t.Errorf("Recent(10) = %v, want 2 entries", got)
	}
	if got := h.Recent(0); got != nil {
		t.Errorf("Recent(0) = %v, want nil", got)
	}
}

func TestSessionDominantHandoff(t *testing.T) {
	s := newTestStore(t)
	sess, err := New(context.Background(), s, config.Default().Planner, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if got := sess.PreviousDominant(); len(got) != 0 {
		t.Errorf("fresh session dominant = %v, want empty", got)
	}

	sess.SetPreviousDominant([]vibe.ID{vibe.Party, vibe.AfroHeat})
	got := sess.PreviousDominant()
	if len(got) != 2 || got[0] != vibe.Party || got[1] != vibe.AfroHeat {
		t.Errorf("PreviousDominant() = %v, want [party afro_heat]", got)
	}

	// Mutating the returned slice must not leak into session state.
	got[0] = vibe.Chill
	if again := sess.PreviousDominant(); again[0] != vibe.Party {
		t.Error("PreviousDominant() must return a copy")
	}
}

func TestSeedCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if got := s.CachedSeeds(ctx); got != nil {
		t.Errorf("CachedSeeds() on empty store = %v, want nil", got)
	}

	in := []flywheel.TrackScore{{TrackID: "t1", Title: "Ye", Artist: "Burna Boy"}}
	if err := s.CacheSeeds(ctx, in); err != nil {
		t.Fatalf("CacheSeeds() error: %v", err)
	}

	out := s.CachedSeeds(ctx)
	if len(out) != 1 || out[0].TrackID != "t1" {
		t.Errorf("CachedSeeds() = %v, want the stored snapshot", out)
	}
}
