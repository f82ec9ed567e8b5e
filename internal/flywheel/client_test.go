// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// newTestClient wires a Client against an httptest server routing each
// RPC procedure to its handler.
func newTestClient(t *testing.T, handlers map[string]http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	for proc, h := range handlers {
		mux.HandleFunc("/rpc/"+proc, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.Default().Store
	cfg.BaseURL = srv.URL
	cfg.BreakerMinRequests = 1000 // keep the breaker out of unit tests
	return NewClient(cfg, zerolog.Nop())
}

// respondRows writes wire rows for the given track IDs.
func respondRows(ids ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, map[string]any{
				"trackId": id,
				"title":   "Track " + id,
				"artist":  "Artist",
				"tier":    "B",
				"vibeScores": map[string]int{
					"afro_heat": 80, "chill": 30, "party": 60, "workout": 50, "late_night": 40,
				},
			})
		}
		_ = json.NewEncoder(w).Encode(rows)
	}
}

func TestQueryByWeightsSendsFlatScalars(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, map[string]http.HandlerFunc{
		"query_tracks_weighted": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotParams)
			respondRows("t1")(w, r)
		},
	})

	weights := vibe.Weights{0.3, 0.2, 0.2, 0.15, 0.15}
	tracks := c.QueryByWeights(context.Background(), weights, 10, nil)

	if len(tracks) != 1 || tracks[0].TrackID != "t1" {
		t.Fatalf("QueryByWeights() = %v, want one row t1", tracks)
	}
	for _, id := range vibe.All() {
		key := "w_" + id.String()
		if _, ok := gotParams[key]; !ok {
			t.Errorf("request missing scalar weight %q", key)
		}
	}
	if _, ok := gotParams["weights"]; ok {
		t.Error("weights must be flattened scalars, not a nested object")
	}
	if gotParams["exclude_ids"] == nil {
		t.Error("exclude_ids should serialize as [] not null")
	}
}

func TestQueryByCategoryMergesPatternMatches(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"query_tracks_by_vibe":    respondRows("t1", "t2"),
		"match_tracks_by_pattern": respondRows("t2", "t3"),
	})

	tracks := c.QueryByCategory(context.Background(), "afro_heat", 50)

	ids := make(map[string]int)
	for _, tr := range tracks {
		ids[tr.TrackID]++
	}
	for id, n := range ids {
		if n > 1 {
			t.Errorf("track %s appears %d times, want de-duplication", id, n)
		}
	}
	if ids["t1"] == 0 || ids["t3"] == 0 {
		t.Errorf("merge should union primary and pattern results, got %v", ids)
	}
	// Primary results come first
	if len(tracks) == 0 || tracks[0].TrackID != "t1" {
		t.Errorf("primary results should lead the merged set, got %v", tracks)
	}
}

func TestQueryByCategoryUnknownRuleStillFetches(t *testing.T) {
	var calls int
	c := newTestClient(t, map[string]http.HandlerFunc{
		"query_tracks_by_vibe": func(w http.ResponseWriter, r *http.Request) {
			calls++
			respondRows("t9")(w, r)
		},
	})

	tracks := c.QueryByCategory(context.Background(), "no_such_vibe", 10)

	if calls != 1 {
		t.Errorf("unfiltered fetch calls = %d, want 1", calls)
	}
	if len(tracks) != 1 {
		t.Errorf("unknown rule should fall back to unfiltered set, got %v", tracks)
	}
}

func TestQueriesDegradeToEmptyWhenUnreachable(t *testing.T) {
	cfg := config.Default().Store
	cfg.BaseURL = "http://127.0.0.1:1" // nothing listens here
	cfg.Timeout = 200 * time.Millisecond
	cfg.BreakerMinRequests = 1000
	c := NewClient(cfg, zerolog.Nop())

	ctx := context.Background()
	if got := c.QueryHot(ctx, vibe.DefaultDistribution(), 20); len(got) != 0 {
		t.Errorf("QueryHot() = %v, want empty", got)
	}
	if got := c.Search(ctx, "burna", vibe.DefaultDistribution(), 20); len(got) != 0 {
		t.Errorf("Search() = %v, want empty", got)
	}
	res := c.Train(ctx, "listener", "t1", vibe.AfroHeat, ActionQueue)
	if res.Applied {
		t.Error("Train() applied against unreachable store")
	}
	if res.Reason != "unreachable" {
		t.Errorf("Train() reason = %q, want unreachable", res.Reason)
	}
}

func TestMalformedResponseTreatedAsUnavailable(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"get_hot_tracks": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json at all {{{"))
		},
	})

	if got := c.QueryHot(context.Background(), vibe.DefaultDistribution(), 20); len(got) != 0 {
		t.Errorf("QueryHot() = %v, want empty on malformed response", got)
	}
}

func TestTrainOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		action     TrainAction
		wantApply  bool
		wantReason string
	}{
		{
			name: "applied",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("true"))
			},
			action:    ActionQueue,
			wantApply: true,
		},
		{
			name: "unknown track fails silently",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("false"))
			},
			action:     ActionBoost,
			wantApply:  false,
			wantReason: "unknown_track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[string]http.HandlerFunc{
				"train_track_vibe": tt.handler,
			})

			res := c.Train(context.Background(), "listener", "t1", vibe.AfroHeat, tt.action)
			if res.Applied != tt.wantApply {
				t.Errorf("Applied = %v, want %v", res.Applied, tt.wantApply)
			}
			if res.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.wantReason)
			}
		})
	}
}

func TestTrainSendsConfiguredIncrement(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, map[string]http.HandlerFunc{
		"train_track_vibe": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotParams)
			_, _ = w.Write([]byte("true"))
		},
	})

	c.Train(context.Background(), "listener-1", "t1", vibe.Party, ActionQueue)

	if got := gotParams["increment"]; got != float64(5) {
		t.Errorf("queue increment = %v, want 5", got)
	}
	if got := gotParams["category"]; got != "party" {
		t.Errorf("category = %v, want party", got)
	}
	if got := gotParams["listener_id"]; got != "listener-1" {
		t.Errorf("listener_id = %v, want listener-1", got)
	}
}

func TestTrainRejectsInvalidInput(t *testing.T) {
	c := newTestClient(t, nil)

	if res := c.Train(context.Background(), "l", "", vibe.AfroHeat, ActionQueue); res.Applied {
		t.Error("empty track ID should not apply")
	}
	if res := c.Train(context.Background(), "l", "t1", vibe.ID(99), ActionQueue); res.Applied {
		t.Error("invalid vibe should not apply")
	}
	if res := c.Train(context.Background(), "l", "t1", vibe.AfroHeat, TrainAction("smash")); res.Applied {
		t.Error("unknown action should not apply")
	}
}

func TestQueryFamiliarSkipsEmptyHistory(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"get_familiar_tracks": func(w http.ResponseWriter, r *http.Request) {
			t.Error("no query should be issued for an empty played set")
		},
	})

	if got := c.QueryFamiliar(context.Background(), nil, 10); got != nil {
		t.Errorf("QueryFamiliar(empty) = %v, want nil", got)
	}
}

func TestUpsertTrackFromGenrePrior(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, map[string]http.HandlerFunc{
		"upsert_track": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotParams)
			_, _ = w.Write([]byte("true"))
		},
	})

	track := SeedFromGenre("yt123", "Ye", "Burna Boy", "afrobeats", "A")
	if !c.UpsertTrack(context.Background(), track) {
		t.Fatal("UpsertTrack() = false, want true")
	}

	if gotParams["canon_level"] != "ESSENTIAL" {
		t.Errorf("canon_level = %v, want ESSENTIAL for tier A", gotParams["canon_level"])
	}
	scores, ok := gotParams["vibe_scores"].(map[string]any)
	if !ok {
		t.Fatalf("vibe_scores missing: %v", gotParams)
	}
	if scores["afro_heat"] != float64(85) {
		t.Errorf("afro_heat prior = %v, want 85", scores["afro_heat"])
	}
}

func TestCanonLevelForTier(t *testing.T) {
	tests := []struct {
		tier string
		want string
	}{
		{"A", "ESSENTIAL"},
		{"B", "DEEP_CUT"},
		{"C", "ECHO"},
		{"", "ECHO"},
	}
	for _, tt := range tests {
		if got := CanonLevelForTier(tt.tier); got != tt.want {
			t.Errorf("CanonLevelForTier(%q) = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
