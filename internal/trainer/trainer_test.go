// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package trainer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// recordingStore captures writes issued by the consumer.
type recordingStore struct {
	mu          sync.Mutex
	trains      []string
	engagements []string
}

func (r *recordingStore) QueryByCategory(ctx context.Context, ruleID string, limit int) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) QueryByWeights(ctx context.Context, w vibe.Weights, limit int, excludeIDs []string) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) QueryHot(ctx context.Context, w vibe.Weights, limit int) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) QueryDiscovery(ctx context.Context, w vibe.Weights, dominant vibe.ID, limit int, playedIDs []string) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) QueryFamiliar(ctx context.Context, playedIDs []string, limit int) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) Search(ctx context.Context, query string, w vibe.Weights, limit int) []flywheel.TrackScore {
	return nil
}

func (r *recordingStore) Train(ctx context.Context, listenerID, trackID string, v vibe.ID, action flywheel.TrainAction) flywheel.TrainResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trains = append(r.trains, trackID+"/"+v.String()+"/"+string(action))
	return flywheel.TrainResult{Applied: true}
}

func (r *recordingStore) UpsertTrack(ctx context.Context, track flywheel.TrackScore) bool {
	return true
}

func (r *recordingStore) RecordEngagement(ctx context.Context, listenerID, trackID string, action flywheel.EngagementAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engagements = append(r.engagements, trackID+"/"+string(action))
}

func (r *recordingStore) trainCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trains)
}

func (r *recordingStore) engagementCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engagements)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func testTrainerConfig() config.TrainerConfig {
	cfg := config.Default().Trainer
	cfg.WritesPerSecond = 1000 // keep the limiter out of timing-sensitive tests
	cfg.WriteBurst = 1000
	return cfg
}

func TestPublishConsumeRoundTrip(t *testing.T) {
	store := &recordingStore{}
	cfg := testTrainerConfig()
	bus := NewBus(cfg, zerolog.Nop())
	defer bus.Close()

	consumer := NewConsumer(bus, store, cfg, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()

	// Subscription races Publish on a fresh gochannel bus; give the
	// consumer a moment to attach.
	time.Sleep(20 * time.Millisecond)

	bus.Publish(Interaction{
		ListenerID: "l1",
		TrackID:    "t1",
		Vibe:       vibe.Party,
		Action:     flywheel.ActionQueue,
		Engagement: flywheel.EngagePlay,
		At:         time.Now(),
	})
	bus.Publish(Interaction{
		ListenerID: "l1",
		TrackID:    "t2",
		Vibe:       vibe.Chill,
		Action:     flywheel.ActionReaction,
		At:         time.Now(),
	})

	waitFor(t, func() bool { return store.trainCount() == 2 }, "training writes")
	waitFor(t, func() bool { return store.engagementCount() == 1 }, "engagement write")

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.trains[0] != "t1/party/queue" {
		t.Errorf("first train = %s, want t1/party/queue", store.trains[0])
	}
	if store.engagements[0] != "t1/play" {
		t.Errorf("engagement = %s, want t1/play", store.engagements[0])
	}
}

func TestInvalidInteractionSkipsTraining(t *testing.T) {
	store := &recordingStore{}
	cfg := testTrainerConfig()
	bus := NewBus(cfg, zerolog.Nop())
	defer bus.Close()

	consumer := NewConsumer(bus, store, cfg, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = consumer.Serve(ctx) }()
	time.Sleep(20 * time.Millisecond)

	// No action and no engagement: nothing should reach the store.
	bus.Publish(Interaction{ListenerID: "l1", TrackID: "t1", At: time.Now()})
	// Invalid action: skipped, but the engagement half still lands.
	bus.Publish(Interaction{
		ListenerID: "l1",
		TrackID:    "t2",
		Vibe:       vibe.Party,
		Action:     flywheel.TrainAction("smash"),
		Engagement: flywheel.EngageSkip,
		At:         time.Now(),
	})

	waitFor(t, func() bool { return store.engagementCount() == 1 }, "engagement write")
	if got := store.trainCount(); got != 0 {
		t.Errorf("training writes = %d, want 0 for invalid interactions", got)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	// No consumer attached at all; publishing must still return
	// promptly and the caller must never notice.
	cfg := testTrainerConfig()
	cfg.BufferSize = 4
	bus := NewBus(cfg, zerolog.Nop())
	defer bus.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(Interaction{ListenerID: "l", TrackID: "t", Vibe: vibe.Party, Action: flywheel.ActionBoost})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked the caller")
	}
}

func TestPipelineLifecycle(t *testing.T) {
	store := &recordingStore{}
	p := NewPipeline(store, testTrainerConfig(), zerolog.Nop())
	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	p.Publish(Interaction{
		ListenerID: "l1",
		TrackID:    "t1",
		Vibe:       vibe.AfroHeat,
		Action:     flywheel.ActionBoost,
		At:         time.Now(),
	})

	waitFor(t, func() bool { return store.trainCount() == 1 }, "supervised consumer write")

	if err := p.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
