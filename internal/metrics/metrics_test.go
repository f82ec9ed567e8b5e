// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTrainingWritesCounter(t *testing.T) {
	before := testutil.ToFloat64(TrainingWrites.WithLabelValues("queue", "applied"))
	TrainingWrites.WithLabelValues("queue", "applied").Inc()
	after := testutil.ToFloat64(TrainingWrites.WithLabelValues("queue", "applied"))

	if after != before+1 {
		t.Errorf("counter = %f, want %f", after, before+1)
	}
}

func TestObserveRPCRecordsSample(t *testing.T) {
	before := testutil.CollectAndCount(StoreRPCDuration)
	ObserveRPC("get_hot_tracks", time.Now().Add(-5*time.Millisecond))
	after := testutil.CollectAndCount(StoreRPCDuration)

	if after < before {
		t.Errorf("histogram series count decreased: %d -> %d", before, after)
	}
}

func TestCircuitBreakerStateGauge(t *testing.T) {
	CircuitBreakerState.WithLabelValues("score-store").Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("score-store")); got != 2 {
		t.Errorf("gauge = %f, want 2", got)
	}
	CircuitBreakerState.WithLabelValues("score-store").Set(0)
}
