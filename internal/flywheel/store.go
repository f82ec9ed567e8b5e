// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"context"

	"github.com/voyo-music/vibeengine/internal/vibe"
)

// Store is the read/write surface of the collective score store.
//
// Every method degrades rather than fails: an unreachable store, an
// open circuit or a malformed response yields an empty result set (or a
// non-applied TrainResult), never an error the caller must handle. The
// only externally observable symptom of a store outage is reduced
// relevance, not a broken feature.
//
// All methods are safe for concurrent use.
type Store interface {
	// QueryByCategory returns tracks for a named catalog rule. The
	// rule's tier/era/region filters bound the primary fetch; its
	// pattern matchers run as separate supplementary fetches whose
	// results are union-merged in, de-duplicated by track ID. Unknown
	// rules fall back to an unfiltered fetch.
	QueryByCategory(ctx context.Context, ruleID string, limit int) []TrackScore

	// QueryByWeights runs a single-pass server-side weighted scoring
	// across all categories.
	QueryByWeights(ctx context.Context, w vibe.Weights, limit int, excludeIDs []string) []TrackScore

	// QueryHot returns globally trending tracks re-ranked by the given
	// preference vector. Nothing is excluded: trending tracks surface
	// even when previously seen.
	QueryHot(ctx context.Context, w vibe.Weights, limit int) []TrackScore

	// QueryDiscovery returns horizon-expanding tracks biased toward the
	// dominant category's expansion targets, excluding recently played
	// track IDs.
	QueryDiscovery(ctx context.Context, w vibe.Weights, dominant vibe.ID, limit int, playedIDs []string) []TrackScore

	// QueryFamiliar looks up previously played tracks directly.
	QueryFamiliar(ctx context.Context, playedIDs []string, limit int) []TrackScore

	// Search runs the store's vibe-weighted text search.
	Search(ctx context.Context, query string, w vibe.Weights, limit int) []TrackScore

	// Train applies one bounded increment to a track's category score.
	// The action class selects the increment (queue/boost/reaction);
	// the resulting score clamps at 100 and never decreases. Training
	// a track the store has never seen is not applied: rows are seeded
	// through the ingestion path, never guessed into existence.
	Train(ctx context.Context, listenerID, trackID string, v vibe.ID, action TrainAction) TrainResult

	// UpsertTrack inserts or refreshes a track row with initial
	// category scores. Ingestion/seeding path only; ordinary training
	// never creates rows.
	UpsertTrack(ctx context.Context, track TrackScore) bool

	// RecordEngagement appends one engagement event. The store's own
	// aggregation job folds these into counters and the heat score.
	RecordEngagement(ctx context.Context, listenerID, trackID string, action EngagementAction)
}
