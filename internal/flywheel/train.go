// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"context"
	"errors"

	"github.com/voyo-music/vibeengine/internal/metrics"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// incrementFor maps an action class to its configured increment.
func (c *Client) incrementFor(action TrainAction) int {
	switch action {
	case ActionQueue:
		return c.cfg.QueueIncrement
	case ActionBoost:
		return c.cfg.BoostIncrement
	case ActionReaction:
		return c.cfg.ReactionIncrement
	default:
		return 0
	}
}

// Train applies one bounded increment to a track's category score.
//
// The store clamps the resulting score at 100 and never decreases it.
// A retried call legitimately double-counts: more engagement is more
// signal, so idempotence is per call, not per retry. Training a track
// the store has never seen is refused server-side; rows are seeded
// through the ingestion path, never auto-created from a training guess.
func (c *Client) Train(ctx context.Context, listenerID, trackID string, v vibe.ID, action TrainAction) TrainResult {
	if !v.Valid() || !action.Valid() || trackID == "" {
		metrics.TrainingWrites.WithLabelValues(string(action), "dropped").Inc()
		return TrainResult{Reason: "invalid"}
	}

	var ok bool
	err := c.call(ctx, "train_track_vibe", map[string]any{
		"listener_id": listenerID,
		"track_id":    trackID,
		"category":    v.String(),
		"increment":   c.incrementFor(action),
	}, &ok)

	switch {
	case err != nil:
		metrics.TrainingWrites.WithLabelValues(string(action), "dropped").Inc()
		return TrainResult{Reason: "unreachable"}
	case !ok:
		// The store refused the write: the track row does not exist.
		metrics.TrainingWrites.WithLabelValues(string(action), "unknown_track").Inc()
		c.logger.Debug().Str("track", trackID).Msg("training write for unseeded track")
		return TrainResult{Reason: "unknown_track"}
	default:
		metrics.TrainingWrites.WithLabelValues(string(action), "applied").Inc()
		return applied
	}
}

// UpsertTrack inserts or refreshes a track row with initial category
// scores. This is the ingestion/seeding path; ordinary listener
// training never creates rows.
func (c *Client) UpsertTrack(ctx context.Context, track TrackScore) bool {
	if track.TrackID == "" {
		return false
	}

	scores := make(map[string]int, vibe.NumVibes)
	for i, s := range track.Scores.Clamp() {
		scores[vibe.ID(i).String()] = s
	}

	var ok bool
	err := c.call(ctx, "upsert_track", map[string]any{
		"track_id":         track.TrackID,
		"title":            track.Title,
		"artist":           track.Artist,
		"vibe_scores":      scores,
		"tier":             track.Tier,
		"canon_level":      track.CanonLevel,
		"tags":             emptyNotNil(track.Tags),
		"thumbnail_ref":    track.ThumbnailRef,
		"discovery_source": string(track.Source),
		"year":             track.Year,
	}, &ok)
	if err != nil {
		return false
	}
	return ok
}

// RecordEngagement appends one engagement event for the store's
// aggregation job. Fire-and-forget: the outcome is observable only
// through metrics.
func (c *Client) RecordEngagement(ctx context.Context, listenerID, trackID string, action EngagementAction) {
	err := c.call(ctx, "record_engagement", map[string]any{
		"listener_id": listenerID,
		"track_id":    trackID,
		"action":      string(action),
	}, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Debug().Str("track", trackID).Str("action", string(action)).Msg("engagement event dropped")
	}
}

// SeedFromGenre builds a TrackScore ready for UpsertTrack using the
// curated genre priors as initial category scores.
func SeedFromGenre(trackID, title, artist, genre, tier string) TrackScore {
	return TrackScore{
		TrackID:    trackID,
		Title:      title,
		Artist:     artist,
		Scores:     vibe.GenrePrior(genre),
		Tier:       tier,
		CanonLevel: CanonLevelForTier(tier),
		Source:     SourceSeed,
		Tags:       []string{genre},
	}
}
