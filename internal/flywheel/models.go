// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"time"

	"github.com/voyo-music/vibeengine/internal/vibe"
)

// DiscoverySource tags how a track entered the collective store.
type DiscoverySource string

const (
	// SourceSeed marks tracks from the curated seed catalog.
	SourceSeed DiscoverySource = "seed"
	// SourceUserSearch marks tracks first sighted through a listener search.
	SourceUserSearch DiscoverySource = "user-search"
	// SourceRelated marks tracks discovered through related-track expansion.
	SourceRelated DiscoverySource = "related"
	// SourceGenerative marks tracks proposed by the suggestion generator.
	SourceGenerative DiscoverySource = "generative-suggestion"
)

// TrackScore is one row of the collective score store: a track's
// per-category scores plus its aggregate engagement counters.
//
// Rows are owned collectively. No listener owns a track's vector; every
// listener's training writes land on the same row, and scores only ever
// move by bounded increments, clamped to [0, 100].
type TrackScore struct {
	// TrackID is the opaque external identifier.
	TrackID string `json:"trackId"`

	// Title is the track title.
	Title string `json:"title"`

	// Artist is the primary artist name.
	Artist string `json:"artist"`

	// Scores holds the per-category scores on the 0-100 scale.
	Scores vibe.Scores `json:"scores"`

	// MatchScore is the server-computed weighted match for the query
	// that returned this row. Only meaningful on query results.
	MatchScore float64 `json:"matchScore"`

	// Plays, Skips, Completions and Reactions are the aggregate
	// engagement counters across all listeners.
	Plays       int `json:"plays"`
	Skips       int `json:"skips"`
	Completions int `json:"completions"`
	Reactions   int `json:"reactions"`

	// HeatScore is the recency-weighted popularity measure maintained
	// by the store's own aggregation job. The engine only reads it.
	HeatScore float64 `json:"heatScore"`

	// Tier is the canonical artist tier: A, B or C.
	Tier string `json:"tier"`

	// CanonLevel mirrors the tier on the catalog axis:
	// ESSENTIAL, DEEP_CUT or ECHO.
	CanonLevel string `json:"canonLevel"`

	// PrimaryVibe is the track's strongest category.
	PrimaryVibe string `json:"primaryCategory"`

	// Source records how the track entered the store.
	Source DiscoverySource `json:"discoverySource"`

	// Tags are free-form descriptors (genre, region).
	Tags []string `json:"tags"`

	// ThumbnailRef is an opaque reference resolved by the presentation
	// layer.
	ThumbnailRef string `json:"thumbnailRef"`

	// Year is the release year, when known.
	Year int `json:"year,omitempty"`

	// AddedAt is when the row was created.
	AddedAt time.Time `json:"addedAt,omitempty"`
}

// CanonLevelForTier maps an artist tier to its canon level.
func CanonLevelForTier(tier string) string {
	switch tier {
	case "A":
		return "ESSENTIAL"
	case "B":
		return "DEEP_CUT"
	default:
		return "ECHO"
	}
}

// TrainAction selects which fixed training increment applies. The
// increments themselves are configuration (5/3/2 by default); callers
// choose an action class, never a raw number.
type TrainAction string

const (
	// ActionQueue is a drag-to-queue: the strongest intent signal.
	ActionQueue TrainAction = "queue"
	// ActionBoost is an explicit vibe boost.
	ActionBoost TrainAction = "boost"
	// ActionReaction is a like or reaction.
	ActionReaction TrainAction = "reaction"
)

// Valid reports whether the action is a known class.
func (a TrainAction) Valid() bool {
	switch a {
	case ActionQueue, ActionBoost, ActionReaction:
		return true
	default:
		return false
	}
}

// EngagementAction classifies an append-only engagement event used by
// the store to maintain aggregate counters and the heat score.
type EngagementAction string

const (
	// EngagePlay is a playback start.
	EngagePlay EngagementAction = "play"
	// EngageSkip is a skip.
	EngageSkip EngagementAction = "skip"
	// EngageComplete is a playback completion.
	EngageComplete EngagementAction = "complete"
	// EngageReaction is a like or reaction.
	EngageReaction EngagementAction = "reaction"
)

// TrainResult reports the outcome of a training write. Callers on the
// interaction path may discard it; the trainer records outcomes to
// telemetry so silent failures stay observable.
type TrainResult struct {
	// Applied is true when the store acknowledged the increment.
	Applied bool

	// Reason explains a non-applied result: "unknown_track",
	// "unreachable", "rejected", "invalid".
	Reason string
}

// applied is the zero-friction success result.
var applied = TrainResult{Applied: true}
