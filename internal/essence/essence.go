// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package essence

import (
	"time"

	"github.com/voyo-music/vibeengine/internal/vibe"
)

// TimeContext buckets the local clock so the presentation layer can
// shade recommendations by time of day.
type TimeContext string

const (
	Morning   TimeContext = "morning"
	Afternoon TimeContext = "afternoon"
	Evening   TimeContext = "evening"
	Night     TimeContext = "night"
)

// timeContextFor maps an hour to its bucket: morning 05-11,
// afternoon 12-16, evening 17-21, night otherwise.
func timeContextFor(t time.Time) TimeContext {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 22:
		return Evening
	default:
		return Night
	}
}

// Hint suggests a vibe adjacent to the listener's dominant set, with
// the human-readable reason from the expansion graph.
type Hint struct {
	Vibe   vibe.ID
	Reason string
	Weight float64
}

// Essence is the computed preference vector for one listener at one
// moment. It is derived on demand and never persisted; the next
// interaction changes it.
type Essence struct {
	// Weights sums to 1 with every entry >= 0.
	Weights vibe.Weights

	// Dominant lists vibes with weight above the dominance threshold,
	// strongest first, at most three.
	Dominant []vibe.ID

	// DiscoveryHints are expansion candidates outside the dominant
	// set, at most three.
	DiscoveryHints []Hint

	// FreshnessRatio in [0.6, 0.8]: the share of the feed that should
	// be fresh rather than familiar.
	FreshnessRatio float64

	// Confidence in [0.1, 0.9], grows with signal volume.
	Confidence float64

	TimeContext TimeContext
	ComputedAt  time.Time
}

// PrimaryVibe returns the strongest dominant vibe, or the catalog
// default when the listener has no dominant set yet.
func (e Essence) PrimaryVibe() vibe.ID {
	if len(e.Dominant) > 0 {
		return e.Dominant[0]
	}
	return vibe.AfroHeat
}
