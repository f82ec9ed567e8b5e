// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package essence

import (
	"context"
	"time"

	"github.com/voyo-music/vibeengine/internal/vibe"
)

// IntentKind distinguishes the two explicit declarations a listener
// can make about a vibe.
type IntentKind string

const (
	// IntentBoost is a tap on a vibe's boost bar.
	IntentBoost IntentKind = "boost"
	// IntentQueue is a drag-to-queue onto a vibe lane.
	IntentQueue IntentKind = "queue"
)

// IntentSignal is one declared-intent event.
type IntentSignal struct {
	Vibe vibe.ID
	Kind IntentKind
	At   time.Time
}

// ReactionKind distinguishes reaction strengths.
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	// ReactionOye is the strong reaction.
	ReactionOye       ReactionKind = "oye"
	ReactionSecondary ReactionKind = "secondary"
)

// ReactionSignal is one reaction event attributed to a vibe.
type ReactionSignal struct {
	Vibe vibe.ID
	Kind ReactionKind
	At   time.Time
}

// TrackBehavior carries the passive counters for one track. Behavior
// has no per-event timestamps; the counters are already windowed by
// whatever surface records them.
type TrackBehavior struct {
	TrackID     string
	Plays       int
	Skips       int
	Completions int
}

// The three signal sources feeding the extractor. Each is
// independently fallible: a source error zeroes that source's
// contribution and the computation continues.
type (
	IntentSource interface {
		IntentSignals(ctx context.Context) ([]IntentSignal, error)
	}
	ReactionSource interface {
		ReactionSignals(ctx context.Context) ([]ReactionSignal, error)
	}
	BehaviorSource interface {
		BehaviorStats(ctx context.Context) ([]TrackBehavior, error)
	}
)
