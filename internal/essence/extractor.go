// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package essence

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/metrics"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// Per-event magnitudes. Boost contribution is capped at the UI's five
// boost bars per vibe; everything else scales linearly.
const (
	boostWeight     = 0.08
	queueWeight     = 0.15
	likeWeight      = 0.08
	oyeWeight       = boostWeight * 1.5
	secondaryWeight = boostWeight * 1.2

	completionWeight = 0.10
	skipPenalty      = 0.05
	playLogWeight    = 0.02

	maxBoostBars = 5
)

// DominantState carries the dominant set between consecutive
// computations. Behavior signals have no vibe of their own, so they
// are attributed to whatever was dominant last time.
type DominantState interface {
	PreviousDominant() []vibe.ID
	SetPreviousDominant([]vibe.ID)
}

// Extractor turns the three signal sources into an Essence. It is
// deterministic given the sources' state and its clock, and it keeps
// no state beyond the dominant-set handoff.
type Extractor struct {
	cfg      config.EssenceConfig
	intent   IntentSource
	reaction ReactionSource
	behavior BehaviorSource
	state    DominantState
	logger   zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewExtractor wires an Extractor. Any source may be nil; a nil source
// contributes zero, same as a failing one.
func NewExtractor(cfg config.EssenceConfig, intent IntentSource, reaction ReactionSource, behavior BehaviorSource, state DominantState, logger zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:      cfg,
		intent:   intent,
		reaction: reaction,
		behavior: behavior,
		state:    state,
		logger:   logger.With().Str("component", "essence").Logger(),
		now:      time.Now,
	}
}

// Compute derives the current preference vector. The only error it
// returns is context cancellation; source failures degrade to
// zero-contribution and are counted in metrics.
func (e *Extractor) Compute(ctx context.Context) (Essence, error) {
	if err := ctx.Err(); err != nil {
		return Essence{}, err
	}
	now := e.now()

	var volume float64
	intentScore := e.intentSubScores(ctx, now, &volume)
	reactionScore := e.reactionSubScores(ctx, now, &volume)
	behaviorScore := e.behaviorSubScores(ctx, &volume)

	var combined vibe.Weights
	for i := range combined {
		combined[i] = e.cfg.IntentWeight*intentScore[i] +
			e.cfg.ReactionWeight*reactionScore[i] +
			e.cfg.BehaviorWeight*behaviorScore[i]
	}
	combined = combined.ClampNegatives()

	var weights vibe.Weights
	if combined.Sum() == 0 {
		// Cold start: a shaped default beats a uniform split.
		weights = vibe.DefaultDistribution()
	} else {
		weights = combined.Normalize()
	}

	dominant := weights.Dominant(e.cfg.DominanceThreshold, e.cfg.MaxDominant)
	if e.state != nil {
		e.state.SetPreviousDominant(dominant)
	}

	confidence := math.Min(0.9, 0.1+volume/e.cfg.ConfidenceVolumeScale)
	ess := Essence{
		Weights:        weights,
		Dominant:       dominant,
		DiscoveryHints: e.hints(dominant),
		Confidence:     confidence,
		FreshnessRatio: 0.6 + 0.2*confidence,
		TimeContext:    timeContextFor(now),
		ComputedAt:     now,
	}

	e.logger.Debug().
		Floats64("weights", weights[:]).
		Float64("confidence", confidence).
		Msg("essence computed")
	return ess, nil
}

// decay halves a magnitude every configured half-life.
func (e *Extractor) decay(now, at time.Time) float64 {
	if at.IsZero() || !at.Before(now) {
		return 1
	}
	halfLives := now.Sub(at).Hours() / e.cfg.DecayHalfLife.Hours()
	return math.Pow(0.5, halfLives)
}

func (e *Extractor) intentSubScores(ctx context.Context, now time.Time, volume *float64) vibe.Weights {
	var out vibe.Weights
	if e.intent == nil {
		return out
	}
	signals, err := e.intent.IntentSignals(ctx)
	if err != nil {
		metrics.SignalSourceFailures.WithLabelValues("intent").Inc()
		e.logger.Warn().Err(err).Msg("intent source failed, contributing zero")
		return out
	}

	var boosts, queues vibe.Weights
	for _, sig := range signals {
		if !sig.Vibe.Valid() {
			continue
		}
		d := e.decay(now, sig.At)
		switch sig.Kind {
		case IntentBoost:
			boosts[sig.Vibe] += boostWeight * d
			*volume += boostWeight
		case IntentQueue:
			queues[sig.Vibe] += queueWeight * d
			*volume += queueWeight
		}
	}
	for i := range out {
		out[i] = math.Min(boosts[i], maxBoostBars*boostWeight) + queues[i]
	}
	return out
}

func (e *Extractor) reactionSubScores(ctx context.Context, now time.Time, volume *float64) vibe.Weights {
	var out vibe.Weights
	if e.reaction == nil {
		return out
	}
	signals, err := e.reaction.ReactionSignals(ctx)
	if err != nil {
		metrics.SignalSourceFailures.WithLabelValues("reaction").Inc()
		e.logger.Warn().Err(err).Msg("reaction source failed, contributing zero")
		return out
	}

	for _, sig := range signals {
		if !sig.Vibe.Valid() {
			continue
		}
		var w float64
		switch sig.Kind {
		case ReactionLike:
			w = likeWeight
		case ReactionOye:
			w = oyeWeight
		case ReactionSecondary:
			w = secondaryWeight
		default:
			continue
		}
		out[sig.Vibe] += w * e.decay(now, sig.At)
		*volume += w
	}
	return out
}

func (e *Extractor) behaviorSubScores(ctx context.Context, volume *float64) vibe.Weights {
	var out vibe.Weights
	if e.behavior == nil {
		return out
	}
	stats, err := e.behavior.BehaviorStats(ctx)
	if err != nil {
		metrics.SignalSourceFailures.WithLabelValues("behavior").Inc()
		e.logger.Warn().Err(err).Msg("behavior source failed, contributing zero")
		return out
	}

	// Behavior counters have no vibe attached. Attribute them to the
	// previous computation's dominant set, or split evenly on the
	// very first pass.
	targets := e.previousDominant()
	share := 1.0 / float64(len(targets))

	for _, tr := range stats {
		var contrib float64
		if tr.Plays > 0 && float64(tr.Completions)/float64(tr.Plays) > 0.5 {
			c := float64(tr.Completions) * completionWeight
			contrib += c
			*volume += c
		}
		if tr.Skips > 0 {
			s := float64(tr.Skips) * skipPenalty
			contrib -= s
			*volume += s
		}
		if tr.Plays > 0 {
			p := math.Log2(1+float64(tr.Plays)) * playLogWeight
			contrib += p
			*volume += p
		}
		for _, v := range targets {
			out[v] += contrib * share
		}
	}
	return out
}

func (e *Extractor) previousDominant() []vibe.ID {
	if e.state != nil {
		prev := e.state.PreviousDominant()
		valid := prev[:0]
		for _, v := range prev {
			if v.Valid() {
				valid = append(valid, v)
			}
		}
		if len(valid) > 0 {
			return valid
		}
	}
	return vibe.All()
}

// hints walks the expansion graph from each dominant vibe, strongest
// first, skipping anything already dominant or already suggested.
func (e *Extractor) hints(dominant []vibe.ID) []Hint {
	if len(dominant) == 0 || e.cfg.MaxHints <= 0 {
		return nil
	}

	inDominant := make(map[vibe.ID]bool, len(dominant))
	for _, d := range dominant {
		inDominant[d] = true
	}

	var out []Hint
	seen := make(map[vibe.ID]bool)
	for i, d := range dominant {
		w := 0.3 - 0.1*float64(i)
		for _, exp := range vibe.Expansions(d) {
			if exp.Reason == "" || inDominant[exp.Target] || seen[exp.Target] {
				continue
			}
			seen[exp.Target] = true
			out = append(out, Hint{Vibe: exp.Target, Reason: exp.Reason, Weight: w})
			if len(out) == e.cfg.MaxHints {
				return out
			}
		}
	}
	return out
}
