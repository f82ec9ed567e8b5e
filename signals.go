// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibeengine

import (
	"context"
	"sync"
	"time"

	"github.com/voyo-music/vibeengine/internal/essence"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// maxSignalEvents bounds each in-memory signal log. With a seven-day
// half-life, events past the bound would contribute noise, not signal.
const maxSignalEvents = 512

// signalLog is the engine's in-memory record of the current device's
// raw signals. It feeds all three extractor sources and is bounded by
// dropping the oldest events.
type signalLog struct {
	mu        sync.Mutex
	intents   []essence.IntentSignal
	reactions []essence.ReactionSignal
	behavior  map[string]*essence.TrackBehavior
}

func newSignalLog() *signalLog {
	return &signalLog{behavior: make(map[string]*essence.TrackBehavior)}
}

func (s *signalLog) addIntent(v vibe.ID, kind essence.IntentKind, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = append(s.intents, essence.IntentSignal{Vibe: v, Kind: kind, At: at})
	if len(s.intents) > maxSignalEvents {
		s.intents = s.intents[len(s.intents)-maxSignalEvents:]
	}
}

func (s *signalLog) addReaction(v vibe.ID, kind essence.ReactionKind, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions = append(s.reactions, essence.ReactionSignal{Vibe: v, Kind: kind, At: at})
	if len(s.reactions) > maxSignalEvents {
		s.reactions = s.reactions[len(s.reactions)-maxSignalEvents:]
	}
}

func (s *signalLog) track(trackID string) *essence.TrackBehavior {
	tb, ok := s.behavior[trackID]
	if !ok {
		tb = &essence.TrackBehavior{TrackID: trackID}
		s.behavior[trackID] = tb
	}
	return tb
}

func (s *signalLog) addPlay(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(trackID).Plays++
}

func (s *signalLog) addSkip(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(trackID).Skips++
}

func (s *signalLog) addCompletion(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(trackID).Completions++
}

// IntentSignals implements essence.IntentSource.
func (s *signalLog) IntentSignals(context.Context) ([]essence.IntentSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]essence.IntentSignal, len(s.intents))
	copy(out, s.intents)
	return out, nil
}

// ReactionSignals implements essence.ReactionSource.
func (s *signalLog) ReactionSignals(context.Context) ([]essence.ReactionSignal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]essence.ReactionSignal, len(s.reactions))
	copy(out, s.reactions)
	return out, nil
}

// BehaviorStats implements essence.BehaviorSource.
func (s *signalLog) BehaviorStats(context.Context) ([]essence.TrackBehavior, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]essence.TrackBehavior, 0, len(s.behavior))
	for _, tb := range s.behavior {
		out = append(out, *tb)
	}
	return out, nil
}
