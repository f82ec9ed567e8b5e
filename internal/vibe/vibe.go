// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibe

import (
	"fmt"
	"sort"
)

// ID identifies one of the fixed preference categories used as the axis
// of personalization. The set is closed: new categories are new enum
// variants, not ad hoc string keys.
type ID int

const (
	// AfroHeat is high-energy African music.
	AfroHeat ID = iota
	// Chill is relaxed, low-tempo listening.
	Chill
	// Party is celebratory, dance-floor music.
	Party
	// Workout is driving, high-BPM music.
	Workout
	// LateNight is moody, after-hours music.
	LateNight

	// NumVibes is the size of the closed category set.
	NumVibes
)

// String returns the wire name for the category.
func (id ID) String() string {
	switch id {
	case AfroHeat:
		return "afro_heat"
	case Chill:
		return "chill"
	case Party:
		return "party"
	case Workout:
		return "workout"
	case LateNight:
		return "late_night"
	default:
		return "unknown"
	}
}

// Valid reports whether the ID is within the known category set.
func (id ID) Valid() bool {
	return id >= 0 && id < NumVibes
}

// ParseID maps a wire name back to its category ID.
func ParseID(name string) (ID, error) {
	switch name {
	case "afro_heat":
		return AfroHeat, nil
	case "chill":
		return Chill, nil
	case "party":
		return Party, nil
	case "workout":
		return Workout, nil
	case "late_night":
		return LateNight, nil
	default:
		return 0, fmt.Errorf("unknown vibe %q", name)
	}
}

// All returns every category ID in declaration order.
func All() []ID {
	ids := make([]ID, NumVibes)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Weights is a fixed-size preference vector over the category set.
// Using an array rather than a string-keyed map makes a missing key
// unrepresentable and keeps the type copyable by value.
type Weights [NumVibes]float64

// Get returns the weight for a category, or 0 for an out-of-range ID.
func (w Weights) Get(id ID) float64 {
	if !id.Valid() {
		return 0
	}
	return w[id]
}

// Set assigns the weight for a category. Out-of-range IDs are ignored.
func (w *Weights) Set(id ID, v float64) {
	if id.Valid() {
		w[id] = v
	}
}

// Sum returns the total weight across all categories.
func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w {
		s += v
	}
	return s
}

// ClampNegatives floors every negative component at zero.
func (w Weights) ClampNegatives() Weights {
	for i, v := range w {
		if v < 0 {
			w[i] = 0
		}
	}
	return w
}

// Normalize returns a copy scaled so the components sum to 1.0.
// A zero vector is returned unchanged; callers decide the cold-start
// distribution.
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Dominant returns the categories whose weight strictly exceeds
// threshold, ordered descending by weight and truncated to max entries.
// Ties break on declaration order for determinism.
func (w Weights) Dominant(threshold float64, max int) []ID {
	ids := make([]ID, 0, NumVibes)
	for i, v := range w {
		if v > threshold {
			ids = append(ids, ID(i))
		}
	}
	sort.SliceStable(ids, func(a, b int) bool {
		return w[ids[a]] > w[ids[b]]
	})
	if max >= 0 && len(ids) > max {
		ids = ids[:max]
	}
	return ids
}

// ToMap returns the vector as a wire-name keyed map for RPC parameters
// and logging.
func (w Weights) ToMap() map[string]float64 {
	m := make(map[string]float64, NumVibes)
	for i, v := range w {
		m[ID(i).String()] = v
	}
	return m
}

// DefaultDistribution is the cold-start preference vector used when no
// signal exists. It is deliberately non-uniform so a brand-new listener
// still gets a coherent feed instead of an even smear.
func DefaultDistribution() Weights {
	var w Weights
	w[AfroHeat] = 0.30
	w[Chill] = 0.20
	w[Party] = 0.20
	w[Workout] = 0.15
	w[LateNight] = 0.15
	return w
}
