// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibe

import (
	"math"
	"testing"
)

func TestParseIDRoundTrip(t *testing.T) {
	for _, id := range All() {
		got, err := ParseID(id.String())
		if err != nil {
			t.Fatalf("ParseID(%q) error: %v", id.String(), err)
		}
		if got != id {
			t.Errorf("ParseID(%q) = %v, want %v", id.String(), got, id)
		}
	}

	if _, err := ParseID("vaporwave"); err == nil {
		t.Error("ParseID(unknown) = nil error, want error")
	}
}

func TestWeightsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{
			name: "scales to unit sum",
			in:   Weights{2, 1, 1, 0, 0},
			want: Weights{0.5, 0.25, 0.25, 0, 0},
		},
		{
			name: "zero vector unchanged",
			in:   Weights{},
			want: Weights{},
		},
		{
			name: "already normalized",
			in:   Weights{0.3, 0.2, 0.2, 0.15, 0.15},
			want: Weights{0.3, 0.2, 0.2, 0.15, 0.15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("component %d = %f, want %f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWeightsNormalizeSumsToOne(t *testing.T) {
	w := Weights{0.9, 0.05, 1.3, 0.0, 0.42}.Normalize()
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		t.Errorf("Sum() = %f, want 1.0", w.Sum())
	}
}

func TestWeightsClampNegatives(t *testing.T) {
	w := Weights{-0.5, 0.3, -0.01, 0, 0.2}.ClampNegatives()
	for i, v := range w {
		if v < 0 {
			t.Errorf("component %d = %f, want >= 0", i, v)
		}
	}
	if w[1] != 0.3 || w[4] != 0.2 {
		t.Error("positive components were modified")
	}
}

func TestWeightsDominant(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
		want []ID
	}{
		{
			name: "orders descending and truncates to three",
			w:    Weights{0.25, 0.20, 0.30, 0.16, 0.09},
			want: []ID{Party, AfroHeat, Chill},
		},
		{
			name: "threshold is strict",
			w:    Weights{0.15, 0.15, 0.15, 0.15, 0.40},
			want: []ID{LateNight},
		},
		{
			name: "empty on uniform low weights",
			w:    Weights{0.1, 0.1, 0.1, 0.1, 0.1},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.w.Dominant(0.15, 3)
			if len(got) != len(tt.want) {
				t.Fatalf("Dominant() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Dominant()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDefaultDistribution(t *testing.T) {
	w := DefaultDistribution()
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		t.Errorf("Sum() = %f, want 1.0", w.Sum())
	}
	if w[AfroHeat] != 0.30 {
		t.Errorf("afro_heat = %f, want 0.30", w[AfroHeat])
	}
	if w[Workout] != 0.15 || w[LateNight] != 0.15 {
		t.Error("workout and late_night should each default to 0.15")
	}
}

func TestCatalogCoreRules(t *testing.T) {
	for _, id := range All() {
		r, ok := RuleFor(id)
		if !ok {
			t.Fatalf("RuleFor(%v): no rule", id)
		}
		if r.Core != id {
			t.Errorf("rule %q core = %v, want %v", r.ID, r.Core, id)
		}
		if r.EnergyLevel < 1 || r.EnergyLevel > 5 {
			t.Errorf("rule %q energy = %d, want 1..5", r.ID, r.EnergyLevel)
		}
	}
}

func TestCatalogRelatedResolve(t *testing.T) {
	for _, id := range Rules() {
		r, _ := Lookup(id)
		for _, rel := range r.Related {
			if _, ok := Lookup(rel); !ok {
				t.Errorf("rule %q references unknown related rule %q", id, rel)
			}
		}
	}
}

func TestExpansionsCoverAllVibes(t *testing.T) {
	for _, id := range All() {
		exp := Expansions(id)
		for i, e := range exp {
			if !e.Target.Valid() {
				t.Errorf("expansion %d of %v has invalid target", i, id)
			}
			if e.Target == id {
				t.Errorf("expansion %d of %v points back at itself", i, id)
			}
			if e.Reason == "" {
				t.Errorf("expansion %d of %v has no reason", i, id)
			}
		}
	}
}

func TestScoresClamp(t *testing.T) {
	s := Scores{-10, 0, 50, 100, 150}.Clamp()
	want := Scores{0, 0, 50, 100, 100}
	if s != want {
		t.Errorf("Clamp() = %v, want %v", s, want)
	}
}

func TestGenrePrior(t *testing.T) {
	p := GenrePrior("gqom")
	if p.Get(Party) != 95 {
		t.Errorf("gqom party prior = %d, want 95", p.Get(Party))
	}

	neutral := GenrePrior("unheard-of-genre")
	for _, id := range All() {
		if neutral.Get(id) != 50 {
			t.Errorf("unknown genre prior for %v = %d, want 50", id, neutral.Get(id))
		}
	}
}
