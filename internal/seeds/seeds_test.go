// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package seeds

import (
	"testing"

	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

func TestCatalogIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	perVibe := make(map[vibe.ID]int)

	for _, tr := range All() {
		if tr.TrackID == "" || tr.Title == "" || tr.Artist == "" {
			t.Errorf("seed %+v has empty identity fields", tr)
		}
		if seen[tr.TrackID] {
			t.Errorf("duplicate seed ID %s", tr.TrackID)
		}
		seen[tr.TrackID] = true

		if tr.Source != flywheel.SourceSeed {
			t.Errorf("seed %s source = %q, want %q", tr.TrackID, tr.Source, flywheel.SourceSeed)
		}
		if tr.CanonLevel == "" {
			t.Errorf("seed %s missing canon level", tr.TrackID)
		}

		id, err := vibe.ParseID(tr.PrimaryVibe)
		if err != nil {
			t.Errorf("seed %s primary vibe %q unknown", tr.TrackID, tr.PrimaryVibe)
			continue
		}
		perVibe[id]++
	}

	// Every vibe must have enough depth to fill a fallback partition.
	for _, id := range vibe.All() {
		if perVibe[id] < 4 {
			t.Errorf("vibe %s has %d seeds, want at least 4", id, perVibe[id])
		}
	}
	if Count() < 40 {
		t.Errorf("catalog has %d seeds, want at least 40", Count())
	}
}

func TestForVibeOrdering(t *testing.T) {
	got := ForVibe(vibe.Chill, 5)
	if len(got) == 0 {
		t.Fatal("ForVibe(chill) returned nothing")
	}
	for i := 1; i < len(got); i++ {
		prev := got[i-1].Scores.Get(vibe.Chill)
		cur := got[i].Scores.Get(vibe.Chill)
		if cur > prev {
			t.Errorf("ForVibe order broken at %d: %d > %d", i, cur, prev)
		}
	}
	for _, tr := range got {
		if tr.PrimaryVibe != vibe.Chill.String() {
			t.Errorf("ForVibe(chill) returned %s with primary %s", tr.TrackID, tr.PrimaryVibe)
		}
	}
}

func TestForVibeInvalidInput(t *testing.T) {
	if got := ForVibe(vibe.ID(99), 5); got != nil {
		t.Errorf("ForVibe(invalid) = %v, want nil", got)
	}
	if got := ForVibe(vibe.AfroHeat, 0); got != nil {
		t.Errorf("ForVibe(n=0) = %v, want nil", got)
	}
}

func TestShuffledBounds(t *testing.T) {
	if got := Shuffled(10); len(got) != 10 {
		t.Errorf("Shuffled(10) returned %d tracks", len(got))
	}
	if got := Shuffled(0); len(got) != Count() {
		t.Errorf("Shuffled(0) returned %d tracks, want full catalog %d", len(got), Count())
	}
	if got := Shuffled(10_000); len(got) != Count() {
		t.Errorf("Shuffled(huge) returned %d tracks, want %d", len(got), Count())
	}
}
