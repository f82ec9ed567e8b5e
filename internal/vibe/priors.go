// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibe

// Scores is a fixed-size per-category score vector on the 0-100 scale
// used by the collective store.
type Scores [NumVibes]int

// Clamp bounds every component to [0, 100].
func (s Scores) Clamp() Scores {
	for i, v := range s {
		if v < 0 {
			s[i] = 0
		} else if v > 100 {
			s[i] = 100
		}
	}
	return s
}

// Get returns the score for a category, or 0 for an out-of-range ID.
func (s Scores) Get(id ID) int {
	if !id.Valid() {
		return 0
	}
	return s[id]
}

// genrePriors maps genre tags to initial per-category scores. Used by
// the ingestion path to seed a track's score vector from its genre
// before any listener signal exists. Values come from the curated
// artist-master classification data.
var genrePriors = map[string]Scores{
	"afrobeats":   {85, 35, 75, 70, 45},
	"afropop":     {80, 45, 70, 60, 50},
	"afro-fusion": {70, 55, 60, 50, 65},
	"alte":        {50, 80, 40, 30, 85},
	"fuji":        {70, 40, 80, 50, 45},
	"juju":        {60, 55, 70, 40, 50},
	"amapiano":    {70, 50, 90, 60, 80},
	"gqom":        {90, 10, 95, 85, 70},
	"kwaito":      {65, 55, 75, 50, 65},
	"maskandi":    {50, 60, 55, 40, 45},
	"sa-house":    {75, 40, 85, 70, 75},
	"bongo-flava": {75, 45, 70, 55, 50},
	"gengetone":   {80, 20, 85, 70, 60},
	"benga":       {60, 50, 65, 45, 40},
	"taarab":      {30, 75, 40, 20, 70},
	"highlife":    {55, 65, 60, 35, 50},
	"gospel":      {45, 70, 55, 40, 45},
	"hiplife":     {70, 40, 75, 60, 55},
}

// defaultPrior is the neutral score vector for unrecognized genres.
var defaultPrior = Scores{50, 50, 50, 50, 50}

// GenrePrior returns the seed score vector for a genre tag. Unknown
// genres get a neutral vector rather than zeroes so freshly ingested
// tracks remain queryable.
func GenrePrior(genre string) Scores {
	if p, ok := genrePriors[genre]; ok {
		return p
	}
	return defaultPrior
}

// KnownGenres returns every genre with a curated prior.
func KnownGenres() []string {
	out := make([]string, 0, len(genrePriors))
	for g := range genrePriors {
		out = append(out, g)
	}
	return out
}
