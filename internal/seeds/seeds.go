// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package seeds

import (
	"math/rand/v2"

	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// track is a compact seed row. Scores follow vibe.All() order.
type track struct {
	id     string
	title  string
	artist string
	tier   string
	year   int
	scores vibe.Scores
}

// catalog is the embedded fallback set. It is the only content the
// engine can serve when the collective store is unreachable, so it
// spans every vibe with tier-A anchors plus enough depth that a full
// feed never repeats.
var catalog = []track{
	// afro_heat
	{"seed-ah-01", "Ye", "Burna Boy", "A", 2018, vibe.Scores{95, 25, 70, 60, 35}},
	{"seed-ah-02", "Last Last", "Burna Boy", "A", 2022, vibe.Scores{92, 40, 75, 55, 45}},
	{"seed-ah-03", "Essence", "Wizkid ft. Tems", "A", 2020, vibe.Scores{90, 60, 65, 40, 70}},
	{"seed-ah-04", "Peru", "Fireboy DML", "A", 2021, vibe.Scores{90, 35, 80, 55, 40}},
	{"seed-ah-05", "Calm Down", "Rema", "A", 2022, vibe.Scores{88, 45, 75, 50, 45}},
	{"seed-ah-06", "Rush", "Ayra Starr", "A", 2022, vibe.Scores{87, 40, 78, 60, 40}},
	{"seed-ah-07", "Terminator", "Asake", "B", 2022, vibe.Scores{89, 20, 85, 70, 30}},
	{"seed-ah-08", "Soso", "Omah Lay", "B", 2022, vibe.Scores{82, 55, 50, 35, 65}},
	{"seed-ah-09", "Kilometre", "Burna Boy", "B", 2021, vibe.Scores{88, 25, 80, 75, 30}},
	{"seed-ah-10", "Monalisa", "Lojay & Sarz", "B", 2021, vibe.Scores{85, 50, 70, 45, 60}},

	// party
	{"seed-pt-01", "Amapiano", "Asake & Olamide", "A", 2023, vibe.Scores{80, 15, 95, 70, 35}},
	{"seed-pt-02", "Unavailable", "Davido ft. Musa Keys", "A", 2023, vibe.Scores{82, 20, 93, 65, 40}},
	{"seed-pt-03", "Mnike", "Tyler ICU", "A", 2023, vibe.Scores{70, 15, 95, 75, 45}},
	{"seed-pt-04", "Tshwala Bam", "TitoM & Yuppe", "A", 2024, vibe.Scores{68, 20, 94, 70, 50}},
	{"seed-pt-05", "Sability", "Ayra Starr", "B", 2023, vibe.Scores{78, 25, 90, 65, 35}},
	{"seed-pt-06", "Party No Dey Stop", "Adekunle Gold ft. Zinoleesky", "B", 2023, vibe.Scores{80, 30, 92, 55, 45}},
	{"seed-pt-07", "Sete", "K.O ft. Young Stunna", "B", 2022, vibe.Scores{65, 25, 90, 60, 55}},
	{"seed-pt-08", "Bandana", "Fireboy DML & Asake", "B", 2022, vibe.Scores{83, 20, 88, 68, 30}},

	// chill
	{"seed-ch-01", "Free Mind", "Tems", "A", 2020, vibe.Scores{45, 95, 20, 15, 80}},
	{"seed-ch-02", "Understand", "Omah Lay", "A", 2021, vibe.Scores{55, 90, 30, 20, 75}},
	{"seed-ch-03", "Love Nwantiti", "CKay", "A", 2019, vibe.Scores{65, 85, 45, 25, 70}},
	{"seed-ch-04", "Medicine", "Omah Lay", "B", 2020, vibe.Scores{60, 88, 35, 25, 72}},
	{"seed-ch-05", "Duduke", "Simi", "B", 2020, vibe.Scores{50, 92, 25, 15, 60}},
	{"seed-ch-06", "Away", "Ayra Starr", "B", 2021, vibe.Scores{55, 87, 35, 25, 65}},
	{"seed-ch-07", "Joha", "Asake", "C", 2022, vibe.Scores{70, 80, 50, 35, 55}},

	// workout
	{"seed-wo-01", "Zazoo Zehh", "Portable ft. Olamide", "B", 2021, vibe.Scores{75, 10, 85, 92, 25}},
	{"seed-wo-02", "Omo Ope", "Asake ft. Olamide", "A", 2022, vibe.Scores{82, 15, 80, 90, 30}},
	{"seed-wo-03", "Bounce", "Rema", "B", 2021, vibe.Scores{78, 20, 82, 88, 35}},
	{"seed-wo-04", "Shakara", "Gqom Nation", "C", 2022, vibe.Scores{55, 10, 80, 90, 45}},
	{"seed-wo-05", "Hard Work", "Kwesi Arthur", "C", 2021, vibe.Scores{60, 25, 55, 88, 35}},
	{"seed-wo-06", "Machala", "Carter Efe", "C", 2022, vibe.Scores{72, 20, 78, 85, 30}},

	// late_night
	{"seed-ln-01", "Higher", "Tems", "A", 2020, vibe.Scores{40, 80, 20, 15, 95}},
	{"seed-ln-02", "Attention", "Omah Lay & Justin Bieber", "A", 2022, vibe.Scores{55, 70, 40, 25, 90}},
	{"seed-ln-03", "Lonely At The Top", "Asake", "A", 2023, vibe.Scores{65, 75, 35, 30, 88}},
	{"seed-ln-04", "For My Hand", "Burna Boy ft. Ed Sheeran", "B", 2022, vibe.Scores{60, 78, 30, 20, 87}},
	{"seed-ln-05", "Damages", "Tems", "B", 2020, vibe.Scores{45, 82, 25, 20, 90}},
	{"seed-ln-06", "Reason", "Omah Lay", "C", 2022, vibe.Scores{50, 75, 30, 25, 85}},

	// classics / golden era depth
	{"seed-cl-01", "African Queen", "2Baba", "A", 2004, vibe.Scores{70, 75, 40, 20, 65}},
	{"seed-cl-02", "Oliver Twist", "D'banj", "A", 2011, vibe.Scores{80, 20, 90, 60, 30}},
	{"seed-cl-03", "Yori Yori", "Bracket", "B", 2009, vibe.Scores{72, 60, 65, 30, 50}},
	{"seed-cl-04", "Kukere", "Iyanya", "B", 2012, vibe.Scores{78, 25, 88, 65, 30}},
}

// All returns the full seed catalog as store-shaped rows.
func All() []flywheel.TrackScore {
	out := make([]flywheel.TrackScore, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, toTrackScore(t))
	}
	return out
}

// ForVibe returns up to n seeds whose strongest score is the given
// vibe, ordered by that score descending.
func ForVibe(id vibe.ID, n int) []flywheel.TrackScore {
	if !id.Valid() || n <= 0 {
		return nil
	}
	var out []flywheel.TrackScore
	for _, t := range catalog {
		if primaryOf(t.scores) == id {
			out = append(out, toTrackScore(t))
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Scores.Get(id) > out[j-1].Scores.Get(id); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Shuffled returns up to n seeds in random order. Each call gets an
// independent permutation so repeated fallbacks do not serve the same
// opening sequence.
func Shuffled(n int) []flywheel.TrackScore {
	all := All()
	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Count reports the catalog size.
func Count() int { return len(catalog) }

func primaryOf(s vibe.Scores) vibe.ID {
	best := vibe.AfroHeat
	for _, id := range vibe.All() {
		if s.Get(id) > s.Get(best) {
			best = id
		}
	}
	return best
}

func toTrackScore(t track) flywheel.TrackScore {
	return flywheel.TrackScore{
		TrackID:     t.id,
		Title:       t.title,
		Artist:      t.artist,
		Scores:      t.scores,
		Tier:        t.tier,
		CanonLevel:  flywheel.CanonLevelForTier(t.tier),
		PrimaryVibe: primaryOf(t.scores).String(),
		Source:      flywheel.SourceSeed,
		Year:        t.year,
	}
}
