// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibe

import "sort"

// Kind classifies a catalog rule by what dimension of taste it captures.
type Kind string

const (
	// KindRegional groups music by region or scene.
	KindRegional Kind = "regional"
	// KindMood groups music by emotional register.
	KindMood Kind = "mood"
	// KindActivity groups music by listening activity.
	KindActivity Kind = "activity"
	// KindEra groups music by release period.
	KindEra Kind = "era"
	// KindGenre groups music by genre.
	KindGenre Kind = "genre"
	// KindCultural groups music by cultural context.
	KindCultural Kind = "cultural"
)

// SortPreference selects the ordering applied to a rule's primary fetch.
type SortPreference string

const (
	// SortPlays orders by play count descending.
	SortPlays SortPreference = "plays"
	// SortShuffle orders randomly.
	SortShuffle SortPreference = "shuffle"
	// SortTier orders by canonical artist tier ascending (A before C).
	SortTier SortPreference = "tier"
	// SortRecent orders by most recently added.
	SortRecent SortPreference = "recent"
)

// Constraints describes the eligibility filters for a catalog rule.
// Pattern matchers are applied as separate supplementary fetches, not as
// restrictions on the primary tier/era-filtered fetch.
type Constraints struct {
	// Tiers restricts results to the listed artist tiers (A/B/C).
	// Empty means all tiers.
	Tiers []string

	// EraFrom and EraTo bound the release year, inclusive. Zero means
	// unbounded on that side.
	EraFrom int
	EraTo   int

	// Region restricts results to a scene or country tag.
	Region string

	// ArtistPatterns are substring matchers against the artist name.
	ArtistPatterns []string

	// TitlePatterns are substring matchers against the track title.
	TitlePatterns []string

	// Sort is the ordering for the primary fetch.
	Sort SortPreference
}

// Rule is a static catalog entry describing one named vibe.
type Rule struct {
	ID          string
	DisplayName string
	Kind        Kind

	// EnergyLevel ranks intensity from 1 (ambient) to 5 (peak-time).
	EnergyLevel int

	// Core is the preference category this rule feeds, when it maps to
	// one of the five core categories.
	Core ID

	Constraints Constraints

	// Related lists rule IDs used for catalog browsing expansion.
	Related []string
}

// catalog holds every rule, keyed by rule ID. Loaded once, never
// mutated at runtime.
var catalog = map[string]Rule{
	"afro_heat": {
		ID:          "afro_heat",
		DisplayName: "Afro Heat",
		Kind:        KindMood,
		EnergyLevel: 5,
		Core:        AfroHeat,
		Constraints: Constraints{
			Tiers:          []string{"A", "B"},
			ArtistPatterns: []string{"burna", "wizkid", "davido", "rema", "asake"},
			Sort:           SortPlays,
		},
		Related: []string{"naija_fire", "amapiano_nights", "workout"},
	},
	"chill": {
		ID:          "chill",
		DisplayName: "Chill",
		Kind:        KindMood,
		EnergyLevel: 2,
		Core:        Chill,
		Constraints: Constraints{
			TitlePatterns: []string{"acoustic", "slow", "love"},
			Sort:          SortShuffle,
		},
		Related: []string{"alte_wave", "late_night"},
	},
	"party": {
		ID:          "party",
		DisplayName: "Party",
		Kind:        KindActivity,
		EnergyLevel: 5,
		Core:        Party,
		Constraints: Constraints{
			Tiers: []string{"A", "B"},
			Sort:  SortPlays,
		},
		Related: []string{"amapiano_nights", "gengetone_heat"},
	},
	"workout": {
		ID:          "workout",
		DisplayName: "Workout",
		Kind:        KindActivity,
		EnergyLevel: 4,
		Core:        Workout,
		Constraints: Constraints{
			Sort: SortPlays,
		},
		Related: []string{"afro_heat", "gqom_power"},
	},
	"late_night": {
		ID:          "late_night",
		DisplayName: "Late Night",
		Kind:        KindMood,
		EnergyLevel: 2,
		Core:        LateNight,
		Constraints: Constraints{
			Sort: SortShuffle,
		},
		Related: []string{"alte_wave", "chill"},
	},

	// Extended browse rules mirror the original catalog's regional and
	// era shelves. They map onto a core category for scoring.
	"naija_fire": {
		ID:          "naija_fire",
		DisplayName: "Naija Fire",
		Kind:        KindRegional,
		EnergyLevel: 5,
		Core:        AfroHeat,
		Constraints: Constraints{
			Tiers:  []string{"A", "B"},
			Region: "NG",
			Sort:   SortPlays,
		},
		Related: []string{"afro_heat", "golden_era"},
	},
	"amapiano_nights": {
		ID:          "amapiano_nights",
		DisplayName: "Amapiano Nights",
		Kind:        KindRegional,
		EnergyLevel: 4,
		Core:        Party,
		Constraints: Constraints{
			Region:        "ZA",
			TitlePatterns: []string{"amapiano", "piano"},
			Sort:          SortRecent,
		},
		Related: []string{"party", "late_night"},
	},
	"east_african_waves": {
		ID:          "east_african_waves",
		DisplayName: "East African Waves",
		Kind:        KindRegional,
		EnergyLevel: 3,
		Core:        Chill,
		Constraints: Constraints{
			Region: "EA",
			Sort:   SortShuffle,
		},
		Related: []string{"chill", "gengetone_heat"},
	},
	"gengetone_heat": {
		ID:          "gengetone_heat",
		DisplayName: "Gengetone Heat",
		Kind:        KindGenre,
		EnergyLevel: 5,
		Core:        Party,
		Constraints: Constraints{
			Region:         "KE",
			ArtistPatterns: []string{"sailors", "ethic", "boondocks"},
			Sort:           SortPlays,
		},
		Related: []string{"party", "east_african_waves"},
	},
	"gqom_power": {
		ID:          "gqom_power",
		DisplayName: "Gqom Power",
		Kind:        KindGenre,
		EnergyLevel: 5,
		Core:        Workout,
		Constraints: Constraints{
			Region:        "ZA",
			TitlePatterns: []string{"gqom"},
			Sort:          SortPlays,
		},
		Related: []string{"workout", "amapiano_nights"},
	},
	"alte_wave": {
		ID:          "alte_wave",
		DisplayName: "Alté Wave",
		Kind:        KindGenre,
		EnergyLevel: 2,
		Core:        LateNight,
		Constraints: Constraints{
			Region:         "NG",
			ArtistPatterns: []string{"odunsi", "santi", "lady donli"},
			Sort:           SortShuffle,
		},
		Related: []string{"late_night", "chill"},
	},
	"golden_era": {
		ID:          "golden_era",
		DisplayName: "Golden Era",
		Kind:        KindEra,
		EnergyLevel: 3,
		Core:        Chill,
		Constraints: Constraints{
			EraFrom: 1970,
			EraTo:   1999,
			Tiers:   []string{"A"},
			Sort:    SortTier,
		},
		Related: []string{"chill", "gospel_glory"},
	},
	"gospel_glory": {
		ID:          "gospel_glory",
		DisplayName: "Gospel Glory",
		Kind:        KindCultural,
		EnergyLevel: 3,
		Core:        Chill,
		Constraints: Constraints{
			TitlePatterns: []string{"gospel", "praise", "worship"},
			Sort:          SortPlays,
		},
		Related: []string{"golden_era"},
	},
}

// Lookup returns the rule for the given ID.
func Lookup(id string) (Rule, bool) {
	r, ok := catalog[id]
	return r, ok
}

// RuleFor returns the catalog rule backing a core category.
func RuleFor(id ID) (Rule, bool) {
	return Lookup(id.String())
}

// Rules returns every catalog rule ID in no particular order.
func Rules() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	return ids
}

// AllRules returns every catalog rule sorted by ID, for browse
// surfaces that render the whole catalog.
func AllRules() []Rule {
	ids := Rules()
	sort.Strings(ids)
	out := make([]Rule, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog[id])
	}
	return out
}

// Expansion is one horizon-expanding suggestion anchored on a dominant
// category.
type Expansion struct {
	Target ID
	Reason string
}

// expansions is the fixed graph used to derive discovery hints. Each
// core category has exactly two candidate expansions.
var expansions = map[ID][2]Expansion{
	AfroHeat: {
		{Target: Party, Reason: "high-energy crowds love a celebration"},
		{Target: Workout, Reason: "that same fire keeps a run going"},
	},
	Chill: {
		{Target: LateNight, Reason: "mellow tastes deepen after dark"},
		{Target: AfroHeat, Reason: "a warm lift when you are ready for it"},
	},
	Party: {
		{Target: AfroHeat, Reason: "the bangers behind the party"},
		{Target: LateNight, Reason: "for when the party winds down"},
	},
	Workout: {
		{Target: AfroHeat, Reason: "peak-energy tracks beyond the gym"},
		{Target: Party, Reason: "the same BPM, more celebration"},
	},
	LateNight: {
		{Target: Chill, Reason: "daylight versions of your night sound"},
		{Target: Party, Reason: "sometimes the night wants to dance"},
	},
}

// Expansions returns the two expansion candidates for a core category.
func Expansions(id ID) [2]Expansion {
	return expansions[id]
}
