// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package essence computes a listener's preference vector.
//
// Three independent signal sources feed the Extractor: declared
// intent (vibe boosts and drag-to-queue), reactions (like, oye,
// secondary), and passive behavior (plays, skips, completions).
// Timestamped signals decay with a seven-day half-life, the sources
// blend 40/30/30, and the result normalizes to a weight vector over
// the five vibes with a dominant set, expansion hints, a confidence
// score and a feed freshness ratio.
//
// Any source may fail or be absent; its contribution becomes zero and
// the computation still succeeds with lower confidence. A listener
// with no signals at all gets the shaped cold-start distribution
// rather than a uniform split.
package essence
