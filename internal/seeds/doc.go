// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package seeds embeds the curated fallback catalog.
//
// When the collective score store is unreachable or a feed partition
// times out, the planner fills the gap from this catalog instead of
// returning an empty feed. The set is small but spans every vibe, so
// a cold client with no network still hears something coherent.
package seeds
