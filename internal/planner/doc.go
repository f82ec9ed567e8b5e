// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package planner turns a preference vector into a stratified feed.
//
// BuildFeed issues three queries concurrently against the collective
// store: hot (trending matching the vector), discovery (expansion
// targets, recent plays excluded) and familiar (previously-enjoyed
// tracks, sized by the inverse freshness ratio). Each partition has
// its own timeout and falls back to the embedded seed catalog on its
// own, so a dead store still produces a listenable feed. Feed
// requests are last-request-wins: stale in-flight results are
// discarded.
//
// Search fans a text query out to the store's vibe-weighted search
// and the external VideoCatalog boundary, merging store-first with
// de-duplication.
package planner
