// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package vibeengine is VOYO's collective vibe recommendation engine.
//
// It turns one listener's raw signals (vibe boosts, drag-to-queue,
// reactions, plays, skips, completions) into a preference vector over
// the five vibes, builds stratified feeds against a shared
// collectively-trained score store, and feeds every interaction back
// into that store asynchronously so each listener's taste improves
// recommendations for all listeners.
//
// The engine is a library: no network port, no CLI. The embedding
// application drives playback and rendering, and supplies the external
// video-catalog search through the planner.VideoCatalog boundary.
//
//	engine, err := vibeengine.New(ctx, vibeengine.Options{})
//	if err != nil { ... }
//	defer engine.Close()
//
//	feed, err := engine.BuildFeed(ctx, 20, 20)
//	engine.TrackPlayed(ctx, feed.Hot[0].TrackID)
//
// Every remote operation degrades rather than fails: an unreachable
// store yields seeds and empty result sets, never an error that
// reaches the listener.
package vibeengine
