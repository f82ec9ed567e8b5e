// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package session holds per-listener local state.
//
// A badger store persists the anonymous listener identity, a bounded
// play history, and a cached seed snapshot. The Session type layers
// runtime-only state on top: the per-session query cache and the
// dominant-set handoff consumed by the preference extractor.
//
// Listeners start anonymous with a generated UUID. Signing in attaches
// an account to the same identity; history and the anonymous ID are
// never rewritten, so signals recorded before sign-in keep their
// original attribution.
package session
