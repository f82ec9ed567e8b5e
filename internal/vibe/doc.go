// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package vibe defines the closed set of preference categories, the
// fixed-size weight and score vector types built on it, and the static
// catalog of named vibe rules with their expansion graph.
//
// Everything in this package is pure data: the catalog is loaded at
// init and never mutated, and the vector types are value types safe to
// copy and compare. Higher layers (essence extraction, the collective
// store client, the query planner) all speak in these types.
package vibe
