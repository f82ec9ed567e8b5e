// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

// Package trainer is the asynchronous training path.
//
// Interactions publish to an in-process watermill topic and return
// immediately; a supervised, rate-limited consumer turns them into
// collective-store training writes. A slow or dead store can delay or
// drop writes but can never block or fail the interaction that
// produced them.
package trainer
