// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

/*
Package flywheel is the client for the collective score store: the
shared table mapping every track to a per-category score vector and
aggregate engagement counters.

The store is the engine's flywheel. Each listener's interactions feed
bounded-increment training writes into the shared rows; every
listener's queries then benefit from everyone else's signal. Because
writes are increments clamped to [0, 100] and never absolute
overwrites, concurrent training from many listeners is commutative and
needs no coordination.

The Client speaks an RPC-over-HTTP surface (one POST per procedure,
category weights flattened into scalar parameters) behind a circuit
breaker. Its failure contract is strict: no read or write ever returns
an error to the interaction path. Outages degrade to empty result sets
and non-applied TrainResults, with Prometheus counters as the only
externally visible trace.
*/
package flywheel
