// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

/*
Package metrics provides Prometheus instrumentation for the vibe engine.

The engine's contract is that no failure reaches the presentation layer
as an error: unreachable stores, malformed responses and dropped training
writes all resolve to degraded-but-functional recommendations. These
collectors keep those silent paths visible to operators.

Metric families:

  - voyo_store_rpc_*: collective score store RPC latency and failures
  - voyo_circuit_breaker_*: breaker state around the remote store
  - voyo_training_*: flywheel write outcomes and pipeline depth
  - voyo_feed_*: seed-catalog fallbacks and superseded feed requests
  - voyo_signal_source_failures_total: extractor sources degraded to zero
  - voyo_query_cache_*: per-session query cache efficiency

Registration uses promauto against the default registry; the host
application decides whether and where to expose them.
*/
package metrics
