// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

/*
Package config provides layered configuration for the vibe engine.

Configuration is resolved in three layers, later layers overriding
earlier ones:

 1. Struct defaults (Default) — the original engine's hand-tuned
    product constants: 40/30/30 signal blend, 5/3/2 training increments,
    7-day decay half-life, 0.15 dominance threshold.
 2. An optional YAML file (voyo.yaml, /etc/voyo/engine.yaml, or the
    path in VOYO_CONFIG_PATH).
 3. Environment variables with the VOYO_ prefix, e.g.
    VOYO_STORE_BASE_URL, VOYO_ESSENCE_INTENT_WEIGHT.

All layers are merged with koanf and validated before use.
*/
package config
