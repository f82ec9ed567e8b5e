// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package config

import (
	"fmt"
	"time"
)

// Config contains all configuration for the vibe engine.
//
// The numeric defaults below are the hand-tuned product constants of the
// original engine. They are exposed as configuration so deployments can
// experiment, but changing them changes product behavior, not just
// implementation; the defaults are authoritative.
type Config struct {
	// Essence configures the signal extractor.
	Essence EssenceConfig `koanf:"essence"`

	// Store configures the collective score store client.
	Store StoreConfig `koanf:"store"`

	// Planner configures the discovery query planner.
	Planner PlannerConfig `koanf:"planner"`

	// Trainer configures the fire-and-forget training pipeline.
	Trainer TrainerConfig `koanf:"trainer"`

	// Local configures on-device persistence.
	Local LocalConfig `koanf:"local"`

	// Logging configures structured log output.
	Logging LoggingConfig `koanf:"logging"`
}

// EssenceConfig contains signal extraction parameters.
type EssenceConfig struct {
	// IntentWeight is the blend share of declared-intent signals.
	// Default: 0.40.
	IntentWeight float64 `koanf:"intent_weight"`

	// ReactionWeight is the blend share of reaction signals.
	// Default: 0.30.
	ReactionWeight float64 `koanf:"reaction_weight"`

	// BehaviorWeight is the blend share of passive listening signals.
	// Default: 0.30.
	BehaviorWeight float64 `koanf:"behavior_weight"`

	// DecayHalfLife is the signal half-life for time decay.
	// Default: 168h (7 days).
	DecayHalfLife time.Duration `koanf:"decay_half_life"`

	// DominanceThreshold is the normalized weight above which a
	// category counts as dominant. Default: 0.15.
	DominanceThreshold float64 `koanf:"dominance_threshold"`

	// MaxDominant caps the dominant category list. Default: 3.
	MaxDominant int `koanf:"max_dominant"`

	// MaxHints caps the discovery hint list. Default: 3.
	MaxHints int `koanf:"max_hints"`

	// ConfidenceVolumeScale divides total signal volume when computing
	// confidence. Default: 12.
	ConfidenceVolumeScale float64 `koanf:"confidence_volume_scale"`
}

// StoreConfig contains collective score store client parameters.
type StoreConfig struct {
	// BaseURL is the RPC endpoint root of the remote score store.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates RPC calls. Empty disables the auth header.
	APIKey string `koanf:"api_key"`

	// Timeout bounds a single RPC. Default: 5s.
	Timeout time.Duration `koanf:"timeout"`

	// QueueIncrement is the training increment for a queue action.
	// Default: 5.
	QueueIncrement int `koanf:"queue_increment"`

	// BoostIncrement is the training increment for a boost action.
	// Default: 3.
	BoostIncrement int `koanf:"boost_increment"`

	// ReactionIncrement is the training increment for a reaction.
	// Default: 2.
	ReactionIncrement int `koanf:"reaction_increment"`

	// BreakerFailureRatio opens the circuit at this failure rate.
	// Default: 0.6.
	BreakerFailureRatio float64 `koanf:"breaker_failure_ratio"`

	// BreakerMinRequests is the minimum sample before the breaker can
	// open. Default: 10.
	BreakerMinRequests uint32 `koanf:"breaker_min_requests"`

	// BreakerCooldown is how long the circuit stays open before probing.
	// Default: 30s.
	BreakerCooldown time.Duration `koanf:"breaker_cooldown"`
}

// PlannerConfig contains discovery query planner parameters.
type PlannerConfig struct {
	// PartitionTimeout bounds each of the three feed queries
	// independently. Default: 3s.
	PartitionTimeout time.Duration `koanf:"partition_timeout"`

	// HistoryExclusionCap bounds how many recently played track IDs are
	// sent as a query exclusion set. Default: 50.
	HistoryExclusionCap int `koanf:"history_exclusion_cap"`

	// CacheTTL is the per-session query cache entry lifetime.
	// Default: 2m.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheEntries is the per-session query cache capacity.
	// Default: 64.
	CacheEntries int `koanf:"cache_entries"`
}

// TrainerConfig contains training pipeline parameters.
type TrainerConfig struct {
	// BufferSize is the in-process event bus capacity. Publishing never
	// blocks; overflow is dropped and counted. Default: 256.
	BufferSize int `koanf:"buffer_size"`

	// WritesPerSecond rate-limits training RPCs. Default: 10.
	WritesPerSecond float64 `koanf:"writes_per_second"`

	// WriteBurst is the rate limiter burst. Default: 20.
	WriteBurst int `koanf:"write_burst"`
}

// LocalConfig contains on-device persistence parameters.
type LocalConfig struct {
	// Path is the badger directory for identity, history and the seed
	// cache. Empty selects an in-memory store (tests, ephemeral hosts).
	Path string `koanf:"path"`

	// HistoryLimit bounds the persisted play history. Default: 200.
	HistoryLimit int `koanf:"history_limit"`
}

// LoggingConfig contains log output parameters.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Default: info.
	Level string `koanf:"level"`

	// Format is json or console. Default: json.
	Format string `koanf:"format"`
}

// Default returns a Config with the original engine's production
// defaults.
func Default() *Config {
	return &Config{
		Essence: EssenceConfig{
			IntentWeight:          0.40,
			ReactionWeight:        0.30,
			BehaviorWeight:        0.30,
			DecayHalfLife:         7 * 24 * time.Hour,
			DominanceThreshold:    0.15,
			MaxDominant:           3,
			MaxHints:              3,
			ConfidenceVolumeScale: 12,
		},
		Store: StoreConfig{
			BaseURL:             "",
			Timeout:             5 * time.Second,
			QueueIncrement:      5,
			BoostIncrement:      3,
			ReactionIncrement:   2,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  10,
			BreakerCooldown:     30 * time.Second,
		},
		Planner: PlannerConfig{
			PartitionTimeout:    3 * time.Second,
			HistoryExclusionCap: 50,
			CacheTTL:            2 * time.Minute,
			CacheEntries:        64,
		},
		Trainer: TrainerConfig{
			BufferSize:      256,
			WritesPerSecond: 10,
			WriteBurst:      20,
		},
		Local: LocalConfig{
			Path:         "",
			HistoryLimit: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	blend := c.Essence.IntentWeight + c.Essence.ReactionWeight + c.Essence.BehaviorWeight
	if blend <= 0 {
		return fmt.Errorf("essence blend weights must sum to a positive value, got %f", blend)
	}
	if c.Essence.IntentWeight < 0 || c.Essence.ReactionWeight < 0 || c.Essence.BehaviorWeight < 0 {
		return fmt.Errorf("essence blend weights must be non-negative")
	}
	if c.Essence.DecayHalfLife <= 0 {
		return fmt.Errorf("essence.decay_half_life must be positive, got %v", c.Essence.DecayHalfLife)
	}
	if c.Essence.DominanceThreshold < 0 || c.Essence.DominanceThreshold >= 1 {
		return fmt.Errorf("essence.dominance_threshold must be in [0, 1), got %f", c.Essence.DominanceThreshold)
	}
	if c.Essence.MaxDominant < 1 {
		return fmt.Errorf("essence.max_dominant must be positive, got %d", c.Essence.MaxDominant)
	}
	if c.Essence.ConfidenceVolumeScale <= 0 {
		return fmt.Errorf("essence.confidence_volume_scale must be positive, got %f", c.Essence.ConfidenceVolumeScale)
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store.timeout must be positive, got %v", c.Store.Timeout)
	}
	if c.Store.QueueIncrement < 1 || c.Store.BoostIncrement < 1 || c.Store.ReactionIncrement < 1 {
		return fmt.Errorf("store increments must be positive")
	}
	if c.Store.BreakerFailureRatio <= 0 || c.Store.BreakerFailureRatio > 1 {
		return fmt.Errorf("store.breaker_failure_ratio must be in (0, 1], got %f", c.Store.BreakerFailureRatio)
	}

	if c.Planner.PartitionTimeout <= 0 {
		return fmt.Errorf("planner.partition_timeout must be positive, got %v", c.Planner.PartitionTimeout)
	}
	if c.Planner.HistoryExclusionCap < 1 {
		return fmt.Errorf("planner.history_exclusion_cap must be positive, got %d", c.Planner.HistoryExclusionCap)
	}

	if c.Trainer.BufferSize < 1 {
		return fmt.Errorf("trainer.buffer_size must be positive, got %d", c.Trainer.BufferSize)
	}
	if c.Trainer.WritesPerSecond <= 0 {
		return fmt.Errorf("trainer.writes_per_second must be positive, got %f", c.Trainer.WritesPerSecond)
	}

	if c.Local.HistoryLimit < 1 {
		return fmt.Errorf("local.history_limit must be positive, got %d", c.Local.HistoryLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	out := *c
	return &out
}
