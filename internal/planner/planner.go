// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package planner

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/cache"
	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/essence"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/metrics"
	"github.com/voyo-music/vibeengine/internal/seeds"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// ErrSuperseded reports that a newer feed request arrived while this
// one was in flight; its results describe a stale preference vector
// and were discarded.
var ErrSuperseded = errors.New("feed request superseded by a newer one")

// EssenceSource produces the current preference vector.
type EssenceSource interface {
	Compute(ctx context.Context) (essence.Essence, error)
}

// HistorySource exposes the listener's recent plays, most recent
// first. The planner only reads it.
type HistorySource interface {
	RecentPlays(ctx context.Context, n int) ([]string, error)
}

// Feed is one stratified result set.
type Feed struct {
	// Hot is trending content matching the listener's vector. Seen
	// tracks are not excluded; trending should resurface.
	Hot []flywheel.TrackScore

	// Discovery expands the listener's horizon: biased toward the
	// dominant vibe's expansion targets, recent plays excluded.
	Discovery []flywheel.TrackScore

	// Familiar revisits previously-enjoyed tracks. Empty for a
	// listener with no history.
	Familiar []flywheel.TrackScore

	// Essence is the vector the feed was built from.
	Essence essence.Essence
}

// Planner builds stratified feeds from the collective store, degrading
// per-partition to the embedded seed catalog.
type Planner struct {
	store   flywheel.Store
	source  EssenceSource
	history HistorySource
	catalog VideoCatalog
	queries *cache.LRU
	cfg     config.PlannerConfig
	logger  zerolog.Logger

	// generation implements last-request-wins across BuildFeed calls.
	generation atomic.Uint64
}

// New wires a Planner. catalog may be nil (search degrades to the
// store provider only); queries may be nil (no search caching).
func New(store flywheel.Store, source EssenceSource, history HistorySource, catalog VideoCatalog, queries *cache.LRU, cfg config.PlannerConfig, logger zerolog.Logger) *Planner {
	return &Planner{
		store:   store,
		source:  source,
		history: history,
		catalog: catalog,
		queries: queries,
		cfg:     cfg,
		logger:  logger.With().Str("component", "planner").Logger(),
	}
}

// BuildFeed assembles the three partitions concurrently. Each
// partition has its own timeout and its own seed fallback; a slow or
// failing partition never blocks the other two. When a newer call
// starts before this one finishes, this one returns ErrSuperseded.
func (p *Planner) BuildFeed(ctx context.Context, hotLimit, discoveryLimit int) (Feed, error) {
	gen := p.generation.Add(1)

	ess, err := p.source.Compute(ctx)
	if err != nil {
		return Feed{}, err
	}

	totalFresh := hotLimit + discoveryLimit
	familiarCount := int(math.Round(float64(totalFresh) * (1 - ess.FreshnessRatio)))

	played := p.recentPlays(ctx)
	if len(played) == 0 {
		familiarCount = 0
	}

	feed := Feed{Essence: ess}
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		feed.Hot = p.partition(ctx, "hot", hotLimit, func(ctx context.Context) []flywheel.TrackScore {
			return p.store.QueryHot(ctx, ess.Weights, hotLimit)
		})
	}()

	go func() {
		defer wg.Done()
		biased := expansionBias(ess)
		feed.Discovery = p.partition(ctx, "discovery", discoveryLimit, func(ctx context.Context) []flywheel.TrackScore {
			return p.store.QueryDiscovery(ctx, biased, ess.PrimaryVibe(), discoveryLimit, played)
		})
	}()

	go func() {
		defer wg.Done()
		if familiarCount == 0 {
			return
		}
		feed.Familiar = p.partition(ctx, "familiar", familiarCount, func(ctx context.Context) []flywheel.TrackScore {
			return p.store.QueryFamiliar(ctx, played, familiarCount)
		})
	}()

	wg.Wait()

	if p.generation.Load() != gen {
		metrics.FeedRequestsSuperseded.Inc()
		p.logger.Debug().Uint64("generation", gen).Msg("discarding superseded feed")
		return Feed{}, ErrSuperseded
	}

	p.logger.Debug().
		Int("hot", len(feed.Hot)).
		Int("discovery", len(feed.Discovery)).
		Int("familiar", len(feed.Familiar)).
		Float64("freshness", ess.FreshnessRatio).
		Msg("feed built")
	return feed, nil
}

// partition runs one query under its own timeout and falls back to
// shuffled seeds when the store yields nothing.
func (p *Planner) partition(ctx context.Context, name string, limit int, query func(context.Context) []flywheel.TrackScore) []flywheel.TrackScore {
	if limit <= 0 {
		return nil
	}

	qctx, cancel := context.WithTimeout(ctx, p.cfg.PartitionTimeout)
	defer cancel()

	if rows := query(qctx); len(rows) > 0 {
		return rows
	}

	metrics.FeedPartitionFallbacks.WithLabelValues(name).Inc()
	p.logger.Warn().Str("partition", name).Msg("store yielded nothing, serving seeds")
	return seeds.Shuffled(limit)
}

func (p *Planner) recentPlays(ctx context.Context) []string {
	if p.history == nil {
		return nil
	}
	played, err := p.history.RecentPlays(ctx, p.cfg.HistoryExclusionCap)
	if err != nil {
		p.logger.Warn().Err(err).Msg("history unavailable, proceeding without exclusions")
		return nil
	}
	return played
}

// expansionBias shifts some weight toward the primary dominant vibe's
// expansion targets so the discovery partition actually expands.
func expansionBias(ess essence.Essence) vibe.Weights {
	if len(ess.Dominant) == 0 {
		return ess.Weights
	}
	biased := ess.Weights
	for _, exp := range vibe.Expansions(ess.Dominant[0]) {
		if exp.Reason == "" {
			continue
		}
		biased.Set(exp.Target, biased.Get(exp.Target)+0.15)
	}
	return biased.Normalize()
}
