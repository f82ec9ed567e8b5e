// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package planner

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/metrics"
)

// VideoCatalog is the external text-search boundary. The engine does
// not talk to any concrete video platform; the embedding application
// provides one.
type VideoCatalog interface {
	SearchCatalog(ctx context.Context, query string, limit int) ([]flywheel.TrackScore, error)
}

// Search dispatches a text query to the collective store's
// vibe-weighted search and the external catalog in parallel, then
// merges: store rows first (curated, score-bearing), unique external
// rows appended, truncated to limit.
func (p *Planner) Search(ctx context.Context, query string, limit int) []flywheel.TrackScore {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	cacheKey := "search:" + query + ":" + strconv.Itoa(limit)
	if p.queries != nil {
		if hit, ok := p.queries.Get(cacheKey); ok {
			metrics.QueryCacheHits.Inc()
			return hit.([]flywheel.TrackScore)
		}
		metrics.QueryCacheMisses.Inc()
	}

	ess, err := p.source.Compute(ctx)
	if err != nil {
		return nil
	}

	var (
		wg          sync.WaitGroup
		storeRows   []flywheel.TrackScore
		catalogRows []flywheel.TrackScore
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		storeRows = p.store.Search(ctx, query, ess.Weights, limit)
	}()
	go func() {
		defer wg.Done()
		if p.catalog == nil {
			return
		}
		rows, err := p.catalog.SearchCatalog(ctx, query, limit)
		if err != nil {
			metrics.SignalSourceFailures.WithLabelValues("video_catalog").Inc()
			p.logger.Warn().Err(err).Str("query", query).Msg("catalog search failed")
			return
		}
		catalogRows = rows
	}()
	wg.Wait()

	merged := mergeResults(storeRows, catalogRows, limit)
	if p.queries != nil && len(merged) > 0 {
		p.queries.Set(cacheKey, merged)
	}
	return merged
}

// mergeResults unions two result sets de-duplicated by track ID,
// keeping the first set's ordering and trust priority.
func mergeResults(primary, secondary []flywheel.TrackScore, limit int) []flywheel.TrackScore {
	seen := make(map[string]bool, len(primary))
	out := make([]flywheel.TrackScore, 0, min(limit, len(primary)+len(secondary)))
	for _, rows := range [2][]flywheel.TrackScore{primary, secondary} {
		for _, tr := range rows {
			if tr.TrackID == "" || seen[tr.TrackID] {
				continue
			}
			seen[tr.TrackID] = true
			out = append(out, tr)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
