// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"context"

	"github.com/voyo-music/vibeengine/internal/vibe"
)

// QueryByCategory returns tracks for a named catalog rule.
//
// The rule's tier/era/region constraints bound the primary fetch; each
// pattern matcher then runs as its own supplementary fetch and the
// results are union-merged, de-duplicated by track ID. The two fetch
// classes serve different goals (precision for filters, recall for
// patterns), which is why pattern matches supplement the primary set
// instead of restricting it.
func (c *Client) QueryByCategory(ctx context.Context, ruleID string, limit int) []TrackScore {
	rule, ok := vibe.Lookup(ruleID)
	if !ok {
		// Unknown category: fall back to the full unfiltered set.
		c.logger.Debug().Str("rule", ruleID).Msg("unknown catalog rule, unfiltered fetch")
		return c.fetchFiltered(ctx, vibe.Rule{ID: ruleID}, limit)
	}

	primary := c.fetchFiltered(ctx, rule, limit)

	merged := primary
	seen := make(map[string]struct{}, len(primary))
	for _, t := range primary {
		seen[t.TrackID] = struct{}{}
	}

	appendUnique := func(tracks []TrackScore) {
		for _, t := range tracks {
			if _, dup := seen[t.TrackID]; dup {
				continue
			}
			seen[t.TrackID] = struct{}{}
			merged = append(merged, t)
		}
	}

	for _, p := range rule.Constraints.ArtistPatterns {
		appendUnique(c.fetchPattern(ctx, "artist", p, limit))
	}
	for _, p := range rule.Constraints.TitlePatterns {
		appendUnique(c.fetchPattern(ctx, "title", p, limit))
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// fetchFiltered runs the primary tier/era/region-filtered fetch.
func (c *Client) fetchFiltered(ctx context.Context, rule vibe.Rule, limit int) []TrackScore {
	params := map[string]any{
		"category": rule.ID,
		"limit":    limit,
		"sort":     string(rule.Constraints.Sort),
	}
	if len(rule.Constraints.Tiers) > 0 {
		params["tiers"] = rule.Constraints.Tiers
	}
	if rule.Constraints.EraFrom != 0 {
		params["era_from"] = rule.Constraints.EraFrom
	}
	if rule.Constraints.EraTo != 0 {
		params["era_to"] = rule.Constraints.EraTo
	}
	if rule.Constraints.Region != "" {
		params["region"] = rule.Constraints.Region
	}

	var rows []trackRow
	if err := c.call(ctx, "query_tracks_by_vibe", params, &rows); err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// fetchPattern runs one supplementary substring-match fetch against the
// artist or title field.
func (c *Client) fetchPattern(ctx context.Context, field, pattern string, limit int) []TrackScore {
	var rows []trackRow
	err := c.call(ctx, "match_tracks_by_pattern", map[string]any{
		"field":   field,
		"pattern": pattern,
		"limit":   limit,
	}, &rows)
	if err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// QueryByWeights runs a single-pass server-side weighted scoring across
// all categories. This is also the primary "does this vector have
// enough matches" probe.
func (c *Client) QueryByWeights(ctx context.Context, w vibe.Weights, limit int, excludeIDs []string) []TrackScore {
	params := weightParams(w, map[string]any{
		"limit":       limit,
		"exclude_ids": emptyNotNil(excludeIDs),
	})

	var rows []trackRow
	if err := c.call(ctx, "query_tracks_weighted", params, &rows); err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// QueryHot returns globally trending tracks re-ranked by the listener's
// preference vector. Nothing is excluded by design: trending tracks
// surface even when previously seen.
func (c *Client) QueryHot(ctx context.Context, w vibe.Weights, limit int) []TrackScore {
	params := weightParams(w, map[string]any{
		"limit":       limit,
		"exclude_ids": []string{},
	})

	var rows []trackRow
	if err := c.call(ctx, "get_hot_tracks", params, &rows); err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// QueryDiscovery returns horizon-expanding tracks biased toward the
// dominant category's expansion targets, excluding recently played IDs.
func (c *Client) QueryDiscovery(ctx context.Context, w vibe.Weights, dominant vibe.ID, limit int, playedIDs []string) []TrackScore {
	params := weightParams(w, map[string]any{
		"dominant_category": dominant.String(),
		"limit":             limit,
		"exclude_ids":       emptyNotNil(playedIDs),
		"played_ids":        emptyNotNil(playedIDs),
	})

	var rows []trackRow
	if err := c.call(ctx, "get_discovery_tracks", params, &rows); err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// QueryFamiliar looks up previously played tracks directly.
func (c *Client) QueryFamiliar(ctx context.Context, playedIDs []string, limit int) []TrackScore {
	if len(playedIDs) == 0 {
		return nil
	}

	var rows []trackRow
	err := c.call(ctx, "get_familiar_tracks", map[string]any{
		"played_ids": playedIDs,
		"limit":      limit,
	}, &rows)
	if err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// Search runs the store's vibe-weighted text search.
func (c *Client) Search(ctx context.Context, query string, w vibe.Weights, limit int) []TrackScore {
	params := weightParams(w, map[string]any{
		"query": query,
		"limit": limit,
	})

	var rows []trackRow
	if err := c.call(ctx, "search_tracks_by_vibe", params, &rows); err != nil {
		return nil
	}
	return rowsToTracks(rows)
}

// emptyNotNil keeps JSON arrays as [] instead of null on the wire.
func emptyNotNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
