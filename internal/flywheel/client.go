// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package flywheel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/metrics"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// breakerName labels the score store breaker in logs and metrics.
const breakerName = "score-store"

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics.
const maxErrorBodySize = 16 * 1024

// errStoreUnavailable marks any condition treated as "store
// unreachable": network failure, HTTP 5xx, open circuit.
var errStoreUnavailable = errors.New("score store unavailable")

// errMalformedResponse marks an undecodable response body. Treated
// identically to an unreachable store on the caller side.
var errMalformedResponse = errors.New("malformed store response")

// Client is the HTTP RPC implementation of Store.
//
// All remote calls run through a circuit breaker: when the store is
// failing, calls short-circuit to the degraded path instead of piling
// timeouts onto every feed request.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[json.RawMessage]
	cfg     config.StoreConfig
	logger  zerolog.Logger
}

// NewClient creates a score store client from configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.StoreConfig, logger zerolog.Logger) *Client {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.BreakerFailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      cb,
		cfg:     cfg,
		logger:  logger.With().Str("component", "flywheel").Logger(),
	}
}

// stateToFloat maps breaker states onto the gauge scale.
func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// call executes one RPC through the circuit breaker and decodes the
// response into out. All failure classes collapse into the two
// sentinels so callers can treat them uniformly.
func (c *Client) call(ctx context.Context, procedure string, params, out any) error {
	start := time.Now()
	defer metrics.ObserveRPC(procedure, start)

	raw, err := c.cb.Execute(func() (json.RawMessage, error) {
		return c.post(ctx, procedure, params)
	})
	if err != nil {
		kind := "unreachable"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			kind = "rejected"
		} else if errors.Is(err, errMalformedResponse) {
			kind = "malformed"
		}
		metrics.StoreRPCErrors.WithLabelValues(procedure, kind).Inc()
		c.logger.Warn().Err(err).Str("procedure", procedure).Msg("store RPC degraded")
		if kind == "malformed" {
			return errMalformedResponse
		}
		return errStoreUnavailable
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		metrics.StoreRPCErrors.WithLabelValues(procedure, "malformed").Inc()
		c.logger.Warn().Err(err).Str("procedure", procedure).Msg("undecodable store response")
		return errMalformedResponse
	}
	return nil
}

// post performs the raw HTTP exchange for one procedure.
func (c *Client) post(ctx context.Context, procedure string, params any) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: no base URL configured", errStoreUnavailable)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	url := c.baseURL + "/rpc/" + procedure
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", procedure, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		snippet := readBodyForError(resp.Body)
		return nil, fmt.Errorf("%s: status %d: %s", procedure, resp.StatusCode, snippet)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", procedure, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", procedure, errMalformedResponse)
	}
	return raw, nil
}

// readBodyForError reads a bounded portion of a response body for error
// reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}

// weightParams flattens a preference vector into the individual scalar
// parameters the store procedures expect.
func weightParams(w vibe.Weights, into map[string]any) map[string]any {
	if into == nil {
		into = make(map[string]any, vibe.NumVibes)
	}
	for i, v := range w {
		into["w_"+vibe.ID(i).String()] = v
	}
	return into
}

// trackRow is the wire shape of a store result row.
type trackRow struct {
	TrackID         string         `json:"trackId"`
	Title           string         `json:"title"`
	Artist          string         `json:"artist"`
	MatchScore      float64        `json:"matchScore"`
	Tier            string         `json:"tier"`
	CanonLevel      string         `json:"canonLevel"`
	PrimaryCategory string         `json:"primaryCategory"`
	Tags            []string       `json:"tags"`
	ThumbnailRef    string         `json:"thumbnailRef"`
	VibeScores      map[string]int `json:"vibeScores"`
	Plays           int            `json:"plays"`
	Skips           int            `json:"skips"`
	Completions     int            `json:"completions"`
	Reactions       int            `json:"reactions"`
	HeatScore       float64        `json:"heatScore"`
	Source          string         `json:"discoverySource"`
	Year            int            `json:"year"`
}

// toTrackScore converts a wire row into the engine model. Unknown
// category names in the score map are dropped rather than erroring.
func (r *trackRow) toTrackScore() TrackScore {
	var scores vibe.Scores
	for name, v := range r.VibeScores {
		if id, err := vibe.ParseID(name); err == nil {
			scores[id] = v
		}
	}

	canon := r.CanonLevel
	if canon == "" {
		canon = CanonLevelForTier(r.Tier)
	}

	return TrackScore{
		TrackID:      r.TrackID,
		Title:        r.Title,
		Artist:       r.Artist,
		Scores:       scores.Clamp(),
		MatchScore:   r.MatchScore,
		Plays:        r.Plays,
		Skips:        r.Skips,
		Completions:  r.Completions,
		Reactions:    r.Reactions,
		HeatScore:    r.HeatScore,
		Tier:         r.Tier,
		CanonLevel:   canon,
		PrimaryVibe:  r.PrimaryCategory,
		Source:       DiscoverySource(r.Source),
		Tags:         r.Tags,
		ThumbnailRef: r.ThumbnailRef,
		Year:         r.Year,
	}
}

// rowsToTracks converts a slice of wire rows.
func rowsToTracks(rows []trackRow) []TrackScore {
	out := make([]TrackScore, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toTrackScore())
	}
	return out
}
