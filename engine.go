// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package vibeengine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/essence"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/logging"
	"github.com/voyo-music/vibeengine/internal/planner"
	"github.com/voyo-music/vibeengine/internal/session"
	"github.com/voyo-music/vibeengine/internal/trainer"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// Re-exported domain types so embedding applications only import this
// package.
type (
	Essence      = essence.Essence
	Feed         = planner.Feed
	TrackScore   = flywheel.TrackScore
	VibeID       = vibe.ID
	VibeRule     = vibe.Rule
	Config       = config.Config
	VideoCatalog = planner.VideoCatalog
	ReactionKind = essence.ReactionKind
)

// The five vibes.
const (
	AfroHeat  = vibe.AfroHeat
	Chill     = vibe.Chill
	Party     = vibe.Party
	Workout   = vibe.Workout
	LateNight = vibe.LateNight
)

// Reaction strengths.
const (
	ReactionLike      = essence.ReactionLike
	ReactionOye       = essence.ReactionOye
	ReactionSecondary = essence.ReactionSecondary
)

// ErrSuperseded mirrors planner.ErrSuperseded for callers.
var ErrSuperseded = planner.ErrSuperseded

// DefaultConfig returns the engine's production defaults, ready to
// tweak before passing through Options.Config.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig loads a YAML config file with env overrides applied.
func LoadConfig(path string) (*Config, error) {
	return config.LoadFile(path)
}

// Options configures New. Every field is optional.
type Options struct {
	// Config overrides the file/env-layered configuration.
	Config *config.Config

	// Store overrides the collective score store client, for embedding
	// applications that front it differently (and for tests).
	Store flywheel.Store

	// Catalog is the external video-catalog search boundary. Nil
	// disables the external half of Search.
	Catalog planner.VideoCatalog
}

// Engine is the assembled recommendation engine for one listener
// device: local identity and history, the signal extractor, the
// collective store client, the feed planner and the async training
// pipeline.
type Engine struct {
	cfg      *config.Config
	local    *session.Store
	sess     *session.Session
	store    flywheel.Store
	signals  *signalLog
	extract  *essence.Extractor
	planner  *planner.Planner
	pipeline *trainer.Pipeline
	logger   zerolog.Logger
}

// New assembles an Engine and starts its training pipeline.
func New(ctx context.Context, opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger := logging.Logger()

	local, err := session.Open(cfg.Local, logger)
	if err != nil {
		return nil, err
	}

	sess, err := session.New(ctx, local, cfg.Planner, logger)
	if err != nil {
		_ = local.Close()
		return nil, err
	}

	store := opts.Store
	if store == nil {
		store = flywheel.NewClient(cfg.Store, logger)
	}

	signals := newSignalLog()
	extract := essence.NewExtractor(cfg.Essence, signals, signals, signals, sess, logger)
	plan := planner.New(store, extract, historyAdapter{sess}, opts.Catalog, sess.Queries(), cfg.Planner, logger)

	pipeline := trainer.NewPipeline(store, cfg.Trainer, logger)
	pipeline.Start(ctx)

	e := &Engine{
		cfg:      cfg,
		local:    local,
		sess:     sess,
		store:    store,
		signals:  signals,
		extract:  extract,
		planner:  plan,
		pipeline: pipeline,
		logger:   logger.With().Str("component", "engine").Logger(),
	}
	e.logger.Info().Str("listener_id", sess.ListenerID()).Msg("engine ready")
	return e, nil
}

// Close stops the training pipeline and releases local storage.
func (e *Engine) Close() error {
	err := e.pipeline.Close()
	if closeErr := e.local.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// ListenerID returns the stable anonymous device identifier.
func (e *Engine) ListenerID() string {
	return e.sess.ListenerID()
}

// Authenticate signs the listener in. Signals recorded before this
// call keep their anonymous attribution.
func (e *Engine) Authenticate(ctx context.Context, accountID string) error {
	return e.sess.Authenticate(ctx, accountID)
}

// Essence computes the listener's current preference vector.
func (e *Engine) Essence(ctx context.Context) (Essence, error) {
	return e.extract.Compute(ctx)
}

// BuildFeed assembles the stratified feed. A call superseded by a
// newer one returns ErrSuperseded.
func (e *Engine) BuildFeed(ctx context.Context, hotLimit, discoveryLimit int) (Feed, error) {
	return e.planner.BuildFeed(ctx, hotLimit, discoveryLimit)
}

// Search merges the collective store's vibe-weighted search with the
// external catalog boundary.
func (e *Engine) Search(ctx context.Context, query string, limit int) []TrackScore {
	return e.planner.Search(ctx, query, limit)
}

// BrowseVibe lists tracks for a named catalog rule (core vibes and
// the extended browse categories alike).
func (e *Engine) BrowseVibe(ctx context.Context, ruleID string, limit int) []TrackScore {
	return e.store.QueryByCategory(ctx, ruleID, limit)
}

// Vibes lists the full browse catalog.
func (e *Engine) Vibes() []VibeRule {
	return vibe.AllRules()
}

// BoostVibe records an explicit vibe boost. When a track is playing,
// the boost also trains that track's vibe score collectively.
func (e *Engine) BoostVibe(v VibeID, currentTrackID string) {
	if !v.Valid() {
		return
	}
	e.signals.addIntent(v, essence.IntentBoost, time.Now())
	if currentTrackID != "" {
		e.pipeline.Publish(trainer.Interaction{
			ListenerID: e.sess.Attribution(),
			TrackID:    currentTrackID,
			Vibe:       v,
			Action:     flywheel.ActionBoost,
			At:         time.Now(),
		})
	}
}

// QueueTrack records a drag-to-queue, the strongest intent signal,
// and trains the track's vibe.
func (e *Engine) QueueTrack(trackID string, v VibeID) {
	if !v.Valid() || trackID == "" {
		return
	}
	e.signals.addIntent(v, essence.IntentQueue, time.Now())
	e.pipeline.Publish(trainer.Interaction{
		ListenerID: e.sess.Attribution(),
		TrackID:    trackID,
		Vibe:       v,
		Action:     flywheel.ActionQueue,
		At:         time.Now(),
	})
}

// React records a reaction on a track attributed to a vibe.
func (e *Engine) React(trackID string, v VibeID, kind essence.ReactionKind) {
	if !v.Valid() || trackID == "" {
		return
	}
	e.signals.addReaction(v, kind, time.Now())
	e.pipeline.Publish(trainer.Interaction{
		ListenerID: e.sess.Attribution(),
		TrackID:    trackID,
		Vibe:       v,
		Action:     flywheel.ActionReaction,
		Engagement: flywheel.EngageReaction,
		At:         time.Now(),
	})
}

// TrackPlayed records a play: local behavior signal, persisted
// history, and a collective engagement event.
func (e *Engine) TrackPlayed(ctx context.Context, trackID string) {
	if trackID == "" {
		return
	}
	e.signals.addPlay(trackID)
	if err := e.sess.RecordPlay(ctx, trackID); err != nil {
		e.logger.Warn().Err(err).Str("track_id", trackID).Msg("history write failed")
	}
	e.pipeline.Publish(trainer.Interaction{
		ListenerID: e.sess.Attribution(),
		TrackID:    trackID,
		Engagement: flywheel.EngagePlay,
		At:         time.Now(),
	})
}

// TrackSkipped records a skip.
func (e *Engine) TrackSkipped(trackID string) {
	if trackID == "" {
		return
	}
	e.signals.addSkip(trackID)
	e.pipeline.Publish(trainer.Interaction{
		ListenerID: e.sess.Attribution(),
		TrackID:    trackID,
		Engagement: flywheel.EngageSkip,
		At:         time.Now(),
	})
}

// TrackCompleted records a full listen.
func (e *Engine) TrackCompleted(trackID string) {
	if trackID == "" {
		return
	}
	e.signals.addCompletion(trackID)
	e.pipeline.Publish(trainer.Interaction{
		ListenerID: e.sess.Attribution(),
		TrackID:    trackID,
		Engagement: flywheel.EngageComplete,
		At:         time.Now(),
	})
}

// SeedTrack pushes one track row through the ingestion path with
// genre-derived initial scores. Ordinary training never creates rows;
// this is how they come to exist.
func (e *Engine) SeedTrack(ctx context.Context, trackID, title, artist, genre, tier string) bool {
	return e.store.UpsertTrack(ctx, flywheel.SeedFromGenre(trackID, title, artist, genre, tier))
}

// historyAdapter exposes session history to the planner.
type historyAdapter struct {
	sess *session.Session
}

func (h historyAdapter) RecentPlays(ctx context.Context, n int) ([]string, error) {
	hist, err := h.sess.History(ctx)
	if err != nil {
		return nil, err
	}
	return hist.Recent(n), nil
}
