// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package trainer

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/metrics"
)

// Consumer drains the interaction topic and issues the corresponding
// store writes. It is rate limited so an interaction burst cannot
// hammer the collective store, and it implements suture.Service so a
// panic or transient failure restarts it.
type Consumer struct {
	bus     *Bus
	store   flywheel.Store
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewConsumer wires a Consumer against an opened bus.
func NewConsumer(bus *Bus, store flywheel.Store, cfg config.TrainerConfig, logger zerolog.Logger) *Consumer {
	return &Consumer{
		bus:     bus,
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(cfg.WritesPerSecond), cfg.WriteBurst),
		logger:  logger.With().Str("component", "trainer").Logger(),
	}
}

// Serve drains the topic until the context ends. Implements
// suture.Service.
func (c *Consumer) Serve(ctx context.Context) error {
	msgs, err := c.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handle(ctx, msg)
			msg.Ack()
			metrics.TrainingQueueDepth.Dec()
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	if err := c.limiter.Wait(ctx); err != nil {
		return
	}

	var i Interaction
	if err := json.Unmarshal(msg.Payload, &i); err != nil {
		metrics.TrainingWrites.WithLabelValues("unknown", "dropped").Inc()
		c.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("undecodable interaction")
		return
	}

	if i.hasTraining() {
		res := c.store.Train(ctx, i.ListenerID, i.TrackID, i.Vibe, i.Action)
		if !res.Applied {
			c.logger.Debug().
				Str("track_id", i.TrackID).
				Str("reason", res.Reason).
				Msg("training write not applied")
		}
	}
	if i.hasEngagement() {
		c.store.RecordEngagement(ctx, i.ListenerID, i.TrackID, i.Engagement)
	}
}
