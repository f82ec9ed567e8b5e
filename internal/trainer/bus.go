// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package trainer

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/metrics"
)

const interactionsTopic = "listener.interactions"

// Bus is the in-process interaction queue. Publishing is buffered and
// never blocks the interaction that produced the event; when the
// buffer is full or the bus is closed, the event is dropped and
// counted, not retried into the UI path.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// NewBus builds the gochannel Pub/Sub with the configured buffer.
func NewBus(cfg config.TrainerConfig, logger zerolog.Logger) *Bus {
	l := logger.With().Str("component", "trainer").Logger()
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: int64(cfg.BufferSize),
	}, watermillAdapter{logger: l})
	return &Bus{pubsub: pubsub, logger: l}
}

// Publish enqueues one interaction, fire-and-forget.
func (b *Bus) Publish(i Interaction) {
	payload, err := json.Marshal(i)
	if err != nil {
		metrics.TrainingWrites.WithLabelValues(string(i.Action), "dropped").Inc()
		b.logger.Error().Err(err).Msg("interaction marshal failed")
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := b.pubsub.Publish(interactionsTopic, msg); err != nil {
		metrics.TrainingWrites.WithLabelValues(string(i.Action), "dropped").Inc()
		b.logger.Warn().Err(err).Str("track_id", i.TrackID).Msg("interaction dropped")
		return
	}
	metrics.TrainingQueueDepth.Inc()
}

// Subscribe returns the interaction stream for a consumer.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, interactionsTopic)
}

// Close shuts the bus down; pending messages are discarded.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// watermillAdapter bridges watermill's logging onto zerolog.
type watermillAdapter struct {
	logger zerolog.Logger
	fields watermill.LogFields
}

func (a watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.logger.Error().Err(err), msg, fields)
}

func (a watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.event(a.logger.Info(), msg, fields)
}

func (a watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.event(a.logger.Debug(), msg, fields)
}

func (a watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.event(a.logger.Trace(), msg, fields)
}

func (a watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillAdapter{logger: a.logger, fields: a.fields.Add(fields)}
}

func (a watermillAdapter) event(ev *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range a.fields {
		ev = ev.Interface(k, v)
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}
