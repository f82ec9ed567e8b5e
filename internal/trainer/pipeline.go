// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package trainer

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/voyo-music/vibeengine/internal/config"
	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/logging"
)

// Pipeline is the assembled fire-and-forget training path: bus,
// supervised consumer, and lifecycle.
type Pipeline struct {
	bus        *Bus
	supervisor *suture.Supervisor
	cancel     context.CancelFunc
	done       <-chan error
	logger     zerolog.Logger
}

// NewPipeline wires the bus and a supervised consumer over the given
// store. Call Start before publishing.
func NewPipeline(store flywheel.Store, cfg config.TrainerConfig, logger zerolog.Logger) *Pipeline {
	l := logger.With().Str("component", "trainer").Logger()
	bus := NewBus(cfg, logger)
	consumer := NewConsumer(bus, store, cfg, logger)

	hook := (&sutureslog.Handler{Logger: logging.Slogger()}).MustHook()
	sup := suture.New("trainer", suture.Spec{EventHook: hook})
	sup.Add(consumer)

	return &Pipeline{bus: bus, supervisor: sup, logger: l}
}

// Start launches the supervisor. Safe to call once.
func (p *Pipeline) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = p.supervisor.ServeBackground(ctx)
	p.logger.Info().Msg("training pipeline started")
}

// Publish enqueues one interaction. Never blocks; a full queue drops.
func (p *Pipeline) Publish(i Interaction) {
	p.bus.Publish(i)
}

// Close stops the consumer and releases the bus.
func (p *Pipeline) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	var err error
	if p.done != nil {
		if serveErr := <-p.done; serveErr != nil && !errors.Is(serveErr, context.Canceled) {
			err = serveErr
		}
	}
	if closeErr := p.bus.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
