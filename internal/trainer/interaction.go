// VOYO - Collective Vibe Recommendation Engine
// Copyright 2026 VOYO Music
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyo-music/vibeengine

package trainer

import (
	"time"

	"github.com/voyo-music/vibeengine/internal/flywheel"
	"github.com/voyo-music/vibeengine/internal/vibe"
)

// Interaction is one listener event bound for the collective store.
// Action set: a training write (bounded increment). Engagement set: an
// append-only engagement event. Both may be set; a queue action, for
// example, both trains the vibe and counts as engagement.
type Interaction struct {
	ListenerID string                    `json:"listenerId"`
	TrackID    string                    `json:"trackId"`
	Vibe       vibe.ID                   `json:"vibe"`
	Action     flywheel.TrainAction      `json:"action,omitempty"`
	Engagement flywheel.EngagementAction `json:"engagement,omitempty"`
	At         time.Time                 `json:"at"`
}

func (i Interaction) hasTraining() bool {
	return i.Action != "" && i.Action.Valid() && i.Vibe.Valid()
}

func (i Interaction) hasEngagement() bool {
	return i.Engagement != ""
}
