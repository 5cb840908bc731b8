// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"

	"github.com/votesecure/server/models"
)

// Lifecycle transitions are explicit admin actions; there is no automatic
// promotion from wall-clock time. While an election is active, CastVote
// additionally gates on the [start, end] window, so "active" does not by
// itself mean "voting open".
//
//	draft  --Activate-->  active
//	active --Deactivate-> draft
//	active --Complete-->  completed (terminal)
//
// Every other request fails with ErrInvalidTransition. The store applies the
// change as a compare-and-swap, so two racing admin actions cannot both
// succeed.

// Activate opens a draft election for voting (subject to its time window).
func (e *Engine) Activate(ctx context.Context, electionID string) error {
	return e.transition(ctx, electionID, models.StatusDraft, models.StatusActive)
}

// Deactivate reverts an active election to draft. Votes already cast remain.
func (e *Engine) Deactivate(ctx context.Context, electionID string) error {
	return e.transition(ctx, electionID, models.StatusActive, models.StatusDraft)
}

// Complete closes an active election permanently.
func (e *Engine) Complete(ctx context.Context, electionID string) error {
	return e.transition(ctx, electionID, models.StatusActive, models.StatusCompleted)
}

func (e *Engine) transition(ctx context.Context, electionID, from, to string) error {
	if err := e.store.SetElectionStatus(ctx, electionID, from, to); err != nil {
		return err
	}
	slog.Info("election transitioned", "election_id", electionID, "from", from, "to", to)
	return nil
}
