// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"time"

	"github.com/votesecure/server/models"
)

// Store is the persistence collaborator the engine is written against.
// Implementations must report the package's sentinel errors for the
// conditions they can detect (ErrElectionNotFound, ErrDuplicateVote,
// ErrInvalidTransition) and ErrStorageUnavailable for backend faults.
type Store interface {
	GetElection(ctx context.Context, id string) (models.Election, error)
	GetCandidate(ctx context.Context, id string) (models.Candidate, error)
	ElectionCandidates(ctx context.Context, electionID string) ([]models.Candidate, error)
	ElectionVotes(ctx context.Context, electionID string) ([]models.Vote, error)

	// CountVotes returns the number of committed votes for the triple.
	CountVotes(ctx context.Context, electionID, position, voterID string) (int, error)

	// RecordVote atomically inserts the vote and increments the candidate's
	// cached counter, re-checking the per-position cap inside the same
	// transaction. A concurrent writer that loses the race observes
	// ErrDuplicateVote; partial application never survives.
	RecordVote(ctx context.Context, vote models.Vote, maxVotesPerPosition int) error

	// SetElectionStatus transitions status from -> to as a compare-and-swap.
	// Returns ErrInvalidTransition when the election is not in `from`.
	SetElectionStatus(ctx context.Context, electionID, from, to string) error
}

// Engine enforces the ballot integrity rules: exactly-once (up to the
// configured cap) voting per (voter, election, position), lifecycle and
// time-window gating, and deterministic result ranking.
type Engine struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// NewWithClock injects a clock for tests.
func NewWithClock(store Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}
