// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/votesecure/server/models"
)

// CastVoteInput is the write-model input for a ballot attempt. IPHash and
// UserAgent are optional audit fields supplied by the transport layer.
type CastVoteInput struct {
	VoterID     string
	ElectionID  string
	CandidateID string
	Position    string
	IPHash      *string
	UserAgent   *string
}

// CastVote validates and records one ballot. Preconditions are checked in
// order, each with its own failure:
//
//  1. election exists and is not draft    -> ErrElectionNotFound
//  2. status active, now within window    -> ErrVotingClosed
//  3. position belongs to the election    -> ErrInvalidPosition
//  4. candidate valid and not disqualified -> ErrInvalidCandidate
//  5. voter below the per-position cap    -> ErrDuplicateVote
//
// The insert and the candidate counter increment commit as one unit; a
// repeat call with identical arguments after a success deterministically
// returns ErrDuplicateVote, never a second vote.
func (e *Engine) CastVote(ctx context.Context, in CastVoteInput) (string, error) {
	election, err := e.store.GetElection(ctx, in.ElectionID)
	if err != nil {
		return "", err
	}

	// Drafts are invisible to voters; answering anything else would
	// confirm the election exists.
	if election.Status == models.StatusDraft {
		return "", ErrElectionNotFound
	}

	now := e.now()
	if election.Status != models.StatusActive ||
		now.Before(election.StartDate) || now.After(election.EndDate) {
		return "", ErrVotingClosed
	}

	if !slices.Contains(election.Positions, in.Position) {
		return "", ErrInvalidPosition
	}

	candidate, err := e.store.GetCandidate(ctx, in.CandidateID)
	if err != nil {
		// A missing candidate is a business-rule failure of this ballot,
		// not a lookup miss.
		if errors.Is(err, ErrCandidateNotFound) {
			return "", ErrInvalidCandidate
		}
		return "", err
	}
	if candidate.ElectionID != in.ElectionID ||
		candidate.Position != in.Position ||
		candidate.IsDisqualified {
		return "", ErrInvalidCandidate
	}

	count, err := e.store.CountVotes(ctx, in.ElectionID, in.Position, in.VoterID)
	if err != nil {
		return "", err
	}
	if count >= election.MaxVotesPerPosition {
		return "", ErrDuplicateVote
	}

	vote := models.Vote{
		ID:          uuid.NewString(),
		ElectionID:  in.ElectionID,
		CandidateID: in.CandidateID,
		VoterID:     in.VoterID,
		Position:    in.Position,
		CastAt:      now,
		IPHash:      in.IPHash,
		UserAgent:   in.UserAgent,
	}

	// The store re-checks the cap transactionally; the count read above is
	// only a fast path for the common duplicate case.
	if err := e.store.RecordVote(ctx, vote, election.MaxVotesPerPosition); err != nil {
		return "", err
	}

	slog.Info("vote recorded",
		"election_id", in.ElectionID,
		"position", in.Position,
		"candidate_id", in.CandidateID,
	)

	return vote.ID, nil
}

// HasVoted reports whether the voter has cast at least one vote for the
// position in the election.
func (e *Engine) HasVoted(ctx context.Context, voterID, electionID, position string) (bool, error) {
	count, err := e.store.CountVotes(ctx, electionID, position, voterID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// VoteStatus reports whether the voter has voted for the position and how
// many more votes they may cast (never negative), from a single count read.
// Draft elections answer ErrElectionNotFound like the rest of the voter
// surface.
func (e *Engine) VoteStatus(ctx context.Context, voterID, electionID, position string) (hasVoted bool, remaining int, err error) {
	election, err := e.store.GetElection(ctx, electionID)
	if err != nil {
		return false, 0, err
	}
	if election.Status == models.StatusDraft {
		return false, 0, ErrElectionNotFound
	}
	if !slices.Contains(election.Positions, position) {
		return false, 0, ErrInvalidPosition
	}
	count, err := e.store.CountVotes(ctx, electionID, position, voterID)
	if err != nil {
		return false, 0, err
	}
	remaining = election.MaxVotesPerPosition - count
	if remaining < 0 {
		remaining = 0
	}
	return count > 0, remaining, nil
}

// VotesRemaining returns how many more votes the voter may cast for the
// position, never negative.
func (e *Engine) VotesRemaining(ctx context.Context, voterID, electionID, position string) (int, error) {
	_, remaining, err := e.VoteStatus(ctx, voterID, electionID, position)
	return remaining, err
}
