// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "errors"

// Expected, recoverable outcomes of normal use. Handlers translate these to
// HTTP statuses with errors.Is; they are never swallowed.
var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrVoterNotFound     = errors.New("voter not found")
	ErrVotingClosed      = errors.New("voting is closed for this election")
	ErrInvalidPosition   = errors.New("position is not part of this election")
	ErrInvalidCandidate  = errors.New("candidate is not eligible for this vote")
	ErrDuplicateVote     = errors.New("vote limit reached for this position")
	ErrInvalidTransition = errors.New("lifecycle transition not permitted")

	// ErrStorageUnavailable marks backend faults. The underlying driver
	// error is logged at the store, not returned to callers.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
