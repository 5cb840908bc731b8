// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the ballot integrity rules, election lifecycle,
and result tabulation, independent of HTTP and SQL.

# Casting Votes

CastVote validates a ballot attempt in a fixed order and records it:

	voteID, err := eng.CastVote(ctx, engine.CastVoteInput{
		VoterID:     voter.ID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		Position:    "President",
	})

Each failure mode has a sentinel error (ErrVotingClosed, ErrInvalidPosition,
ErrInvalidCandidate, ErrDuplicateVote) that callers map with errors.Is. A
voter may cast up to the election's configured votes per position, each for
a distinct candidate; repeat attempts after the cap return ErrDuplicateVote
deterministically, under concurrency included.

# Lifecycle

Elections move between states only through explicit admin actions:

	draft  --Activate-->  active
	active --Deactivate-> draft
	active --Complete-->  completed (terminal)

The wall clock never changes status by itself; during active status, votes
are additionally gated on the election's [start, end] window.

# Results

ComputeResults recomputes every count from the vote records and ranks each
position by vote count descending with candidate ID as the tie-break, so
the ranking is total and reproducible. ComputeTurnout aggregates totals,
distinct voters, and per-position participation.

# Storage Contract

The engine talks to persistence through the Store interface. Implementations
must report the package's sentinel errors for the conditions they detect and
apply RecordVote atomically: the vote insert and the candidate counter
increment either both commit or neither does.
*/
package engine
