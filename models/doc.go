// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, window, positions, vote cap
  - UpdateElectionRequest: partial edits via pointer fields
  - AddCandidateRequest / UpdateCandidateRequest: candidate profiles
  - DisqualifyCandidateRequest: reason
  - RegisterVoterRequest: name
  - CastVoteRequest: candidate_id, position

# Response Types

  - CreateElectionResponse: election_id, admin_key
  - AddCandidateResponse: candidate_id
  - RegisterVoterResponse: voter_id, voter_token
  - CastVoteResponse: vote_id, message
  - HasVotedResponse: has_voted, votes_remaining
  - StatusResponse: election_id, status
  - ElectionPreviewResponse: compact card data
  - GlobalStatsResponse: dashboard counters
  - ErrorResponse: error, message

# Domain Types

  - Election: metadata, window, positions, lifecycle state
  - Candidate: profile, cached vote counter, disqualification state
  - Vote: one ballot; audit fields are excluded from JSON
  - Voter: identity; the token is excluded from JSON
  - ElectionResults / PositionResult / Turnout: tally output

# Constants

Status values:

	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
*/
package models
