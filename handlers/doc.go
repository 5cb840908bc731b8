// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the VoteSecure API.

# Handler Types

Each handler is a struct with store, engine, and config dependencies:

  - ElectionHandler: Election CRUD and lifecycle transitions
  - CandidateHandler: Candidate roster management and disqualification
  - VotingHandler: Ballot casting and per-voter vote queries
  - VoterHandler: Voter registration and identity
  - ResultsHandler: Public election data, tallies, turnout, stats

Handlers are created via constructor functions:

	electionHandler := handlers.NewElectionHandler(st, eng, cfg)

# Election Lifecycle

Elections progress draft → active → completed:

	POST /elections                  → CreateElection (returns admin_key)
	POST /elections/{id}/candidates  → AddCandidate (not on completed)
	POST /elections/{id}/activate    → open for voting
	POST /elections/{id}/deactivate  → back to draft, votes kept
	POST /elections/{id}/complete    → seal permanently

Admin operations require the X-Admin-Key header; the key is HMAC-derived
from the election ID, so it validates without a lookup.

# Voting Flow

Voters register once and vote with their token:

	POST /voters/register       → Register (returns voter_token)
	POST /elections/{id}/votes  → CastVote

Voter operations require the X-Voter-Token header.

# Error Mapping

writeEngineError translates the engine's sentinel errors into HTTP
statuses: not-found conditions to 404, authorization misses to 401,
closed voting and duplicates and refused transitions to 409, business
rule failures to 422, storage faults to 503. Everything else is a 500
with the detail kept server-side.
*/
package handlers
