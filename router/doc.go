// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the VoteSecure API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, eng, cfg)

# Endpoints

Health:

	GET /health

Election management (admin, requires X-Admin-Key):

	POST   /elections                  - Create election
	GET    /elections/{id}/admin       - Full details, drafts included
	PUT    /elections/{id}             - Edit election
	DELETE /elections/{id}             - Delete with cascade
	POST   /elections/{id}/activate    - Open voting
	POST   /elections/{id}/deactivate  - Back to draft
	POST   /elections/{id}/complete    - Seal permanently

Candidate management (admin):

	POST   /elections/{id}/candidates                           - Add candidate
	PUT    /elections/{id}/candidates/{candidateID}             - Edit profile
	DELETE /elections/{id}/candidates/{candidateID}             - Remove
	POST   /elections/{id}/candidates/{candidateID}/disqualify  - Refuse new votes
	POST   /elections/{id}/candidates/{candidateID}/reinstate   - Allow again

Voter identity:

	POST /voters/register     - Issue voter token
	GET  /voters/me           - Resolve token
	GET  /voters/my-elections - Participation history

Voting (requires X-Voter-Token):

	POST /elections/{id}/votes                          - Cast ballot
	GET  /elections/{id}/my-votes                       - Own ballots
	GET  /elections/{id}/positions/{position}/has-voted - Slot check

Results (public, drafts invisible):

	GET /elections               - List non-draft elections
	GET /elections/{id}          - Election with candidates
	GET /elections/{id}/results  - Live ranked tallies
	GET /elections/{id}/turnout  - Participation aggregates
	GET /elections/{id}/preview  - Compact card data
	GET /stats                   - Global counters
*/
package router
