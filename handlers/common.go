// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/votesecure/server/auth"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and hidden behind a 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrElectionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	case errors.Is(err, engine.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
	case errors.Is(err, engine.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
	case errors.Is(err, engine.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting is closed for this election")
	case errors.Is(err, engine.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Vote limit reached for this position")
	case errors.Is(err, engine.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, "Lifecycle transition not permitted")
	case errors.Is(err, engine.ErrInvalidPosition):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Position is not part of this election")
	case errors.Is(err, engine.ErrInvalidCandidate):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Candidate is not eligible for this vote")
	case errors.Is(err, engine.ErrStorageUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
	default:
		slog.Error("unexpected error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// requireAdmin validates the X-Admin-Key header against the election's
// HMAC key. Writes the error response itself when validation fails.
func requireAdmin(w http.ResponseWriter, r *http.Request, electionID, salt string) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// requireVoter resolves the X-Voter-Token header to a registered voter.
// Writes the error response itself when the token is missing or unknown.
func requireVoter(w http.ResponseWriter, r *http.Request, st *store.Store) (models.Voter, bool) {
	token := r.Header.Get("X-Voter-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return models.Voter{}, false
	}
	voter, err := st.GetVoterByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, engine.ErrVoterNotFound) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		} else {
			writeEngineError(w, err)
		}
		return models.Voter{}, false
	}
	return voter, true
}
