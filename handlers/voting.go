// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/votesecure/server/auth"
	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

type VotingHandler struct {
	st  *store.Store
	eng *engine.Engine
	cfg cliparse.Config
}

func NewVotingHandler(st *store.Store, eng *engine.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{st: st, eng: eng, cfg: cfg}
}

// CastVote handles POST /elections/{id}/votes
// Ballots are write-once: there is no update or retraction path, and a
// repeat attempt deterministically answers 409.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")

	voter, ok := requireVoter(w, r, h.st)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	if req.Position == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position is required")
		return
	}

	// Audit trail only; never part of the integrity rules.
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	userAgent := r.UserAgent()

	voteID, err := h.eng.CastVote(r.Context(), engine.CastVoteInput{
		VoterID:     voter.ID,
		ElectionID:  electionID,
		CandidateID: req.CandidateID,
		Position:    req.Position,
		IPHash:      &ipHash,
		UserAgent:   &userAgent,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote recorded",
	})
}

// HasVoted handles GET /elections/{id}/positions/{position}/has-voted
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	position := r.PathValue("position")

	voter, ok := requireVoter(w, r, h.st)
	if !ok {
		return
	}

	// One status read keeps has_voted and votes_remaining consistent with
	// each other.
	hasVoted, remaining, err := h.eng.VoteStatus(r.Context(), voter.ID, electionID, position)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasVotedResponse{
		HasVoted:       hasVoted,
		VotesRemaining: remaining,
	})
}

// GetMyVotes handles GET /elections/{id}/my-votes
func (h *VotingHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")

	voter, ok := requireVoter(w, r, h.st)
	if !ok {
		return
	}

	// 404 for unknown elections rather than an empty list; drafts are
	// invisible here like everywhere on the voter surface.
	election, err := h.st.GetElection(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if election.Status == models.StatusDraft {
		writeEngineError(w, engine.ErrElectionNotFound)
		return
	}

	votes, err := h.st.VoterVotes(r.Context(), electionID, voter.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"votes": votes,
	})
}
