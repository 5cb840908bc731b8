// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

type CandidateHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewCandidateHandler(st *store.Store, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{st: st, cfg: cfg}
}

// electionCandidate loads the candidate and checks it belongs to the
// election named in the path.
func (h *CandidateHandler) electionCandidate(w http.ResponseWriter, r *http.Request, electionID string) (models.Candidate, bool) {
	candidateID := r.PathValue("candidateID")
	candidate, err := h.st.GetCandidate(r.Context(), candidateID)
	if err != nil {
		writeEngineError(w, err)
		return models.Candidate{}, false
	}
	if candidate.ElectionID != electionID {
		writeEngineError(w, engine.ErrCandidateNotFound)
		return models.Candidate{}, false
	}
	return candidate, true
}

// AddCandidate handles POST /elections/{id}/candidates
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Position == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position is required")
		return
	}

	election, err := h.st.GetElection(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if election.Status == models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add candidates to a completed election")
		return
	}
	if !slices.Contains(election.Positions, req.Position) {
		writeEngineError(w, engine.ErrInvalidPosition)
		return
	}

	candidate := models.Candidate{
		ID:         uuid.NewString(),
		ElectionID: electionID,
		Position:   req.Position,
		Name:       req.Name,
		Bio:        req.Bio,
		CreatedAt:  time.Now(),
	}
	if req.ImageURL != "" {
		candidate.ImageURL = &req.ImageURL
	}

	if err := h.st.CreateCandidate(r.Context(), candidate); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidate.ID, "position", req.Position)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidate.ID,
	})
}

// UpdateCandidate handles PUT /elections/{id}/candidates/{candidateID}
func (h *CandidateHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	candidate, ok := h.electionCandidate(w, r, electionID)
	if !ok {
		return
	}

	var req models.UpdateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name must not be blank")
			return
		}
		candidate.Name = *req.Name
	}
	if req.Bio != nil {
		candidate.Bio = *req.Bio
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			candidate.ImageURL = nil
		} else {
			candidate.ImageURL = req.ImageURL
		}
	}

	if err := h.st.UpdateCandidate(r.Context(), candidate); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Disqualify handles POST /elections/{id}/candidates/{candidateID}/disqualify
// Votes already cast for the candidate remain counted; only new votes are
// refused.
func (h *CandidateHandler) Disqualify(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	candidate, ok := h.electionCandidate(w, r, electionID)
	if !ok {
		return
	}

	var req models.DisqualifyCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Reason == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reason is required")
		return
	}

	if err := h.st.SetCandidateDisqualified(r.Context(), candidate.ID, true, &req.Reason); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("candidate disqualified", "election_id", electionID, "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate disqualified",
	})
}

// Reinstate handles POST /elections/{id}/candidates/{candidateID}/reinstate
func (h *CandidateHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	candidate, ok := h.electionCandidate(w, r, electionID)
	if !ok {
		return
	}

	if err := h.st.SetCandidateDisqualified(r.Context(), candidate.ID, false, nil); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("candidate reinstated", "election_id", electionID, "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate reinstated",
	})
}

// DeleteCandidate handles DELETE /elections/{id}/candidates/{candidateID}
// The candidate's votes are removed by cascade.
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	candidate, ok := h.electionCandidate(w, r, electionID)
	if !ok {
		return
	}

	if err := h.st.DeleteCandidate(r.Context(), candidate.ID); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("candidate deleted", "election_id", electionID, "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Candidate deleted",
	})
}
