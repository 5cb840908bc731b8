// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/votesecure/server/auth"
	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

type ElectionHandler struct {
	st  *store.Store
	eng *engine.Engine
	cfg cliparse.Config
}

func NewElectionHandler(st *store.Store, eng *engine.Engine, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{st: st, eng: eng, cfg: cfg}
}

// validatePositions checks the position list is non-empty, blank-free, and
// duplicate-free.
func validatePositions(positions []string) string {
	if len(positions) == 0 {
		return "at least one position is required"
	}
	seen := make(map[string]bool, len(positions))
	for _, p := range positions {
		if p == "" {
			return "positions must not be blank"
		}
		if seen[p] {
			return "duplicate position: " + p
		}
		seen[p] = true
	}
	return ""
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatedBy == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "created_by is required")
		return
	}
	if msg := validatePositions(req.Positions); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || !req.StartDate.Before(req.EndDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date must be before end_date")
		return
	}
	if req.MaxVotesPerPosition == 0 {
		req.MaxVotesPerPosition = 1
	}
	if req.MaxVotesPerPosition < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_votes_per_position must be at least 1")
		return
	}

	election := models.Election{
		ID:                  uuid.NewString(),
		Title:               req.Title,
		Description:         req.Description,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Positions:           req.Positions,
		Status:              models.StatusDraft,
		MaxVotesPerPosition: req.MaxVotesPerPosition,
		IsHighlighted:       req.IsHighlighted,
		CreatedBy:           req.CreatedBy,
		CreatedAt:           time.Now(),
	}

	if err := h.st.CreateElection(r.Context(), election); err != nil {
		writeEngineError(w, err)
		return
	}

	adminKey := auth.GenerateAdminKey(election.ID, h.cfg.AdminKeySalt)

	slog.Info("election created", "election_id", election.ID, "created_by", req.CreatedBy)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: election.ID,
		AdminKey:   adminKey,
	})
}

// GetElectionAdmin handles GET /elections/{id}/admin
// Returns full election details regardless of status, including drafts.
func (h *ElectionHandler) GetElectionAdmin(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	election, err := h.st.GetElection(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	candidates, err := h.st.ElectionCandidates(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:   election,
		Candidates: candidates,
	})
}

// UpdateElection handles PUT /elections/{id}
// Title, description, and highlighting may change until the election is
// completed; the voting window, positions, and vote cap only while draft.
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	election, err := h.st.GetElection(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if election.Status == models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot edit a completed election")
		return
	}

	structural := req.StartDate != nil || req.EndDate != nil ||
		req.Positions != nil || req.MaxVotesPerPosition != nil
	if structural && election.Status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting window, positions, and vote cap can only change while draft")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "title must not be blank")
			return
		}
		election.Title = *req.Title
	}
	if req.Description != nil {
		election.Description = *req.Description
	}
	if req.IsHighlighted != nil {
		election.IsHighlighted = *req.IsHighlighted
	}
	if req.StartDate != nil {
		election.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		election.EndDate = *req.EndDate
	}
	if !election.StartDate.Before(election.EndDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date must be before end_date")
		return
	}
	if req.Positions != nil {
		if msg := validatePositions(*req.Positions); msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
		election.Positions = *req.Positions
	}
	if req.MaxVotesPerPosition != nil {
		if *req.MaxVotesPerPosition < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "max_votes_per_position must be at least 1")
			return
		}
		election.MaxVotesPerPosition = *req.MaxVotesPerPosition
	}

	if err := h.st.UpdateElection(r.Context(), election); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("election updated", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, election)
}

// DeleteElection handles DELETE /elections/{id}
// Cascades to candidates and votes.
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	if err := h.st.DeleteElection(r.Context(), electionID); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Election deleted",
	})
}

// Activate handles POST /elections/{id}/activate
func (h *ElectionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.eng.Activate, models.StatusActive)
}

// Deactivate handles POST /elections/{id}/deactivate
func (h *ElectionHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.eng.Deactivate, models.StatusDraft)
}

// Complete handles POST /elections/{id}/complete
func (h *ElectionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.eng.Complete, models.StatusCompleted)
}

func (h *ElectionHandler) lifecycle(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) error, target string) {
	electionID := r.PathValue("id")
	if !requireAdmin(w, r, electionID, h.cfg.AdminKeySalt) {
		return
	}

	if err := action(r.Context(), electionID); err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		ElectionID: electionID,
		Status:     target,
	})
}
