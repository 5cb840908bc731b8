// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/votesecure/server/auth"
	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

type VoterHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewVoterHandler(st *store.Store, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{st: st, cfg: cfg}
}

// Register handles POST /voters/register
// Issues the stable voter identity and the secret token used to cast votes.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Name) < 2 || len(req.Name) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 2-50 characters")
		return
	}

	token, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	voter := models.Voter{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Token:     token,
		CreatedAt: time.Now(),
	}

	if err := h.st.CreateVoter(r.Context(), voter); err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("voter registered", "voter_id", voter.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		VoterID:    voter.ID,
		VoterToken: token,
	})
}

// GetMe handles GET /voters/me
func (h *VoterHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	voter, ok := requireVoter(w, r, h.st)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}

// GetMyElections handles GET /voters/my-elections
// Lists elections the voter has participated in.
func (h *VoterHandler) GetMyElections(w http.ResponseWriter, r *http.Request) {
	voter, ok := requireVoter(w, r, h.st)
	if !ok {
		return
	}

	elections, err := h.st.VoterElections(r.Context(), voter.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"elections": elections,
	})
}
