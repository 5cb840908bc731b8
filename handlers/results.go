// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/models"
	"github.com/votesecure/server/store"
)

type ResultsHandler struct {
	st  *store.Store
	eng *engine.Engine
	cfg cliparse.Config
}

func NewResultsHandler(st *store.Store, eng *engine.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{st: st, eng: eng, cfg: cfg}
}

// publicElection loads an election for voter-facing endpoints. Drafts are
// invisible outside the admin surface and answer 404.
func (h *ResultsHandler) publicElection(w http.ResponseWriter, r *http.Request) (models.Election, bool) {
	electionID := r.PathValue("id")
	election, err := h.st.GetElection(r.Context(), electionID)
	if err != nil {
		writeEngineError(w, err)
		return models.Election{}, false
	}
	if election.Status == models.StatusDraft {
		writeEngineError(w, engine.ErrElectionNotFound)
		return models.Election{}, false
	}
	return election, true
}

// ListElections handles GET /elections
// Returns non-draft elections, newest first.
func (h *ResultsHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.st.ListElections(r.Context(), false)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"elections": elections,
	})
}

// GetElection handles GET /elections/{id}
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	election, ok := h.publicElection(w, r)
	if !ok {
		return
	}

	candidates, err := h.st.ElectionCandidates(r.Context(), election.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:   election,
		Candidates: candidates,
	})
}

// GetResults handles GET /elections/{id}/results
// Tallies are live: counts reflect the votes committed at the time of the
// call, during active voting included.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.publicElection(w, r); !ok {
		return
	}

	results, err := h.eng.ComputeResults(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetTurnout handles GET /elections/{id}/turnout
func (h *ResultsHandler) GetTurnout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.publicElection(w, r); !ok {
		return
	}

	turnout, err := h.eng.ComputeTurnout(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, turnout)
}

// GetPreview handles GET /elections/{id}/preview
// Returns compact election data for list cards and link previews.
func (h *ResultsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	election, ok := h.publicElection(w, r)
	if !ok {
		return
	}

	candidateCount, err := h.st.CountCandidates(r.Context(), election.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	voteCount, err := h.st.CountElectionVotes(r.Context(), election.ID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	now := time.Now()
	votingOpen := election.Status == models.StatusActive &&
		!now.Before(election.StartDate) && !now.After(election.EndDate)

	var window string
	switch {
	case election.Status == models.StatusCompleted:
		window = "completed " + humanize.Time(election.EndDate)
	case now.Before(election.StartDate):
		window = "opens " + humanize.Time(election.StartDate)
	case now.After(election.EndDate):
		window = "closed " + humanize.Time(election.EndDate)
	default:
		window = "closes " + humanize.Time(election.EndDate)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionPreviewResponse{
		Title:          election.Title,
		Status:         election.Status,
		CandidateCount: candidateCount,
		VoteCount:      voteCount,
		VotingOpen:     votingOpen,
		Window:         window,
	})
}

// GetStats handles GET /stats
// Global dashboard counters across all elections.
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.st.GlobalStats(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
