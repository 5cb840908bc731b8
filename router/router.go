// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/handlers"
	"github.com/votesecure/server/middleware"
	"github.com/votesecure/server/store"
)

func NewRouter(st *store.Store, eng *engine.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(st, eng, cfg)
	candidateHandler := handlers.NewCandidateHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, eng, cfg)
	voterHandler := handlers.NewVoterHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st, eng, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (admin operations)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}/admin", middleware.WithLogging(electionHandler.GetElectionAdmin))
	mux.HandleFunc("PUT /elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(electionHandler.DeleteElection))
	mux.HandleFunc("POST /elections/{id}/activate", middleware.WithLogging(electionHandler.Activate))
	mux.HandleFunc("POST /elections/{id}/deactivate", middleware.WithLogging(electionHandler.Deactivate))
	mux.HandleFunc("POST /elections/{id}/complete", middleware.WithLogging(electionHandler.Complete))

	// Candidate management (admin operations)
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(candidateHandler.AddCandidate))
	mux.HandleFunc("PUT /elections/{id}/candidates/{candidateID}", middleware.WithLogging(candidateHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /elections/{id}/candidates/{candidateID}", middleware.WithLogging(candidateHandler.DeleteCandidate))
	mux.HandleFunc("POST /elections/{id}/candidates/{candidateID}/disqualify", middleware.WithLogging(candidateHandler.Disqualify))
	mux.HandleFunc("POST /elections/{id}/candidates/{candidateID}/reinstate", middleware.WithLogging(candidateHandler.Reinstate))

	// Voter identity
	mux.HandleFunc("POST /voters/register", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("GET /voters/me", middleware.WithLogging(voterHandler.GetMe))
	mux.HandleFunc("GET /voters/my-elections", middleware.WithLogging(voterHandler.GetMyElections))

	// Voting operations
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/my-votes", middleware.WithLogging(votingHandler.GetMyVotes))
	mux.HandleFunc("GET /elections/{id}/positions/{position}/has-voted", middleware.WithLogging(votingHandler.HasVoted))

	// Results retrieval (public, live tallies)
	mux.HandleFunc("GET /elections", middleware.WithLogging(resultsHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(resultsHandler.GetElection))
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{id}/turnout", middleware.WithLogging(resultsHandler.GetTurnout))
	mux.HandleFunc("GET /elections/{id}/preview", middleware.WithLogging(resultsHandler.GetPreview))
	mux.HandleFunc("GET /stats", middleware.WithLogging(resultsHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("votesecure API v1"))
	})

	return mux
}
