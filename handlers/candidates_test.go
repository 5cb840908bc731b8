// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/votesecure/server/models"
	"github.com/votesecure/server/testutil"
)

func TestAddCandidate(t *testing.T) {
	conn, cfg, st, _ := setupHandlers(t)
	handler := NewCandidateHandler(st, cfg)

	electionID, adminKey := testutil.CreateTestElection(t, conn, cfg, "draft", []string{"President"}, 1)
	completedID, completedKey := testutil.CreateTestElection(t, conn, cfg, "completed", []string{"President"}, 1)

	tests := []struct {
		name           string
		electionID     string
		adminKey       string
		requestBody    models.AddCandidateRequest
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.AddCandidateResponse)
	}{
		{
			name:       "valid candidate",
			electionID: electionID,
			adminKey:   adminKey,
			requestBody: models.AddCandidateRequest{
				Name:     "Alice",
				Bio:      "Incumbent",
				Position: "President",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.AddCandidateResponse) {
				if resp.CandidateID == "" {
					t.Error("Expected non-empty candidate_id")
				}
				var voteCount int
				var disqualified bool
				err := conn.QueryRow(`
					SELECT vote_count, is_disqualified FROM candidate WHERE id = $1
				`, resp.CandidateID).Scan(&voteCount, &disqualified)
				if err != nil {
					t.Fatalf("Failed to query candidate: %v", err)
				}
				if voteCount != 0 || disqualified {
					t.Errorf("Expected fresh candidate with 0 votes, got count=%d disqualified=%v", voteCount, disqualified)
				}
			},
		},
		{
			name:           "missing name",
			electionID:     electionID,
			adminKey:       adminKey,
			requestBody:    models.AddCandidateRequest{Position: "President"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing position",
			electionID:     electionID,
			adminKey:       adminKey,
			requestBody:    models.AddCandidateRequest{Name: "Bob"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "position not in election",
			electionID:     electionID,
			adminKey:       adminKey,
			requestBody:    models.AddCandidateRequest{Name: "Bob", Position: "Treasurer"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "completed election",
			electionID:     completedID,
			adminKey:       completedKey,
			requestBody:    models.AddCandidateRequest{Name: "Bob", Position: "President"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "wrong admin key",
			electionID:     electionID,
			adminKey:       "wrong-key",
			requestBody:    models.AddCandidateRequest{Name: "Bob", Position: "President"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/elections/"+tt.electionID+"/candidates", tt.requestBody, map[string]string{
				"X-Admin-Key": tt.adminKey,
			})
			req.SetPathValue("id", tt.electionID)
			w := httptest.NewRecorder()
			handler.AddCandidate(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp models.AddCandidateResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestUpdateCandidate(t *testing.T) {
	conn, cfg, st, _ := setupHandlers(t)
	handler := NewCandidateHandler(st, cfg)

	electionID, adminKey := testutil.CreateTestElection(t, conn, cfg, "draft", []string{"President"}, 1)
	candidateID := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")

	otherID, _ := testutil.CreateTestElection(t, conn, cfg, "draft", []string{"President"}, 1)
	otherCandidate := testutil.AddTestCandidate(t, conn, otherID, "President", "Mallory")

	newName := "Alice Cooper"
	blank := ""

	tests := []struct {
		name           string
		candidateID    string
		requestBody    models.UpdateCandidateRequest
		expectedStatus int
	}{
		{
			name:           "rename candidate",
			candidateID:    candidateID,
			requestBody:    models.UpdateCandidateRequest{Name: &newName},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "blank name",
			candidateID:    candidateID,
			requestBody:    models.UpdateCandidateRequest{Name: &blank},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "candidate from another election",
			candidateID:    otherCandidate,
			requestBody:    models.UpdateCandidateRequest{Name: &newName},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown candidate",
			candidateID:    "nonexistent",
			requestBody:    models.UpdateCandidateRequest{Name: &newName},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/elections/"+electionID+"/candidates/"+tt.candidateID, tt.requestBody, map[string]string{
				"X-Admin-Key": adminKey,
			})
			req.SetPathValue("id", electionID)
			req.SetPathValue("candidateID", tt.candidateID)
			w := httptest.NewRecorder()
			handler.UpdateCandidate(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	var name string
	if err := conn.QueryRow(`SELECT name FROM candidate WHERE id = $1`, candidateID).Scan(&name); err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if name != newName {
		t.Errorf("Expected name %q, got %q", newName, name)
	}
}

func TestDisqualifyAndReinstate(t *testing.T) {
	conn, cfg, st, _ := setupHandlers(t)
	handler := NewCandidateHandler(st, cfg)

	electionID, adminKey := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President"}, 1)
	candidateID := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")

	// A vote cast before disqualification must survive it
	voterID, _ := testutil.RegisterTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, electionID, candidateID, voterID, "President", 0)

	// Reason is mandatory
	req := testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates/"+candidateID+"/disqualify",
		models.DisqualifyCandidateRequest{}, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	req.SetPathValue("candidateID", candidateID)
	w := httptest.NewRecorder()
	handler.Disqualify(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	req = testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates/"+candidateID+"/disqualify",
		models.DisqualifyCandidateRequest{Reason: "rule violation"}, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	req.SetPathValue("candidateID", candidateID)
	w = httptest.NewRecorder()
	handler.Disqualify(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var disqualified bool
	var reason *string
	if err := conn.QueryRow(`
		SELECT is_disqualified, disqualification_reason FROM candidate WHERE id = $1
	`, candidateID).Scan(&disqualified, &reason); err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if !disqualified || reason == nil || *reason != "rule violation" {
		t.Errorf("Expected disqualified with reason, got disqualified=%v reason=%v", disqualified, reason)
	}

	var votes int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE candidate_id = $1`, candidateID).Scan(&votes); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if votes != 1 {
		t.Errorf("Expected historical vote to survive disqualification, got %d", votes)
	}

	req = testutil.MakeRequest("POST", "/elections/"+electionID+"/candidates/"+candidateID+"/reinstate",
		nil, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	req.SetPathValue("candidateID", candidateID)
	w = httptest.NewRecorder()
	handler.Reinstate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if err := conn.QueryRow(`
		SELECT is_disqualified, disqualification_reason FROM candidate WHERE id = $1
	`, candidateID).Scan(&disqualified, &reason); err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if disqualified || reason != nil {
		t.Errorf("Expected reinstated candidate with cleared reason, got disqualified=%v reason=%v", disqualified, reason)
	}
}

func TestDeleteCandidate(t *testing.T) {
	conn, cfg, st, _ := setupHandlers(t)
	handler := NewCandidateHandler(st, cfg)

	electionID, adminKey := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President"}, 1)
	candidateID := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")
	voterID, _ := testutil.RegisterTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, electionID, candidateID, voterID, "President", 0)

	req := testutil.MakeRequest("DELETE", "/elections/"+electionID+"/candidates/"+candidateID,
		nil, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", electionID)
	req.SetPathValue("candidateID", candidateID)
	w := httptest.NewRecorder()
	handler.DeleteCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var votes int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE candidate_id = $1`, candidateID).Scan(&votes); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if votes != 0 {
		t.Errorf("Expected candidate votes removed by cascade, got %d", votes)
	}
}
