// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/votesecure/server/auth"
	"github.com/votesecure/server/cliparse"
	"github.com/votesecure/server/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database, so tests stay independent.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// cache=shared keeps the database alive across pooled connections;
	// the random name isolates parallel tests from each other.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxIdleConns(1)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4416,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestElection creates an election whose voting window covers now
// (one hour either side) and returns its ID and admin key.
// status should be "draft", "active", or "completed".
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, positions []string, maxVotesPerPosition int) (electionID, adminKey string) {
	t.Helper()

	electionID = uuid.NewString()
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO election (id, title, description, start_date, end_date, status,
		                      max_votes_per_position, is_highlighted, created_by, created_at)
		VALUES ($1, 'Test Election', 'A test election', $2, $3, $4, $5, FALSE, 'TestAdmin', $6)
	`, electionID, now.Add(-time.Hour), now.Add(time.Hour), status, maxVotesPerPosition, now)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	for i, position := range positions {
		_, err := conn.Exec(`
			INSERT INTO election_position (election_id, name, ordinal)
			VALUES ($1, $2, $3)
		`, electionID, position, i)
		if err != nil {
			t.Fatalf("Failed to create test position: %v", err)
		}
	}

	return electionID, adminKey
}

// SetElectionWindow overrides the voting window of a test election.
func SetElectionWindow(t *testing.T, conn *sql.DB, electionID string, start, end time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE election SET start_date = $1, end_date = $2 WHERE id = $3
	`, start, end, electionID)
	if err != nil {
		t.Fatalf("Failed to set election window: %v", err)
	}
}

// AddTestCandidate adds a candidate and returns the candidate ID
func AddTestCandidate(t *testing.T, conn *sql.DB, electionID, position, name string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, election_id, position, name, bio, vote_count, is_disqualified, created_at)
		VALUES ($1, $2, $3, $4, '', 0, FALSE, $5)
	`, candidateID, electionID, position, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// RegisterTestVoter creates a voter and returns its ID and token
func RegisterTestVoter(t *testing.T, conn *sql.DB, name string) (voterID, token string) {
	t.Helper()

	voterID = uuid.NewString()
	token, err := auth.GenerateVoterToken()
	if err != nil {
		t.Fatalf("Failed to generate voter token: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO voter (id, name, token, created_at)
		VALUES ($1, $2, $3, $4)
	`, voterID, name, token, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID, token
}

// CastTestVote inserts a committed vote and bumps the candidate counter,
// mirroring what the store's transactional write produces.
func CastTestVote(t *testing.T, conn *sql.DB, electionID, candidateID, voterID, position string, ordinal int) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, election_id, candidate_id, voter_id, position, ordinal, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, voteID, electionID, candidateID, voterID, position, ordinal, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	_, err = conn.Exec(`UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1`, candidateID)
	if err != nil {
		t.Fatalf("Failed to bump vote count: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
