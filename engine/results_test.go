// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/testutil"
)

func TestComputeResults(t *testing.T) {
	eng, _, conn, cfg := newTestEngine(t)
	ctx := context.Background()

	electionID, _ := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President", "Secretary"}, 1)
	alice := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")
	bob := testutil.AddTestCandidate(t, conn, electionID, "President", "Bob")
	carol := testutil.AddTestCandidate(t, conn, electionID, "Secretary", "Carol")

	// President: Alice 3, Bob 1. Secretary: Carol 0.
	for _, name := range []string{"V1", "V2", "V3"} {
		voterID, _ := testutil.RegisterTestVoter(t, conn, name)
		testutil.CastTestVote(t, conn, electionID, alice, voterID, "President", 0)
	}
	bobVoter, _ := testutil.RegisterTestVoter(t, conn, "V4")
	testutil.CastTestVote(t, conn, electionID, bob, bobVoter, "President", 0)

	results, err := eng.ComputeResults(ctx, electionID)
	if err != nil {
		t.Fatalf("ComputeResults() error = %v", err)
	}

	if results.TotalVotes != 4 {
		t.Errorf("Expected 4 total votes, got %d", results.TotalVotes)
	}
	if results.Status != "active" {
		t.Errorf("Expected status active, got %s", results.Status)
	}

	president := results.Positions["President"]
	if len(president) != 2 {
		t.Fatalf("Expected 2 President results, got %d", len(president))
	}
	if president[0].CandidateID != alice || president[0].VoteCount != 3 || president[0].Rank != 1 {
		t.Errorf("Expected Alice first with 3 votes rank 1, got %+v", president[0])
	}
	if president[1].CandidateID != bob || president[1].VoteCount != 1 || president[1].Rank != 2 {
		t.Errorf("Expected Bob second with 1 vote rank 2, got %+v", president[1])
	}
	if president[0].Percentage != 75.0 || president[1].Percentage != 25.0 {
		t.Errorf("Expected 75/25 split, got %f/%f", president[0].Percentage, president[1].Percentage)
	}

	// A position with no votes still appears, with zeroed rows
	secretary := results.Positions["Secretary"]
	if len(secretary) != 1 {
		t.Fatalf("Expected 1 Secretary result, got %d", len(secretary))
	}
	if secretary[0].CandidateID != carol || secretary[0].VoteCount != 0 || secretary[0].Percentage != 0 {
		t.Errorf("Expected Carol with 0 votes and 0%%, got %+v", secretary[0])
	}
}

func TestComputeResultsDeterministicTieBreak(t *testing.T) {
	eng, _, conn, cfg := newTestEngine(t)
	ctx := context.Background()

	electionID, _ := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President"}, 1)
	cand1 := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")
	cand2 := testutil.AddTestCandidate(t, conn, electionID, "President", "Bob")

	v1, _ := testutil.RegisterTestVoter(t, conn, "V1")
	v2, _ := testutil.RegisterTestVoter(t, conn, "V2")
	testutil.CastTestVote(t, conn, electionID, cand1, v1, "President", 0)
	testutil.CastTestVote(t, conn, electionID, cand2, v2, "President", 0)

	// Tied candidates order by ID ascending, every time
	lower, higher := cand1, cand2
	if cand2 < cand1 {
		lower, higher = cand2, cand1
	}

	for i := 0; i < 3; i++ {
		results, err := eng.ComputeResults(ctx, electionID)
		if err != nil {
			t.Fatalf("ComputeResults() error = %v", err)
		}
		president := results.Positions["President"]
		if president[0].CandidateID != lower || president[1].CandidateID != higher {
			t.Fatalf("Tie-break not deterministic: got order %s, %s", president[0].CandidateID, president[1].CandidateID)
		}
		if president[0].Rank != 1 || president[1].Rank != 2 {
			t.Errorf("Expected ranks 1 and 2, got %d and %d", president[0].Rank, president[1].Rank)
		}
	}
}

func TestComputeResultsCountsFromVoteRecords(t *testing.T) {
	eng, _, conn, cfg := newTestEngine(t)
	ctx := context.Background()

	electionID, _ := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President"}, 1)
	alice := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")

	voterID, _ := testutil.RegisterTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, electionID, alice, voterID, "President", 0)

	// Corrupt the cached counter; the tally must follow the vote records
	if _, err := conn.Exec(`UPDATE candidate SET vote_count = 99 WHERE id = $1`, alice); err != nil {
		t.Fatalf("Failed to corrupt counter: %v", err)
	}

	results, err := eng.ComputeResults(ctx, electionID)
	if err != nil {
		t.Fatalf("ComputeResults() error = %v", err)
	}
	if got := results.Positions["President"][0].VoteCount; got != 1 {
		t.Errorf("Expected recomputed count 1, got %d", got)
	}
}

func TestComputeResultsDisqualifiedKeepsHistoricalVotes(t *testing.T) {
	eng, st, conn, cfg := newTestEngine(t)
	ctx := context.Background()

	electionID, _ := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President"}, 1)
	alice := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")

	voterID, _ := testutil.RegisterTestVoter(t, conn, "V1")
	testutil.CastTestVote(t, conn, electionID, alice, voterID, "President", 0)

	reason := "rule violation"
	if err := st.SetCandidateDisqualified(ctx, alice, true, &reason); err != nil {
		t.Fatalf("SetCandidateDisqualified() error = %v", err)
	}

	results, err := eng.ComputeResults(ctx, electionID)
	if err != nil {
		t.Fatalf("ComputeResults() error = %v", err)
	}
	if got := results.Positions["President"][0].VoteCount; got != 1 {
		t.Errorf("Expected disqualified candidate to keep 1 vote, got %d", got)
	}
}

func TestComputeResultsNotFound(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	_, err := eng.ComputeResults(context.Background(), "nonexistent")
	if !errors.Is(err, engine.ErrElectionNotFound) {
		t.Errorf("ComputeResults() error = %v, want ErrElectionNotFound", err)
	}
}

func TestComputeTurnout(t *testing.T) {
	eng, _, conn, cfg := newTestEngine(t)
	ctx := context.Background()

	electionID, _ := testutil.CreateTestElection(t, conn, cfg, "active", []string{"President", "Secretary", "Treasurer"}, 1)
	alice := testutil.AddTestCandidate(t, conn, electionID, "President", "Alice")
	carol := testutil.AddTestCandidate(t, conn, electionID, "Secretary", "Carol")

	// V1 votes in two positions, V2 in one; Treasurer gets no votes
	v1, _ := testutil.RegisterTestVoter(t, conn, "V1")
	v2, _ := testutil.RegisterTestVoter(t, conn, "V2")
	testutil.CastTestVote(t, conn, electionID, alice, v1, "President", 0)
	testutil.CastTestVote(t, conn, electionID, carol, v1, "Secretary", 0)
	testutil.CastTestVote(t, conn, electionID, alice, v2, "President", 0)

	turnout, err := eng.ComputeTurnout(ctx, electionID)
	if err != nil {
		t.Fatalf("ComputeTurnout() error = %v", err)
	}

	if turnout.TotalVotes != 3 {
		t.Errorf("Expected 3 total votes, got %d", turnout.TotalVotes)
	}
	if turnout.UniqueVoters != 2 {
		t.Errorf("Expected 2 unique voters, got %d", turnout.UniqueVoters)
	}
	if turnout.PerPositionCounts["President"] != 2 {
		t.Errorf("Expected 2 President votes, got %d", turnout.PerPositionCounts["President"])
	}
	if turnout.PerPositionCounts["Secretary"] != 1 {
		t.Errorf("Expected 1 Secretary vote, got %d", turnout.PerPositionCounts["Secretary"])
	}
	if count, ok := turnout.PerPositionCounts["Treasurer"]; !ok || count != 0 {
		t.Errorf("Expected Treasurer present with 0 votes, got %d (present=%v)", count, ok)
	}
}
