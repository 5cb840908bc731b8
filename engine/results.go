// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"
	"sort"

	"github.com/votesecure/server/models"
)

// ComputeResults tallies the election's votes into a ranked list per
// position. Counts are recomputed from the vote records; the cached
// candidate counter is a read optimization and is only cross-checked here.
//
// Ranking order: vote count descending, candidate ID ascending. The
// tie-break is total and deterministic, so repeated calls over the same
// votes always produce the same ranking.
func (e *Engine) ComputeResults(ctx context.Context, electionID string) (models.ElectionResults, error) {
	election, err := e.store.GetElection(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	candidates, err := e.store.ElectionCandidates(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	// All counts derive from this single read, so a concurrently committed
	// vote is either fully included or fully absent.
	votes, err := e.store.ElectionVotes(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	countByCandidate := make(map[string]int, len(candidates))
	for _, v := range votes {
		countByCandidate[v.CandidateID]++
	}

	results := models.ElectionResults{
		ElectionID: electionID,
		Status:     election.Status,
		Positions:  make(map[string][]models.PositionResult, len(election.Positions)),
		TotalVotes: len(votes),
		ComputedAt: e.now(),
	}

	byPosition := make(map[string][]models.Candidate)
	for _, c := range candidates {
		byPosition[c.Position] = append(byPosition[c.Position], c)

		if c.VoteCount != countByCandidate[c.ID] {
			slog.Warn("cached vote counter drift, vote records are authoritative",
				"candidate_id", c.ID,
				"cached", c.VoteCount,
				"actual", countByCandidate[c.ID],
			)
		}
	}

	for _, position := range election.Positions {
		ranked := rankPosition(byPosition[position], countByCandidate)
		results.Positions[position] = ranked
	}

	return results, nil
}

// rankPosition sorts a position's candidates and assigns 1-indexed ranks.
func rankPosition(candidates []models.Candidate, countByCandidate map[string]int) []models.PositionResult {
	ranked := make([]models.PositionResult, 0, len(candidates))

	total := 0
	for _, c := range candidates {
		total += countByCandidate[c.ID]
	}

	for _, c := range candidates {
		count := countByCandidate[c.ID]
		percentage := 0.0
		if total > 0 {
			percentage = float64(count) / float64(total) * 100
		}
		ranked = append(ranked, models.PositionResult{
			CandidateID: c.ID,
			Name:        c.Name,
			VoteCount:   count,
			Percentage:  percentage,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].VoteCount == ranked[j].VoteCount {
			return ranked[i].CandidateID < ranked[j].CandidateID
		}
		return ranked[i].VoteCount > ranked[j].VoteCount
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// ComputeTurnout aggregates participation for an election: total votes,
// distinct voters, and votes per position. Pure read, safe during voting.
func (e *Engine) ComputeTurnout(ctx context.Context, electionID string) (models.Turnout, error) {
	election, err := e.store.GetElection(ctx, electionID)
	if err != nil {
		return models.Turnout{}, err
	}

	votes, err := e.store.ElectionVotes(ctx, electionID)
	if err != nil {
		return models.Turnout{}, err
	}

	turnout := models.Turnout{
		ElectionID:        electionID,
		TotalVotes:        len(votes),
		PerPositionCounts: make(map[string]int, len(election.Positions)),
	}
	for _, position := range election.Positions {
		turnout.PerPositionCounts[position] = 0
	}

	voters := make(map[string]struct{})
	for _, v := range votes {
		voters[v.VoterID] = struct{}{}
		turnout.PerPositionCounts[v.Position]++
	}
	turnout.UniqueVoters = len(voters)

	return turnout, nil
}
