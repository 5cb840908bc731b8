// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/models"
)

const voteColumns = `id, election_id, candidate_id, voter_id, position,
       ordinal, cast_at, ip_hash, user_agent`

func scanVote(row interface{ Scan(...any) error }) (models.Vote, error) {
	var v models.Vote
	err := row.Scan(
		&v.ID, &v.ElectionID, &v.CandidateID, &v.VoterID, &v.Position,
		&v.Ordinal, &v.CastAt, &v.IPHash, &v.UserAgent,
	)
	return v, err
}

// CountVotes returns the committed votes for a (voter, election, position)
// triple.
func (s *Store) CountVotes(ctx context.Context, electionID, position, voterID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote
		WHERE election_id = $1 AND position = $2 AND voter_id = $3
	`, electionID, position, voterID).Scan(&count)
	if err != nil {
		return 0, fail("count votes", err)
	}
	return count, nil
}

// RecordVote commits the ballot and the candidate counter increment as one
// transaction. The per-position cap is re-checked inside the transaction and
// backed by the (election, position, voter, ordinal) unique index: two
// writers racing for the last slot compute the same ordinal and the loser's
// insert fails, surfacing as ErrDuplicateVote rather than a second vote.
//
// The slot comes from the highest surviving ordinal, not the row count, so
// capacity freed by a cascade delete (a removed candidate taking a voter's
// earlier vote with it) is usable again.
func (s *Store) RecordVote(ctx context.Context, vote models.Vote, maxVotesPerPosition int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("begin record vote", err)
	}
	defer tx.Rollback()

	var count, next int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(ordinal), -1) + 1 FROM vote
		WHERE election_id = $1 AND position = $2 AND voter_id = $3
	`, vote.ElectionID, vote.Position, vote.VoterID).Scan(&count, &next)
	if err != nil {
		return fail("count votes in tx", err)
	}
	if count >= maxVotesPerPosition {
		return engine.ErrDuplicateVote
	}
	vote.Ordinal = next

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, election_id, candidate_id, voter_id, position,
		                  ordinal, cast_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, vote.ID, vote.ElectionID, vote.CandidateID, vote.VoterID, vote.Position,
		vote.Ordinal, vote.CastAt, vote.IPHash, vote.UserAgent)
	if err != nil {
		if isUniqueViolation(err) {
			return engine.ErrDuplicateVote
		}
		return fail("insert vote", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1
	`, vote.CandidateID)
	if err != nil {
		return fail("increment vote count", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("increment vote count rows", err)
	} else if n == 0 {
		// Candidate deleted between validation and write; roll everything back.
		return engine.ErrInvalidCandidate
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return engine.ErrDuplicateVote
		}
		return fail("commit record vote", err)
	}
	return nil
}

// ElectionVotes returns every vote of an election in cast order. Tallies
// derive from this single read so they see a consistent snapshot.
func (s *Store) ElectionVotes(ctx context.Context, electionID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+voteColumns+`
		FROM vote
		WHERE election_id = $1
		ORDER BY cast_at, id
	`, electionID)
	if err != nil {
		return nil, fail("query election votes", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fail("scan vote", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate votes", err)
	}
	return votes, nil
}

// VoterVotes lists one voter's votes within an election.
func (s *Store) VoterVotes(ctx context.Context, electionID, voterID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+voteColumns+`
		FROM vote
		WHERE election_id = $1 AND voter_id = $2
		ORDER BY cast_at, id
	`, electionID, voterID)
	if err != nil {
		return nil, fail("query voter votes", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fail("scan vote", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate voter votes", err)
	}
	return votes, nil
}

func (s *Store) CountElectionVotes(ctx context.Context, electionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fail("count election votes", err)
	}
	return count, nil
}
