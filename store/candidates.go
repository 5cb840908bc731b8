// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/models"
)

const candidateColumns = `id, election_id, position, name, bio, image_url,
       vote_count, is_disqualified, disqualification_reason, created_at`

func scanCandidate(row interface{ Scan(...any) error }) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID, &c.ElectionID, &c.Position, &c.Name, &c.Bio, &c.ImageURL,
		&c.VoteCount, &c.IsDisqualified, &c.DisqualificationReason, &c.CreatedAt,
	)
	return c, err
}

func (s *Store) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidate
		WHERE id = $1
	`, id)

	candidate, err := scanCandidate(row)
	if err == sql.ErrNoRows {
		return models.Candidate{}, engine.ErrCandidateNotFound
	}
	if err != nil {
		return models.Candidate{}, fail("get candidate", err)
	}
	return candidate, nil
}

// ElectionCandidates lists a candidate slate ordered by position then ID.
func (s *Store) ElectionCandidates(ctx context.Context, electionID string) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+candidateColumns+`
		FROM candidate
		WHERE election_id = $1
		ORDER BY position, id
	`, electionID)
	if err != nil {
		return nil, fail("query candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fail("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate candidates", err)
	}
	return candidates, nil
}

func (s *Store) CreateCandidate(ctx context.Context, c models.Candidate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidate (id, election_id, position, name, bio, image_url,
		                       vote_count, is_disqualified, disqualification_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)
	`, c.ID, c.ElectionID, c.Position, c.Name, c.Bio, c.ImageURL,
		c.IsDisqualified, c.DisqualificationReason, c.CreatedAt)
	if err != nil {
		return fail("insert candidate", err)
	}
	return nil
}

// UpdateCandidate rewrites the profile fields only; tally and
// disqualification state have their own paths.
func (s *Store) UpdateCandidate(ctx context.Context, c models.Candidate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate
		SET name = $1, bio = $2, image_url = $3
		WHERE id = $4
	`, c.Name, c.Bio, c.ImageURL, c.ID)
	if err != nil {
		return fail("update candidate", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("update candidate rows", err)
	} else if n == 0 {
		return engine.ErrCandidateNotFound
	}
	return nil
}

// SetCandidateDisqualified flips disqualification without touching vote
// records: historical tallies survive, only new votes are refused.
func (s *Store) SetCandidateDisqualified(ctx context.Context, id string, disqualified bool, reason *string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE candidate
		SET is_disqualified = $1, disqualification_reason = $2
		WHERE id = $3
	`, disqualified, reason, id)
	if err != nil {
		return fail("set candidate disqualified", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("set candidate disqualified rows", err)
	} else if n == 0 {
		return engine.ErrCandidateNotFound
	}
	return nil
}

// DeleteCandidate removes the candidate and, via cascade, its votes.
func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, id)
	if err != nil {
		return fail("delete candidate", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fail("delete candidate rows", err)
	}
	if n == 0 {
		return engine.ErrCandidateNotFound
	}
	return nil
}

func (s *Store) CountCandidates(ctx context.Context, electionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM candidate WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fail("count candidates", err)
	}
	return count, nil
}
