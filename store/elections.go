// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/models"
)

const electionColumns = `id, title, description, start_date, end_date, status,
       max_votes_per_position, is_highlighted, created_by, created_at`

func scanElection(row interface{ Scan(...any) error }) (models.Election, error) {
	var e models.Election
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Status,
		&e.MaxVotesPerPosition, &e.IsHighlighted, &e.CreatedBy, &e.CreatedAt,
	)
	return e, err
}

// GetElection returns the election with its ordered position list.
func (s *Store) GetElection(ctx context.Context, id string) (models.Election, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+electionColumns+`
		FROM election
		WHERE id = $1
	`, id)

	election, err := scanElection(row)
	if err == sql.ErrNoRows {
		return models.Election{}, engine.ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fail("get election", err)
	}

	election.Positions, err = s.electionPositions(ctx, id)
	if err != nil {
		return models.Election{}, err
	}

	return election, nil
}

func (s *Store) electionPositions(ctx context.Context, electionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM election_position
		WHERE election_id = $1
		ORDER BY ordinal
	`, electionID)
	if err != nil {
		return nil, fail("query positions", err)
	}
	defer rows.Close()

	positions := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fail("scan position", err)
		}
		positions = append(positions, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate positions", err)
	}
	return positions, nil
}

// CreateElection inserts the election and its positions as one unit.
func (s *Store) CreateElection(ctx context.Context, e models.Election) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("begin create election", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, title, description, start_date, end_date, status,
		                      max_votes_per_position, is_highlighted, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.Title, e.Description, e.StartDate, e.EndDate, e.Status,
		e.MaxVotesPerPosition, e.IsHighlighted, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return fail("insert election", err)
	}

	for i, position := range e.Positions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO election_position (election_id, name, ordinal)
			VALUES ($1, $2, $3)
		`, e.ID, position, i)
		if err != nil {
			return fail("insert position", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fail("commit create election", err)
	}
	return nil
}

// UpdateElection rewrites the election row and replaces its position list.
// The handler is responsible for which fields may change in which status.
func (s *Store) UpdateElection(ctx context.Context, e models.Election) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail("begin update election", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE election
		SET title = $1, description = $2, start_date = $3, end_date = $4,
		    max_votes_per_position = $5, is_highlighted = $6
		WHERE id = $7
	`, e.Title, e.Description, e.StartDate, e.EndDate,
		e.MaxVotesPerPosition, e.IsHighlighted, e.ID)
	if err != nil {
		return fail("update election", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fail("update election rows", err)
	} else if n == 0 {
		return engine.ErrElectionNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM election_position WHERE election_id = $1
	`, e.ID); err != nil {
		return fail("clear positions", err)
	}
	for i, position := range e.Positions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO election_position (election_id, name, ordinal)
			VALUES ($1, $2, $3)
		`, e.ID, position, i); err != nil {
			return fail("insert position", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fail("commit update election", err)
	}
	return nil
}

// DeleteElection removes the election; positions, candidates, and votes go
// with it via ON DELETE CASCADE, so no orphan records can remain.
func (s *Store) DeleteElection(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM election WHERE id = $1`, id)
	if err != nil {
		return fail("delete election", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fail("delete election rows", err)
	}
	if n == 0 {
		return engine.ErrElectionNotFound
	}
	return nil
}

// ListElections returns elections newest-first. Draft elections are only
// included when includeDraft is set (they are invisible to voters).
func (s *Store) ListElections(ctx context.Context, includeDraft bool) ([]models.Election, error) {
	query := `
		SELECT ` + electionColumns + `
		FROM election
	`
	if !includeDraft {
		query += ` WHERE status != '` + models.StatusDraft + `'`
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fail("list elections", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fail("scan election", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate elections", err)
	}

	for i := range elections {
		elections[i].Positions, err = s.electionPositions(ctx, elections[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return elections, nil
}

// SetElectionStatus applies a lifecycle transition as a compare-and-swap:
// the UPDATE only matches when the election still holds the expected status,
// so concurrent admin actions cannot both apply.
func (s *Store) SetElectionStatus(ctx context.Context, electionID, from, to string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE election SET status = $1 WHERE id = $2 AND status = $3
	`, to, electionID, from)
	if err != nil {
		return fail("set election status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fail("set election status rows", err)
	}
	if n == 1 {
		return nil
	}

	// Nothing matched: distinguish a missing election from a wrong state.
	var current string
	err = s.db.QueryRowContext(ctx, `SELECT status FROM election WHERE id = $1`, electionID).Scan(&current)
	if err == sql.ErrNoRows {
		return engine.ErrElectionNotFound
	}
	if err != nil {
		return fail("query election status", err)
	}
	return engine.ErrInvalidTransition
}

// GlobalStats aggregates the dashboard counters across all elections.
func (s *Store) GlobalStats(ctx context.Context) (models.GlobalStatsResponse, error) {
	var stats models.GlobalStatsResponse

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM election),
			(SELECT COUNT(*) FROM election WHERE status = $1),
			(SELECT COUNT(*) FROM vote),
			(SELECT COUNT(*) FROM candidate)
	`, models.StatusActive).Scan(
		&stats.TotalElections, &stats.ActiveElections,
		&stats.TotalVotes, &stats.TotalCandidates,
	)
	if err != nil {
		return models.GlobalStatsResponse{}, fail("global stats", err)
	}

	return stats, nil
}
