// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"

	"github.com/votesecure/server/engine"
	"github.com/votesecure/server/models"
)

func (s *Store) CreateVoter(ctx context.Context, v models.Voter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voter (id, name, token, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.Name, v.Token, v.CreatedAt)
	if err != nil {
		return fail("insert voter", err)
	}
	return nil
}

// GetVoterByToken resolves the identity behind an X-Voter-Token header.
func (s *Store) GetVoterByToken(ctx context.Context, token string) (models.Voter, error) {
	var v models.Voter
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, token, created_at FROM voter WHERE token = $1
	`, token).Scan(&v.ID, &v.Name, &v.Token, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Voter{}, engine.ErrVoterNotFound
	}
	if err != nil {
		return models.Voter{}, fail("get voter by token", err)
	}
	return v, nil
}

// VoterElections lists the elections the voter has cast at least one vote
// in, newest first.
func (s *Store) VoterElections(ctx context.Context, voterID string) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+electionColumns+`
		FROM election
		WHERE id IN (SELECT DISTINCT election_id FROM vote WHERE voter_id = $1)
		ORDER BY created_at DESC, id
	`, voterID)
	if err != nil {
		return nil, fail("query voter elections", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fail("scan voter election", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate voter elections", err)
	}

	for i := range elections {
		elections[i].Positions, err = s.electionPositions(ctx, elections[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return elections, nil
}
