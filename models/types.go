// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Request types

type CreateElectionRequest struct {
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Positions           []string  `json:"positions"`
	MaxVotesPerPosition int       `json:"max_votes_per_position"`
	IsHighlighted       bool      `json:"is_highlighted"`
	CreatedBy           string    `json:"created_by"`
}

// UpdateElectionRequest carries partial edits; nil fields are left unchanged.
type UpdateElectionRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	Positions           *[]string  `json:"positions"`
	MaxVotesPerPosition *int       `json:"max_votes_per_position"`
	IsHighlighted       *bool      `json:"is_highlighted"`
}

type AddCandidateRequest struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
	Position string `json:"position"`
}

type UpdateCandidateRequest struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
}

type DisqualifyCandidateRequest struct {
	Reason string `json:"reason"`
}

type RegisterVoterRequest struct {
	Name string `json:"name"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
	Position    string `json:"position"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	AdminKey   string `json:"admin_key"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type RegisterVoterResponse struct {
	VoterID    string `json:"voter_id"`
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type HasVotedResponse struct {
	HasVoted       bool `json:"has_voted"`
	VotesRemaining int  `json:"votes_remaining"`
}

type StatusResponse struct {
	ElectionID string `json:"election_id"`
	Status     string `json:"status"`
}

type ElectionPreviewResponse struct {
	Title          string `json:"title"`
	Status         string `json:"status"`
	CandidateCount int    `json:"candidate_count"`
	VoteCount      int    `json:"vote_count"`
	VotingOpen     bool   `json:"voting_open"`
	Window         string `json:"window"` // e.g. "closes in 2 days"
}

type GlobalStatsResponse struct {
	TotalElections  int `json:"total_elections"`
	ActiveElections int `json:"active_elections"`
	TotalVotes      int `json:"total_votes"`
	TotalCandidates int `json:"total_candidates"`
}

// Domain types

type Election struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Positions           []string  `json:"positions"`
	Status              string    `json:"status"`
	MaxVotesPerPosition int       `json:"max_votes_per_position"`
	IsHighlighted       bool      `json:"is_highlighted"`
	CreatedBy           string    `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}

type Candidate struct {
	ID                     string    `json:"id"`
	ElectionID             string    `json:"election_id"`
	Position               string    `json:"position"`
	Name                   string    `json:"name"`
	Bio                    string    `json:"bio"`
	ImageURL               *string   `json:"image_url,omitempty"`
	VoteCount              int       `json:"vote_count"`
	IsDisqualified         bool      `json:"is_disqualified"`
	DisqualificationReason *string   `json:"disqualification_reason,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

type Vote struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	VoterID     string    `json:"voter_id"`
	Position    string    `json:"position"`
	Ordinal     int       `json:"-"`
	CastAt      time.Time `json:"cast_at"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
}

type Voter struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

type ElectionWithCandidates struct {
	Election   Election    `json:"election"`
	Candidates []Candidate `json:"candidates"`
}

// Result types

// PositionResult is one ranked row of a position's tally.
type PositionResult struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	VoteCount   int     `json:"vote_count"`
	Percentage  float64 `json:"percentage"`
	Rank        int     `json:"rank"` // 1-indexed ranking
}

type ElectionResults struct {
	ElectionID string                      `json:"election_id"`
	Status     string                      `json:"status"`
	Positions  map[string][]PositionResult `json:"positions"`
	TotalVotes int                         `json:"total_votes"`
	ComputedAt time.Time                   `json:"computed_at"`
}

type Turnout struct {
	ElectionID        string         `json:"election_id"`
	TotalVotes        int            `json:"total_votes"`
	UniqueVoters      int            `json:"unique_voters"`
	PerPositionCounts map[string]int `json:"per_position_counts"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
