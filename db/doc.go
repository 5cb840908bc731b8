// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection setup and schema creation.

# Opening a Database

Open connects, pings, and prepares the schema in one call:

	conn, err := db.Open("sqlite", "file:votes.db")

For SQLite the DSN gets foreign keys enabled and the pool is limited to a
single connection; for PostgreSQL the URL is passed through unchanged.

# Schema Creation

CreateSchema is safe to call multiple times - it uses IF NOT EXISTS for all
tables and indexes, and sticks to the DDL dialect both backends accept.

# Tables

  - election: Election metadata, voting window, lifecycle state
  - election_position: Ordered position list per election
  - candidate: Candidates per position, with cached vote counter
  - voter: Registered voters and their tokens
  - vote: One row per ballot, with audit fields

# Integrity Constraints

The vote table carries the two unique constraints the voting rules rest on:

	UNIQUE (election_id, position, voter_id, ordinal)
	UNIQUE (election_id, position, voter_id, candidate_id)

The first caps ballots per voter per position and makes concurrent writers
for the last slot collide; the second forbids voting for the same candidate
twice. Foreign keys from positions, candidates, and votes to election use
ON DELETE CASCADE.
*/
package db
