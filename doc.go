// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VoteSecure API server.

VoteSecure is an election service with per-position ballots, write-once
voting, and live deterministic tallies.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:votes.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 4416 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PORT (-p): Server port (default: 4416)

A .env file in the working directory is loaded on startup if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: Ballot integrity rules, lifecycle transitions, tallying
  - store: SQL persistence implementing the engine's Store interface
  - handlers: HTTP request handlers (elections, candidates, voting, voters, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin keys, voter tokens, IP hashing
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
