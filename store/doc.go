// Copyright (c) 2025 The VoteSecure Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the SQL persistence layer. It implements engine.Store plus
the CRUD surface the HTTP handlers need, speaking the SQL dialect shared by
SQLite and PostgreSQL.

# Error Mapping

Expected conditions map to the engine's sentinel errors: a missing row
becomes ErrElectionNotFound or ErrCandidateNotFound, a duplicate-key
violation on the vote table becomes ErrDuplicateVote, a failed lifecycle
compare-and-swap becomes ErrInvalidTransition. Driver faults are logged
server-side and surface as ErrStorageUnavailable without leaking backend
internals.

# Vote Recording

RecordVote re-checks the per-position cap inside the transaction and relies
on the vote table's unique indexes as the last line of defense: two writers
racing for a voter's final slot compute the same ordinal, and the loser's
insert fails as a duplicate rather than an extra ballot.
*/
package store
