// Package ledger persists batch history in SQLite: one row per run and
// one row per job, with guarded state transitions.
//
// The ledger is a record, not a scheduler. Scheduling state lives in the
// batch package's channels; rows here exist so `reelbender runs` can
// answer what happened after the fact, and they are written best-effort
// alongside the authoritative results manifest.
package ledger
