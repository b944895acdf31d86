// Package batch renders every question in a scene manifest through a
// bounded worker pool.
//
// The Scheduler validates the whole manifest against the profile catalog
// before any encode starts, so configuration defects abort the run instead
// of failing jobs one at a time. Validated jobs then flow through N
// workers; each job renders inside an isolated staging directory under its
// own deadline, and a failure in one job never aborts its siblings.
// Terminal outcomes land in three places: the sqlite ledger (run history),
// the results manifest beside the scene manifest (the downstream
// publisher's contract), and optional ntfy notifications.
//
// Cancelling the run context stops new jobs from starting. Jobs already
// handed to a worker run to completion under their per-job deadline, and
// every job the pool never reached is recorded as failed with a skip
// reason, so the results manifest always carries one entry per submitted
// question.
package batch
