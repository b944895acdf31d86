// Package preflight provides readiness checks for the binaries and
// filesystem paths Reelbender depends on.
//
// These checks run in two contexts:
//   - The batch scheduler calls RunAll before starting a run. If any
//     required check fails, the run aborts instead of burning minutes
//     of encoding against a doomed environment.
//   - The CLI "reelbender status" command renders the same results as
//     a table to display environment health.
//
// The audio pool check only runs when a pool directory is configured;
// a missing pool is a silence fallback, not a failure.
package preflight
