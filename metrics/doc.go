// Package metrics computes post-hoc diagnostics and testable-invariant
// checks over a solved core.Assignment: total and per-paper affinity,
// per-entity load, and the quota/conflict/lock/uniqueness/fairness
// properties every Complete solve is expected to satisfy. Solvers never
// call the invariant checks themselves; they are for test suites and for
// callers who want to audit a solver's output independently.
package metrics
