// Package core defines the paper/reviewer assignment problem model: the
// canonical Problem value that every solver consumes, the Assignment value
// every solver produces, and the validation and feasibility checks that run
// before any solver kernel starts.
//
// A Problem is built once from raw score matrices, quota vectors, and a
// constraint matrix, validated, and then treated as immutable for the
// lifetime of a solve. Solvers never mutate a Problem; they build their own
// transient graphs or LP tableaux from it.
package core
