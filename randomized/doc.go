// Package randomized implements the Randomized solver: an LP relaxation
// over per-pair marginal probabilities bounded by a caller-supplied limit
// matrix, followed by a Birkhoff-von-Neumann-style decomposition that
// samples a single integral assignment whose per-pair inclusion
// probability equals the fractional solution exactly, in expectation.
//
// Stage 1 (lp.go) solves the relaxation with the HiGHS LP solver via
// github.com/lanl/highs. Stage 2 (bvn.go) rounds the fractional solution to
// an integral point of the same bipartite degree-range polytope via
// dependent rounding on cycles of the support graph: on a bipartite
// network-flow polytope with integral bounds, dependent rounding is
// equivalent to full Birkhoff-von-Neumann decomposition plus a single
// weighted sample, without needing to materialize every term of the
// decomposition explicitly.
package randomized
