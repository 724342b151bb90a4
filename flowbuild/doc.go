// Package flowbuild translates a core.Problem into the min-cost flow
// network consumed by the MinMax and FairFlow solvers, and decodes a solved
// network back into a core.Assignment.
//
// The network is a plain source/reviewer/paper/sink DAG bounded only by
// each side's maximum quota; flow.MinCostFlow's successive-shortest-path
// kernel finds the min-cost maximum flow on it directly. Minimum quotas are
// not encoded as flow lower bounds — doing so with a closing arc back from
// sink to source would let a legitimately negative-cost pair edge complete
// a reachable negative cycle, which the successive-shortest-path kernel's
// initial Bellman-Ford pass cannot tolerate. Instead Build runs a repair
// pass after the max-flow solve, modeled on the swap procedure the
// FairSequence solver uses to enforce its own minimums (§4.6): any paper or
// reviewer left short of its minimum is topped up from spare capacity, or
// failing that by reassigning a unit from a donor with slack, preferring
// the reassignment that loses the least affinity. Locked pairs are
// pre-committed outside the flow graph entirely — they never appear as
// arcs, their capacity is subtracted from both endpoints' quotas up front,
// and they are added back into the decoded assignment unconditionally.
package flowbuild
