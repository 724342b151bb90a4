// Package solver dispatches a Problem to one of the four interchangeable
// solver kernels (MinMax, FairFlow, Randomized, FairSequence) behind a
// single "Problem -> SolveResult" entry point, chosen once by a tagged
// core.SolverKind rather than by runtime hot-swapping. It also enriches
// every completed result with the metrics package's post-hoc diagnostics.
package solver
