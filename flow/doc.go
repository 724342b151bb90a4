// Package flow implements the min-cost flow kernel shared by the solvers:
// flowbuild uses it to compute the affinity-optimal (or fairness-adjusted)
// reviewer assignment, and core reuses the same kernel with every cost
// pinned to zero to answer the plain max-flow feasibility question —
// successive shortest paths on an all-zero-cost network degenerates to
// breadth-first augmentation, so one kernel serves both callers.
//
// # Network
//
// Network is a compact arc-list representation, not a general-purpose
// graph: node IDs are dense integers the caller assigns, and forward/reverse
// arcs live at adjacent indices so augmentation updates residual capacity in
// O(1) instead of rebuilding an adjacency structure every round.
//
//	net := flow.NewNetwork(n)
//	arc := net.AddArc(u, v, capacity, cost)
//	net.FlowOn(arc)
//
// # Minimum cost flow
//
//	func MinCostFlow(ctx context.Context, net *Network, source, sink int, maxUnits int64) (flow, totalCost int64, err error)
//
// Costs may be negative (affinities are negated and scaled into costs), so
// the first shortest-path pass uses Bellman-Ford to establish per-node
// potentials (Johnson's technique); every subsequent augmentation reduces
// arc costs by the potential difference and runs Dijkstra, which is what
// keeps repeated augmentations fast on networks with thousands of arcs.
// maxUnits caps how much flow to push — pass a large sentinel to saturate.
//
// # Errors
//
//	ErrNegativeCycle - MinCostFlow's Bellman-Ford pass found a negative cycle
//	                    reachable from source.
//	context.Canceled / context.DeadlineExceeded - the context was canceled
//	                    mid-augmentation; MinCostFlow returns the flow pushed
//	                    so far alongside the context error.
//
// # Integration
//
// flowbuild translates a Problem into a Network and decodes the result back
// into an Assignment; core.feasibilityFlowCheck builds a lower-bound
// circulation Network over the same arcs with cost 0 throughout. Neither
// caller's domain vocabulary (papers, reviewers, affinities) leaks into this
// package.
package flow
