package core

import (
	"context"
	"fmt"
	"math"

	"github.com/oreview/matchcore/flow"
)

// feasibilityFlowCheck tests whether the hard-constraint graph (locked
// pairs forced in, conflicted pairs removed) admits a flow honoring every
// endpoint's [min,max] simultaneously. It reduces the lower-bounded flow
// question to a single ordinary max-flow computation on an auxiliary
// circulation network: every bounded edge u->v with [lo,hi] contributes an
// edge u->v of capacity hi-lo, plus SS->v and u->TT edges of capacity lo,
// and a T->S edge of unbounded capacity closes the circulation. The
// original bounds are simultaneously satisfiable iff max-flow(SS,TT)
// saturates every SS-edge.
//
// The same flow.Network/flow.MinCostFlow kernel flowbuild uses to find the
// optimal assignment does the job here too: every arc carries cost 0, so
// successive shortest paths degenerates to plain breadth-first augmentation
// and the flow pushed is exactly the max-flow value.
func feasibilityFlowCheck(p *Problem) error {
	nr, np := len(p.reviewers), len(p.papers)
	const superSrc, superSink, src, sink = 0, 1, 2, 3
	reviewerNode := func(idx int) int { return 4 + idx }
	paperNode := func(idx int) int { return 4 + nr + idx }
	n := 4 + nr + np

	net := flow.NewNetwork(n)

	var sumLo int64
	addBounded := func(u, v, lo, hi int) error {
		if hi < lo {
			return &ValidationError{Field: "quota", Reason: "max below min"}
		}
		if hi > lo {
			net.AddArc(u, v, int64(hi-lo), 0)
		}
		if lo > 0 {
			net.AddArc(superSrc, v, int64(lo), 0)
			net.AddArc(u, superSink, int64(lo), 0)
			sumLo += int64(lo)
		}
		return nil
	}

	for j, r := range p.reviewers {
		if err := addBounded(src, reviewerNode(j), r.MinPapers, r.MaxPapers); err != nil {
			return err
		}
	}
	for i, paper := range p.papers {
		if err := addBounded(paperNode(i), sink, paper.MinReviewers, paper.MaxReviewers); err != nil {
			return err
		}
	}
	for i := range p.papers {
		for j := range p.reviewers {
			switch p.constraint[i][j] {
			case Conflicted:
				continue
			case Locked:
				if err := addBounded(reviewerNode(j), paperNode(i), 1, 1); err != nil {
					return err
				}
			case Free:
				if err := addBounded(reviewerNode(j), paperNode(i), 0, 1); err != nil {
					return err
				}
			}
		}
	}
	// Close the circulation.
	net.AddArc(sink, src, int64(1)<<40, 0)

	if sumLo == 0 {
		return nil // no lower bounds at all: trivially feasible (upper-bound-only flow always exists at flow=0)
	}

	maxFlow, _, err := flow.MinCostFlow(context.Background(), net, superSrc, superSink, math.MaxInt64/8)
	if err != nil {
		return &SolverError{Solver: "feasibility", Cause: err}
	}
	if maxFlow < sumLo {
		return &InfeasibleError{Reason: diagnoseInfeasibility(p)}
	}

	return nil
}

// diagnoseInfeasibility walks the plain (bound-free) hard-constraint
// reachability graph S->R->P breadth-first to identify any paper
// unreachable from the reviewer pool, which is almost always the
// actionable cause of a lower-bound infeasibility. It ignores quotas
// entirely, so it only ever narrows the diagnosis, never the correctness
// of feasibilityFlowCheck's circulation test above.
func diagnoseInfeasibility(p *Problem) string {
	nr, np := len(p.reviewers), len(p.papers)
	adj := make([][]int, nr+np)
	reviewerNode := func(idx int) int { return idx }
	paperNode := func(idx int) int { return nr + idx }
	for i := range p.papers {
		for j := range p.reviewers {
			if p.constraint[i][j] != Conflicted {
				adj[reviewerNode(j)] = append(adj[reviewerNode(j)], paperNode(i))
			}
		}
	}

	reached := make([]bool, nr+np)
	queue := make([]int, 0, nr)
	for j := range p.reviewers {
		reached[reviewerNode(j)] = true
		queue = append(queue, reviewerNode(j))
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if !reached[v] {
				reached[v] = true
				queue = append(queue, v)
			}
		}
	}

	for i, paper := range p.papers {
		if !reached[paperNode(i)] {
			return fmt.Sprintf("paper %s is unreachable from the reviewer pool under the current constraints", paper.ID)
		}
	}
	return "sum of min_reviewers/min_papers cannot be simultaneously satisfied"
}
