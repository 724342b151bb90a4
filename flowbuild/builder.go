package flowbuild

import (
	"context"
	"math"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/flow"
)

// Scale is the fixed-point factor applied to affinities when converting
// them to integer min-cost flow arc costs: cost(p,r) = round(-S(p,r)*Scale).
const Scale = 10000

// Edge identifies a (paper, reviewer) pair by row/column index.
type Edge struct {
	PaperIdx, ReviewerIdx int
}

// Result is the decoded output of a single min-cost flow solve.
type Result struct {
	Assignment    *core.Assignment
	TotalAffinity float64
}

type quota struct {
	min, max int
}

// Build constructs and solves the min-cost flow network for problem p,
// excluding any pair present in forbidden (used by the fairness-improving
// solver to re-solve with certain low-affinity edges removed).
//
// The network itself (source -> reviewer hubs -> paper hubs -> sink) is a
// plain DAG carrying no lower bounds, so successive-shortest-path's initial
// Bellman-Ford pass never has to reason about negative cycles: a closing
// edge that would let the network circulate (needed by some lower-bound
// reductions) is exactly what could turn a legitimately negative-cost pair
// edge into a reachable negative cycle, so this builder avoids that shape
// entirely. It first computes the min-cost flow that respects only the
// upper bounds (max_papers/max_reviewers), which the successive-shortest-
// path kernel finds optimally by construction, then runs a minimum-quota
// repair pass modeled on the swap procedure used by the FairSequence
// solver (§4.6) to pull every paper/reviewer up to its minimum.
func Build(ctx context.Context, p *core.Problem, forbidden map[Edge]bool) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	np, nr := p.NumPapers(), p.NumReviewers()

	lockedByPaper := make([]int, np)
	lockedByReviewer := make([]int, nr)
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Locked {
				lockedByPaper[i]++
				lockedByReviewer[j]++
			}
		}
	}

	paperQuota := make([]quota, np)
	for i, paper := range p.Papers() {
		paperQuota[i] = quota{
			min: maxInt(0, paper.MinReviewers-lockedByPaper[i]),
			max: paper.MaxReviewers - lockedByPaper[i],
		}
		if paperQuota[i].max < paperQuota[i].min {
			return nil, &core.InfeasibleError{Reason: "locked reviewers exceed a paper's max_reviewers"}
		}
	}
	reviewerQuota := make([]quota, nr)
	for j, reviewer := range p.Reviewers() {
		reviewerQuota[j] = quota{
			min: maxInt(0, reviewer.MinPapers-lockedByReviewer[j]),
			max: reviewer.MaxPapers - lockedByReviewer[j],
		}
		if reviewerQuota[j].max < reviewerQuota[j].min {
			return nil, &core.InfeasibleError{Reason: "locked papers exceed a reviewer's max_papers"}
		}
	}

	const src, snk = 0, 1
	reviewerNode := func(j int) int { return 2 + j }
	paperNode := func(i int) int { return 2 + nr + i }
	n := 2 + nr + np
	net := flow.NewNetwork(n)

	for j, q := range reviewerQuota {
		if q.max > 0 {
			net.AddArc(src, reviewerNode(j), int64(q.max), 0)
		}
	}
	for i, q := range paperQuota {
		if q.max > 0 {
			net.AddArc(paperNode(i), snk, int64(q.max), 0)
		}
	}

	pairArc := make([][]int, np)
	for i := range pairArc {
		pairArc[i] = make([]int, nr)
		for j := range pairArc[i] {
			pairArc[i][j] = -1
		}
	}
	// Papers/reviewers are already stored in ascending-ID order, so this
	// plain index sweep matches the deterministic insertion order the
	// solver contract requires.
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Conflicted || p.ConstraintAt(i, j) == core.Locked {
				continue
			}
			if forbidden != nil && forbidden[Edge{PaperIdx: i, ReviewerIdx: j}] {
				continue
			}
			cost := int64(math.Round(-p.Score(i, j) * Scale))
			arc := net.AddArc(reviewerNode(j), paperNode(i), 1, cost)
			pairArc[i][j] = arc
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	if _, _, err := flow.MinCostFlow(ctx, net, src, snk, math.MaxInt64/4); err != nil {
		return nil, err
	}

	assigned := make([][]bool, np)
	reviewerLoad := make([]int, nr)
	paperLoad := make([]int, np)
	for i := 0; i < np; i++ {
		assigned[i] = make([]bool, nr)
		for j := 0; j < nr; j++ {
			switch {
			case p.ConstraintAt(i, j) == core.Locked:
				assigned[i][j] = true
			case pairArc[i][j] >= 0 && net.FlowOn(pairArc[i][j]) > 0:
				assigned[i][j] = true
			}
			if assigned[i][j] {
				reviewerLoad[j]++
				paperLoad[i]++
			}
		}
	}

	if err := enforceMinimums(p, assigned, reviewerLoad, paperLoad); err != nil {
		return nil, err
	}
	for e, isForbidden := range forbidden {
		if isForbidden && assigned[e.PaperIdx][e.ReviewerIdx] {
			return nil, &core.InfeasibleError{Reason: "minimum quotas cannot be met without a forbidden pair"}
		}
	}

	assignment := core.NewAssignment(np)
	var totalAffinity float64
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if assigned[i][j] {
				assignment.Reviewers[i] = append(assignment.Reviewers[i], j)
				totalAffinity += p.Score(i, j)
			}
		}
	}

	return &Result{Assignment: assignment, TotalAffinity: totalAffinity}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
