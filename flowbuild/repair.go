package flowbuild

import "github.com/oreview/matchcore/core"

// enforceMinimums tops up any paper or reviewer left below its minimum by
// the preceding max-flow solve. The optimal max-cost flow can legitimately
// leave a node below its minimum while the network as a whole is still
// feasible — it only maximizes total affinity over *a* maximum flow, not
// over the one that happens to favor every minimum. Closing the gap then
// requires an augmenting chain through the current assignment: add the
// deficient paper to some eligible reviewer, and if that reviewer is full,
// bump its current occupant onward to a different reviewer instead of
// giving up, continuing until some reviewer has spare capacity or some
// displaced paper can afford to lose a slot outright. Among every chain
// that closes the deficit, the one costing the least total affinity is
// applied — ties and near-ties are common once a reviewer has several
// droppable occupants, and picking whichever one the search happens to
// reach first would make the result depend on assignment order rather than
// score. Returns an InfeasibleError if no chain exists at all, which should
// only happen when the caller skipped core.FeasibilityCheck.
func enforceMinimums(p *core.Problem, assigned [][]bool, reviewerLoad, paperLoad []int) error {
	papers := p.Papers()
	reviewers := p.Reviewers()
	np, nr := len(papers), len(reviewers)

	for i := 0; i < np; i++ {
		for paperLoad[i] < papers[i].MinReviewers {
			if !augmentPaper(p, assigned, reviewerLoad, paperLoad, i) {
				return &core.InfeasibleError{Reason: "unable to satisfy min_reviewers for paper " + papers[i].ID}
			}
		}
	}
	for j := 0; j < nr; j++ {
		for reviewerLoad[j] < reviewers[j].MinPapers {
			if !augmentReviewer(p, assigned, reviewerLoad, paperLoad, j) {
				return &core.InfeasibleError{Reason: "unable to satisfy min_papers for reviewer " + reviewers[j].ID}
			}
		}
	}
	return nil
}

func eligible(p *core.Problem, i, j int, assigned [][]bool) bool {
	return !assigned[i][j] && p.ConstraintAt(i, j) != core.Conflicted && p.ConstraintAt(i, j) != core.Locked
}

// chainEdge is one hop of an augmenting chain: assign == true means the
// pair becomes assigned when the chain is applied, false means it becomes
// unassigned. Chains alternate assign/unassign/assign/... so every reviewer
// and every intermediate paper keeps its load exactly where it was, except
// the paper that triggered the search (which gains one) and, when the chain
// terminates by dropping an occupant outright, the occupant at the far end
// (which loses one, only ever to a level it can still afford).
type chainEdge struct {
	paper, reviewer int
	assign          bool
}

func applyChain(assigned [][]bool, reviewerLoad, paperLoad []int, chain []chainEdge) {
	for _, e := range chain {
		if e.assign {
			assign(assigned, reviewerLoad, paperLoad, e.paper, e.reviewer)
		} else {
			unassign(assigned, reviewerLoad, paperLoad, e.paper, e.reviewer)
		}
	}
}

// augmentPaper searches for the augmenting chain that raises paperLoad of
// target by one at the smallest affinity cost. It walks eligible-but-
// unassigned edges forward from the current paper to a reviewer, and
// currently-assigned edges backward from a full reviewer to its occupant,
// depth-first, recording every terminus reached — a reviewer with spare
// capacity, or an occupant able to give up a reviewer without a replacement
// — rather than stopping at the first one, then applies whichever complete
// chain has the highest net affinity (sum of newly assigned pairs' scores
// minus sum of dropped pairs' scores). This is the same bestNet comparison
// fairsequence.enforcePaperMinimums makes over single-hop swaps, generalized
// to chains that may have to bump more than one occupant to close the gap.
func augmentPaper(p *core.Problem, assigned [][]bool, reviewerLoad, paperLoad []int, target int) bool {
	np, nr := len(p.Papers()), len(p.Reviewers())
	paperVisited := make([]bool, np)
	reviewerVisited := make([]bool, nr)
	paperVisited[target] = true

	var chain []chainEdge
	var best []chainEdge
	var bestNet float64
	found := false

	consider := func(net float64) {
		if !found || net > bestNet {
			found = true
			bestNet = net
			best = append(best[:0], chain...)
		}
	}

	var visitPaper func(i int, net float64)
	visitPaper = func(i int, net float64) {
		papers, reviewers := p.Papers(), p.Reviewers()
		for j := 0; j < nr; j++ {
			if reviewerVisited[j] || !eligible(p, i, j, assigned) {
				continue
			}
			reviewerVisited[j] = true
			chain = append(chain, chainEdge{paper: i, reviewer: j, assign: true})
			gainedNet := net + p.Score(i, j)

			if reviewerLoad[j] < reviewers[j].MaxPapers {
				consider(gainedNet)
			} else {
				for i2 := 0; i2 < np; i2++ {
					if !assigned[i2][j] || paperVisited[i2] || p.ConstraintAt(i2, j) == core.Locked {
						continue
					}
					paperVisited[i2] = true
					chain = append(chain, chainEdge{paper: i2, reviewer: j, assign: false})
					droppedNet := gainedNet - p.Score(i2, j)

					if paperLoad[i2] > papers[i2].MinReviewers {
						consider(droppedNet)
					}
					visitPaper(i2, droppedNet)

					chain = chain[:len(chain)-1]
					paperVisited[i2] = false
				}
			}

			chain = chain[:len(chain)-1]
			reviewerVisited[j] = false
		}
	}

	visitPaper(target, 0)
	if !found {
		return false
	}
	applyChain(assigned, reviewerLoad, paperLoad, best)
	return true
}

// augmentReviewer is the mirror of augmentPaper: it raises reviewerLoad of
// target by one via the best-net chain, walking eligible-but-unassigned
// edges from the current reviewer to a paper, and currently-assigned edges
// backward from a full paper to one of its other reviewers, until some
// paper has spare capacity or some bumped reviewer can give up a paper
// without a replacement.
func augmentReviewer(p *core.Problem, assigned [][]bool, reviewerLoad, paperLoad []int, target int) bool {
	np, nr := len(p.Papers()), len(p.Reviewers())
	paperVisited := make([]bool, np)
	reviewerVisited := make([]bool, nr)
	reviewerVisited[target] = true

	var chain []chainEdge
	var best []chainEdge
	var bestNet float64
	found := false

	consider := func(net float64) {
		if !found || net > bestNet {
			found = true
			bestNet = net
			best = append(best[:0], chain...)
		}
	}

	var visitReviewer func(j int, net float64)
	visitReviewer = func(j int, net float64) {
		papers, reviewers := p.Papers(), p.Reviewers()
		for i := 0; i < np; i++ {
			if paperVisited[i] || !eligible(p, i, j, assigned) {
				continue
			}
			paperVisited[i] = true
			chain = append(chain, chainEdge{paper: i, reviewer: j, assign: true})
			gainedNet := net + p.Score(i, j)

			if paperLoad[i] < papers[i].MaxReviewers {
				consider(gainedNet)
			} else {
				for j2 := 0; j2 < nr; j2++ {
					if !assigned[i][j2] || reviewerVisited[j2] || p.ConstraintAt(i, j2) == core.Locked {
						continue
					}
					reviewerVisited[j2] = true
					chain = append(chain, chainEdge{paper: i, reviewer: j2, assign: false})
					droppedNet := gainedNet - p.Score(i, j2)

					if reviewerLoad[j2] > reviewers[j2].MinPapers {
						consider(droppedNet)
					}
					visitReviewer(j2, droppedNet)

					chain = chain[:len(chain)-1]
					reviewerVisited[j2] = false
				}
			}

			chain = chain[:len(chain)-1]
			paperVisited[i] = false
		}
	}

	visitReviewer(target, 0)
	if !found {
		return false
	}
	applyChain(assigned, reviewerLoad, paperLoad, best)
	return true
}

func assign(assigned [][]bool, reviewerLoad, paperLoad []int, i, j int) {
	assigned[i][j] = true
	reviewerLoad[j]++
	paperLoad[i]++
}

func unassign(assigned [][]bool, reviewerLoad, paperLoad []int, i, j int) {
	assigned[i][j] = false
	reviewerLoad[j]--
	paperLoad[i]--
}
