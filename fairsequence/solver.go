package fairsequence

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/oreview/matchcore/alternates"
	"github.com/oreview/matchcore/core"
)

// NumAlternates bounds how many runner-up reviewers Solve records per paper.
const NumAlternates = 5

// Solve runs the greedy priority-based allocation described by the
// FairSequence contract, then a second pass enforcing every paper's
// minimum via affinity-minimizing swaps.
func Solve(ctx context.Context, p *core.Problem) core.SolveResult {
	if err := core.FeasibilityCheck(p); err != nil {
		return resultForError(err)
	}

	np, nr := p.NumPapers(), p.NumReviewers()
	papers := p.Papers()
	reviewers := p.Reviewers()

	assigned := make([][]bool, np)
	for i := range assigned {
		assigned[i] = make([]bool, nr)
	}
	remainingDemand := make([]int, np)
	reviewerRemaining := make([]int, nr)
	for i, paper := range papers {
		remainingDemand[i] = paper.MaxReviewers
	}
	for j, reviewer := range reviewers {
		reviewerRemaining[j] = reviewer.MaxPapers
	}
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Locked {
				assigned[i][j] = true
				remainingDemand[i]--
				reviewerRemaining[j]--
			}
		}
	}

	allocSize := make([]int, np)
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if assigned[i][j] {
				allocSize[i]++
			}
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return resultForError(err)
		}

		bestPaper, bestReviewer, ok := pickNext(p, assigned, remainingDemand, reviewerRemaining, allocSize)
		if !ok {
			break
		}
		assigned[bestPaper][bestReviewer] = true
		remainingDemand[bestPaper]--
		reviewerRemaining[bestReviewer]--
		allocSize[bestPaper]++
	}

	if err := enforcePaperMinimums(p, assigned, allocSize); err != nil {
		return resultForError(err)
	}

	assignment := core.NewAssignment(np)
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if assigned[i][j] {
				assignment.Reviewers[i] = append(assignment.Reviewers[i], j)
			}
		}
	}

	log.WithField("solver", "fairsequence").WithField("total_affinity", assignment.TotalAffinity(p)).Debug("solved")

	return core.SolveResult{
		Status:     core.StatusComplete,
		Assignment: assignment,
		Alternates: alternates.Compute(p, assignment, NumAlternates),
		Objective:  assignment.TotalAffinity(p),
	}
}

// pickNext selects the next (paper, reviewer) pair to assign following the
// priority rule: lowest current-allocation-to-target ratio first, ties
// broken by the paper's best available affinity then ascending paper id;
// then, for the chosen paper, the reviewer maximizing affinity, ties
// broken by ascending reviewer id.
func pickNext(p *core.Problem, assigned [][]bool, remainingDemand, reviewerRemaining, allocSize []int) (int, int, bool) {
	np, nr := p.NumPapers(), p.NumReviewers()

	bestPaper := -1
	var bestPriority, bestMaxAffinity float64

	for i := 0; i < np; i++ {
		if remainingDemand[i] <= 0 {
			continue
		}
		maxAffinity, hasCandidate := -1.0, false
		for j := 0; j < nr; j++ {
			if !eligibleFor(p, assigned, reviewerRemaining, i, j) {
				continue
			}
			if s := p.Score(i, j); !hasCandidate || s > maxAffinity {
				maxAffinity, hasCandidate = s, true
			}
		}
		if !hasCandidate {
			continue
		}
		priority := float64(allocSize[i]) / float64(p.Papers()[i].MaxReviewers)
		if bestPaper == -1 || priority < bestPriority ||
			(priority == bestPriority && maxAffinity > bestMaxAffinity) {
			bestPaper, bestPriority, bestMaxAffinity = i, priority, maxAffinity
		}
	}
	if bestPaper == -1 {
		return 0, 0, false
	}

	bestReviewer, bestScore := -1, 0.0
	for j := 0; j < nr; j++ {
		if !eligibleFor(p, assigned, reviewerRemaining, bestPaper, j) {
			continue
		}
		if s := p.Score(bestPaper, j); bestReviewer == -1 || s > bestScore {
			bestReviewer, bestScore = j, s
		}
	}
	return bestPaper, bestReviewer, true
}

func eligibleFor(p *core.Problem, assigned [][]bool, reviewerRemaining []int, i, j int) bool {
	return !assigned[i][j] && reviewerRemaining[j] > 0 && p.ConstraintAt(i, j) != core.Conflicted
}

// enforcePaperMinimums pulls a reviewer from a paper strictly above its
// minimum onto any paper still below its minimum, preferring the swap that
// loses the least affinity. Returns an InfeasibleError if no such swap
// exists to close a deficit.
func enforcePaperMinimums(p *core.Problem, assigned [][]bool, allocSize []int) error {
	papers := p.Papers()
	np, nr := len(papers), p.NumReviewers()

	for i := 0; i < np; i++ {
		for allocSize[i] < papers[i].MinReviewers {
			donorI, donorJ, bestNet := -1, -1, 0.0
			for j := 0; j < nr; j++ {
				if assigned[i][j] || p.ConstraintAt(i, j) == core.Conflicted {
					continue
				}
				for i2 := 0; i2 < np; i2++ {
					if i2 == i || !assigned[i2][j] || allocSize[i2] <= papers[i2].MinReviewers || p.ConstraintAt(i2, j) == core.Locked {
						continue
					}
					net := p.Score(i, j) - p.Score(i2, j)
					if donorI == -1 || net > bestNet {
						donorI, donorJ, bestNet = i2, j, net
					}
				}
			}
			if donorI == -1 {
				return &core.InfeasibleError{Reason: "no affinity-preserving swap satisfies min_reviewers for paper " + papers[i].ID + " under FairSequence"}
			}
			assigned[donorI][donorJ] = false
			allocSize[donorI]--
			assigned[i][donorJ] = true
			allocSize[i]++
		}
	}
	return nil
}

func resultForError(err error) core.SolveResult {
	var infeasible *core.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		return core.SolveResult{Status: core.StatusInfeasible, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return core.SolveResult{Status: core.StatusCancelled, Err: err}
	default:
		wrapped := &core.SolverError{Solver: "fairsequence", Cause: err}
		return core.SolveResult{Status: core.StatusSolverError, Err: wrapped}
	}
}
