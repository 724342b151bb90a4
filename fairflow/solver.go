package fairflow

import (
	"context"
	"errors"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/oreview/matchcore/alternates"
	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/flowbuild"
)

// NumAlternates bounds how many runner-up reviewers Solve records per paper.
const NumAlternates = 5

// Solve runs the fairness-improving iteration described by the FairFlow
// contract: repeatedly forbid a below-mean edge on the current worst-off
// paper and re-solve, keeping the change only if it improves the
// lexicographic (min mean, total affinity) objective, until every paper is
// saturated or no candidate forbid improves the outcome. Diagnostics
// "saturated" holds, per paper index, whether that paper was marked saturated.
func Solve(ctx context.Context, p *core.Problem) core.SolveResult {
	if err := core.FeasibilityCheck(p); err != nil {
		return resultForError(err)
	}

	forbidden := make(map[flowbuild.Edge]bool)
	current, err := flowbuild.Build(ctx, p, forbidden)
	if err != nil {
		return resultForError(err)
	}

	np := p.NumPapers()
	saturated := make([]bool, np)
	minMean, _ := lexObjective(p, current.Assignment)

	for {
		if err := ctx.Err(); err != nil {
			return resultForError(err)
		}

		target := worstOffPaper(p, current.Assignment, saturated)
		if target == -1 {
			break
		}

		candidates := belowMeanReviewers(p, current.Assignment, target)
		if len(candidates) == 0 {
			saturated[target] = true
			continue
		}

		accepted := false
		for _, r := range candidates {
			trial := make(map[flowbuild.Edge]bool, len(forbidden)+1)
			for k := range forbidden {
				trial[k] = true
			}
			trial[flowbuild.Edge{PaperIdx: target, ReviewerIdx: r}] = true

			candidateRes, err := flowbuild.Build(ctx, p, trial)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return resultForError(err)
				}
				continue // infeasible or otherwise rejected: try the next candidate edge
			}

			newMinMean, newTotal := lexObjective(p, candidateRes.Assignment)
			_, oldTotal := minMean, current.TotalAffinity
			if newMinMean > minMean || (newMinMean == minMean && newTotal > oldTotal) {
				forbidden = trial
				current = candidateRes
				minMean = newMinMean
				accepted = true
				break
			}
		}

		if !accepted {
			saturated[target] = true
		}
	}

	log.WithField("solver", "fairflow").WithField("min_mean", minMean).
		WithField("total_affinity", current.TotalAffinity).Debug("solved")

	return core.SolveResult{
		Status:      core.StatusComplete,
		Assignment:  current.Assignment,
		Alternates:  alternates.Compute(p, current.Assignment, NumAlternates),
		Objective:   current.TotalAffinity,
		Diagnostics: core.Diagnostics{"saturated": saturated},
	}
}

// worstOffPaper returns the lowest-mean-affinity paper not yet saturated,
// breaking ties by ascending id (equivalently ascending index, since papers
// are stored in canonical ascending-id order). Returns -1 when every paper
// is saturated.
func worstOffPaper(p *core.Problem, a *core.Assignment, saturated []bool) int {
	best, bestMean := -1, 0.0
	for i := 0; i < p.NumPapers(); i++ {
		if saturated[i] {
			continue
		}
		mean := a.PaperMeanAffinity(p, i)
		if best == -1 || mean < bestMean {
			best, bestMean = i, mean
		}
	}
	return best
}

// belowMeanReviewers returns paperIdx's currently assigned reviewers whose
// affinity is below the paper's mean, in ascending-affinity order.
func belowMeanReviewers(p *core.Problem, a *core.Assignment, paperIdx int) []int {
	mean := a.PaperMeanAffinity(p, paperIdx)
	var out []int
	for _, r := range a.Reviewers[paperIdx] {
		if p.Score(paperIdx, r) < mean {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return p.Score(paperIdx, out[i]) < p.Score(paperIdx, out[j]) })
	return out
}

// lexObjective returns the minimum per-paper mean affinity and the total
// affinity of assignment a, the two components of FairFlow's termination
// objective.
func lexObjective(p *core.Problem, a *core.Assignment) (minMean, total float64) {
	total = a.TotalAffinity(p)
	for i := 0; i < p.NumPapers(); i++ {
		mean := a.PaperMeanAffinity(p, i)
		if i == 0 || mean < minMean {
			minMean = mean
		}
	}
	return minMean, total
}

func resultForError(err error) core.SolveResult {
	var infeasible *core.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		return core.SolveResult{Status: core.StatusInfeasible, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return core.SolveResult{Status: core.StatusCancelled, Err: err}
	default:
		wrapped := &core.SolverError{Solver: "fairflow", Cause: err}
		return core.SolveResult{Status: core.StatusSolverError, Err: wrapped}
	}
}
