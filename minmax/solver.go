package minmax

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/oreview/matchcore/alternates"
	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/flowbuild"
)

// NumAlternates bounds how many runner-up reviewers Solve records per
// paper when the caller does not need a different value.
const NumAlternates = 5

// Solve runs a single min-cost flow solve over the problem's full flow
// graph (no forbidden edges) and returns the maximum-affinity assignment
// achievable under the hard quota and constraint bounds.
func Solve(ctx context.Context, p *core.Problem) core.SolveResult {
	if err := core.FeasibilityCheck(p); err != nil {
		return resultForError(err)
	}

	res, err := flowbuild.Build(ctx, p, nil)
	if err != nil {
		return resultForError(err)
	}

	log.WithField("solver", "minmax").WithField("total_affinity", res.TotalAffinity).Debug("solved")

	return core.SolveResult{
		Status:     core.StatusComplete,
		Assignment: res.Assignment,
		Alternates: alternates.Compute(p, res.Assignment, NumAlternates),
		Objective:  res.TotalAffinity,
	}
}

func resultForError(err error) core.SolveResult {
	var infeasible *core.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		return core.SolveResult{Status: core.StatusInfeasible, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return core.SolveResult{Status: core.StatusCancelled, Err: err}
	default:
		wrapped := &core.SolverError{Solver: "minmax", Cause: err}
		return core.SolveResult{Status: core.StatusSolverError, Err: wrapped}
	}
}
