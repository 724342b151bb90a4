package randomized

import (
	"context"
	"errors"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/oreview/matchcore/alternates"
	"github.com/oreview/matchcore/core"
)

// NumAlternates bounds how many runner-up reviewers Solve records per paper.
const NumAlternates = 5

// SnapEpsilon is the tolerance used to snap the LP relaxation's numerically
// near-boundary values to exact 0/1 before decomposition. Dependent
// rounding's final integrality check uses the tighter roundEpsilon in bvn.go.
const SnapEpsilon = 1e-6

// Solve solves the marginal-probability LP relaxation and samples one
// integral assignment from its Birkhoff-von-Neumann decomposition using
// seed. Two calls with the same problem and seed produce identical output.
func Solve(ctx context.Context, p *core.Problem, seed uint64) core.SolveResult {
	if !p.HasProbLimits() {
		return core.SolveResult{
			Status: core.StatusSolverError,
			Err:    &core.ValidationError{Field: "probability_limits", Reason: "required by the Randomized solver"},
		}
	}
	if err := core.FeasibilityCheck(p); err != nil {
		return resultForError(err, "randomized")
	}

	frac, objective, err := solveLP(p)
	if err != nil {
		return resultForError(err, "randomized-lp")
	}
	frac.SnapUnitInterval(SnapEpsilon)

	rng := rand.New(rand.NewSource(int64(seed)))
	integral, err := sample(ctx, frac, rng)
	if err != nil {
		return resultForError(err, "randomized-bvn")
	}

	np, nr := p.NumPapers(), p.NumReviewers()
	assignment := core.NewAssignment(np)
	for i := 0; i < np; i++ {
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Locked {
				assignment.Reviewers[i] = append(assignment.Reviewers[i], j)
				continue
			}
			v, err := integral.At(i, j)
			if err != nil {
				return resultForError(err, "randomized-decode")
			}
			if v > 0.5 {
				assignment.Reviewers[i] = append(assignment.Reviewers[i], j)
			}
		}
	}

	fractional := make([][]float64, np)
	for i := 0; i < np; i++ {
		fractional[i] = make([]float64, nr)
		for j := 0; j < nr; j++ {
			if p.ConstraintAt(i, j) == core.Locked {
				fractional[i][j] = 1
				continue
			}
			v, _ := frac.At(i, j)
			fractional[i][j] = v
		}
	}

	log.WithField("solver", "randomized").WithField("seed", seed).
		WithField("lp_objective", objective).Debug("solved")

	return core.SolveResult{
		Status:     core.StatusComplete,
		Assignment: assignment,
		Alternates: alternates.Compute(p, assignment, NumAlternates),
		Objective:  assignment.TotalAffinity(p),
		Fractional: fractional,
		Diagnostics: core.Diagnostics{
			"lp_objective": objective,
			"seed":         seed,
		},
	}
}

func resultForError(err error, solver string) core.SolveResult {
	var infeasible *core.InfeasibleError
	switch {
	case errors.As(err, &infeasible):
		return core.SolveResult{Status: core.StatusInfeasible, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return core.SolveResult{Status: core.StatusCancelled, Err: err}
	default:
		wrapped := &core.SolverError{Solver: solver, Cause: err}
		return core.SolveResult{Status: core.StatusSolverError, Err: wrapped}
	}
}
