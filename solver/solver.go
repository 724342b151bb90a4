package solver

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/fairflow"
	"github.com/oreview/matchcore/fairsequence"
	"github.com/oreview/matchcore/metrics"
	"github.com/oreview/matchcore/minmax"
	"github.com/oreview/matchcore/randomized"
)

// Solve runs the solver named by kind against p and returns its terminal
// result. seed is only consulted by SolverRandomized. On a Complete result,
// Solve merges the metrics package's post-hoc snapshot into Diagnostics
// under any key the underlying solver did not already set.
func Solve(ctx context.Context, p *core.Problem, kind core.SolverKind, seed uint64) core.SolveResult {
	if ctx == nil {
		ctx = context.Background()
	}

	log.WithField("solver", kind.String()).Debug("dispatching")

	var res core.SolveResult
	switch kind {
	case core.SolverMinMax:
		res = minmax.Solve(ctx, p)
	case core.SolverFairFlow:
		res = fairflow.Solve(ctx, p)
	case core.SolverRandomized:
		res = randomized.Solve(ctx, p, seed)
	case core.SolverFairSequence:
		res = fairsequence.Solve(ctx, p)
	default:
		return core.SolveResult{
			Status: core.StatusSolverError,
			Err:    &core.ValidationError{Field: "solver", Reason: "unknown solver kind"},
		}
	}

	if res.Status == core.StatusComplete && res.Assignment != nil {
		res.Diagnostics = mergeDiagnostics(res.Diagnostics, metrics.Compute(p, res.Assignment).Diagnostics())
	}
	return res
}

func mergeDiagnostics(existing, computed core.Diagnostics) core.Diagnostics {
	if existing == nil {
		existing = make(core.Diagnostics, len(computed))
	}
	for k, v := range computed {
		if _, ok := existing[k]; !ok {
			existing[k] = v
		}
	}
	return existing
}
