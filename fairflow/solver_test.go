package fairflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/fairflow"
	"github.com/oreview/matchcore/minmax"
)

// buildSkewedProblem mirrors the spec's illustrative FairFlow scenario:
// three papers compete for six reviewers where the total-affinity-optimal
// assignment leaves one paper (C) far worse off than the other two.
func buildSkewedProblem(t *testing.T) *core.Problem {
	t.Helper()
	scores := [][]float64{
		{0.9, 0.9, 0.1, 0.1, 0.5, 0.5},
		{0.1, 0.1, 0.9, 0.9, 0.5, 0.5},
		{0.1, 0.1, 0.1, 0.1, 0.0, 0.2},
	}
	p, err := core.Build(
		[]string{"A", "B", "C"}, []string{"r1", "r2", "r3", "r4", "r5", "r6"},
		core.WithScoreSource(scores, 1.0),
		core.WithDefaultReviewerQuota(2, 2),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)
	return p
}

func minPaperMean(p *core.Problem, a *core.Assignment) float64 {
	min := a.PaperMeanAffinity(p, 0)
	for i := 1; i < p.NumPapers(); i++ {
		if m := a.PaperMeanAffinity(p, i); m < min {
			min = m
		}
	}
	return min
}

func TestSolveRaisesWorstOffPaperOverMinMax(t *testing.T) {
	p := buildSkewedProblem(t)

	base := minmax.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, base.Status)

	fair := fairflow.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, fair.Status)

	baseMin := minPaperMean(p, base.Assignment)
	fairMin := minPaperMean(p, fair.Assignment)
	require.GreaterOrEqual(t, fairMin, baseMin, "FairFlow must not lower the worst-off paper's mean")

	// The scenario is constructed so MinMax leaves a genuine gap to close.
	require.Greater(t, fairMin, baseMin)
}

func TestSolveMonotoneOrSaturatedPerPaper(t *testing.T) {
	p := buildSkewedProblem(t)

	base := minmax.Solve(context.Background(), p)
	fair := fairflow.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, base.Status)
	require.Equal(t, core.StatusComplete, fair.Status)
	saturated := fair.Diagnostics["saturated"].([]bool)

	for i := 0; i < p.NumPapers(); i++ {
		baseMean := base.Assignment.PaperMeanAffinity(p, i)
		fairMean := fair.Assignment.PaperMeanAffinity(p, i)
		require.True(t, fairMean >= baseMean-1e-9 || saturated[i], "paper %d lost mean affinity without being marked saturated", i)
	}
}

func TestSolveTrivialMatchesMinMaxWhenAlreadyFair(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res := fairflow.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.InDelta(t, 2.0, res.Objective, 1e-9)
}

func TestSolveInfeasibleProblem(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x"},
		core.WithScoreSource([][]float64{{1.0}, {1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res := fairflow.Solve(context.Background(), p)
	require.Equal(t, core.StatusInfeasible, res.Status)
}
