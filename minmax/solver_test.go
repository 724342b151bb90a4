package minmax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/minmax"
)

func buildTrivial(t *testing.T, constraints [][]core.Constraint) *core.Problem {
	t.Helper()
	opts := []core.ProblemOption{
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	}
	if constraints != nil {
		opts = append(opts, core.WithConstraints(constraints))
	}
	p, err := core.Build([]string{"A", "B"}, []string{"x", "y"}, opts...)
	require.NoError(t, err)
	return p
}

func TestSolveTrivialTwoByTwo(t *testing.T) {
	p := buildTrivial(t, nil)
	res := minmax.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Equal(t, []int{0}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{1}, res.Assignment.Reviewers[1])
	require.InDelta(t, 2.0, res.Objective, 1e-9)
}

func TestSolveConflictForcesSwap(t *testing.T) {
	p := buildTrivial(t, [][]core.Constraint{{core.Conflicted, core.Free}, {core.Free, core.Free}})
	res := minmax.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Equal(t, []int{1}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{0}, res.Assignment.Reviewers[1])
	require.InDelta(t, 0.2, res.Objective, 1e-9)
}

func TestSolveLockOverridesOptimum(t *testing.T) {
	p := buildTrivial(t, [][]core.Constraint{{core.Free, core.Locked}, {core.Free, core.Free}})
	res := minmax.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Equal(t, []int{1}, res.Assignment.Reviewers[0])
	require.Equal(t, []int{0}, res.Assignment.Reviewers[1])
	require.InDelta(t, 0.2, res.Objective, 1e-9)
}

func TestSolveInfeasibleTwoPapersOneReviewer(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x"},
		core.WithScoreSource([][]float64{{1.0}, {1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res := minmax.Solve(context.Background(), p)
	require.Equal(t, core.StatusInfeasible, res.Status)
	require.Error(t, res.Err)
}

func TestSolveCancelledContext(t *testing.T) {
	p := buildTrivial(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := minmax.Solve(ctx, p)
	require.Equal(t, core.StatusCancelled, res.Status)
}
