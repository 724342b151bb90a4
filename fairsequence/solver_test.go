package fairsequence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/fairsequence"
)

func TestSolveTrivialTwoByTwo(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1.0, 0.1}, {0.1, 1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res := fairsequence.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Len(t, res.Assignment.Reviewers[0], 1)
	require.Len(t, res.Assignment.Reviewers[1], 1)
}

func TestSolveBalancesAllocationByPriority(t *testing.T) {
	// Paper A has twice the target of B; the greedy priority rule should
	// still let both reach their targets rather than starving B.
	p, err := core.Build(
		[]string{"A", "B"}, []string{"r1", "r2", "r3"},
		core.WithScoreSource([][]float64{{0.9, 0.8, 0.7}, {0.6, 0.5, 0.4}}, 1.0),
		core.WithPaperQuota(0, 2, 2),
		core.WithPaperQuota(1, 1, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	res := fairsequence.Solve(context.Background(), p)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Len(t, res.Assignment.Reviewers[0], 2)
	require.Len(t, res.Assignment.Reviewers[1], 1)
}

func TestSolveDeterministic(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B", "C"}, []string{"x", "y", "z"},
		core.WithScoreSource([][]float64{{0.5, 0.5, 0.1}, {0.4, 0.4, 0.2}, {0.3, 0.3, 0.9}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	first := fairsequence.Solve(context.Background(), p)
	second := fairsequence.Solve(context.Background(), p)
	require.Equal(t, first.Assignment.Reviewers, second.Assignment.Reviewers)
}

func TestSolveInfeasibleUnderFairSequence(t *testing.T) {
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x"},
		core.WithScoreSource([][]float64{{1.0}, {1.0}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)

	res := fairsequence.Solve(context.Background(), p)
	require.Equal(t, core.StatusInfeasible, res.Status)
}
