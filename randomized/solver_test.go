package randomized_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oreview/matchcore/core"
	"github.com/oreview/matchcore/randomized"
)

func buildUniformProblem(t *testing.T) *core.Problem {
	t.Helper()
	p, err := core.Build(
		[]string{"A", "B"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1, 1}, {1, 1}}, 1.0),
		core.WithProbabilityLimits([][]float64{{0.5, 0.5}, {0.5, 0.5}}),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(1, 1),
	)
	require.NoError(t, err)
	return p
}

func TestSolveSameSeedIsDeterministic(t *testing.T) {
	p := buildUniformProblem(t)

	first := randomized.Solve(context.Background(), p, 42)
	second := randomized.Solve(context.Background(), p, 42)
	require.Equal(t, core.StatusComplete, first.Status)
	require.Equal(t, core.StatusComplete, second.Status)
	require.Equal(t, first.Assignment.Reviewers, second.Assignment.Reviewers)
}

func TestSolveEverySampleIsAPerfectMatching(t *testing.T) {
	p := buildUniformProblem(t)

	for seed := uint64(0); seed < 25; seed++ {
		res := randomized.Solve(context.Background(), p, seed)
		require.Equal(t, core.StatusComplete, res.Status)
		require.Len(t, res.Assignment.Reviewers[0], 1)
		require.Len(t, res.Assignment.Reviewers[1], 1)
		require.NotEqual(t, res.Assignment.Reviewers[0][0], res.Assignment.Reviewers[1][0])
	}
}

func TestSolveMarginalsApproximateProbabilityLimit(t *testing.T) {
	p := buildUniformProblem(t)

	const n = 2000
	var xCountForA int
	for seed := uint64(0); seed < n; seed++ {
		res := randomized.Solve(context.Background(), p, seed)
		require.Equal(t, core.StatusComplete, res.Status)
		if res.Assignment.Reviewers[0][0] == 0 {
			xCountForA++
		}
	}
	freq := float64(xCountForA) / float64(n)
	require.InDelta(t, 0.5, freq, 0.05)
}

func TestSolveRequiresProbabilityLimits(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x"},
		core.WithScoreSource([][]float64{{1}}, 1.0),
		core.WithDefaultReviewerQuota(1, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	res := randomized.Solve(context.Background(), p, 1)
	require.Equal(t, core.StatusSolverError, res.Status)
}

func TestSolveLockedPairAlwaysIncluded(t *testing.T) {
	p, err := core.Build(
		[]string{"A"}, []string{"x", "y"},
		core.WithScoreSource([][]float64{{1, 1}}, 1.0),
		core.WithConstraints([][]core.Constraint{{core.Locked, core.Free}}),
		core.WithProbabilityLimits([][]float64{{1, 0.5}}),
		core.WithDefaultReviewerQuota(0, 1),
		core.WithDefaultPaperQuota(0, 1),
	)
	require.NoError(t, err)

	res := randomized.Solve(context.Background(), p, 7)
	require.Equal(t, core.StatusComplete, res.Status)
	require.Contains(t, res.Assignment.Reviewers[0], 0)
}
